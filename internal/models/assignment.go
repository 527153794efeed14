package models

// Assignment phases.
const (
	PhaseSearch   = 0
	PhaseVoting   = 1
	PhaseFinished = 2
)

// Assignment is an election.
type Assignment struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	OpenPosts       int    `json:"open_posts"`
	Phase           int    `json:"phase"`
	PollDescription string `json:"poll_description_default"`
	CandidatesID    []int  `json:"candidates_id"`
	AgendaItemID    int    `json:"agenda_item_id"`
	TagsID          []int  `json:"tags_id"`
}

func (a *Assignment) GetID() int         { return a.ID }
func (a *Assignment) Collection() string { return CollectionAssignment }

func (a *Assignment) VerboseName(plural bool) string {
	if plural {
		return "Elections"
	}
	return "Election"
}

func (a *Assignment) FormatForSearch() []string {
	return []string{a.Title, a.Description}
}

// Ballot paper selection modes for elections.
const (
	BallotPapersDelegates       = "NUMBER_OF_DELEGATES"
	BallotPapersAllParticipants = "NUMBER_OF_ALL_PARTICIPANTS"
	BallotPapersCustom          = "CUSTOM_NUMBER"
)

// AssignmentConfig holds the election settings shared by all assignments.
type AssignmentConfig struct {
	PublishWinnerResultsOnly bool   `json:"assignment_publish_winner_results_only"`
	BallotPapersSelection    string `json:"assignment_pdf_ballot_papers_selection"`
	BallotPapersNumber       int    `json:"assignment_pdf_ballot_papers_number"`
	PDFTitle                 string `json:"assignment_pdf_title"`
	PDFPreamble              string `json:"assignment_pdf_preamble"`
	PollVoteValues           string `json:"assignment_poll_vote_values"`
}

// AssignmentConfigDefaults returns the server's default election settings.
func AssignmentConfigDefaults() AssignmentConfig {
	return AssignmentConfig{
		PublishWinnerResultsOnly: false,
		BallotPapersSelection:    BallotPapersCustom,
		BallotPapersNumber:       8,
		PDFTitle:                 "Elections",
		PDFPreamble:              "",
		PollVoteValues:           "auto",
	}
}
