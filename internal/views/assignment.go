package views

import "github.com/zjrosen/plenum/internal/models"

// Assignment is an election with its candidates, agenda item and tags
// resolved.
type Assignment struct {
	assignment *models.Assignment
	candidates []*User
	agendaItem *Item
	tags       []*Tag
	name       NameFunc
}

// NewAssignment builds the view. agendaItem may be nil.
func NewAssignment(a *models.Assignment, candidates []*User, agendaItem *Item, tags []*Tag, name NameFunc) *Assignment {
	return &Assignment{
		assignment: a,
		candidates: candidates,
		agendaItem: agendaItem,
		tags:       tags,
		name:       nameOr(name, a),
	}
}

func (v *Assignment) ID() int                        { return v.assignment.ID }
func (v *Assignment) Collection() string             { return models.CollectionAssignment }
func (v *Assignment) VerboseName(plural bool) string { return v.name(plural) }
func (v *Assignment) Record() *models.Assignment     { return v.assignment }
func (v *Assignment) Title() string                  { return v.assignment.Title }
func (v *Assignment) Candidates() []*User            { return v.candidates }
func (v *Assignment) Tags() []*Tag                   { return v.tags }
func (v *Assignment) String() string                 { return v.assignment.Title }

// AgendaItem returns the linked agenda item, or nil.
func (v *Assignment) AgendaItem() *Item { return v.agendaItem }

// HasCandidate reports whether the user with id is among the resolved
// candidates.
func (v *Assignment) HasCandidate(id int) bool {
	for _, c := range v.candidates {
		if c.ID() == id {
			return true
		}
	}
	return false
}
