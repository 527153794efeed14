package repository

import (
	"github.com/zjrosen/plenum/internal/models"
	"github.com/zjrosen/plenum/internal/viewmodel"
	"github.com/zjrosen/plenum/internal/views"
)

// AssignmentRepository serves elections. Elections are read-only on this
// client.
type AssignmentRepository struct {
	*Base[*models.Assignment, *views.Assignment]
}

func NewAssignmentRepository(d Deps) (*AssignmentRepository, error) {
	r := &AssignmentRepository{}
	base, err := newBase(d, models.CollectionAssignment,
		[]string{models.CollectionUser, models.CollectionItem, models.CollectionTag},
		false, r.CreateViewModel)
	if err != nil {
		return nil, err
	}
	r.Base = base
	return r, nil
}

// CreateViewModel resolves candidates, agenda item and tags. Ids that are not
// (yet) in the replica are left out.
func (r *AssignmentRepository) CreateViewModel(a *models.Assignment) *views.Assignment {
	candidates := viewmodel.GetMany[*views.User](r.viewModels, models.CollectionUser, a.CandidatesID)
	agendaItem, _ := viewmodel.Get[*views.Item](r.viewModels, models.CollectionItem, a.AgendaItemID)
	tags := viewmodel.GetMany[*views.Tag](r.viewModels, models.CollectionTag, a.TagsID)

	return views.NewAssignment(a, candidates, agendaItem, tags, r.names("Election", "Elections"))
}
