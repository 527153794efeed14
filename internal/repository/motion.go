package repository

import (
	"github.com/zjrosen/plenum/internal/models"
	"github.com/zjrosen/plenum/internal/viewmodel"
	"github.com/zjrosen/plenum/internal/views"
)

// MotionRepository serves motions (read-only).
type MotionRepository struct {
	*Base[*models.Motion, *views.Motion]
}

func NewMotionRepository(d Deps) (*MotionRepository, error) {
	r := &MotionRepository{}
	base, err := newBase(d, models.CollectionMotion,
		[]string{models.CollectionUser, models.CollectionCategory, models.CollectionTag, models.CollectionItem},
		false, r.CreateViewModel)
	if err != nil {
		return nil, err
	}
	r.Base = base
	return r, nil
}

func (r *MotionRepository) CreateViewModel(m *models.Motion) *views.Motion {
	category, _ := viewmodel.Get[*views.Category](r.viewModels, models.CollectionCategory, m.CategoryID)
	agendaItem, _ := viewmodel.Get[*views.Item](r.viewModels, models.CollectionItem, m.AgendaItemID)

	return views.NewMotion(m, views.MotionRelations{
		Submitters: viewmodel.GetMany[*views.User](r.viewModels, models.CollectionUser, m.SubmittersID),
		Supporters: viewmodel.GetMany[*views.User](r.viewModels, models.CollectionUser, m.SupportersID),
		Category:   category,
		Tags:       viewmodel.GetMany[*views.Tag](r.viewModels, models.CollectionTag, m.TagsID),
		AgendaItem: agendaItem,
	}, r.names("Motion", "Motions"))
}
