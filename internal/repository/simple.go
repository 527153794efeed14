package repository

import (
	"github.com/zjrosen/plenum/internal/models"
	"github.com/zjrosen/plenum/internal/views"
)

// UserRepository serves participants (read-only).
type UserRepository struct {
	*Base[*models.User, *views.User]
}

func NewUserRepository(d Deps) (*UserRepository, error) {
	r := &UserRepository{}
	base, err := newBase(d, models.CollectionUser, nil, false, r.CreateViewModel)
	if err != nil {
		return nil, err
	}
	r.Base = base
	return r, nil
}

func (r *UserRepository) CreateViewModel(u *models.User) *views.User {
	return views.NewUser(u, r.names("Participant", "Participants"))
}

// ItemRepository serves agenda items (read-only).
type ItemRepository struct {
	*Base[*models.Item, *views.Item]
}

func NewItemRepository(d Deps) (*ItemRepository, error) {
	r := &ItemRepository{}
	base, err := newBase(d, models.CollectionItem, nil, false, r.CreateViewModel)
	if err != nil {
		return nil, err
	}
	r.Base = base
	return r, nil
}

func (r *ItemRepository) CreateViewModel(i *models.Item) *views.Item {
	return views.NewItem(i, r.names("Agenda item", "Agenda items"))
}

// TagRepository serves tags. Tags are writable when a Writer is configured.
type TagRepository struct {
	*Base[*models.Tag, *views.Tag]
}

func NewTagRepository(d Deps) (*TagRepository, error) {
	r := &TagRepository{}
	base, err := newBase(d, models.CollectionTag, nil, true, r.CreateViewModel)
	if err != nil {
		return nil, err
	}
	r.Base = base
	return r, nil
}

func (r *TagRepository) CreateViewModel(t *models.Tag) *views.Tag {
	return views.NewTag(t, r.names("Tag", "Tags"))
}

// CategoryRepository serves motion categories. Writable when a Writer is
// configured.
type CategoryRepository struct {
	*Base[*models.Category, *views.Category]
}

func NewCategoryRepository(d Deps) (*CategoryRepository, error) {
	r := &CategoryRepository{}
	base, err := newBase(d, models.CollectionCategory, nil, true, r.CreateViewModel)
	if err != nil {
		return nil, err
	}
	r.Base = base
	return r, nil
}

func (r *CategoryRepository) CreateViewModel(c *models.Category) *views.Category {
	return views.NewCategory(c, r.names("Category", "Categories"))
}
