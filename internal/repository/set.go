package repository

import "fmt"

// Set holds one repository per collection.
type Set struct {
	Assignments *AssignmentRepository
	Users       *UserRepository
	Items       *ItemRepository
	Tags        *TagRepository
	Motions     *MotionRepository
	Categories  *CategoryRepository
}

// NewSet creates every repository against the same collaborators.
func NewSet(d Deps) (*Set, error) {
	var (
		s   Set
		err error
	)
	if s.Users, err = NewUserRepository(d); err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	if s.Items, err = NewItemRepository(d); err != nil {
		return nil, fmt.Errorf("agenda items: %w", err)
	}
	if s.Tags, err = NewTagRepository(d); err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	if s.Categories, err = NewCategoryRepository(d); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	if s.Assignments, err = NewAssignmentRepository(d); err != nil {
		return nil, fmt.Errorf("assignments: %w", err)
	}
	if s.Motions, err = NewMotionRepository(d); err != nil {
		return nil, fmt.Errorf("motions: %w", err)
	}
	return &s, nil
}

// Repository is the collection-independent view of a repository.
type Repository interface {
	Collection() string
	Dependencies() []string
	ReadOnly() bool
}

// All returns the repositories in construction order.
func (s *Set) All() []Repository {
	return []Repository{s.Users, s.Items, s.Tags, s.Categories, s.Assignments, s.Motions}
}

// Describe lists each collection with its declared dependencies.
func (s *Set) Describe() map[string][]string {
	out := make(map[string][]string, 6)
	for _, r := range s.All() {
		out[r.Collection()] = r.Dependencies()
	}
	return out
}
