// Package views contains the presentation-side objects built by repositories.
//
// A view wraps exactly one record plus the views of the records it refers to.
// Views are immutable once constructed; the display name strategy is fixed at
// construction time.
package views

import "github.com/zjrosen/plenum/internal/models"

// NameFunc returns the display name for a record type in singular or plural.
type NameFunc func(plural bool) string

// nameOr returns name, or the record's own untranslated name when name is nil.
func nameOr(name NameFunc, rec models.Namer) NameFunc {
	if name != nil {
		return name
	}
	return rec.VerboseName
}

// User wraps a participant.
type User struct {
	user *models.User
	name NameFunc
}

func NewUser(u *models.User, name NameFunc) *User {
	return &User{user: u, name: nameOr(name, u)}
}

func (v *User) ID() int                        { return v.user.ID }
func (v *User) Collection() string             { return models.CollectionUser }
func (v *User) VerboseName(plural bool) string { return v.name(plural) }
func (v *User) Record() *models.User           { return v.user }
func (v *User) FullName() string               { return v.user.FullName() }
func (v *User) String() string                 { return v.user.FullName() }

// Tag wraps a tag.
type Tag struct {
	tag  *models.Tag
	name NameFunc
}

func NewTag(t *models.Tag, name NameFunc) *Tag {
	return &Tag{tag: t, name: nameOr(name, t)}
}

func (v *Tag) ID() int                        { return v.tag.ID }
func (v *Tag) Collection() string             { return models.CollectionTag }
func (v *Tag) VerboseName(plural bool) string { return v.name(plural) }
func (v *Tag) Record() *models.Tag            { return v.tag }
func (v *Tag) Name() string                   { return v.tag.Name }
func (v *Tag) String() string                 { return v.tag.Name }

// Item wraps an agenda item.
type Item struct {
	item *models.Item
	name NameFunc
}

func NewItem(i *models.Item, name NameFunc) *Item {
	return &Item{item: i, name: nameOr(name, i)}
}

func (v *Item) ID() int                        { return v.item.ID }
func (v *Item) Collection() string             { return models.CollectionItem }
func (v *Item) VerboseName(plural bool) string { return v.name(plural) }
func (v *Item) Record() *models.Item           { return v.item }
func (v *Item) ItemNumber() string             { return v.item.ItemNumber }
func (v *Item) String() string                 { return v.item.ListTitle() }

// Category wraps a motion category.
type Category struct {
	category *models.Category
	name     NameFunc
}

func NewCategory(c *models.Category, name NameFunc) *Category {
	return &Category{category: c, name: nameOr(name, c)}
}

func (v *Category) ID() int                        { return v.category.ID }
func (v *Category) Collection() string             { return models.CollectionCategory }
func (v *Category) VerboseName(plural bool) string { return v.name(plural) }
func (v *Category) Record() *models.Category       { return v.category }

func (v *Category) String() string {
	if v.category.Prefix == "" {
		return v.category.Name
	}
	return v.category.Prefix + " - " + v.category.Name
}
