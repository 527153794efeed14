package views

import "github.com/zjrosen/plenum/internal/models"

// Motion is a motion with submitters, supporters, category, tags and agenda
// item resolved.
type Motion struct {
	motion     *models.Motion
	submitters []*User
	supporters []*User
	category   *Category
	tags       []*Tag
	agendaItem *Item
	name       NameFunc
}

// MotionRelations groups the resolved relations of a motion.
type MotionRelations struct {
	Submitters []*User
	Supporters []*User
	Category   *Category
	Tags       []*Tag
	AgendaItem *Item
}

func NewMotion(m *models.Motion, rel MotionRelations, name NameFunc) *Motion {
	return &Motion{
		motion:     m,
		submitters: rel.Submitters,
		supporters: rel.Supporters,
		category:   rel.Category,
		tags:       rel.Tags,
		agendaItem: rel.AgendaItem,
		name:       nameOr(name, m),
	}
}

func (v *Motion) ID() int                        { return v.motion.ID }
func (v *Motion) Collection() string             { return models.CollectionMotion }
func (v *Motion) VerboseName(plural bool) string { return v.name(plural) }
func (v *Motion) Record() *models.Motion         { return v.motion }
func (v *Motion) Submitters() []*User            { return v.submitters }
func (v *Motion) Supporters() []*User            { return v.supporters }
func (v *Motion) Category() *Category            { return v.category }
func (v *Motion) Tags() []*Tag                   { return v.tags }
func (v *Motion) AgendaItem() *Item              { return v.agendaItem }

func (v *Motion) Identifier() string { return v.motion.Identifier }

func (v *Motion) String() string {
	if v.motion.Identifier != "" {
		return v.motion.Identifier + ": " + v.motion.Title
	}
	return v.motion.Title
}
