package models

// Tag is a free-form label attachable to elections and motions.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (t *Tag) GetID() int         { return t.ID }
func (t *Tag) Collection() string { return CollectionTag }

func (t *Tag) VerboseName(plural bool) string {
	if plural {
		return "Tags"
	}
	return "Tag"
}

func (t *Tag) FormatForSearch() []string {
	return []string{t.Name}
}
