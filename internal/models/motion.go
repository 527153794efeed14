package models

// Motion is a proposal put to the assembly. Title, text and reason belong to
// the active version on the server; the replica only carries that version.
type Motion struct {
	ID           int    `json:"id"`
	Identifier   string `json:"identifier"`
	Title        string `json:"title"`
	Text         string `json:"text"`
	Reason       string `json:"reason"`
	CategoryID   int    `json:"category_id"`
	SubmittersID []int  `json:"submitters_id"`
	SupportersID []int  `json:"supporters_id"`
	TagsID       []int  `json:"tags_id"`
	AgendaItemID int    `json:"agenda_item_id"`
}

func (m *Motion) GetID() int         { return m.ID }
func (m *Motion) Collection() string { return CollectionMotion }

func (m *Motion) VerboseName(plural bool) string {
	if plural {
		return "Motions"
	}
	return "Motion"
}

func (m *Motion) FormatForSearch() []string {
	return []string{m.Identifier, m.Title, m.Text, m.Reason}
}

// Category groups motions and supplies their identifier prefix.
type Category struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

func (c *Category) GetID() int         { return c.ID }
func (c *Category) Collection() string { return CollectionCategory }

func (c *Category) VerboseName(plural bool) string {
	if plural {
		return "Categories"
	}
	return "Category"
}

func (c *Category) FormatForSearch() []string {
	return []string{c.Name, c.Prefix}
}
