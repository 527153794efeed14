package models

// Agenda item types.
const (
	ItemAgenda   = 1
	ItemInternal = 2
	ItemHidden   = 3
)

// ContentObject points at the record an agenda item was created for.
type ContentObject struct {
	Collection string `json:"collection"`
	ID         int    `json:"id"`
}

// Item is an agenda item.
type Item struct {
	ID            int            `json:"id"`
	ItemNumber    string         `json:"item_number"`
	Title         string         `json:"title"`
	Comment       string         `json:"comment"`
	Closed        bool           `json:"closed"`
	Type          int            `json:"type"`
	Duration      int            `json:"duration"`
	ParentID      int            `json:"parent_id"`
	Weight        int            `json:"weight"`
	ContentObject *ContentObject `json:"content_object,omitempty"`
}

func (i *Item) GetID() int         { return i.ID }
func (i *Item) Collection() string { return CollectionItem }

func (i *Item) VerboseName(plural bool) string {
	if plural {
		return "Agenda items"
	}
	return "Agenda item"
}

// ListTitle prefixes the title with the item number when one is set.
func (i *Item) ListTitle() string {
	if i.ItemNumber == "" {
		return i.Title
	}
	return i.ItemNumber + " · " + i.Title
}

func (i *Item) FormatForSearch() []string {
	return []string{i.ItemNumber, i.Title, i.Comment}
}
