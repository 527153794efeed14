package testutil

import "github.com/zjrosen/plenum/internal/models"

// Option adjusts a record before it is added. Options that do not apply to
// a record type leave it untouched.
type Option func(models.Record)

// Description sets an election's description.
func Description(text string) Option {
	return func(r models.Record) {
		if a, ok := r.(*models.Assignment); ok {
			a.Description = text
		}
	}
}

// Candidates sets an election's candidate ids.
func Candidates(ids ...int) Option {
	return func(r models.Record) {
		if a, ok := r.(*models.Assignment); ok {
			a.CandidatesID = ids
		}
	}
}

// AgendaItem links an election or motion to an agenda item.
func AgendaItem(id int) Option {
	return func(r models.Record) {
		switch rec := r.(type) {
		case *models.Assignment:
			rec.AgendaItemID = id
		case *models.Motion:
			rec.AgendaItemID = id
		}
	}
}

// Tags sets the tag ids of an election or motion.
func Tags(ids ...int) Option {
	return func(r models.Record) {
		switch rec := r.(type) {
		case *models.Assignment:
			rec.TagsID = ids
		case *models.Motion:
			rec.TagsID = ids
		}
	}
}

// Phase sets an election's phase.
func Phase(phase int) Option {
	return func(r models.Record) {
		if a, ok := r.(*models.Assignment); ok {
			a.Phase = phase
		}
	}
}

// Submitters sets a motion's submitter ids.
func Submitters(ids ...int) Option {
	return func(r models.Record) {
		if m, ok := r.(*models.Motion); ok {
			m.SubmittersID = ids
		}
	}
}

// Supporters sets a motion's supporter ids.
func Supporters(ids ...int) Option {
	return func(r models.Record) {
		if m, ok := r.(*models.Motion); ok {
			m.SupportersID = ids
		}
	}
}

// InCategory puts a motion into a category.
func InCategory(id int) Option {
	return func(r models.Record) {
		if m, ok := r.(*models.Motion); ok {
			m.CategoryID = id
		}
	}
}

// Text sets a motion's text.
func Text(text string) Option {
	return func(r models.Record) {
		if m, ok := r.(*models.Motion); ok {
			m.Text = text
		}
	}
}

// StructureLevel sets a participant's structure level.
func StructureLevel(level string) Option {
	return func(r models.Record) {
		if u, ok := r.(*models.User); ok {
			u.StructureLevel = level
		}
	}
}

// Username sets a participant's login name.
func Username(name string) Option {
	return func(r models.Record) {
		if u, ok := r.(*models.User); ok {
			u.Username = name
		}
	}
}

// ItemNumber sets an agenda item's number.
func ItemNumber(number string) Option {
	return func(r models.Record) {
		if i, ok := r.(*models.Item); ok {
			i.ItemNumber = number
		}
	}
}
