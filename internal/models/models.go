// Package models defines the flat records held by the keyed record store.
//
// Records mirror the server collections one to one. Relation fields hold raw
// identifiers only: a single foreign id is an int where 0 means unset, and an
// ordered relation is a []int. Records never point at each other; resolving
// ids into objects is the job of the repository layer.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Collection strings as used by the server.
const (
	CollectionAssignment = "assignments/assignment"
	CollectionUser       = "users/user"
	CollectionItem       = "agenda/item"
	CollectionTag        = "core/tag"
	CollectionMotion     = "motions/motion"
	CollectionCategory   = "motions/category"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrInvalidRecord     = errors.New("invalid record")
)

// Identifiable is anything with a numeric identifier.
type Identifiable interface {
	GetID() int
}

// ID is the minimal Identifiable, returned by writers after a create.
type ID int

// GetID implements Identifiable.
func (i ID) GetID() int { return int(i) }

// Record is one raw data unit of a collection.
type Record interface {
	Identifiable
	Collection() string
}

// Namer produces the untranslated display name of a record type.
type Namer interface {
	VerboseName(plural bool) string
}

// Searchable records expose their display names and the text fragments the
// search registry matches against.
type Searchable interface {
	Record
	Namer
	FormatForSearch() []string
}

// factories creates a blank record per collection.
var factories = map[string]func() Record{
	CollectionAssignment: func() Record { return &Assignment{} },
	CollectionUser:       func() Record { return &User{} },
	CollectionItem:       func() Record { return &Item{} },
	CollectionTag:        func() Record { return &Tag{} },
	CollectionMotion:     func() Record { return &Motion{} },
	CollectionCategory:   func() Record { return &Category{} },
}

// New returns a blank record for collection.
func New(collection string) (Record, error) {
	factory, ok := factories[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return factory(), nil
}

// Decode unmarshals one JSON record of the given collection.
func Decode(collection string, data []byte) (Record, error) {
	rec, err := New(collection)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	if rec.GetID() <= 0 {
		return nil, fmt.Errorf("%w: %s without positive id", ErrInvalidRecord, collection)
	}
	return rec, nil
}

// DecodeBundle unmarshals a document shaped {"collection": [records...]}.
// Collections are processed in sorted order so errors are deterministic.
func DecodeBundle(data []byte) ([]Record, error) {
	var raw map[string][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}

	collections := make([]string, 0, len(raw))
	for c := range raw {
		collections = append(collections, c)
	}
	sort.Strings(collections)

	var records []Record
	for _, collection := range collections {
		for _, item := range raw[collection] {
			rec, err := Decode(collection, item)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// Collections returns every known collection string, sorted.
func Collections() []string {
	out := make([]string, 0, len(factories))
	for c := range factories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy of rec by round-tripping through JSON.
func Clone(rec Record) (Record, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return Decode(rec.Collection(), data)
}
