package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_Assignment(t *testing.T) {
	rec, err := Decode(CollectionAssignment, []byte(`{
		"id": 4, "title": "Board election", "open_posts": 2,
		"candidates_id": [3, 1, 2], "agenda_item_id": 9, "tags_id": [5]
	}`))
	require.NoError(t, err)

	a, ok := rec.(*Assignment)
	require.True(t, ok)
	require.Equal(t, 4, a.GetID())
	require.Equal(t, []int{3, 1, 2}, a.CandidatesID)
	require.Equal(t, 9, a.AgendaItemID)
	require.Equal(t, CollectionAssignment, a.Collection())
}

func TestDecode_UnknownCollection(t *testing.T) {
	_, err := Decode("mediafiles/mediafile", []byte(`{"id": 1}`))
	require.ErrorIs(t, err, ErrUnknownCollection)
}

func TestDecode_RequiresPositiveID(t *testing.T) {
	_, err := Decode(CollectionTag, []byte(`{"name": "finance"}`))
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestDecodeBundle(t *testing.T) {
	records, err := DecodeBundle([]byte(`{
		"users/user": [{"id": 1, "first_name": "Alice", "last_name": "Smith"}],
		"core/tag": [{"id": 2, "name": "budget"}, {"id": 3, "name": "staff"}]
	}`))
	require.NoError(t, err)
	require.Len(t, records, 3)
	// core/tag sorts before users/user
	require.Equal(t, CollectionTag, records[0].Collection())
	require.Equal(t, CollectionUser, records[2].Collection())
}

func TestDecodeBundle_PropagatesRecordErrors(t *testing.T) {
	_, err := DecodeBundle([]byte(`{"core/tag": [{"name": "no id"}]}`))
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"first and last", User{FirstName: "Alice", LastName: "Smith"}, "Alice Smith"},
		{"with title", User{Title: "Dr.", FirstName: "Bob", LastName: "Jones"}, "Dr. Bob Jones"},
		{"structure level", User{FirstName: "Eve", StructureLevel: "Berlin"}, "Eve (Berlin)"},
		{"username fallback", User{Username: "admin"}, "admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.user.FullName())
		})
	}
}

func TestVerboseNames(t *testing.T) {
	for _, collection := range Collections() {
		rec, err := New(collection)
		require.NoError(t, err)
		s, ok := rec.(Searchable)
		require.True(t, ok, "%s should be searchable", collection)
		require.NotEmpty(t, s.VerboseName(false))
		require.NotEqual(t, s.VerboseName(false), s.VerboseName(true))
	}
}

func TestClone_IsIndependent(t *testing.T) {
	orig := &Motion{ID: 1, Title: "Budget", TagsID: []int{1, 2}}
	cloned, err := Clone(orig)
	require.NoError(t, err)

	m := cloned.(*Motion)
	m.TagsID[0] = 99
	require.Equal(t, []int{1, 2}, orig.TagsID)
}

func TestItem_ListTitle(t *testing.T) {
	require.Equal(t, "TOP 1 · Welcome", (&Item{ItemNumber: "TOP 1", Title: "Welcome"}).ListTitle())
	require.Equal(t, "Welcome", (&Item{Title: "Welcome"}).ListTitle())
}
