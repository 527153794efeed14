package presentation

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/plenum/internal/app"
	"github.com/zjrosen/plenum/internal/cachemanager"
	"github.com/zjrosen/plenum/internal/models"
	"github.com/zjrosen/plenum/internal/search"
	"github.com/zjrosen/plenum/internal/views"
)

func sampleResults() []search.Result {
	return []search.Result{
		{
			Collection:  models.CollectionUser,
			VerboseName: "Participants",
			Models: []models.Searchable{
				&models.User{ID: 1, FirstName: "Alice", LastName: "Smith"},
				&models.User{ID: 2, Username: "bob"},
			},
		},
		{
			Collection:  models.CollectionItem,
			VerboseName: "Agenda item",
			Models:      []models.Searchable{&models.Item{ID: 4, Title: "Elections"}},
		},
		{Collection: models.CollectionTag, VerboseName: "Tags", Models: []models.Searchable{}},
	}
}

func sampleAssignment() *views.Assignment {
	return views.NewAssignment(
		&models.Assignment{ID: 1, Title: "Board election"},
		[]*views.User{
			views.NewUser(&models.User{ID: 2, FirstName: "Bob", LastName: "Smithers"}, nil),
			views.NewUser(&models.User{ID: 1, FirstName: "Alice", LastName: "Smith"}, nil),
		},
		nil,
		[]*views.Tag{views.NewTag(&models.Tag{ID: 1, Name: "budget"}, nil)},
		nil,
	)
}

func TestFromSearchResults(t *testing.T) {
	dtos := FromSearchResults(sampleResults())

	require.Len(t, dtos, 3)
	require.Equal(t, []RecordDTO{{ID: 1, Label: "Alice Smith"}, {ID: 2, Label: "bob"}}, dtos[0].Matches)
	require.Equal(t, []RecordDTO{{ID: 4, Label: "Elections"}}, dtos[1].Matches, "empty item number is skipped")
	require.Empty(t, dtos[2].Matches)
	require.NotNil(t, dtos[2].Matches)
}

func TestFromModels(t *testing.T) {
	dtos := FromModels([]search.Model{
		{Collection: models.CollectionMotion, VerboseNameSingular: "Motion", VerboseNamePlural: "Motions", DisplayOrder: 1},
	})
	require.Equal(t, []ModelDTO{{Collection: models.CollectionMotion, Singular: "Motion", Plural: "Motions", DisplayOrder: 1}}, dtos)
}

func TestFromView_Assignment(t *testing.T) {
	dto := FromView(sampleAssignment())

	require.Equal(t, "Board election", dto.Label)
	require.Equal(t, "Election", dto.VerboseName)
	require.Equal(t, []RelatedDTO{
		{Collection: models.CollectionUser, ID: 2, Label: "Bob Smithers"},
		{Collection: models.CollectionUser, ID: 1, Label: "Alice Smith"},
	}, dto.Relations["candidates"])
	require.Empty(t, dto.Relations["agenda_item"])
	require.Len(t, dto.Relations["tags"], 1)
	require.NotNil(t, dto.Settings)
	require.Equal(t, "Elections", dto.Settings.PDFTitle)
}

func TestFromView_Leaf(t *testing.T) {
	dto := FromView(views.NewTag(&models.Tag{ID: 3, Name: "statutes"}, nil))

	require.Equal(t, "statutes", dto.Label)
	require.Nil(t, dto.Relations)
	require.Nil(t, dto.Settings)
}

func TestFormatter_SearchResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, true).FormatSearchResults(FromSearchResults(sampleResults())))

	var decoded []SearchResultDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, FromSearchResults(sampleResults()), decoded)
}

func TestFormatter_SearchResultsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, false).FormatSearchResults(FromSearchResults(sampleResults())))

	out := buf.String()
	require.Contains(t, out, "Participants")
	require.Contains(t, out, "(2)")
	require.Contains(t, out, "Alice Smith")
	require.Contains(t, out, "no matches")
}

func TestFormatter_ViewText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, false).FormatView(FromView(sampleAssignment())))

	out := buf.String()
	require.Contains(t, out, "assignments/assignment/1")
	require.Contains(t, out, "candidates: Bob Smithers, Alice Smith")
	require.Contains(t, out, "agenda_item: none")
	require.Contains(t, out, "Elections, 8 ballot papers (CUSTOM_NUMBER)")
}

func TestFormatter_ModelsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, false).FormatModels([]ModelDTO{
		{Collection: models.CollectionTag, Singular: "Tag", Plural: "Tags", DisplayOrder: 6},
	}))
	require.Contains(t, buf.String(), "core/tag")
	require.Contains(t, buf.String(), "Tag / Tags")
}

func TestFromStatus(t *testing.T) {
	saved := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	dto := FromStatus(app.Status{
		SnapshotPath: "/tmp/snapshot.db",
		SavedAt:      saved,
		Records:      map[string]int{models.CollectionUser: 3},
		Dependencies: map[string][]string{models.CollectionAssignment: {models.CollectionUser}},
		Cache:        cachemanager.Stats{Hits: 4, Misses: 2},
		CachedViews:  2,
	})

	require.NotNil(t, dto.SavedAt)
	require.Equal(t, time.UTC, dto.SavedAt.Location())
	require.True(t, saved.Equal(*dto.SavedAt))
	require.Equal(t, int64(4), dto.CacheHits)

	require.Nil(t, FromStatus(app.Status{}).SavedAt)
}

func TestFormatter_StatusText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, false).FormatStatus(StatusDTO{
		Records: map[string]int{models.CollectionUser: 3, models.CollectionTag: 2},
		Dependencies: map[string][]string{
			models.CollectionAssignment: {models.CollectionUser, models.CollectionItem},
			models.CollectionTag:        {},
		},
		CacheHits: 1,
	}))

	out := buf.String()
	require.Contains(t, out, "in memory")
	require.Contains(t, out, "saved: never")
	require.Less(t, strings.Index(out, models.CollectionTag), strings.Index(out, models.CollectionUser))
	require.Contains(t, out, "users/user, agenda/item")
	require.Contains(t, out, "1 hits, 0 misses")
}
