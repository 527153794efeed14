package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/plenum/internal/datastore"
	"github.com/zjrosen/plenum/internal/models"
)

func TestBuilder_WithUser(t *testing.T) {
	store := NewBuilder(t, NewStore(t)).
		WithUser(4, "Dana", "Scully", StructureLevel("Bonn"), Username("dscully")).
		Build()

	u, ok := datastore.GetAs[*models.User](store, models.CollectionUser, 4)
	require.True(t, ok)
	require.Equal(t, "Dana Scully (Bonn)", u.FullName())
	require.Equal(t, "dscully", u.Username)
	require.True(t, u.IsActive)
}

func TestBuilder_WithAssignment(t *testing.T) {
	store := NewBuilder(t, NewStore(t)).
		WithAssignment(1, "Board", Description("two seats"), Candidates(3, 1), AgendaItem(5), Tags(2), Phase(models.PhaseVoting)).
		Build()

	a, ok := datastore.GetAs[*models.Assignment](store, models.CollectionAssignment, 1)
	require.True(t, ok)
	require.Equal(t, "Board", a.Title)
	require.Equal(t, "two seats", a.Description)
	require.Equal(t, 1, a.OpenPosts) // default
	require.Equal(t, []int{3, 1}, a.CandidatesID)
	require.Equal(t, 5, a.AgendaItemID)
	require.Equal(t, []int{2}, a.TagsID)
	require.Equal(t, models.PhaseVoting, a.Phase)
}

func TestBuilder_WithMotion(t *testing.T) {
	store := NewBuilder(t, NewStore(t)).
		WithCategory(2, "Statutes", "S").
		WithMotion(7, "S1", "Quorum", Text("Lower the quorum"), InCategory(2), Submitters(1), Supporters(2, 3), Tags(4), AgendaItem(9)).
		Build()

	m, ok := datastore.GetAs[*models.Motion](store, models.CollectionMotion, 7)
	require.True(t, ok)
	require.Equal(t, "S1", m.Identifier)
	require.Equal(t, "Lower the quorum", m.Text)
	require.Equal(t, 2, m.CategoryID)
	require.Equal(t, []int{1}, m.SubmittersID)
	require.Equal(t, []int{2, 3}, m.SupportersID)
	require.Equal(t, []int{4}, m.TagsID)
	require.Equal(t, 9, m.AgendaItemID)

	c, ok := datastore.GetAs[*models.Category](store, models.CollectionCategory, 2)
	require.True(t, ok)
	require.Equal(t, "S", c.Prefix)
}

func TestBuilder_WithItem(t *testing.T) {
	store := NewBuilder(t, NewStore(t)).
		WithItem(3, "Welcome", ItemNumber("TOP 0")).
		Build()

	i, ok := datastore.GetAs[*models.Item](store, models.CollectionItem, 3)
	require.True(t, ok)
	require.Equal(t, "TOP 0", i.ItemNumber)
	require.Equal(t, models.ItemAgenda, i.Type)
}

func TestBuilder_RecordsDoesNotTouchStore(t *testing.T) {
	store := NewStore(t)
	b := NewBuilder(t, store).WithTag(1, "budget").WithTag(2, "statutes")

	recs := b.Records()
	require.Len(t, recs, 2)
	require.Zero(t, store.Count(models.CollectionTag))

	recs[0] = &models.Tag{ID: 9}
	require.Equal(t, 1, b.Records()[0].GetID(), "Records returns a copy")

	b.Build()
	require.Equal(t, 2, store.Count(models.CollectionTag))
}

func TestBuilder_LaterRecordReplacesEarlier(t *testing.T) {
	store := NewBuilder(t, NewStore(t)).
		WithTag(1, "first").
		WithTag(1, "second").
		Build()

	tag, ok := datastore.GetAs[*models.Tag](store, models.CollectionTag, 1)
	require.True(t, ok)
	require.Equal(t, "second", tag.Name)
}
