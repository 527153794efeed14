package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/plenum/internal/models"
)

func TestPreset_AssemblyData(t *testing.T) {
	store := NewBuilder(t, NewStore(t)).WithAssemblyData().Build()

	require.Equal(t, 3, store.Count(models.CollectionUser))
	require.Equal(t, 2, store.Count(models.CollectionTag))
	require.Equal(t, 2, store.Count(models.CollectionItem))
	require.Equal(t, 2, store.Count(models.CollectionAssignment))
	require.Equal(t, 1, store.Count(models.CollectionMotion))
	require.Equal(t, 1, store.Count(models.CollectionCategory))

	a, ok := store.Get(models.CollectionAssignment, 1)
	require.True(t, ok)
	require.Equal(t, []int{2, 99, 1}, a.(*models.Assignment).CandidatesID)
}

func TestOptions_IgnoreOtherRecordTypes(t *testing.T) {
	recs := NewBuilder(t, NewStore(t)).
		WithTag(1, "x").
		WithUser(1, "A", "B", Candidates(1), Text("ignored"), Username("ab")).
		Records()

	require.Len(t, recs, 2)
	u := recs[1].(*models.User)
	require.Equal(t, "ab", u.Username)
}
