package datastore

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/plenum/internal/models"
	"github.com/zjrosen/plenum/internal/pubsub"
)

func seeded() *Store {
	s := New()
	s.Add(
		&models.User{ID: 2, FirstName: "Bob"},
		&models.User{ID: 1, FirstName: "Alice", LastName: "Smith"},
		&models.User{ID: 3, FirstName: "Carol"},
		&models.Tag{ID: 1, Name: "budget"},
	)
	return s
}

func TestStore_Get(t *testing.T) {
	s := seeded()

	rec, ok := s.Get(models.CollectionUser, 1)
	require.True(t, ok)
	require.Equal(t, "Alice", rec.(*models.User).FirstName)

	_, ok = s.Get(models.CollectionUser, 99)
	require.False(t, ok)

	_, ok = s.Get("unknown/collection", 1)
	require.False(t, ok)
}

func TestStore_GetMany_KeepsOrderAndDropsMissing(t *testing.T) {
	s := seeded()

	got := s.GetMany(models.CollectionUser, []int{3, 42, 1})
	require.Len(t, got, 2)
	require.Equal(t, 3, got[0].GetID())
	require.Equal(t, 1, got[1].GetID())
}

func TestStore_Filter_SortedByID(t *testing.T) {
	s := seeded()

	got := s.Filter(models.CollectionUser, func(r models.Record) bool {
		return strings.Contains(strings.ToLower(r.(*models.User).FirstName), "o")
	})
	require.Len(t, got, 2)
	require.Equal(t, 2, got[0].GetID())
	require.Equal(t, 3, got[1].GetID())

	all := s.GetAll(models.CollectionUser)
	require.Equal(t, []int{1, 2, 3}, ids(all))
}

func TestStore_RemoveAndCount(t *testing.T) {
	s := seeded()
	s.Remove(models.CollectionUser, 2, 77)

	require.Equal(t, 2, s.Count(models.CollectionUser))
	require.Equal(t, 3, s.MaxID(models.CollectionUser))
	require.Equal(t, 0, s.MaxID(models.CollectionMotion))
}

func TestStore_ReplaceAndCollections(t *testing.T) {
	s := seeded()
	require.Equal(t, []string{models.CollectionTag, models.CollectionUser}, s.Collections())

	s.Replace(&models.Motion{ID: 5, Title: "Budget"})
	require.Equal(t, []string{models.CollectionMotion}, s.Collections())
	require.Len(t, s.Records(), 1)

	s.Clear()
	require.Empty(t, s.Collections())
}

func TestStore_PublishesChanges(t *testing.T) {
	s := New()
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Subscribe(ctx)

	s.Add(&models.Tag{ID: 1, Name: "a"})
	s.Add(&models.Tag{ID: 1, Name: "b"})
	s.Remove(models.CollectionTag, 1)
	s.Replace()

	want := []pubsub.EventType{pubsub.CreatedEvent, pubsub.UpdatedEvent, pubsub.DeletedEvent, pubsub.ResetEvent}
	for _, kind := range want {
		select {
		case e := <-ch:
			require.Equal(t, kind, e.Type)
		case <-time.After(100 * time.Millisecond):
			require.Failf(t, "missing event", "%s", kind)
		}
	}
}

func TestStore_OnChangeRunsBeforeReturn(t *testing.T) {
	s := New()
	defer s.Close()

	var seen []pubsub.EventType
	s.OnChange(func(kind pubsub.EventType, change Change) {
		if kind != pubsub.ResetEvent {
			_, present := s.Get(change.Collection, change.ID)
			require.Equal(t, kind != pubsub.DeletedEvent, present)
		}
		seen = append(seen, kind)
	})

	s.Add(&models.Tag{ID: 1, Name: "a"})
	require.Equal(t, []pubsub.EventType{pubsub.CreatedEvent}, seen)
	s.Add(&models.Tag{ID: 1, Name: "b"})
	s.Remove(models.CollectionTag, 1, 99)
	s.Replace()
	require.Equal(t, []pubsub.EventType{pubsub.CreatedEvent, pubsub.UpdatedEvent, pubsub.DeletedEvent, pubsub.ResetEvent}, seen)
}

func TestStore_OnChangeSeesEveryEventOfBulkAdd(t *testing.T) {
	s := New()
	defer s.Close()

	// An undrained subscriber drops events once its buffer is full.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_ = s.Subscribe(ctx)

	count := 0
	s.OnChange(func(pubsub.EventType, Change) { count++ })

	bulk := make([]models.Record, 0, 5000)
	for i := range 5000 {
		bulk = append(bulk, &models.Tag{ID: i + 1, Name: "t"})
	}
	s.Add(bulk...)
	require.Equal(t, 5000, count)
}

func TestGetAs(t *testing.T) {
	s := seeded()

	u, ok := GetAs[*models.User](s, models.CollectionUser, 1)
	require.True(t, ok)
	require.Equal(t, "Smith", u.LastName)

	_, ok = GetAs[*models.Tag](s, models.CollectionUser, 1)
	require.False(t, ok, "type mismatch is reported as absent")
}

func ids(records []models.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.GetID()
	}
	return out
}
