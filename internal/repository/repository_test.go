package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/plenum/internal/datastore"
	"github.com/zjrosen/plenum/internal/i18n"
	"github.com/zjrosen/plenum/internal/mocks"
	"github.com/zjrosen/plenum/internal/models"
	"github.com/zjrosen/plenum/internal/testutil"
	"github.com/zjrosen/plenum/internal/viewmodel"
	"github.com/zjrosen/plenum/internal/views"
)

func newSet(t *testing.T, store *datastore.Store, tr i18n.Translator, w Writer) *Set {
	t.Helper()
	set, err := NewSet(Deps{
		Records:    store,
		ViewModels: viewmodel.New(store),
		Translator: tr,
		Writer:     w,
	})
	require.NoError(t, err)
	return set
}

func userIDs(users []*views.User) []int {
	out := make([]int, len(users))
	for i, u := range users {
		out[i] = u.ID()
	}
	return out
}

func TestAssignment_CreateViewModel(t *testing.T) {
	store := testutil.NewBuilder(t, testutil.NewStore(t)).WithAssemblyData().Build()
	set := newSet(t, store, nil, nil)

	view, ok := set.Assignments.ViewModel(1)
	require.True(t, ok)

	require.Equal(t, "Board election", view.Title())
	require.Equal(t, []int{2, 1}, userIDs(view.Candidates()), "candidate 99 is dropped, order kept")
	require.NotNil(t, view.AgendaItem())
	require.Equal(t, 1, view.AgendaItem().ID())
	require.Len(t, view.Tags(), 1)
	require.Equal(t, "statutes", view.Tags()[0].Name())

	require.Equal(t, "Election", view.VerboseName(false))
	require.Equal(t, "Elections", view.VerboseName(true))
}

func TestAssignment_UnsetAgendaItem(t *testing.T) {
	store := testutil.NewBuilder(t, testutil.NewStore(t)).WithAssemblyData().Build()
	set := newSet(t, store, nil, nil)

	view, ok := set.Assignments.ViewModel(2)
	require.True(t, ok)
	require.Nil(t, view.AgendaItem())
	require.Empty(t, view.Tags())
	require.Equal(t, []int{3}, userIDs(view.Candidates()))
}

func TestAssignment_TranslatedNames(t *testing.T) {
	de, err := i18n.Load("de")
	require.NoError(t, err)

	store := testutil.NewBuilder(t, testutil.NewStore(t)).WithAssemblyData().Build()
	set := newSet(t, store, de, nil)

	view, ok := set.Assignments.ViewModel(1)
	require.True(t, ok)
	require.Equal(t, "Wahl", view.VerboseName(false))
	require.Equal(t, "Wahlen", view.VerboseName(true))
	require.Equal(t, "Teilnehmende", view.Candidates()[0].VerboseName(true))
}

func TestAssignment_ResolvableCandidatesKeepOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		existing := rapid.SliceOfNDistinct(rapid.IntRange(1, 30), 0, 15, rapid.ID[int]).Draw(rt, "existing")
		ids := rapid.SliceOfN(rapid.IntRange(1, 40), 0, 20).Draw(rt, "candidates")

		store := datastore.New()
		defer store.Close()
		known := make(map[int]bool, len(existing))
		for _, id := range existing {
			store.Add(&models.User{ID: id, Username: "u"})
			known[id] = true
		}
		store.Add(&models.Assignment{ID: 1, Title: "E", CandidatesID: ids})

		set, err := NewSet(Deps{Records: store, ViewModels: viewmodel.New(store, viewmodel.WithoutCache())})
		if err != nil {
			rt.Fatalf("NewSet: %v", err)
		}
		view, ok := set.Assignments.ViewModel(1)
		if !ok {
			rt.Fatal("assignment did not resolve")
		}

		want := []int{}
		for _, id := range ids {
			if known[id] {
				want = append(want, id)
			}
		}
		got := userIDs(view.Candidates())
		if len(got) != len(want) {
			rt.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				rt.Fatalf("got %v, want %v", got, want)
			}
		}
	})
}

func TestReadOnly_RejectsWrites(t *testing.T) {
	store := testutil.NewBuilder(t, testutil.NewStore(t)).WithAssemblyData().Build()
	w := mocks.NewMockWriter(t)
	set := newSet(t, store, nil, w)
	ctx := context.Background()

	require.True(t, set.Assignments.ReadOnly())
	view, ok := set.Assignments.ViewModel(1)
	require.True(t, ok)

	_, err := set.Assignments.Create(ctx, &models.Assignment{Title: "New"})
	require.ErrorIs(t, err, ErrNotSupported)
	require.ErrorIs(t, set.Assignments.Update(ctx, map[string]any{"title": "x"}, view), ErrNotSupported)
	require.ErrorIs(t, set.Assignments.Delete(ctx, view), ErrNotSupported)

	user, _ := set.Users.ViewModel(1)
	require.ErrorIs(t, set.Users.Delete(ctx, user), ErrNotSupported)

	// record untouched, writer never called
	rec, ok := datastore.GetAs[*models.Assignment](store, models.CollectionAssignment, 1)
	require.True(t, ok)
	require.Equal(t, "Board election", rec.Title)
	w.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWritable_DelegatesToWriter(t *testing.T) {
	store := testutil.NewBuilder(t, testutil.NewStore(t)).WithAssemblyData().Build()
	w := mocks.NewMockWriter(t)
	set := newSet(t, store, nil, w)
	ctx := context.Background()

	require.False(t, set.Tags.ReadOnly())
	tag, ok := set.Tags.ViewModel(1)
	require.True(t, ok)

	newTag := &models.Tag{Name: "elections"}
	w.EXPECT().Create(ctx, newTag).Return(models.ID(3), nil)
	w.EXPECT().Update(ctx, models.CollectionTag, 1, map[string]any{"name": "finance"}).Return(nil)
	w.EXPECT().Delete(ctx, models.CollectionTag, 1).Return(nil)

	id, err := set.Tags.Create(ctx, newTag)
	require.NoError(t, err)
	require.Equal(t, 3, id.GetID())
	require.NoError(t, set.Tags.Update(ctx, map[string]any{"name": "finance"}, tag))
	require.NoError(t, set.Tags.Delete(ctx, tag))
}

func TestWritable_WrapsWriterErrors(t *testing.T) {
	store := testutil.NewBuilder(t, testutil.NewStore(t)).WithAssemblyData().Build()
	w := mocks.NewMockWriter(t)
	set := newSet(t, store, nil, w)
	ctx := context.Background()

	boom := errors.New("boom")
	category, ok := set.Categories.ViewModel(1)
	require.True(t, ok)
	w.EXPECT().Delete(ctx, models.CollectionCategory, 1).Return(boom)

	err := set.Categories.Delete(ctx, category)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "motions/category/1")
}

func TestWritable_WithoutWriterIsReadOnly(t *testing.T) {
	store := testutil.NewBuilder(t, testutil.NewStore(t)).WithAssemblyData().Build()
	set := newSet(t, store, nil, nil)

	require.True(t, set.Tags.ReadOnly())
	_, err := set.Tags.Create(context.Background(), &models.Tag{Name: "x"})
	require.ErrorIs(t, err, ErrNotSupported)
}

func TestWritable_LocalWriterRoundTrip(t *testing.T) {
	store := testutil.NewBuilder(t, testutil.NewStore(t)).WithAssemblyData().Build()
	vms := viewmodel.New(store)
	set, err := NewSet(Deps{Records: store, ViewModels: vms, Writer: datastore.NewLocalWriter(store)})
	require.NoError(t, err)

	ctx := context.Background()
	_, ok := set.Tags.ViewModel(3)
	require.False(t, ok)

	id, err := set.Tags.Create(ctx, &models.Tag{Name: "elections"})
	require.NoError(t, err)
	require.Equal(t, 3, id.GetID())

	tag, ok := datastore.GetAs[*models.Tag](store, models.CollectionTag, 3)
	require.True(t, ok)
	require.Equal(t, "elections", tag.Name)

	view, ok := set.Tags.ViewModel(3)
	require.True(t, ok)
	require.Equal(t, 3, view.ID())
}

func TestMotion_CreateViewModel(t *testing.T) {
	store := testutil.NewBuilder(t, testutil.NewStore(t)).WithAssemblyData().Build()
	set := newSet(t, store, nil, nil)

	view, ok := set.Motions.ViewModel(1)
	require.True(t, ok)
	require.Equal(t, "A1", view.Identifier())
	require.Equal(t, []int{1}, userIDs(view.Submitters()))
	require.Equal(t, []int{3, 2}, userIDs(view.Supporters()))
	require.NotNil(t, view.Category())
	require.Equal(t, "Finance", view.Category().Record().Name)
	require.Len(t, view.Tags(), 1)
	require.Equal(t, 2, view.AgendaItem().ID())
	require.Equal(t, "Motions", view.VerboseName(true))
}

func TestSet_Dependencies(t *testing.T) {
	set := newSet(t, testutil.NewStore(t), nil, nil)

	deps := set.Describe()
	require.Equal(t,
		[]string{models.CollectionUser, models.CollectionItem, models.CollectionTag},
		deps[models.CollectionAssignment])
	require.Empty(t, deps[models.CollectionTag])
	require.Len(t, set.All(), 6)
}

func TestNewSet_DuplicateRegistration(t *testing.T) {
	store := testutil.NewStore(t)
	vms := viewmodel.New(store)
	_, err := NewSet(Deps{Records: store, ViewModels: vms})
	require.NoError(t, err)

	_, err = NewSet(Deps{Records: store, ViewModels: vms})
	require.ErrorIs(t, err, viewmodel.ErrDuplicateBuilder)
}

func TestViewModels_OrderedByID(t *testing.T) {
	store := testutil.NewBuilder(t, testutil.NewStore(t)).WithAssemblyData().Build()
	set := newSet(t, store, nil, nil)

	require.Equal(t, []int{1, 2, 3}, userIDs(set.Users.ViewModels()))
}
