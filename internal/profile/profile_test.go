package profile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"booktracker/internal/entity"
	"booktracker/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) GetBooks(ctx context.Context, page, size int) (entity.Page[entity.Book], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(entity.Page[entity.Book]), args.Error(1)
}

func (m *mockSource) GetAuthors(ctx context.Context, page, size int) (entity.Page[entity.Author], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(entity.Page[entity.Author]), args.Error(1)
}

func (m *mockSource) GetCollection(ctx context.Context, page, size int) (entity.Page[entity.CollectionEntry], error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(entity.Page[entity.CollectionEntry]), args.Error(1)
}

func TestState_CreateAndDeleteList(t *testing.T) {
	s := NewState()
	s.ToggleListEdit()

	_, err := s.CreateList("   ")
	assert.ErrorIs(t, err, ErrEmptyListName)
	assert.True(t, s.EditingLists)

	l, err := s.CreateList("Summer reads")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(l.ID, "custom_"))
	assert.False(t, s.EditingLists)
	assert.Len(t, s.Lists(), 4)

	require.NoError(t, s.SelectList(l.ID))
	assert.Equal(t, "Summer reads", s.CurrentListName())

	require.NoError(t, s.DeleteList(l.ID))
	assert.Equal(t, ListAll, s.Current, "deleting the selected list selects all")
	assert.Len(t, s.Lists(), 3)
}

func TestState_DeleteSystemList(t *testing.T) {
	s := NewState()
	assert.ErrorIs(t, s.DeleteList(ListFavorites), ErrSystemList)
	assert.ErrorIs(t, s.DeleteList("nope"), ErrUnknownList)
	assert.ErrorIs(t, s.SelectList("nope"), ErrUnknownList)
}

func TestState_SwitchView(t *testing.T) {
	s := NewState()
	assert.True(t, s.SwitchView(ViewAuthors))
	assert.Equal(t, ViewAuthors, s.View)
	assert.False(t, s.SwitchView("shelves"))
	assert.Equal(t, ViewAuthors, s.View)
}

func TestService_Rename(t *testing.T) {
	ctx := context.Background()
	holder := session.NewHolder(session.New("tok", entity.User{ID: "1", Username: "reader", DisplayName: "reader"}))
	svc := NewService(new(mockSource), holder)

	_, err := svc.Rename(ctx, " ")
	assert.ErrorIs(t, err, ErrEmptyName)

	u, err := svc.Rename(ctx, "  Bookworm ")
	require.NoError(t, err)
	assert.Equal(t, "Bookworm", u.DisplayName)
	assert.Equal(t, "Bookworm", holder.Load().User().DisplayName)
	assert.Equal(t, "tok", holder.Load().Token())
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	many := make([]entity.Book, 30)
	for i := range many {
		many[i] = entity.Book{ID: int64(i + 1), Title: "Book"}
	}

	t.Run("all books capped at twenty", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetBooks", mock.Anything, 0, 200).Return(entity.Page[entity.Book]{Content: many}, nil)

		items, err := NewService(src, session.NewHolder(session.Session{})).Load(ctx, ListAll, ViewBooks)
		require.NoError(t, err)
		assert.Len(t, items.Books, 20)
		assert.False(t, items.Fallback)
		src.AssertExpectations(t)
	})

	t.Run("favorites narrowed by collection", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetBooks", mock.Anything, 0, 200).Return(entity.Page[entity.Book]{Content: many}, nil)
		src.On("GetCollection", mock.Anything, 0, 200).Return(entity.Page[entity.CollectionEntry]{Content: []entity.CollectionEntry{
			{BookID: 3, Status: entity.StatusFavorite},
			{BookID: 4, Status: entity.StatusReading},
		}}, nil)

		items, err := NewService(src, session.NewHolder(session.Session{})).Load(ctx, ListFavorites, ViewBooks)
		require.NoError(t, err)
		require.Len(t, items.Books, 1)
		assert.Equal(t, int64(3), items.Books[0].ID)
	})

	t.Run("authors fall back", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetAuthors", mock.Anything, 0, 100).Return(entity.Page[entity.Author]{}, errors.New("down"))

		items, err := NewService(src, session.NewHolder(session.Session{})).Load(ctx, ListAll, ViewAuthors)
		require.NoError(t, err)
		assert.True(t, items.Fallback)
		assert.Len(t, items.Authors, 3)
	})
}
