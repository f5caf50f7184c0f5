package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/placeguide/account-core/internal/mocks"
	"github.com/placeguide/account-core/internal/model"
	"github.com/placeguide/account-core/internal/session"
	"github.com/placeguide/account-core/internal/testutil"
)

type fakeIdentity struct {
	model.IdentityProvider
}

func (f *fakeIdentity) Authenticate(_ context.Context, email, _ string) (model.Session, error) {
	return model.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         model.User{ID: uuid.New(), Email: email},
	}, nil
}

func signedInManager(t *testing.T) *session.Manager {
	t.Helper()

	store := mocks.NewSessionStore(t)
	store.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()

	m := session.NewManager(&fakeIdentity{}, store, testutil.MakeNoopLogger())
	t.Cleanup(m.Close)

	require.NoError(t, m.SignIn(context.Background(), "user@example.com", "password1"))
	return m
}

func TestService_List(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		store := mocks.NewSessionStore(t)
		m := session.NewManager(&fakeIdentity{}, store, testutil.MakeNoopLogger())
		t.Cleanup(m.Close)

		places := mocks.NewPlaceStore(t)
		svc := NewService(places, m, testutil.MakeNoopLogger())

		_, err := svc.List(context.Background())

		assert.True(t, errors.Is(err, model.ErrNotAuthenticated))
		places.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("returns places", func(t *testing.T) {
		m := signedInManager(t)

		want := []model.Place{
			{ID: uuid.New(), Title: "Old Town Square", Category: "sights"},
			{ID: uuid.New(), Title: "River Cafe", Category: "food"},
		}

		places := mocks.NewPlaceStore(t)
		places.On("List", mock.Anything).Return(want, nil)

		svc := NewService(places, m, testutil.MakeNoopLogger())

		got, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("store error", func(t *testing.T) {
		m := signedInManager(t)

		places := mocks.NewPlaceStore(t)
		places.On("List", mock.Anything).Return(nil, errors.New("connection reset"))

		svc := NewService(places, m, testutil.MakeNoopLogger())

		_, err := svc.List(context.Background())

		require.Error(t, err)
	})
}

func TestService_Search(t *testing.T) {
	all := []model.Place{
		{ID: uuid.New(), Title: "Old Town Square", Description: "historic centre", Category: "sights"},
		{ID: uuid.New(), Title: "River Cafe", Description: "coffee by the water", Category: "food"},
		{ID: uuid.New(), Title: "City Museum", Description: "local history", Category: "sights"},
	}

	newService := func(t *testing.T) *Service {
		m := signedInManager(t)
		places := mocks.NewPlaceStore(t)
		places.On("List", mock.Anything).Return(all, nil)
		return NewService(places, m, testutil.MakeNoopLogger())
	}

	t.Run("empty query matches all", func(t *testing.T) {
		svc := newService(t)

		got, err := svc.Search(context.Background(), "", "")

		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("query is case-insensitive over title and description", func(t *testing.T) {
		svc := newService(t)

		got, err := svc.Search(context.Background(), "HISTOR", "")

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Old Town Square", got[0].Title)
		assert.Equal(t, "City Museum", got[1].Title)
	})

	t.Run("category narrows results", func(t *testing.T) {
		svc := newService(t)

		got, err := svc.Search(context.Background(), "", "food")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "River Cafe", got[0].Title)
	})

	t.Run("query and category compose", func(t *testing.T) {
		svc := newService(t)

		got, err := svc.Search(context.Background(), "history", "food")

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
