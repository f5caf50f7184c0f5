package profileimage

import (
	"context"
	"errors"
	"strings"
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

type pipelineFixture struct {
	permissions *mocks.PermissionGate
	picker      *mocks.ImagePicker
	storage     *mocks.ObjectStorage
	identity    *mocks.IdentityProvider
	sessions    *session.Manager
	pipeline    *Pipeline
	userID      uuid.UUID
}

func newFixture(t *testing.T, signedIn bool) *pipelineFixture {
	t.Helper()

	f := &pipelineFixture{
		permissions: mocks.NewPermissionGate(t),
		picker:      mocks.NewImagePicker(t),
		storage:     mocks.NewObjectStorage(t),
		identity:    mocks.NewIdentityProvider(t),
		userID:      uuid.New(),
	}

	store := mocks.NewSessionStore(t)
	store.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	store.On("Clear", mock.Anything).Return(nil).Maybe()

	f.sessions = session.NewManager(f.identity, store, testutil.MakeNoopLogger())
	t.Cleanup(f.sessions.Close)

	if signedIn {
		f.identity.On("Authenticate", mock.Anything, "user@example.com", "password1").
			Return(model.Session{
				AccessToken:  "access",
				RefreshToken: "refresh",
				ExpiresAt:    time.Now().Add(time.Hour),
				User:         model.User{ID: f.userID, Email: "user@example.com"},
			}, nil)
		require.NoError(t, f.sessions.SignIn(context.Background(), "user@example.com", "password1"))
	}

	f.pipeline = NewPipeline(f.permissions, f.picker, f.storage, f.sessions, testutil.MakeNoopLogger())
	return f
}

func pickedJPEG() model.PickedImage {
	return model.PickedImage{
		Name:        "avatar.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg bytes"),
	}
}

func TestPipeline_ChangeProfileImage(t *testing.T) {
	ctx := context.Background()

	t.Run("requires authentication", func(t *testing.T) {
		f := newFixture(t, false)

		_, err := f.pipeline.ChangeProfileImage(ctx)

		assert.True(t, errors.Is(err, model.ErrNotAuthenticated))
		f.permissions.AssertNotCalled(t, "Request", mock.Anything)
	})

	t.Run("permission denial stops before selection", func(t *testing.T) {
		f := newFixture(t, true)
		f.permissions.On("Request", mock.Anything).Return(model.ErrPermissionDenied)

		_, err := f.pipeline.ChangeProfileImage(ctx)

		assert.True(t, errors.Is(err, model.ErrPermissionDenied))
		f.picker.AssertNotCalled(t, "Pick", mock.Anything)
	})

	t.Run("cancelled selection is a silent no-op", func(t *testing.T) {
		f := newFixture(t, true)
		f.permissions.On("Request", mock.Anything).Return(nil)
		f.picker.On("Pick", mock.Anything).Return(model.PickedImage{}, model.ErrSelectionCancelled)

		change, err := f.pipeline.ChangeProfileImage(ctx)

		require.NoError(t, err)
		assert.False(t, change.Committed)
		assert.Empty(t, change.URL)
		f.storage.AssertNotCalled(t, "Upload",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

		profile := f.sessions.CurrentProfile()
		require.NotNil(t, profile)
		assert.Empty(t, profile.ProfileImageURL)
	})

	t.Run("upload failure surfaces a typed error", func(t *testing.T) {
		f := newFixture(t, true)
		f.permissions.On("Request", mock.Anything).Return(nil)
		f.picker.On("Pick", mock.Anything).Return(pickedJPEG(), nil)
		f.storage.On("Upload",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, "image/jpeg").
			Return(errors.New("write failed"))

		_, err := f.pipeline.ChangeProfileImage(ctx)

		var upErr *model.UploadError
		require.ErrorAs(t, err, &upErr)

		profile := f.sessions.CurrentProfile()
		require.NotNil(t, profile)
		assert.Empty(t, profile.ProfileImageURL)
	})

	t.Run("url resolution failure surfaces a typed error", func(t *testing.T) {
		f := newFixture(t, true)
		f.permissions.On("Request", mock.Anything).Return(nil)
		f.picker.On("Pick", mock.Anything).Return(pickedJPEG(), nil)
		f.storage.On("Upload",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, "image/jpeg").
			Return(nil)
		f.storage.On("PublicURL", mock.Anything).Return("", errors.New("no endpoint"))

		_, err := f.pipeline.ChangeProfileImage(ctx)

		var upErr *model.UploadError
		require.ErrorAs(t, err, &upErr)
	})

	t.Run("metadata commit failure leaves profile unchanged", func(t *testing.T) {
		f := newFixture(t, true)
		f.permissions.On("Request", mock.Anything).Return(nil)
		f.picker.On("Pick", mock.Anything).Return(pickedJPEG(), nil)
		f.storage.On("Upload",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, "image/jpeg").
			Return(nil)
		f.storage.On("PublicURL", mock.Anything).
			Return("http://storage.example.com/avatars/key.jpg", nil)
		f.identity.On("UpdateUserMetadata", mock.Anything, mock.Anything, mock.Anything).
			Return(model.User{}, errors.New("metadata write failed"))

		_, err := f.pipeline.ChangeProfileImage(ctx)

		var commitErr *model.MetadataCommitError
		require.ErrorAs(t, err, &commitErr)

		profile := f.sessions.CurrentProfile()
		require.NotNil(t, profile)
		assert.Empty(t, profile.ProfileImageURL)
	})

	t.Run("success commits and propagates", func(t *testing.T) {
		f := newFixture(t, true)

		var uploadedKey string

		f.permissions.On("Request", mock.Anything).Return(nil)
		f.picker.On("Pick", mock.Anything).Return(pickedJPEG(), nil)
		f.storage.On("Upload",
			mock.Anything, mock.Anything, mock.Anything, int64(len("jpeg bytes")), "image/jpeg").
			Run(func(args mock.Arguments) {
				uploadedKey = args.String(1)
			}).
			Return(nil)
		f.storage.On("PublicURL", mock.Anything).
			Return("http://storage.example.com/bucket/key.jpg", nil)
		f.identity.On("UpdateUserMetadata", mock.Anything, mock.Anything, mock.Anything).
			Return(model.User{
				ID:              f.userID,
				Email:           "user@example.com",
				ProfileImageURL: "http://storage.example.com/bucket/key.jpg",
			}, nil)

		change, err := f.pipeline.ChangeProfileImage(ctx)

		require.NoError(t, err)
		assert.True(t, change.Committed)
		assert.Equal(t, "http://storage.example.com/bucket/key.jpg", change.URL)

		assert.True(t, strings.HasPrefix(uploadedKey, "avatars/"+f.userID.String()+"/"))
		assert.True(t, strings.HasSuffix(uploadedKey, ".jpg"))

		profile := f.sessions.CurrentProfile()
		require.NotNil(t, profile)
		assert.Equal(t, change.URL, profile.ProfileImageURL)
	})

	t.Run("concurrent run is rejected", func(t *testing.T) {
		f := newFixture(t, true)

		release := make(chan struct{})
		started := make(chan struct{})

		f.permissions.On("Request", mock.Anything).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(model.ErrPermissionDenied)

		go func() {
			_, _ = f.pipeline.ChangeProfileImage(ctx)
		}()

		<-started

		_, err := f.pipeline.ChangeProfileImage(ctx)
		assert.True(t, errors.Is(err, model.ErrOperationInProgress))

		close(release)
	})
}
