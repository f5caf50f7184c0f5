package profileimage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/placeguide/account-core/internal/logger"
	"github.com/placeguide/account-core/internal/model"
	"github.com/placeguide/account-core/internal/session"
)

// Pipeline coordinates the multi-step flow of changing a profile picture:
// permission, selection, upload, URL resolution, metadata commit and
// propagation into the live session. Steps run strictly in sequence and each
// is a possible exit point; at most one run is active per instance.
type Pipeline struct {
	permissions model.PermissionGate
	picker      model.ImagePicker
	storage     model.ObjectStorage
	sessions    *session.Manager
	logger      *logger.Logger

	inFlight atomic.Bool
}

func NewPipeline(
	permissions model.PermissionGate,
	picker model.ImagePicker,
	storage model.ObjectStorage,
	sessions *session.Manager,
	logger *logger.Logger,
) *Pipeline {
	return &Pipeline{
		permissions: permissions,
		picker:      picker,
		storage:     storage,
		sessions:    sessions,
		logger:      logger,
	}
}

// attempt tracks one run of the pipeline for logging; it is discarded on
// completion or abandonment.
type attempt struct {
	granted   bool
	picked    bool
	key       string
	url       string
	committed bool
}

// ChangeProfileImage runs the pipeline. A cancelled selection terminates
// silently with a zero ImageChange; every other early exit carries a typed
// error and leaves the current profile untouched.
func (p *Pipeline) ChangeProfileImage(ctx context.Context) (model.ImageChange, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return model.ImageChange{}, model.ErrOperationInProgress
	}
	defer p.inFlight.Store(false)

	userID, ok := p.sessions.CurrentUserID()
	if !ok {
		return model.ImageChange{}, model.ErrNotAuthenticated
	}

	var a attempt

	if err := p.permissions.Request(ctx); err != nil {
		p.logger.Info("media permission refused", "user_id", userID)
		return model.ImageChange{}, err
	}
	a.granted = true

	img, err := p.picker.Pick(ctx)
	if err != nil {
		if errors.Is(err, model.ErrSelectionCancelled) {
			p.logger.Debug("image selection cancelled", "user_id", userID)
			return model.ImageChange{}, nil
		}
		return model.ImageChange{}, fmt.Errorf("failed to select image: %w", err)
	}
	a.picked = true
	a.key = objectKey(userID.String(), img)

	if err := p.storage.Upload(ctx, a.key, bytes.NewReader(img.Data), int64(len(img.Data)), img.ContentType); err != nil {
		p.logger.Error("avatar upload failed",
			"user_id", userID,
			"key", a.key,
			"error", err)
		return model.ImageChange{}, &model.UploadError{Err: err}
	}

	a.url, err = p.storage.PublicURL(a.key)
	if err != nil {
		p.logger.Error("avatar url resolution failed",
			"user_id", userID,
			"key", a.key,
			"error", err)
		return model.ImageChange{}, &model.UploadError{Err: err}
	}

	if err := p.sessions.UpdateProfileImage(ctx, a.url); err != nil {
		// The uploaded object stays orphaned in storage; acceptable here,
		// cleanup is a storage-lifecycle concern.
		p.logger.Error("avatar metadata commit failed",
			"user_id", userID,
			"key", a.key,
			"error", err)
		return model.ImageChange{}, &model.MetadataCommitError{Err: err}
	}
	a.committed = true

	p.logger.Info("profile image updated",
		"user_id", userID,
		"key", a.key,
		"url", a.url)

	return model.ImageChange{Committed: true, URL: a.url}, nil
}

// objectKey builds a collision-resistant storage key from the user and a
// millisecond timestamp.
func objectKey(userID string, img model.PickedImage) string {
	return fmt.Sprintf("avatars/%s/%d%s", userID, time.Now().UnixMilli(), extensionFor(img.ContentType))
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
