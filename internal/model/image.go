package model

import "context"

// PermissionGate asks for media-library read permission.
type PermissionGate interface {
	// Request returns ErrPermissionDenied when access is refused.
	Request(ctx context.Context) error
}

// PickedImage is a selected image ready for upload.
type PickedImage struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImagePicker presents the image selection step.
type ImagePicker interface {
	// Pick returns ErrSelectionCancelled when the user backs out.
	Pick(ctx context.Context) (PickedImage, error)
}

// ImageChange is the result of a profile-image pipeline run. Committed is
// false when the user cancelled selection; URL is set only on commit.
type ImageChange struct {
	Committed bool
	URL       string
}
