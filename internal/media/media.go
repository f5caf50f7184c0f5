package media

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/placeguide/account-core/internal/model"
)

var _ model.PermissionGate = (*StaticGate)(nil)

// StaticGate answers every permission request with a fixed decision. It
// stands in for an OS-level media permission prompt in headless deployments.
type StaticGate struct {
	Allow bool
}

func (g *StaticGate) Request(_ context.Context) error {
	if !g.Allow {
		return model.ErrPermissionDenied
	}
	return nil
}

var _ model.ImagePicker = (*FilePicker)(nil)

// FilePicker resolves images from the local filesystem. An empty path means
// the user dismissed the picker without choosing anything.
type FilePicker struct {
	// Path is the file to pick on the next call. Empty means cancelled.
	Path string
}

func (p *FilePicker) Pick(_ context.Context) (model.PickedImage, error) {
	if p.Path == "" {
		return model.PickedImage{}, model.ErrSelectionCancelled
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return model.PickedImage{}, err
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return model.PickedImage{}, model.ErrUnsupportedImage
	}

	return model.PickedImage{
		Name:        filepath.Base(p.Path),
		ContentType: contentType,
		Data:        data,
	}, nil
}
