package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placeguide/account-core/internal/model"
)

// Minimal valid PNG header so content sniffing recognizes the file.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestStaticGate_Request(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		gate := &StaticGate{Allow: true}
		assert.NoError(t, gate.Request(context.Background()))
	})

	t.Run("denied", func(t *testing.T) {
		gate := &StaticGate{Allow: false}

		err := gate.Request(context.Background())

		assert.True(t, errors.Is(err, model.ErrPermissionDenied))
	})
}

func TestFilePicker_Pick(t *testing.T) {
	t.Run("picks image file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "avatar.png")
		require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

		picker := &FilePicker{Path: path}

		img, err := picker.Pick(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "avatar.png", img.Name)
		assert.Equal(t, "image/png", img.ContentType)
		assert.Equal(t, pngHeader, img.Data)
	})

	t.Run("empty path is a cancel", func(t *testing.T) {
		picker := &FilePicker{}

		_, err := picker.Pick(context.Background())

		assert.True(t, errors.Is(err, model.ErrSelectionCancelled))
	})

	t.Run("missing file", func(t *testing.T) {
		picker := &FilePicker{Path: filepath.Join(t.TempDir(), "nope.png")}

		_, err := picker.Pick(context.Background())

		require.Error(t, err)
	})

	t.Run("rejects non-image file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("just text"), 0o600))

		picker := &FilePicker{Path: path}

		_, err := picker.Pick(context.Background())

		assert.True(t, errors.Is(err, model.ErrUnsupportedImage))
	})
}
