//go:build unit

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveImage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)

	t.Run("stores png under the public prefix", func(t *testing.T) {
		url, err := store.SaveImage(context.Background(), "image/png", strings.NewReader("png-bytes"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "/uploads/"))
		assert.True(t, strings.HasSuffix(url, ".png"))

		data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
	})

	t.Run("rejects non image content", func(t *testing.T) {
		_, err := store.SaveImage(context.Background(), "application/pdf", strings.NewReader("%PDF"))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}
