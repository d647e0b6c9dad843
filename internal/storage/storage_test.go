package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	base := t.TempDir()
	store := NewLocalStorage(base)

	ref, size, err := store.Save("image", "Diagram.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "images/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))
	assert.EqualValues(t, len("png-bytes"), size)

	_, err = os.Stat(filepath.Join(base, filepath.FromSlash(ref)))
	require.NoError(t, err)

	rc, err := store.Open(ref)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ref))
	_, err = store.Open(ref)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, store.Delete(ref), "deleting a missing blob is tolerated")
}

func TestLocalStorage_RejectsEscapingReferences(t *testing.T) {
	store := NewLocalStorage(t.TempDir())

	for _, ref := range []string{"", "../etc/passwd", "files/../../secret", "/"} {
		t.Run(ref, func(t *testing.T) {
			_, err := store.Open(ref)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.ErrorIs(t, store.Delete(ref), apperrors.ErrValidation)
		})
	}
}

func TestGenerateFileName(t *testing.T) {
	tests := []struct {
		name      string
		extension string
		suffix    string
	}{
		{name: "with dot", extension: ".pdf", suffix: ".pdf"},
		{name: "without dot", extension: "JPG", suffix: ".jpg"},
		{name: "no extension", extension: "", suffix: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := GenerateFileName(tt.extension)
			assert.True(t, strings.HasSuffix(name, tt.suffix))
			assert.Len(t, name, 36+len(tt.suffix))
		})
	}
}
