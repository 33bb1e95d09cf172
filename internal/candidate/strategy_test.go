package candidate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archivecrack/internal/charset"
)

func TestCountDictionaryStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))

	n, err := Count(Dictionary(path))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)
}

func TestCountGeneratedStrategy(t *testing.T) {
	n, err := Count(Generated([]charset.Class{charset.Digits}, nil, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, uint64(10+100), n)
}

func TestCountDictionaryRejectsEmptyPath(t *testing.T) {
	_, err := Count(Dictionary(""))
	require.Error(t, err)
}

func TestNewStreamDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))

	s, total, err := NewStream(Dictionary(path))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)

	first, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, "a", first)
}

func TestNewStreamGenerated(t *testing.T) {
	s, total, err := NewStream(Generated([]charset.Class{charset.Lower}, nil, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, uint64(26), total)

	first, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, "a", first)
}
