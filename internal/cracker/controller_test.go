package cracker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archivecrack/internal/candidate"
	"archivecrack/internal/charset"
)

func TestNewClampsWorkersToAtLeastOne(t *testing.T) {
	c := New(candidate.Generated([]charset.Class{charset.Digits}, nil, 1, 1), "x", 0)
	assert.Equal(t, 1, c.workers)
}

func TestCountIsCachedAfterFirstCall(t *testing.T) {
	c := New(candidate.Generated([]charset.Class{charset.Digits}, nil, 1, 2), "x", 2)
	total, err := c.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(10+100), total)

	total2, err := c.Count()
	require.NoError(t, err)
	assert.Equal(t, total, total2)
}

func TestCountPropagatesStrategyError(t *testing.T) {
	c := New(candidate.Generated(nil, nil, 1, 1), "x", 1)
	_, err := c.Count()
	require.Error(t, err)
}

func TestStartOnUnrecognizedFormatIsNotFoundWithFullyTestedCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mystery.bin")
	require.NoError(t, os.WriteFile(path, []byte("not an archive"), 0o644))

	strategy := candidate.Generated([]charset.Class{charset.Digits}, nil, 1, 2)
	c := New(strategy, path, 3)

	res, err := c.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NotFound, res.Outcome)

	total, _ := c.Count()
	assert.Equal(t, total, c.TestedCount())
}

func TestStartFatalOnInvalidStrategyBeforeSniffing(t *testing.T) {
	c := New(candidate.Generated(nil, nil, 1, 1), "does-not-matter", 2)
	res, err := c.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, Fatal, res.Outcome)
}

func TestStartFatalOnMissingTargetFile(t *testing.T) {
	c := New(candidate.Generated([]charset.Class{charset.Digits}, nil, 1, 1), filepath.Join(t.TempDir(), "missing.zip"), 2)
	res, err := c.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, Fatal, res.Outcome)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "found", Found.String())
	assert.Equal(t, "not_found", NotFound.String())
	assert.Equal(t, "fatal", Fatal.String())
}
