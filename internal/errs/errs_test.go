package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageWithoutCause(t *testing.T) {
	e := New(ArgumentInvalid, "bad input")
	assert.Equal(t, "argument_invalid: bad input", e.Error())
}

func TestErrorMessageWithCause(t *testing.T) {
	cause := errors.New("disk full")
	e := Wrap(Io, "write failed", cause)
	assert.Equal(t, "io: write failed: disk full", e.Error())
	assert.Equal(t, cause, e.Unwrap())
}

func TestIsMatchesByKindOnly(t *testing.T) {
	a := New(MalformedArchive, "bad central directory")
	b := New(MalformedArchive, "different message")
	assert.True(t, errors.Is(a, b))
}

func TestIsDoesNotMatchDifferentKind(t *testing.T) {
	a := New(MalformedArchive, "x")
	b := New(Io, "x")
	assert.False(t, errors.Is(a, b))
}

func TestSentinelRoundTrip(t *testing.T) {
	err := Wrap(ArithmeticOverflow, "too big", nil)
	assert.True(t, errors.Is(err, Sentinel(ArithmeticOverflow)))
	assert.False(t, errors.Is(err, Sentinel(Io)))
}

func TestAsExtractsConcreteType(t *testing.T) {
	var target *Error
	require.True(t, As(New(UnsupportedOrUnencrypted, "not protected"), &target))
	assert.Equal(t, UnsupportedOrUnencrypted, target.Kind)
}

func TestKindStringCoversAllCases(t *testing.T) {
	for _, k := range []Kind{Io, UnsupportedOrUnencrypted, MalformedArchive, ArithmeticOverflow, ArgumentInvalid} {
		assert.NotEqual(t, "unknown", k.String())
	}
	assert.Equal(t, "unknown", Kind(99).String())
}
