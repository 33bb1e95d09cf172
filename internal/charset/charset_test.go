package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archivecrack/internal/errs"
)

func TestContentsDigits(t *testing.T) {
	assert.Equal(t, []rune("0123456789"), Contents(Digits))
}

func TestContentsLowerUpper(t *testing.T) {
	assert.Equal(t, []rune("abcdefghijklmnopqrstuvwxyz"), Contents(Lower))
	assert.Equal(t, []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ"), Contents(Upper))
}

func TestContentsSpecialMatchesSpecLiteral(t *testing.T) {
	assert.Equal(t, []rune(" -=!@#$%^&*_+<>/?.;:{}"), Contents(Special))
}

func TestContentsUnknownClass(t *testing.T) {
	assert.Nil(t, Contents(Class(99)))
}

func TestBuildDedupesAndSorts(t *testing.T) {
	out, err := Build([]Class{Digits}, []rune("51905"))
	require.NoError(t, err)
	assert.Equal(t, []rune("0123456789"), out)
}

func TestBuildCombinesClassesInOrder(t *testing.T) {
	out, err := Build([]Class{Lower, Digits}, nil)
	require.NoError(t, err)
	assert.Equal(t, []rune("0123456789abcdefghijklmnopqrstuvwxyz"), out)
}

func TestBuildEmptyIsRejected(t *testing.T) {
	_, err := Build(nil, nil)
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.ArgumentInvalid, e.Kind)
}

func TestBuildCustomOnly(t *testing.T) {
	out, err := Build(nil, []rune("ba"))
	require.NoError(t, err)
	assert.Equal(t, []rune("ab"), out)
}
