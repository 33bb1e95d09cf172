package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchSevenZipIsSmaller(t *testing.T) {
	assert.Equal(t, 10, Batch(FormatSevenZip))
	assert.Equal(t, 500, Batch(FormatZip))
	assert.Equal(t, 500, Batch(FormatRar))
	assert.Equal(t, 500, Batch(FormatPDF))
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "zip", FormatZip.String())
	assert.Equal(t, "rar", FormatRar.String())
	assert.Equal(t, "7z", FormatSevenZip.String())
	assert.Equal(t, "pdf", FormatPDF.String())
	assert.Equal(t, "unknown", Unknown.String())
}
