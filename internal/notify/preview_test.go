package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewTruncatesLongContent(t *testing.T) {
	long := strings.Repeat("а", 200)
	got := preview(long)

	runes := []rune(got)
	assert.Len(t, runes, previewLimit)
	assert.Equal(t, '…', runes[len(runes)-1])
}

func TestPreviewKeepsShortContent(t *testing.T) {
	assert.Equal(t, "short", preview("short"))
}
