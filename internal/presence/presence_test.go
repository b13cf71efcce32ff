package presence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFreshWithinWindow(t *testing.T) {
	now := time.Now()
	stamp := now.Add(-2 * time.Second).UTC().Format(time.RFC3339Nano)

	assert.True(t, fresh(stamp, now, 3*time.Second))
}

func TestFreshExpiredAfterDoubleTTL(t *testing.T) {
	now := time.Now()
	stamp := now.Add(-7 * time.Second).UTC().Format(time.RFC3339Nano)

	// 2x the 3s window has elapsed: the observer must resolve to "not
	// typing" even though no explicit stop was ever recorded.
	assert.False(t, fresh(stamp, now, 3*time.Second))
}

func TestFreshBoundaryIsInclusive(t *testing.T) {
	now := time.Now()
	stamp := now.Add(-6 * time.Second).UTC().Format(time.RFC3339Nano)

	assert.True(t, fresh(stamp, now, 3*time.Second))
}

func TestFreshRejectsGarbageStamp(t *testing.T) {
	assert.False(t, fresh("not-a-timestamp", time.Now(), 3*time.Second))
}
