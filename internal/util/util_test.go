package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommaList(t *testing.T) {
	assert.Equal(t, []string{}, SplitCommaList(""))
	assert.Equal(t, []string{"mrekk", "whitecat", "7562902"}, SplitCommaList(" mrekk, whitecat,,7562902 ,"))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(-4, 1, 32))
	assert.Equal(t, 32, Clamp(99, 1, 32))
	assert.Equal(t, 8, Clamp(8, 1, 32))
	assert.Equal(t, 100.0, ClampFloat(100.0000001, 0, 100))
	assert.Equal(t, 0.0, ClampFloat(-1, 0, 100))
}

func TestSnapshotTime(t *testing.T) {
	at := time.Date(2026, 5, 4, 3, 2, 1, 999, time.FixedZone("KST", 9*3600))

	text := FormatSnapshotTime(at)
	assert.Equal(t, "2026-05-03T18:02:01Z", text)

	parsed, err := ParseSnapshotTime(text)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at.Truncate(time.Second)))
}
