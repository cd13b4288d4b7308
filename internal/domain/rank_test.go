package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kapu/osu-scraper-go/pkg/errors"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		rank  int
		page  int
		index int
	}{
		{1, 1, 0},
		{50, 1, 49},
		{51, 2, 0},
		{125, 3, 24},
		{9951, 200, 0},
		{10000, 200, 49},
	}

	for _, tt := range tests {
		page, index, err := Locate(tt.rank)
		require.NoError(t, err, "rank %d", tt.rank)
		assert.Equal(t, tt.page, page, "page for rank %d", tt.rank)
		assert.Equal(t, tt.index, index, "index for rank %d", tt.rank)
	}
}

func TestLocateOutOfRange(t *testing.T) {
	tests := []struct {
		rank   int
		tooLow bool
	}{
		{0, true},
		{-3, true},
		{10001, false},
	}

	for _, tt := range tests {
		_, _, err := Locate(tt.rank)
		var rangeErr *apperrors.OutOfRangeError
		require.ErrorAs(t, err, &rangeErr, "rank %d", tt.rank)
		assert.Equal(t, tt.tooLow, rangeErr.TooLow(), "rank %d", tt.rank)
		assert.Equal(t, MinRank, rangeErr.Min)
		assert.Equal(t, MaxRank, rangeErr.Max)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0))
	assert.Equal(t, 1, ClampPage(-10))
	assert.Equal(t, 7, ClampPage(7))
	assert.Equal(t, 200, ClampPage(200))
	assert.Equal(t, 200, ClampPage(500))
}
