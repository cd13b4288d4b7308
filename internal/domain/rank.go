package domain

import (
	apperrors "github.com/kapu/osu-scraper-go/pkg/errors"
)

// Leaderboard pagination as served by the rankings page.
const (
	PageSize = 50
	MinPage  = 1
	MaxPage  = 200
	MinRank  = 1
	MaxRank  = PageSize * MaxPage
)

// Locate maps a global rank to its leaderboard page and zero-based row index.
func Locate(rank int) (page, index int, err error) {
	if rank < MinRank || rank > MaxRank {
		return 0, 0, apperrors.NewOutOfRangeError("rank", rank, MinRank, MaxRank)
	}
	page = (rank + PageSize - 1) / PageSize
	index = (rank - 1) % PageSize
	return page, index, nil
}

// ClampPage forces a page bound into [MinPage, MaxPage].
func ClampPage(page int) int {
	if page < MinPage {
		return MinPage
	}
	if page > MaxPage {
		return MaxPage
	}
	return page
}

// LeaderboardPage is the ordered list of usernames read from one rankings page.
type LeaderboardPage struct {
	Number    int
	Usernames []string
}
