package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kapu/osu-scraper-go/internal/constants"
	"github.com/kapu/osu-scraper-go/internal/domain"
	"github.com/kapu/osu-scraper-go/internal/util"
	apperrors "github.com/kapu/osu-scraper-go/pkg/errors"
)

// LeaderboardWalker lists usernames from the performance rankings.
type LeaderboardWalker interface {
	Walk(ctx context.Context, pageStart, pageStop int) ([]domain.LeaderboardPage, error)
	UsernameAt(ctx context.Context, rank int) (string, error)
}

type LeaderboardService struct {
	pages   PageFetcher
	baseURL string
	logger  *zap.Logger
}

func NewLeaderboardService(pages PageFetcher, baseURL string, logger *zap.Logger) *LeaderboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaderboardService{
		pages:   pages,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (s *LeaderboardService) pageURL(page int) string {
	return s.baseURL + fmt.Sprintf(constants.ScraperConfig.RankingsPath, page)
}

// Walk fetches rankings pages pageStart..pageStop one after another.
// pageStop is clamped into the supported range instead of failing, and
// pageStart into [1, pageStop].
func (s *LeaderboardService) Walk(ctx context.Context, pageStart, pageStop int) ([]domain.LeaderboardPage, error) {
	stop := domain.ClampPage(pageStop)
	if stop != pageStop {
		s.logger.Warn("Page bound outside leaderboard, clamping",
			zap.Int("requested", pageStop),
			zap.Int("using", stop))
	}
	start := util.Clamp(pageStart, domain.MinPage, stop)

	pages := make([]domain.LeaderboardPage, 0, stop-start+1)
	for number := start; number <= stop; number++ {
		usernames, err := s.fetchPage(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("leaderboard page %d: %w", number, err)
		}
		pages = append(pages, domain.LeaderboardPage{Number: number, Usernames: usernames})
	}

	s.logger.Info("Leaderboard walked",
		zap.Int("first_page", start),
		zap.Int("last_page", stop))

	return pages, nil
}

// UsernameAt returns the username holding the given global rank.
func (s *LeaderboardService) UsernameAt(ctx context.Context, rank int) (string, error) {
	page, index, err := domain.Locate(rank)
	if err != nil {
		return "", err
	}

	usernames, err := s.fetchPage(ctx, page)
	if err != nil {
		return "", fmt.Errorf("leaderboard page %d: %w", page, err)
	}
	if index >= len(usernames) {
		return "", apperrors.NewParseError(
			fmt.Sprintf("leaderboard page %d lists %d users, rank %d needs row %d", page, len(usernames), rank, index+1),
			s.pageURL(page), nil)
	}

	if usernames[index] == "" {
		return "", apperrors.NewParseError(
			fmt.Sprintf("leaderboard page %d has a blank row for rank %d", page, rank),
			s.pageURL(page), nil)
	}

	return usernames[index], nil
}

func (s *LeaderboardService) fetchPage(ctx context.Context, page int) ([]string, error) {
	doc, err := s.pages.FetchDocument(ctx, s.pageURL(page))
	if err != nil {
		return nil, err
	}

	usernames := ExtractUsernames(doc)
	s.logger.Debug("Leaderboard page parsed",
		zap.Int("page", page),
		zap.Int("users", len(usernames)))
	return usernames, nil
}

// ExtractUsernames returns the trimmed username of every leaderboard row in
// document order. Blank rows stay in place so row indexes match ranks.
func ExtractUsernames(doc *goquery.Document) []string {
	rows := doc.Find(constants.ScraperConfig.LeaderboardUser)
	usernames := make([]string, 0, rows.Length())
	rows.Each(func(_ int, sel *goquery.Selection) {
		usernames = append(usernames, strings.TrimSpace(sel.Text()))
	})
	return usernames
}
