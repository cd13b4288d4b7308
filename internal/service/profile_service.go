package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/kapu/osu-scraper-go/internal/constants"
	"github.com/kapu/osu-scraper-go/internal/domain"
	apperrors "github.com/kapu/osu-scraper-go/pkg/errors"
)

// ProfileFetcher resolves an identifier (username or numeric id) to a Profile.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, identifier string) (*domain.Profile, error)
}

// ProfileService reads profile pages and decodes their embedded json-user payload.
type ProfileService struct {
	pages   PageFetcher
	baseURL string
	logger  *zap.Logger
}

func NewProfileService(pages PageFetcher, baseURL string, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		pages:   pages,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (s *ProfileService) profileURL(identifier string) string {
	return s.baseURL + fmt.Sprintf(constants.ScraperConfig.ProfilePath, url.PathEscape(identifier))
}

func (s *ProfileService) FetchProfile(ctx context.Context, identifier string) (*domain.Profile, error) {
	profileURL := s.profileURL(identifier)
	s.logger.Debug("Fetching profile",
		zap.String("identifier", identifier),
		zap.String("url", profileURL))

	doc, err := s.pages.FetchDocument(ctx, profileURL)
	if err != nil {
		return nil, err
	}

	node := doc.Find(constants.ScraperConfig.ProfileDataID).First()
	if node.Length() == 0 {
		return nil, apperrors.NewParseError(
			fmt.Sprintf("profile page for %q has no %s element", identifier, constants.ScraperConfig.ProfileDataID),
			profileURL, nil)
	}

	profile, err := domain.NewProfileFromRaw([]byte(strings.TrimSpace(node.Text())))
	if err != nil {
		return nil, apperrors.NewParseError(
			fmt.Sprintf("profile page for %q has a malformed payload", identifier),
			profileURL, err)
	}

	s.logger.Debug("Profile parsed",
		zap.String("identifier", identifier),
		zap.String("username", profile.Identifier()))

	return profile, nil
}
