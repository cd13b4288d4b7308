package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/osu-scraper-go/internal/constants"
	"github.com/kapu/osu-scraper-go/internal/domain"
	"github.com/kapu/osu-scraper-go/internal/service"
	"github.com/kapu/osu-scraper-go/internal/util"
)

// Captures raw json-user payloads into per-player files, e.g. to refresh
// test fixtures:
//
//	go run ./cmd/tools/fetch_profiles -out testdata/profiles mrekk,whitecat
const delayBetween = 350 * time.Millisecond

func main() {
	baseURL := flag.String("base-url", constants.ScraperConfig.DefaultBaseURL, "site root")
	outDir := flag.String("out", "testdata/profiles", "directory to write <username>.json files into")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	var identifiers []string
	for _, arg := range flag.Args() {
		identifiers = append(identifiers, util.SplitCommaList(arg)...)
	}
	if len(identifiers) == 0 {
		logger.Fatal("no player names given")
	}

	ctx := context.Background()
	scraper := service.NewScraperService(service.ScraperConfig{}, logger)
	profiles := service.NewProfileService(scraper, strings.TrimRight(*baseURL, "/"), logger)

	fetched := domain.NewProfileSet()
	for idx, identifier := range identifiers {
		logger.Info("Fetching profile", zap.Int("index", idx+1), zap.String("identifier", identifier))

		profile, err := profiles.FetchProfile(ctx, identifier)
		if err != nil {
			logger.Error("failed to fetch profile", zap.String("identifier", identifier), zap.Error(err))
			continue
		}
		fetched.Set(profile.Identifier(), profile)
		time.Sleep(delayBetween)
	}

	if fetched.Len() == 0 {
		logger.Fatal("no profiles fetched")
	}

	if err := writeProfiles(*outDir, fetched); err != nil {
		logger.Fatal("failed to write profiles", zap.Error(err))
	}

	logger.Info("Profile fetch completed", zap.Int("count", fetched.Len()), zap.String("output", *outDir))
}

func writeProfiles(dir string, profiles *domain.ProfileSet) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, profile := range profiles.Profiles() {
		bytes, err := json.MarshalIndent(profile, "", constants.OutputConfig.JSONIndent)
		if err != nil {
			return fmt.Errorf("failed to marshal profile %s: %w", profile.Identifier(), err)
		}

		tmp := filepath.Join(dir, profile.Identifier()+".json.tmp")
		target := filepath.Join(dir, profile.Identifier()+".json")
		if err := os.WriteFile(tmp, bytes, os.FileMode(constants.OutputConfig.FileMode)); err != nil {
			return fmt.Errorf("failed to write profile %s: %w", profile.Identifier(), err)
		}
		if err := os.Rename(tmp, target); err != nil {
			return fmt.Errorf("failed to finalize profile %s: %w", profile.Identifier(), err)
		}
	}

	return nil
}
