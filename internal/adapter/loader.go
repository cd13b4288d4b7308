package adapter

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/kapu/osu-scraper-go/internal/domain"
	apperrors "github.com/kapu/osu-scraper-go/pkg/errors"
)

// LoadProfiles rebuilds profiles from a file written in the JSON format.
// A single saved profile comes back as a Single selection, a keyed object as Many.
func LoadProfiles(path string) (domain.Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Selection{}, fmt.Errorf("read %s: %w", path, err)
	}
	return DecodeProfiles(data, path)
}

// DecodeProfiles is LoadProfiles for bytes already in memory.
func DecodeProfiles(data []byte, source string) (domain.Selection, error) {
	if !gjson.ValidBytes(data) {
		return domain.Selection{}, apperrors.NewParseError("saved profiles are not valid JSON", source, nil)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return domain.Selection{}, apperrors.NewParseError("saved profiles must be a JSON object", source, nil)
	}

	if root.Get(domain.FieldUsername).Type == gjson.String {
		profile, err := domain.NewProfileFromRaw(data)
		if err != nil {
			return domain.Selection{}, err
		}
		return domain.Single(profile), nil
	}

	set := domain.NewProfileSet()
	var decodeErr error
	root.ForEach(func(key, value gjson.Result) bool {
		profile, err := domain.NewProfileFromRaw([]byte(value.Raw))
		if err != nil {
			decodeErr = fmt.Errorf("saved profile %q: %w", key.String(), err)
			return false
		}
		set.Set(key.String(), profile)
		return true
	})
	if decodeErr != nil {
		return domain.Selection{}, decodeErr
	}

	return domain.Many(set), nil
}
