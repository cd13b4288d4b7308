package domain

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	apperrors "github.com/kapu/osu-scraper-go/pkg/errors"
)

// Field paths inside the embedded json-user payload.
const (
	FieldUsername     = "username"
	FieldID           = "id"
	FieldPP           = "statistics.pp"
	FieldGlobalRank   = "statistics.rank.global"
	FieldCountryRank  = "statistics.rank.country"
	FieldCountryName  = "country.name"
	FieldPlayCount    = "statistics.play_count"
	DefaultRenderUnit = "   "
)

// Profile is one player's statistics as published on their profile page.
// The raw payload is kept verbatim; accessors read from it on demand.
type Profile struct {
	identifier string
	raw        []byte
}

// NewProfileFromRaw wraps an already-parsed json-user payload.
// Only the username is required up front; statistics are checked lazily.
func NewProfileFromRaw(data []byte) (*Profile, error) {
	if !gjson.ValidBytes(data) {
		return nil, apperrors.NewParseError("profile payload is not valid JSON", "raw", nil)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, apperrors.NewParseError("profile payload is not a JSON object", "raw", nil)
	}

	username := root.Get(FieldUsername)
	if !username.Exists() || username.Type == gjson.Null {
		return nil, apperrors.NewParseError("profile payload has no username", "raw", nil)
	}

	raw := make([]byte, len(data))
	copy(raw, data)

	return &Profile{
		identifier: username.String(),
		raw:        raw,
	}, nil
}

// Identifier is the username the payload reports.
func (p *Profile) Identifier() string {
	return p.identifier
}

// Raw returns a copy of the underlying payload.
func (p *Profile) Raw() []byte {
	out := make([]byte, len(p.raw))
	copy(out, p.raw)
	return out
}

// MarshalJSON emits the payload unchanged, which is what structured output expects.
func (p *Profile) MarshalJSON() ([]byte, error) {
	return p.Raw(), nil
}

func (p *Profile) field(path string) (gjson.Result, error) {
	value := gjson.GetBytes(p.raw, path)
	if !value.Exists() || value.Type == gjson.Null {
		return gjson.Result{}, apperrors.NewMissingFieldError(path)
	}
	return value, nil
}

func (p *Profile) Name() (string, error) {
	value, err := p.field(FieldUsername)
	if err != nil {
		return "", err
	}
	return value.String(), nil
}

func (p *Profile) NumericID() (int64, error) {
	value, err := p.field(FieldID)
	if err != nil {
		return 0, err
	}
	return value.Int(), nil
}

func (p *Profile) PerformancePoints() (float64, error) {
	value, err := p.field(FieldPP)
	if err != nil {
		return 0, err
	}
	return value.Float(), nil
}

func (p *Profile) GlobalRank() (int, error) {
	value, err := p.field(FieldGlobalRank)
	if err != nil {
		return 0, err
	}
	return int(value.Int()), nil
}

func (p *Profile) CountryRank() (int, error) {
	value, err := p.field(FieldCountryRank)
	if err != nil {
		return 0, err
	}
	return int(value.Int()), nil
}

func (p *Profile) CountryName() (string, error) {
	value, err := p.field(FieldCountryName)
	if err != nil {
		return "", err
	}
	return value.String(), nil
}

func (p *Profile) PlayCount() (int, error) {
	value, err := p.field(FieldPlayCount)
	if err != nil {
		return 0, err
	}
	return int(value.Int()), nil
}

// ProfileSummary holds the five values shown by Summary.
type ProfileSummary struct {
	Name        string
	GlobalRank  int
	CountryRank int
	PP          float64
	PlayCount   int
}

// Stats collects the summary values, failing on the first missing field.
func (p *Profile) Stats() (ProfileSummary, error) {
	var (
		s   ProfileSummary
		err error
	)
	if s.Name, err = p.Name(); err != nil {
		return s, err
	}
	if s.GlobalRank, err = p.GlobalRank(); err != nil {
		return s, err
	}
	if s.CountryRank, err = p.CountryRank(); err != nil {
		return s, err
	}
	if s.PP, err = p.PerformancePoints(); err != nil {
		return s, err
	}
	if s.PlayCount, err = p.PlayCount(); err != nil {
		return s, err
	}
	return s, nil
}

// FormatPP renders performance points with the shortest exact decimal form.
func FormatPP(pp float64) string {
	return strconv.FormatFloat(pp, 'f', -1, 64)
}

// Summary returns the fixed five-line profile summary.
func (p *Profile) Summary() (string, error) {
	s, err := p.Stats()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Name: " + s.Name + "\n")
	sb.WriteString("Global Rank: " + strconv.Itoa(s.GlobalRank) + "\n")
	sb.WriteString("Country Rank: " + strconv.Itoa(s.CountryRank) + "\n")
	sb.WriteString("Total pp: " + FormatPP(s.PP) + "\n")
	sb.WriteString("Playcount: " + strconv.Itoa(s.PlayCount))
	return sb.String(), nil
}

// Render prints the whole payload as an indented key-per-line tree.
// Underscores are replaced with spaces in the result.
func (p *Profile) Render(indent string) string {
	return renderJSON(gjson.ParseBytes(p.raw), indent)
}

func (p *Profile) String() string {
	return p.Render(DefaultRenderUnit)
}

func renderJSON(value gjson.Result, indent string) string {
	return strings.ReplaceAll(renderValue(value, indent), "_", " ")
}

func renderValue(value gjson.Result, indent string) string {
	var sb strings.Builder

	switch {
	case value.IsObject():
		value.ForEach(func(key, nested gjson.Result) bool {
			sb.WriteString("\n")
			sb.WriteString(key.String())
			sb.WriteString(":")
			sb.WriteString(indent)
			sb.WriteString(indentLines(renderValue(nested, indent), indent))
			return true
		})
	case value.IsArray():
		items := value.Array()
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, indentLines(renderValue(item, indent), indent))
		}
		sb.WriteString(strings.Join(parts, "\n"))
		if sb.Len() == 0 {
			sb.WriteString("N/A")
		}
	default:
		sb.WriteString(scalarText(value))
	}

	return sb.String()
}

func indentLines(text, indent string) string {
	return strings.ReplaceAll(text, "\n", "\n"+indent)
}

func scalarText(value gjson.Result) string {
	switch value.Type {
	case gjson.String:
		return value.Str
	case gjson.Number:
		return value.Raw
	case gjson.True:
		return "True"
	case gjson.False:
		return "False"
	default:
		return "None"
	}
}
