package adapter

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/kapu/osu-scraper-go/internal/constants"
	"github.com/kapu/osu-scraper-go/internal/domain"
)

// Format selects how recorded profiles are written.
type Format string

const (
	FormatSummary Format = "summary"
	FormatJSON    Format = "json"
	FormatTable   Format = "table"
	FormatTree    Format = "tree"
)

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatSummary, "s", "":
		return FormatSummary, nil
	case FormatJSON, "j":
		return FormatJSON, nil
	case FormatTable, "t":
		return FormatTable, nil
	case FormatTree, "r":
		return FormatTree, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want summary, json, table or tree)", value)
	}
}

// Extension is the file extension used when saving in this format.
func (f Format) Extension() string {
	if f == FormatJSON {
		return constants.OutputConfig.JSONExtension
	}
	return constants.OutputConfig.TextExtension
}

// FormatSummaries renders every profile's summary, each wrapped in blank lines.
func FormatSummaries(sel domain.Selection) (string, error) {
	var sb strings.Builder
	for _, profile := range sel.Profiles() {
		summary, err := profile.Summary()
		if err != nil {
			return "", fmt.Errorf("summary for %q: %w", profile.Identifier(), err)
		}
		sb.WriteString("\n")
		sb.WriteString(summary)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// FormatTrees renders every profile's full payload as an indented tree,
// preceded by the username.
func FormatTrees(sel domain.Selection) string {
	var sb strings.Builder
	for _, profile := range sel.Profiles() {
		sb.WriteString(profile.Identifier())
		sb.WriteString(profile.String())
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// MarshalSelection renders a Single selection as its raw payload and a Many
// selection as an object keyed by username.
func MarshalSelection(sel domain.Selection) ([]byte, error) {
	var value any = sel.Set()
	if sel.Kind() == domain.SelectionSingle {
		value = sel.Profile()
	}
	return json.MarshalIndent(value, "", constants.OutputConfig.JSONIndent)
}

// WriteTable writes one row per profile with the summary columns.
func WriteTable(w io.Writer, sel domain.Selection) error {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("NAME", "GLOBAL", "COUNTRY", "PP", "PLAYCOUNT", "REGION")

	for _, profile := range sel.Profiles() {
		s, err := profile.Stats()
		if err != nil {
			return fmt.Errorf("stats for %q: %w", profile.Identifier(), err)
		}
		region, err := profile.CountryName()
		if err != nil {
			return fmt.Errorf("stats for %q: %w", profile.Identifier(), err)
		}
		if err := table.Append(
			s.Name,
			strconv.Itoa(s.GlobalRank),
			strconv.Itoa(s.CountryRank),
			domain.FormatPP(s.PP),
			strconv.Itoa(s.PlayCount),
			region,
		); err != nil {
			return fmt.Errorf("table row for %q: %w", profile.Identifier(), err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
