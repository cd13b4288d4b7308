package adapter

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/kapu/osu-scraper-go/internal/service/database"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const snapshotTimeLayout = "2006-01-02 15:04:05"

var textTemplates = template.Must(template.New("adapter").Funcs(template.FuncMap{
	"ordinal": func(i int) int { return i + 1 },
	"utc":     func(t time.Time) string { return t.UTC().Format(snapshotTimeLayout) },
}).ParseFS(templateFS, "templates/*.tmpl"))

func renderTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// FormatSnapshotList renders the stored snapshot overview.
func FormatSnapshotList(entries []database.SnapshotSummary) (string, error) {
	return renderTemplate("snapshots", struct {
		Count   int
		Entries []database.SnapshotSummary
	}{Count: len(entries), Entries: entries})
}
