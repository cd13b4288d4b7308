package adapter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kapu/osu-scraper-go/internal/domain"
)

const (
	alphaPayload = `{"id":1,"username":"alpha","country":{"name":"Japan"},"statistics":{"pp":12000.25,"play_count":5000,"rank":{"global":3,"country":1}}}`
	betaPayload  = `{"id":2,"username":"beta","country":{"name":"Chile"},"statistics":{"pp":9000,"play_count":777,"rank":{"global":40,"country":2}}}`
)

func testProfile(t *testing.T, payload string) *domain.Profile {
	t.Helper()
	profile, err := domain.NewProfileFromRaw([]byte(payload))
	require.NoError(t, err)
	return profile
}

func testSelection(t *testing.T) domain.Selection {
	return domain.Many(domain.ProfileSetFrom(testProfile(t, alphaPayload), testProfile(t, betaPayload)))
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":        FormatSummary,
		"summary": FormatSummary,
		"S":       FormatSummary,
		"json":    FormatJSON,
		" j ":     FormatJSON,
		"TABLE":   FormatTable,
		"t":       FormatTable,
		"tree":    FormatTree,
		"r":       FormatTree,
	}
	for input, want := range tests {
		got, err := ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}

func TestRecordPrintsSummaries(t *testing.T) {
	var out bytes.Buffer
	recorder := NewRecorder(&out, zap.NewNop())

	path, err := recorder.Record(testSelection(t), RecordOptions{Format: FormatSummary, Print: true})
	require.NoError(t, err)
	assert.Empty(t, path)

	assert.Equal(t,
		"\nName: alpha\nGlobal Rank: 3\nCountry Rank: 1\nTotal pp: 12000.25\nPlaycount: 5000\n"+
			"\nName: beta\nGlobal Rank: 40\nCountry Rank: 2\nTotal pp: 9000\nPlaycount: 777\n",
		out.String())
}

func TestRecordSingleJSON(t *testing.T) {
	var out bytes.Buffer
	recorder := NewRecorder(&out, zap.NewNop())

	_, err := recorder.Record(domain.Single(testProfile(t, betaPayload)), RecordOptions{Format: FormatJSON, Print: true})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.String(), "{\n  \"id\": 2,\n  \"username\": \"beta\""))
	assert.True(t, strings.HasSuffix(out.String(), "}\n"))
}

func TestRecordTable(t *testing.T) {
	var out bytes.Buffer
	recorder := NewRecorder(&out, zap.NewNop())

	_, err := recorder.Record(testSelection(t), RecordOptions{Format: FormatTable, Print: true})
	require.NoError(t, err)

	text := out.String()
	for _, want := range []string{"NAME", "PLAYCOUNT", "REGION", "alpha", "12000.25", "Japan", "beta", "Chile"} {
		assert.Contains(t, text, want)
	}
	assert.Less(t, strings.Index(text, "alpha"), strings.Index(text, "beta"))
}

func TestRecordTree(t *testing.T) {
	var out bytes.Buffer
	recorder := NewRecorder(&out, zap.NewNop())

	_, err := recorder.Record(domain.Single(testProfile(t, `{"username":"tree_user","is_active":false,"badges":[]}`)),
		RecordOptions{Format: FormatTree, Print: true})
	require.NoError(t, err)

	assert.Equal(t, "tree_user\nusername:   tree user\nis active:   False\nbadges:   N/A\n\n", out.String())
}

func TestWriteTableReportsMissingStats(t *testing.T) {
	var out bytes.Buffer
	sel := domain.Many(domain.ProfileSetFrom(testProfile(t, alphaPayload), testProfile(t, `{"username":"bare"}`)))

	err := WriteTable(&out, sel)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bare"`)

	out.Reset()
	require.NoError(t, WriteTable(&out, testSelection(t)))
	assert.Contains(t, out.String(), "Chile")
}

func TestRecordMissingFieldFails(t *testing.T) {
	var out bytes.Buffer
	recorder := NewRecorder(&out, zap.NewNop())

	_, err := recorder.Record(domain.Single(testProfile(t, `{"username":"bare"}`)), RecordOptions{Print: true})
	require.Error(t, err)
	assert.Empty(t, out.String(), "nothing printed when rendering fails")
}

func TestRecordSavesAndLoadsBack(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	recorder := NewRecorder(&out, zap.NewNop())

	path, err := recorder.Record(testSelection(t), RecordOptions{
		Format:        FormatJSON,
		Save:          true,
		FileName:      "top",
		FileDirectory: filepath.Join(dir, "nested"),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "top.json"), path)
	assert.Empty(t, out.String(), "print disabled")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	sel, err := LoadProfiles(path)
	require.NoError(t, err)
	assert.Equal(t, domain.SelectionMany, sel.Kind())
	assert.Equal(t, []string{"alpha", "beta"}, sel.Set().Keys())

	pp, err := sel.Profiles()[0].PerformancePoints()
	require.NoError(t, err)
	assert.Equal(t, 12000.25, pp)
}

func TestSavePath(t *testing.T) {
	assert.Equal(t, "default.txt", SavePath(RecordOptions{}))
	assert.Equal(t, filepath.Join("out", "default.txt"), SavePath(RecordOptions{Format: FormatTable, FileDirectory: "out"}))
	assert.Equal(t, filepath.Join("out", "players.json"), SavePath(RecordOptions{Format: FormatJSON, FileName: "players", FileDirectory: "out"}))
}
