package adapter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kapu/osu-scraper-go/internal/constants"
	"github.com/kapu/osu-scraper-go/internal/domain"
)

// RecordOptions controls what Record does with the rendered output.
type RecordOptions struct {
	Format        Format
	Print         bool
	Save          bool
	FileName      string
	FileDirectory string
}

// Recorder prints and/or saves a selection of profiles.
type Recorder struct {
	out    io.Writer
	logger *zap.Logger
}

func NewRecorder(out io.Writer, logger *zap.Logger) *Recorder {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{out: out, logger: logger}
}

// Record renders sel once and sends it to the requested destinations.
// It returns the saved file path, or "" when nothing was saved.
func (r *Recorder) Record(sel domain.Selection, opts RecordOptions) (string, error) {
	if opts.Format == "" {
		opts.Format = FormatSummary
	}

	rendered, err := render(sel, opts.Format)
	if err != nil {
		return "", err
	}

	if opts.Print {
		if _, err := io.WriteString(r.out, rendered); err != nil {
			return "", fmt.Errorf("print records: %w", err)
		}
		if !strings.HasSuffix(rendered, "\n") {
			fmt.Fprintln(r.out)
		}
	}

	if !opts.Save {
		return "", nil
	}

	path := SavePath(opts)
	if err := writeFileAtomic(path, []byte(rendered)); err != nil {
		return "", fmt.Errorf("save records: %w", err)
	}

	r.logger.Info("Records saved",
		zap.String("path", path),
		zap.String("format", string(opts.Format)),
		zap.Int("profiles", len(sel.Profiles())))
	return path, nil
}

// SavePath is {FileDirectory}/{FileName}{ext}, with "default" for an empty name.
func SavePath(opts RecordOptions) string {
	name := strings.TrimSpace(opts.FileName)
	if name == "" {
		name = constants.OutputConfig.DefaultFileName
	}
	format := opts.Format
	if format == "" {
		format = FormatSummary
	}
	return filepath.Join(opts.FileDirectory, name+format.Extension())
}

func render(sel domain.Selection, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := MarshalSelection(sel)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatTable:
		var buf bytes.Buffer
		if err := WriteTable(&buf, sel); err != nil {
			return "", err
		}
		return buf.String(), nil
	case FormatTree:
		return FormatTrees(sel), nil
	default:
		return FormatSummaries(sel)
	}
}

func writeFileAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, os.FileMode(constants.OutputConfig.FileMode)); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}
