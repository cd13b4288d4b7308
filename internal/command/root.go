package command

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kapu/osu-scraper-go/internal/adapter"
	"github.com/kapu/osu-scraper-go/internal/domain"
	"github.com/kapu/osu-scraper-go/internal/util"
)

type outputFlags struct {
	format   string
	print    bool
	save     bool
	fileName string
	dir      string
}

// cli holds state shared by the subcommands of one invocation.
type cli struct {
	build     DependencyBuilder
	overrides Overrides
	output    outputFlags
	format    adapter.Format
	deps      *Dependencies
	cleanup   func()
}

// Execute runs the root command against the live site.
func Execute(ctx context.Context) {
	if err := NewRootCommand(DefaultBuilder).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand(build DependencyBuilder) *cobra.Command {
	c := &cli{build: build}

	root := &cobra.Command{
		Use:   "osu-scraper",
		Short: "Scrape osu! leaderboard and profile statistics",
		Long: `Fetches osu! player profiles by name, by leaderboard rank, or for whole
leaderboard pages, and prints or saves them as summaries, JSON or a table.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.overrides.BaseURL, "base-url", "", "site root (default $OSU_BASE_URL or https://osu.ppy.sh)")
	pf.IntVar(&c.overrides.Workers, "workers", 0, "worker pool size for --threaded fetches (default $OSU_MAX_WORKERS or 2)")
	pf.StringVar(&c.overrides.SnapshotDB, "db", "", "SQLite file to store fetched profiles in (default $OSU_SNAPSHOT_DB)")
	pf.StringVar(&c.overrides.LogLevel, "log-level", "", "debug, info, warn or error (default $LOG_LEVEL or info)")
	pf.StringVar(&c.overrides.LogFile, "log-file", "", "write logs to this file instead of stderr")

	pf.StringVarP(&c.output.format, "format", "f", string(adapter.FormatSummary), "output format: summary, json, table or tree")
	pf.BoolVar(&c.output.print, "print", true, "print records to stdout")
	pf.BoolVar(&c.output.save, "save", false, "save records to a file")
	pf.StringVar(&c.output.fileName, "file-name", "", "file name without extension (default \"default\")")
	pf.StringVar(&c.output.dir, "dir", "", "directory to save into (default $OSU_OUTPUT_DIR or current directory)")

	root.AddCommand(newPlayersCommand(c))
	root.AddCommand(newTopCommand(c))
	root.AddCommand(newRankCommand(c))
	root.AddCommand(newLoadCommand(c))
	root.AddCommand(newSnapshotsCommand(c))

	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	format, err := adapter.ParseFormat(c.output.format)
	if err != nil {
		return err
	}
	c.format = format

	deps, cleanup, err := c.build(cmd.Context(), c.overrides)
	if err != nil {
		return err
	}
	c.deps = deps
	c.cleanup = cleanup
	return nil
}

// run releases what setup opened once fn returns, successful or not.
func (c *cli) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer c.teardown()
		return fn(cmd, args)
	}
}

func (c *cli) teardown() {
	if c.cleanup != nil {
		c.cleanup()
		c.cleanup = nil
	}
}

func (c *cli) workers(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return c.deps.MaxWorkers
}

func (c *cli) done(label string) {
	if c.deps.Progress != nil {
		c.deps.Progress.Done(label)
	}
}

// record sends sel to the output collaborator and, when persist is set and a
// snapshot store is configured, stores the fetched profiles too.
func (c *cli) record(ctx context.Context, sel domain.Selection, persist bool) error {
	dir := c.output.dir
	if dir == "" {
		dir = c.deps.OutputDir
	}

	path, err := c.deps.Recorder.Record(sel, adapter.RecordOptions{
		Format:        c.format,
		Print:         c.output.print,
		Save:          c.output.save,
		FileName:      c.output.fileName,
		FileDirectory: dir,
	})
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(c.deps.Err, "Saved to %s\n", path)
	}

	if persist && c.deps.Snapshots != nil {
		set := sel.Set()
		if sel.Kind() == domain.SelectionSingle {
			set = domain.ProfileSetFrom(sel.Profile())
		}
		if err := c.deps.Snapshots.Save(ctx, set, util.NowUTC()); err != nil {
			return fmt.Errorf("store snapshots: %w", err)
		}
	}
	return nil
}
