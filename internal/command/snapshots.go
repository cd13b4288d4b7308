package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kapu/osu-scraper-go/internal/adapter"
	"github.com/kapu/osu-scraper-go/internal/domain"
	"github.com/kapu/osu-scraper-go/internal/util"
)

var errNoSnapshotStore = errors.New("no snapshot database configured (use --db or OSU_SNAPSHOT_DB)")

func newSnapshotsCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List profiles stored in the snapshot database",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, _ []string) error {
			if c.deps.Snapshots == nil {
				return errNoSnapshotStore
			}
			entries, err := c.deps.Snapshots.List(cmd.Context())
			if err != nil {
				return err
			}
			text, err := adapter.FormatSnapshotList(entries)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show [NAME[,NAME...]]",
		Short: "Render the latest stored snapshot of players (all when none given)",
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			if c.deps.Snapshots == nil {
				return errNoSnapshotStore
			}
			var names []string
			for _, arg := range args {
				names = append(names, util.SplitCommaList(arg)...)
			}
			set, err := c.deps.Snapshots.Latest(cmd.Context(), names...)
			if err != nil {
				return err
			}
			return c.record(cmd.Context(), domain.Many(set), false)
		}),
	})

	return cmd
}
