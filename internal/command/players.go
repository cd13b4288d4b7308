package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kapu/osu-scraper-go/internal/domain"
	"github.com/kapu/osu-scraper-go/internal/util"
)

func newPlayersCommand(c *cli) *cobra.Command {
	var (
		threaded bool
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "players NAME[,NAME...] [NAME...]",
		Short: "Fetch profiles by username or user id",
		Long: `Fetches the profile of every given player. Names are case-insensitive
and may be given as separate arguments or as a comma separated list.

Examples:
  osu-scraper players mrekk,whitecat
  osu-scraper players 7562902 --threaded --workers 4 --format json --save`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			identifiers := make([]string, 0, len(args))
			for _, arg := range args {
				identifiers = append(identifiers, util.SplitCommaList(arg)...)
			}
			if len(identifiers) == 0 {
				return fmt.Errorf("no player names given")
			}

			var (
				set *domain.ProfileSet
				err error
			)
			if threaded {
				set, err = c.deps.Aggregator.Concurrent(cmd.Context(), identifiers, c.workers(workers))
			} else {
				set, err = c.deps.Aggregator.Sequential(cmd.Context(), identifiers)
			}
			if err != nil {
				return err
			}
			c.done("Data Retrieved")

			return c.record(cmd.Context(), domain.Many(set), true)
		}),
	}

	cmd.Flags().BoolVarP(&threaded, "threaded", "t", false, "fetch profiles on a worker pool")
	cmd.Flags().IntVarP(&workers, "max-workers", "w", 0, "pool size for this run (overrides --workers)")
	return cmd
}
