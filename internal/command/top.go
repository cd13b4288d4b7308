package command

import (
	"github.com/spf13/cobra"

	"github.com/kapu/osu-scraper-go/internal/domain"
)

func newTopCommand(c *cli) *cobra.Command {
	var (
		pages    int
		threaded bool
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Fetch every profile on the first N leaderboard pages",
		Long: `Walks the performance leaderboard from page 1 to --pages (50 players per
page, at most 200 pages) and fetches each listed profile. Page counts outside
1-200 are clamped.

Threaded mode speeds things up but the site answers bursts with HTTP 429;
keep --max-workers low.`,
		Args: cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, _ []string) error {
			var (
				set *domain.ProfileSet
				err error
			)
			if threaded {
				set, err = c.deps.Aggregator.TopConcurrent(cmd.Context(), pages, c.workers(workers))
			} else {
				set, err = c.deps.Aggregator.Top(cmd.Context(), pages)
			}
			if err != nil {
				return err
			}
			c.done("Process Completed")

			return c.record(cmd.Context(), domain.Many(set), true)
		}),
	}

	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "last leaderboard page to fetch")
	cmd.Flags().BoolVarP(&threaded, "threaded", "t", false, "fetch profiles on a worker pool")
	cmd.Flags().IntVarP(&workers, "max-workers", "w", 0, "pool size for this run (overrides --workers)")
	return cmd
}
