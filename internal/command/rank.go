package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kapu/osu-scraper-go/internal/domain"
)

func newRankCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "rank RANK",
		Short: "Fetch the profile holding a global rank (1-10000)",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			rank, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("rank must be a whole number, got %q", args[0])
			}

			profile, err := c.deps.Aggregator.ByRank(cmd.Context(), rank)
			if err != nil {
				return err
			}
			if profile == nil {
				fmt.Fprintf(c.deps.Err, "Can't find rank %d: the leaderboard covers ranks %d-%d\n",
					rank, domain.MinRank, domain.MaxRank)
				return nil
			}

			return c.record(cmd.Context(), domain.Single(profile), true)
		}),
	}
}
