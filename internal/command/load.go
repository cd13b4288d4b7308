package command

import (
	"github.com/spf13/cobra"

	"github.com/kapu/osu-scraper-go/internal/adapter"
)

func newLoadCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "load FILE",
		Short: "Re-render profiles from a previously saved JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			sel, err := adapter.LoadProfiles(args[0])
			if err != nil {
				return err
			}
			return c.record(cmd.Context(), sel, false)
		}),
	}
}
