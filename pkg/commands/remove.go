package commands

import (
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/flowlog/pkg/commands/options"
	"tableflip.dev/flowlog/pkg/runner/remove"
	"tableflip.dev/flowlog/pkg/store"
)

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove <date>",
		Aliases: []string{"rm"},
		Short:   "Remove the entry logged on a date",
		Example: `
flowlog remove 2024-03-10
flowlog rm 3/10
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one date")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := options.ParseDay(args[0], now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withStore(func(p store.Persistence) error {
				r := remove.Remove{
					Date:        date,
					Out:         cmd.OutOrStdout(),
					Persistence: p,
				}
				return r.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
