package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/flowlog/pkg/commands/options"
	"tableflip.dev/flowlog/pkg/runner/get"
	"tableflip.dev/flowlog/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print a month and the entries logged in it",
		Example: `
flowlog get
flowlog get --month "March 2024"
flowlog get --month 2024-03 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := mo.GetMonth()
			if err != nil {
				return output.HandleError(err)
			}
			err = withStore(func(p store.Persistence) error {
				g := get.Get{
					Year:        year,
					Month:       month,
					WeekStart:   weekStart,
					JSON:        output.JSON,
					Now:         now,
					Out:         cmd.OutOrStdout(),
					Persistence: p,
				}
				return g.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddMonthArgs(cmd, mo)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
