package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/flowlog/pkg/commands/options"
	"tableflip.dev/flowlog/pkg/runner/calendar"
	"tableflip.dev/flowlog/pkg/store"
)

func addCalendar(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show logged entries on a month calendar",
		Example: `
flowlog calendar
flowlog calendar --month 2024-03
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := mo.GetMonth()
			if err != nil {
				return err
			}
			return withStore(func(p store.Persistence) error {
				c := calendar.Calendar{
					Persistence: p,
					Year:        year,
					Month:       month,
					WeekStart:   weekStart,
					Now:         now,
					Log:         logger,
				}
				return c.Do(cmd.Context())
			})
		},
	}

	options.AddMonthArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}
