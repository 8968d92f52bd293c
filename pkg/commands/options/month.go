package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/flowlog/pkg/calendar"
)

// MonthOptions
type MonthOptions struct {
	MonthString string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVarP(&o.MonthString, "month", "m", "",
		`Specify a month, example: --month="2024-03" or --month="March 2024". Defaults to this month.`)
}

// GetMonth returns the selected month, or a zero year when none was given.
func (o *MonthOptions) GetMonth() (int, time.Month, error) {
	if o.MonthString == "" {
		return 0, 0, nil
	}
	return calendar.ParseMonth(o.MonthString)
}
