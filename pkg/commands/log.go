package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/flowlog/pkg/runner/log"
	"tableflip.dev/flowlog/pkg/store"
)

func addLog(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log entries interactively (the default)",
		Example: `
flowlog
flowlog log
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd)
		},
	}

	topLevel.AddCommand(cmd)
}

func runSession(cmd *cobra.Command) error {
	return withStore(func(p store.Persistence) error {
		s := log.Log{
			Persistence: p,
			WeekStart:   weekStart,
			Log:         logger,
			Out:         cmd.OutOrStdout(),
		}
		return s.Do(cmd.Context())
	})
}
