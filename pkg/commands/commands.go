package commands

import (
	"fmt"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/flowlog/pkg/calendar"
	"tableflip.dev/flowlog/pkg/logging"
	"tableflip.dev/flowlog/pkg/store"
)

var (
	output  = &base.OutputOptions{}
	verbose bool

	cfg       *store.FileConfig
	weekStart calendar.WeekStart
	logger    = zap.NewNop()

	// now is the clock handed to runners.
	now = time.Now
)

func New() *cobra.Command {
	output = &base.OutputOptions{}
	verbose = false

	cmd := &cobra.Command{
		Use:   "flowlog",
		Short: base.Wrap80("Log flow intensity by day and see it on a calendar."),
		Long: base.Wrap80("Run without arguments to log entries interactively: pick a date, " +
			"pick a flow intensity, confirm, and repeat until you choose to exit."),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd)
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addLog(topLevel)
	addCalendar(topLevel)
	addGet(topLevel)
	addRemove(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
}

func setup() error {
	c, err := store.LoadConfig()
	if err != nil {
		return err
	}
	ws, err := calendar.ParseWeekStart(c.WeekStart)
	if err != nil {
		return err
	}
	l, err := logging.New(logging.Options{File: c.LogFile, Level: c.LogLevel, Verbose: verbose})
	if err != nil {
		return err
	}
	cfg, weekStart, logger = c, ws, l
	logger.Debug("config loaded",
		zap.String("backend", c.StoreBackend),
		zap.String("path", c.Path),
		zap.Bool("memory", c.Memory))
	return nil
}

// withStore opens the configured store for the duration of fn.
func withStore(fn func(store.Persistence) error) (err error) {
	if cfg == nil {
		return fmt.Errorf("commands: config not loaded")
	}
	p, err := store.Load(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := p.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(p)
}
