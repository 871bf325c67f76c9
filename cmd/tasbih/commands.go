package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/tasbih/internal/app"
	"github.com/five82/tasbih/internal/logtail"
)

const defaultLogLines = 20

var errNoTerminal = errors.New("the counter needs an interactive terminal; try 'tasbih status'")

// isTerminal is swapped in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// newRootCommand builds the command tree. The root command runs the counter.
func newRootCommand() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "tasbih",
		Short: "A tally counter for dhikr",
		Long: `A full-screen tally counter for dhikr.

Press space or enter (or click) to count, r to reset, t to switch between
light and dark, R or v to toggle vibration. The count is saved when you
quit, suspend or switch away; settings are saved as soon as they change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return errNoTerminal
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/tasbih/config.toml)")
	flags.StringVar(&opts.Storage, "storage", "", "storage backend: toml, sqlite or memory")
	flags.StringVar(&opts.DataDir, "data-dir", "", "directory holding saved state (default ~/.local/share/tasbih)")
	root.Flags().IntVar(&opts.PollEvery, "poll", 0, "seconds between settings checks with sqlite storage (default 2)")

	root.AddCommand(
		newStatusCommand(&opts),
		newWakelockCommand(&opts),
		newLogsCommand(&opts),
	)
	return root
}

func newStatusCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the saved counter and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.ReadStatus(*opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "counter:   %d\n", st.State.Count)
			fmt.Fprintf(out, "theme:     %s\n", themeName(st.State.DarkMode))
			fmt.Fprintf(out, "vibration: %s\n", onOff(st.State.VibrationEnabled))
			fmt.Fprintf(out, "wakelock:  %s\n", onOff(st.State.WakelockEnabled))
			fmt.Fprintf(out, "storage:   %s\n", describeStorage(st))
			return nil
		},
	}
}

func newWakelockCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "wakelock",
		Short: "Toggle keeping the machine awake while counting",
		Long: `Toggle the saved wakelock setting. A running counter picks up the change
and starts or stops its keep-awake process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := app.ToggleWakelock(*opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wakelock %s\n", onOff(enabled))
			return nil
		},
	}
}

func newLogsCommand(opts *app.Options) *cobra.Command {
	var lines int
	var summary bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.LogFile(*opts)
			if err != nil {
				return err
			}
			if path == "" {
				return errors.New("file logging is disabled (log_file = \"none\")")
			}
			raw, err := logtail.Read(path, lines)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary {
				fmt.Fprintln(out, strings.Join(logtail.Levels(raw), " "))
				return nil
			}
			for _, line := range logtail.FormatLines(raw) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of lines to show (0 for all)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print entry counts per level instead of the entries")
	return cmd
}

func describeStorage(st app.Status) string {
	if st.Location == "" {
		return st.Storage + " (not persisted)"
	}
	return st.Storage + " " + st.Location
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
