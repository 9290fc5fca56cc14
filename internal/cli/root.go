package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds the hourline command tree. Running it without a
// subcommand opens the TUI.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "hourline",
		Short: "hourline - an hour-by-hour weekly task timeline",
		Long: `hourline keeps tasks on an hour grid for the current week and reminds you
when an incomplete task comes due.

Without a subcommand it opens the interactive timeline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: user config dir, then ./.hourline.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(newAddCommand(opts))
	root.AddCommand(newDayCommand(opts))
	root.AddCommand(newWeekCommand(opts))
	root.AddCommand(newToggleCommand(opts))
	root.AddCommand(newRmCommand(opts))
	root.AddCommand(newConfigCommand(opts))
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
