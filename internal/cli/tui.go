package cli

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/hourline/internal/config"
	"github.com/sandeepkv93/hourline/internal/update"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	// The alternate screen owns the terminal, so logs always go to a file.
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(config.DataDir(), "hourline.log")
	}
	a, err := openApp(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	a.engine.Start()
	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	m := update.NewModel(a.assembler, update.Options{
		Reminders:      a.engine.C(),
		DesktopEnabled: cfg.DesktopNotifications,
		Notifier:       notifier,
	})

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		a.logger.Error("tui exited", "err", err)
		return err
	}
	return nil
}
