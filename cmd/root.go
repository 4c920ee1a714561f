package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/simon/screenctl/internal/tui"
)

var (
	configPath    string
	debug         bool
	screenBin     string
	versionString = "dev"
)

func SetVersionInfo(version, commit string) {
	versionString = version
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
}

var rootCmd = &cobra.Command{
	Use:          "screenctl",
	Short:        "Manage GNU screen sessions",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		bridge := tui.NewBridge()
		a, err := newApp(ctx, bridge, bridge, bridge.Launch)
		if err != nil {
			return err
		}
		defer a.Close()

		unsubscribe := a.source.Subscribe(bridge.Stale)
		defer unsubscribe()

		m := tui.NewModel(ctx, tui.Options{
			Source:    a.source,
			Actions:   a.actions,
			Terminals: a.terminals,
			Refresh:   a.cfg.RefreshDuration,
		})
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		bridge.Attach(p)

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/screenctl/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVar(&screenBin, "screen", "", "screen binary to run")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
