package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bizpilot/bizpilot-cli/internal/adapters/driving/tui"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	// Watcher reports changes to the saved session made by other processes.
	// Optional.
	Watcher driven.ChangeWatcher
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for BizPilot.

Describe an idea to generate a plan, then keep typing changes to refine it.
When a saved session exists you are offered to restore it.

Controls:
  Enter      - Generate / apply change
  Ctrl+R     - Restore saved session
  Ctrl+X     - Clear session
  PgUp/PgDn  - Scroll plan
  Ctrl+C     - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Session: sessionManager,
		Idea:    ideaService,
		Auth:    authService,
	}
	if tuiConfig != nil {
		ports.Watcher = tuiConfig.Watcher
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
