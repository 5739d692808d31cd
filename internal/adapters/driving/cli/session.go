package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect, restore or clear the saved session",
	Long: `The saved session is the last successfully generated plan and the idea
prompt that started it. It survives restarts until cleared.`,
	RunE: runSessionStatus,
}

var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is saved",
	Args:  cobra.NoArgs,
	RunE:  runSessionStatus,
}

var sessionRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Resume the saved session and print its plan",
	Args:  cobra.NoArgs,
	RunE:  runSessionRestore,
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved session",
	Args:  cobra.NoArgs,
	RunE:  runSessionClear,
}

func init() {
	sessionCmd.AddCommand(sessionStatusCmd)
	sessionCmd.AddCommand(sessionRestoreCmd)
	sessionCmd.AddCommand(sessionClearCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionStatus(cmd *cobra.Command, _ []string) error {
	if sessionManager == nil {
		return fmt.Errorf("session %w", errNotConfigured)
	}

	state := sessionManager.LoadPersisted(cmd.Context())
	if !state.HasBaseline() {
		cmd.Println("No saved session.")
		return nil
	}

	cmd.Println("Saved session")
	cmd.Println("=============")
	if title := state.CurrentPlan.Idea().Title; title != "" {
		cmd.Printf("  Idea:       %s\n", title)
	}
	if state.OriginalPrompt != "" {
		cmd.Printf("  Prompt:     %s\n", state.OriginalPrompt)
	}
	if f := state.CurrentPlan.Feasibility(); f.HasConfidence {
		cmd.Printf("  Confidence: %g/10\n", f.ConfidenceScore)
	}
	if !state.UpdatedAt.IsZero() {
		cmd.Printf("  Saved:      %s\n", state.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runSessionRestore(cmd *cobra.Command, _ []string) error {
	if sessionManager == nil || authService == nil {
		return fmt.Errorf("session %w", errNotConfigured)
	}

	plan, ok := sessionManager.Restore(cmd.Context())
	if !ok {
		cmd.Println("No saved session to restore.")
		return nil
	}

	cmd.PrintErrln("Session restored.")
	return writePlan(cmd.OutOrStdout(), plan, authService.Tier(cmd.Context()), formatText)
}

func runSessionClear(cmd *cobra.Command, _ []string) error {
	if sessionManager == nil {
		return fmt.Errorf("session %w", errNotConfigured)
	}

	sessionManager.Clear(cmd.Context())
	cmd.Println("Session cleared.")
	return nil
}
