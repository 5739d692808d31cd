package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

var outputFormat string

var generateCmd = &cobra.Command{
	Use:   "generate <idea>",
	Short: "Generate a business plan from an idea",
	Long: `Generate a business plan from a description of your idea.

The new plan replaces any previous session and is saved so it can be
refined later with "bizpilot modify".

Example:
  bizpilot generate "Tea stall near Pune railway station, budget 50,000 INR"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

var modifyCmd = &cobra.Command{
	Use:   "modify <instruction>",
	Short: "Refine the current plan with an instruction",
	Long: `Regenerate the current plan taking a change into account, keeping the
same structure. The previous plan and the instruction are sent together;
the answer replaces the plan only if generation succeeds.

The saved session is resumed automatically when none is active.

Examples:
  bizpilot modify "the budget increased by 20%"
  bizpilot modify "add home delivery"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runModify,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved business plan",
	Long: `Print the saved plan. Automation insights are shown to Pro accounts only.

Formats:
  text - readable summary (default)
  json - the plan document as indented JSON
  yaml - the plan document as YAML`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, modifyCmd, showCmd} {
		cmd.Flags().StringVarP(&outputFormat, "output", "o", formatText, "Output format: text, json or yaml")
		cmd.PreRunE = func(*cobra.Command, []string) error { return requireFormat(outputFormat) }
		rootCmd.AddCommand(cmd)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if ideaService == nil || authService == nil {
		return fmt.Errorf("idea %w", errNotConfigured)
	}

	cmd.PrintErrln("Generating business plan...")
	plan, err := ideaService.Generate(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return friendly(err)
	}

	return writePlan(cmd.OutOrStdout(), plan, authService.Tier(cmd.Context()), outputFormat)
}

func runModify(cmd *cobra.Command, args []string) error {
	if ideaService == nil || sessionManager == nil || authService == nil {
		return fmt.Errorf("idea %w", errNotConfigured)
	}
	ctx := cmd.Context()

	// Each invocation is a new process, so running modify is the user's
	// request to continue the saved session.
	if !sessionManager.Current().HasBaseline() {
		if _, ok := sessionManager.Restore(ctx); ok {
			cmd.PrintErrln("Resumed your previous session.")
		}
	}

	cmd.PrintErrln("Updating business plan...")
	plan, err := ideaService.RequestUpdate(ctx, strings.Join(args, " "))
	if err != nil {
		return friendly(err)
	}

	return writePlan(cmd.OutOrStdout(), plan, authService.Tier(ctx), outputFormat)
}

func runShow(cmd *cobra.Command, _ []string) error {
	if sessionManager == nil || authService == nil {
		return fmt.Errorf("session %w", errNotConfigured)
	}
	ctx := cmd.Context()

	state := sessionManager.Current()
	if !state.HasBaseline() {
		state = sessionManager.LoadPersisted(ctx)
	}
	if !state.HasBaseline() {
		cmd.Println(`No saved plan. Create one with: bizpilot generate "<your idea>"`)
		return nil
	}

	return writePlan(cmd.OutOrStdout(), state.CurrentPlan, authService.Tier(ctx), outputFormat)
}

// requireFormat validates --output before any work is done.
func requireFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q (use text, json or yaml)", domain.ErrInvalidInput, format)
	}
}
