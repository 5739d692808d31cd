package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

const assistantGreeting = "Hello! I'm BizPilot AI, your business assistant. How can I help you today?"

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the BizPilot assistant a business question",
	Long: `Ask the BizPilot assistant about running or starting a business.

With a question as arguments, the answer is printed and the command exits.
Without arguments a conversation starts; type "exit" or press Ctrl+D to
leave. Questions do not change your saved plan.

Examples:
  bizpilot ask "How should I price masala chai near a railway station?"
  bizpilot ask`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return fmt.Errorf("assistant %w", errNotConfigured)
	}

	if len(args) > 0 {
		reply, err := assistantService.Ask(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return friendly(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	}

	return chat(cmd)
}

// chat answers one question per input line until input ends or the user
// leaves. Failed questions are reported and the conversation goes on.
func chat(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

	cmd.PrintErrln(assistantGreeting)
	cmd.PrintErrln(`Type "exit" to leave.`)
	for {
		question, ok := p.next("You")
		if !ok {
			cmd.PrintErrln()
			return nil
		}
		switch strings.ToLower(question) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		reply, err := assistantService.Ask(cmd.Context(), question)
		if err != nil {
			cmd.PrintErrln(domain.UserMessage(err))
			continue
		}
		fmt.Fprintf(out, "BizPilot: %s\n", reply)
	}
}
