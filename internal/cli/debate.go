package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parley-ai/parley/internal/change"
	"github.com/parley-ai/parley/internal/model"
	"github.com/parley-ai/parley/internal/store"
	"github.com/parley-ai/parley/internal/tui"
)

var debateCmd = &cobra.Command{
	Use:   "debate",
	Short: "Debate a proposed code change interactively",
	Long: `Start an interactive debate about a proposed code change. The engine
opens with arguments for and against, then you argue back and forth.

The change can come from a unified diff or from explicit flags:

  parley debate --diff changes.patch
  git diff | parley debate --diff -
  parley debate --original 'var x = 1' --proposed 'const x = 1' --reason 'prefer const'

With --no-tui the opening arguments are printed and the command exits.`,
	RunE: runDebate,
}

func init() {
	debateCmd.Flags().StringP("diff", "d", "", "unified diff file to debate ('-' for stdin); the first change is used")
	debateCmd.Flags().String("original", "", "original code")
	debateCmd.Flags().String("proposed", "", "proposed code")
	debateCmd.Flags().String("reason", "", "reason for the change")
	debateCmd.Flags().Bool("no-tui", false, "print the opening arguments instead of starting the TUI")
}

func runDebate(cmd *cobra.Command, args []string) error {
	chg, err := debateChange(cmd)
	if err != nil {
		return err
	}

	client := buildClient()
	engine := buildEngine(client, store.NewMemory())

	noTUI, _ := cmd.Flags().GetBool("no-tui")
	if noTUI {
		_, arguments, err := engine.Start(cmd.Context(), chg)
		if err != nil {
			return err
		}
		fmt.Printf("Debating: %s\n\n", chg.Reason)
		fmt.Println("For:")
		for i, a := range arguments.Arguments {
			fmt.Printf("  %d. %s\n", i+1, a)
		}
		fmt.Println("\nAgainst:")
		for i, a := range arguments.CounterArguments {
			fmt.Printf("  %d. %s\n", i+1, a)
		}
		return nil
	}

	return tui.Run(engine, chg)
}

// debateChange builds the CodeChange to debate from --diff or explicit flags.
func debateChange(cmd *cobra.Command) (model.CodeChange, error) {
	diffPath, _ := cmd.Flags().GetString("diff")
	if diffPath != "" {
		raw, err := readDiff(diffPath)
		if err != nil {
			return model.CodeChange{}, err
		}
		return change.First(raw)
	}

	proposed, _ := cmd.Flags().GetString("proposed")
	if proposed == "" {
		return model.CodeChange{}, fmt.Errorf("either --diff or --proposed is required")
	}
	original, _ := cmd.Flags().GetString("original")
	reason, _ := cmd.Flags().GetString("reason")

	return model.CodeChange{
		ID:           model.NewID(),
		OriginalCode: original,
		ProposedCode: proposed,
		Reason:       reason,
	}, nil
}

func readDiff(path string) (string, error) {
	if path == "-" {
		data, err := os.ReadFile("/dev/stdin")
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading diff: %w", err)
	}
	return string(data), nil
}
