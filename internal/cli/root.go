// Package cli implements the parley command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parley-ai/parley/internal/debate"
	"github.com/parley-ai/parley/internal/llm"
	"github.com/parley-ai/parley/internal/model"
	"github.com/parley-ai/parley/internal/review"
	"github.com/parley-ai/parley/internal/snippet"
	"github.com/parley-ai/parley/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "AI-assisted code review with a debate mode",
	Long: `parley analyzes code snippets with an AI reviewer, generates prioritized
suggestions, and lets you debate proposed changes argument by argument.

Without a configured provider (OPENAI_API_KEY or ANTHROPIC_API_KEY), every
command still works in fallback mode with conservative canned output.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(debateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// buildClient resolves the text-generation client from the environment. A
// missing key is not an error; it selects fallback mode.
func buildClient() llm.Client {
	client, err := llm.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "No AI provider configured; running in fallback mode.")
		return nil
	}
	return client
}

func buildOrchestrator(client llm.Client) *review.Orchestrator {
	return review.NewOrchestrator(client, review.DefaultConfig(), nil)
}

func buildEngine(client llm.Client, mem *store.Memory) *debate.Engine {
	return debate.NewEngine(client, debate.DefaultConfig(), mem, nil)
}

// loadSnippet reads the snippet named by args: a file path, or stdin when the
// argument is "-" or absent.
func loadSnippet(args []string) (model.CodeSnippet, error) {
	if len(args) == 1 && args[0] != "-" {
		return snippet.Load(args[0])
	}
	return snippet.Read(os.Stdin, "")
}
