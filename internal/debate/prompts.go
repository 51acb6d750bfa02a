package debate

import (
	"fmt"
	"strings"

	"github.com/parley-ai/parley/internal/model"
)

func buildOpeningPrompt(change model.CodeChange, stance model.ArgumentType) string {
	var position string
	switch stance {
	case model.ArgumentPro:
		position = "in favor of applying"
	case model.ArgumentCon:
		position = "against applying"
	default:
		position = "weighing both sides of"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Present up to 3 concise arguments %s this proposed code change.\n", position)
	b.WriteString("Number each argument on its own line.\n\n")
	fmt.Fprintf(&b, "Reason for change: %s\n", change.Reason)
	fmt.Fprintf(&b, "Original (lines %d-%d):\n%s\n\n", change.LineStart, change.LineEnd, change.OriginalCode)
	fmt.Fprintf(&b, "Proposed:\n%s\n", change.ProposedCode)
	return b.String()
}

func buildReplyPrompt(dc model.DebateContext, userInput string) string {
	var b strings.Builder
	b.WriteString("You are debating a proposed code change.\n")
	fmt.Fprintf(&b, "Change reason: %s\n", dc.CodeChange.Reason)
	if len(dc.PreviousArguments) > 0 {
		fmt.Fprintf(&b, "Points raised so far: %s\n", strings.Join(dc.PreviousArguments, ", "))
	}
	fmt.Fprintf(&b, "The user now argues: %s\n\n", userInput)
	b.WriteString("Reply with a short counterpoint, then up to 2 follow-up questions, ")
	b.WriteString("each on its own line ending with '?'.\n")
	return b.String()
}

func buildCounterPrompt(change model.CodeChange, target model.DebateArgument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Counter this %s argument about a proposed code change in one concise paragraph:\n\n", target.Type)
	b.WriteString(target.Content)
	fmt.Fprintf(&b, "\n\nChange reason: %s\n", change.Reason)
	return b.String()
}
