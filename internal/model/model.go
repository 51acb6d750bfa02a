// Package model defines the core data types shared across parley.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Severity ranks how serious an issue is.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Rank orders severities for prioritization: high=3, medium=2, low=1.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ParseSeverity maps a severity word to a Severity, defaulting to medium.
func ParseSeverity(s string) Severity {
	switch s {
	case "low":
		return SeverityLow
	case "high":
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// IssueType categorizes what kind of problem an issue describes.
type IssueType int

const (
	IssueStyle IssueType = iota + 1
	IssueOptimization
	IssueBug
	IssueSecurity
	IssuePerformance
	IssueMaintainability
)

func (t IssueType) String() string {
	switch t {
	case IssueStyle:
		return "style"
	case IssueOptimization:
		return "optimization"
	case IssueBug:
		return "bug"
	case IssueSecurity:
		return "security"
	case IssuePerformance:
		return "performance"
	case IssueMaintainability:
		return "maintainability"
	default:
		return "unknown"
	}
}

// Label returns the human-facing name, e.g. "Bug" or "Performance".
func (t IssueType) Label() string {
	switch t {
	case IssueStyle:
		return "Style"
	case IssueOptimization:
		return "Optimization"
	case IssueBug:
		return "Bug"
	case IssueSecurity:
		return "Security"
	case IssuePerformance:
		return "Performance"
	case IssueMaintainability:
		return "Maintainability"
	default:
		return "Issue"
	}
}

// Rank orders issue types for prioritization: bug > optimization > style.
// Security and performance rank with bugs; maintainability with optimization.
func (t IssueType) Rank() int {
	switch t {
	case IssueBug, IssueSecurity, IssuePerformance:
		return 3
	case IssueOptimization, IssueMaintainability:
		return 2
	case IssueStyle:
		return 1
	default:
		return 0
	}
}

// CodeSnippet is a piece of code submitted for review. Immutable once stored.
type CodeSnippet struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Language   string    `json:"language"`
	Filename   string    `json:"filename,omitempty"`
	Size       int       `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// CodeIssue is a single problem found in a snippet. Never mutated after creation.
type CodeIssue struct {
	Type         IssueType `json:"type"`
	Severity     Severity  `json:"severity"`
	Line         int       `json:"line"`
	Column       int       `json:"column"`
	Message      string    `json:"message"`
	SuggestedFix string    `json:"suggested_fix,omitempty"`
}

// CodeMetrics are heuristic quality scores in [0,100].
type CodeMetrics struct {
	Complexity      int `json:"complexity"`
	Maintainability int `json:"maintainability"`
	Readability     int `json:"readability"`
}

// AnalysisResult is the orchestrator's raw output for one request.
// Ephemeral; persistence belongs to the caller.
type AnalysisResult struct {
	CodeSnippetID string      `json:"code_snippet_id"`
	Language      string      `json:"language"`
	Issues        []CodeIssue `json:"issues"`
	Metrics       CodeMetrics `json:"metrics"`
	Suggestions   []string    `json:"suggestions"`
}

// IssueCategories buckets issues by category. Every issue lands in exactly one.
type IssueCategories struct {
	Security        []CodeIssue `json:"security"`
	Performance     []CodeIssue `json:"performance"`
	Maintainability []CodeIssue `json:"maintainability"`
	Style           []CodeIssue `json:"style"`
	Bugs            []CodeIssue `json:"bugs"`
}

// Total returns the number of issues across all buckets.
func (c IssueCategories) Total() int {
	return len(c.Security) + len(c.Performance) + len(c.Maintainability) + len(c.Style) + len(c.Bugs)
}

// EnhancedAnalysisResult is an AnalysisResult with categorization,
// prioritized suggestions, and an overall confidence score.
type EnhancedAnalysisResult struct {
	AnalysisResult
	Categories             IssueCategories `json:"categories"`
	PrioritizedSuggestions []AISuggestion  `json:"prioritized_suggestions"`
	Confidence             float64         `json:"confidence"`
	ProcessingTime         time.Duration   `json:"processing_time"`
}

// AISuggestion is a user-facing suggestion derived from an issue or metric.
type AISuggestion struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id,omitempty"`
	Type         IssueType `json:"type"`
	Severity     Severity  `json:"severity"`
	LineStart    int       `json:"line_start"`
	LineEnd      int       `json:"line_end"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	SuggestedFix string    `json:"suggested_fix,omitempty"`
	Confidence   float64   `json:"confidence"`
	CreatedAt    time.Time `json:"created_at"`
}

// CodeChange is a proposed modification to debate. Immutable.
type CodeChange struct {
	ID           string `json:"id"`
	LineStart    int    `json:"line_start"`
	LineEnd      int    `json:"line_end"`
	OriginalCode string `json:"original_code"`
	ProposedCode string `json:"proposed_code"`
	Reason       string `json:"reason"`
}

// ArgumentType is the stance of a debate argument.
type ArgumentType int

const (
	ArgumentPro ArgumentType = iota + 1
	ArgumentCon
	ArgumentNeutral
)

func (a ArgumentType) String() string {
	switch a {
	case ArgumentPro:
		return "pro"
	case ArgumentCon:
		return "con"
	case ArgumentNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// ParseArgumentType maps a stance name to its type, defaulting to neutral.
func ParseArgumentType(s string) ArgumentType {
	switch s {
	case "pro":
		return ArgumentPro
	case "con":
		return ArgumentCon
	default:
		return ArgumentNeutral
	}
}

// Opposite returns the counter-stance. Neutral stays neutral.
func (a ArgumentType) Opposite() ArgumentType {
	switch a {
	case ArgumentPro:
		return ArgumentCon
	case ArgumentCon:
		return ArgumentPro
	default:
		return ArgumentNeutral
	}
}

// ArgumentSource records who produced an argument.
type ArgumentSource int

const (
	SourceAI ArgumentSource = iota + 1
	SourceUser
)

func (s ArgumentSource) String() string {
	switch s {
	case SourceAI:
		return "ai"
	case SourceUser:
		return "user"
	default:
		return "unknown"
	}
}

// DebateArgument is one entry in a debate session's append-only argument list.
type DebateArgument struct {
	ID         string         `json:"id"`
	Content    string         `json:"content"`
	Type       ArgumentType   `json:"type"`
	Confidence float64        `json:"confidence"`
	Evidence   []string       `json:"evidence,omitempty"`
	Source     ArgumentSource `json:"source"`
	Timestamp  time.Time      `json:"timestamp"`
}

// DebateArguments is the opening position set for a code change.
type DebateArguments struct {
	Arguments        []string `json:"arguments"`
	CounterArguments []string `json:"counter_arguments"`
}

// DebateContext threads state across debate turns. PreviousArguments and
// UserResponses grow monotonically; entries are never rewritten.
type DebateContext struct {
	CodeChange        CodeChange `json:"code_change"`
	PreviousArguments []string   `json:"previous_arguments"`
	UserResponses     []string   `json:"user_responses"`
}

// DebateResponse is the engine's reply to one debate turn.
type DebateResponse struct {
	Reply             string        `json:"reply"`
	FollowUpQuestions []string      `json:"follow_up_questions"`
	Context           DebateContext `json:"context"`
}

// DebateStatus is the lifecycle state of a debate session.
type DebateStatus int

const (
	DebateActive DebateStatus = iota + 1
	DebateConcluded
	DebateAbandoned
)

func (s DebateStatus) String() string {
	switch s {
	case DebateActive:
		return "active"
	case DebateConcluded:
		return "concluded"
	case DebateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status accepts no further transitions.
func (s DebateStatus) Terminal() bool {
	return s == DebateConcluded || s == DebateAbandoned
}

// DebateConclusion summarizes a concluded debate.
type DebateConclusion struct {
	Summary        string  `json:"summary"`
	Recommendation string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"`
}

// DebateSession is the stateful record of a turn-based debate. Its argument
// list only grows while the session is active; once concluded or abandoned no
// further mutation is accepted.
type DebateSession struct {
	ID          string            `json:"id"`
	Topic       string            `json:"topic"`
	CodeContext CodeChange        `json:"code_context"`
	Arguments   []DebateArgument  `json:"arguments"`
	Status      DebateStatus      `json:"status"`
	Conclusion  *DebateConclusion `json:"conclusion,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewID returns a fresh unique identifier.
func NewID() string {
	return uuid.NewString()
}
