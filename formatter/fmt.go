package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/aliaslint/aliaslint/internal"
	"github.com/aliaslint/aliaslint/internal/lints"
	tt "github.com/aliaslint/aliaslint/internal/types"
)

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	warningStyle    = color.New(color.FgHiYellow, color.Bold)
	infoStyle       = color.New(color.FgHiBlue, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
)

// IssueFormatter is the interface that wraps the Format method.
// Implementations of this interface are responsible for formatting specific
// types of lint issues.
type IssueFormatter interface {
	Format(issue tt.Issue, snippet *internal.SourceCode) string
}

// GetFormatter is a factory function that returns the appropriate
// IssueFormatter based on the given rule.
// If no specific formatter is found for the given rule, it returns a
// GeneralIssueFormatter.
func GetFormatter(rule string) IssueFormatter {
	switch rule {
	case lints.RelativeImportRuleName, lints.UselessPathSegmentsRuleName:
		return &RewriteIssueFormatter{}
	default:
		return &GeneralIssueFormatter{}
	}
}

// GenerateFormattedIssue formats a slice of issues into a human-readable
// string. It uses the appropriate formatter for each issue based on its rule.
func GenerateFormattedIssue(issues []tt.Issue, snippet *internal.SourceCode) string {
	var builder strings.Builder
	for _, issue := range issues {
		builder.WriteString(formatIssueHeader(issue))
		formatter := GetFormatter(issue.Rule)
		builder.WriteString(formatter.Format(issue, snippet))
	}
	return builder.String()
}

// formatIssueHeader creates a formatted header string for a given issue.
// The header includes the severity, the rule and the position.
// (e.g. "error: no-relative-imports\n --> src/app.ts:3:18")
func formatIssueHeader(issue tt.Issue) string {
	return severityStyle(issue.Severity).Sprintf("%s: ", issue.Severity) +
		ruleStyle.Sprint(issue.Rule) + "\n" +
		lineStyle.Sprint(" --> ") +
		fileStyle.Sprintf("%s:%d:%d", issue.Filename, issue.Start.Line, issue.Start.Column) + "\n"
}

func severityStyle(s tt.Severity) *color.Color {
	switch s {
	case tt.SeverityWarning:
		return warningStyle
	case tt.SeverityInfo:
		return infoStyle
	default:
		return errorStyle
	}
}

// GeneralIssueFormatter renders the offending line with a caret underline
// and the issue message.
type GeneralIssueFormatter struct{}

func (f *GeneralIssueFormatter) Format(issue tt.Issue, snippet *internal.SourceCode) string {
	var builder strings.Builder
	builder.WriteString(formatSnippet(issue, snippet))
	builder.WriteString("\n")
	return builder.String()
}

// RewriteIssueFormatter adds the suggested rewrite below the snippet.
type RewriteIssueFormatter struct{}

func (f *RewriteIssueFormatter) Format(issue tt.Issue, snippet *internal.SourceCode) string {
	var builder strings.Builder
	builder.WriteString(formatSnippet(issue, snippet))
	if issue.Suggestion != "" {
		builder.WriteString(suggestionStyle.Sprintf("  = help: rewrite as %q", issue.Suggestion))
		builder.WriteString("\n")
	}
	builder.WriteString("\n")
	return builder.String()
}

func formatSnippet(issue tt.Issue, snippet *internal.SourceCode) string {
	lineNum := issue.Start.Line
	if snippet == nil || lineNum < 1 || lineNum > len(snippet.Lines) {
		return messageStyle.Sprintf("%s\n", issue.Message)
	}

	line := snippet.Lines[lineNum-1]
	width := len(fmt.Sprintf("%d", lineNum))
	pad := strings.Repeat(" ", width)

	underline := 1
	if issue.End.Line == issue.Start.Line && issue.End.Column > issue.Start.Column {
		underline = issue.End.Column - issue.Start.Column
	}
	caret := strings.Repeat(" ", issue.Start.Column-1) + strings.Repeat("^", underline)

	var builder strings.Builder
	builder.WriteString(lineStyle.Sprintf("%s |", pad) + "\n")
	builder.WriteString(lineStyle.Sprintf("%d | ", lineNum) + line + "\n")
	builder.WriteString(lineStyle.Sprintf("%s | ", pad) + messageStyle.Sprintf("%s %s", caret, issue.Message) + "\n")
	return builder.String()
}
