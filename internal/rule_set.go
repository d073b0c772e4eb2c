package internal

import (
	"github.com/aliaslint/aliaslint/internal/aliases"
	"github.com/aliaslint/aliaslint/internal/jsparse"
	"github.com/aliaslint/aliaslint/internal/lints"
	tt "github.com/aliaslint/aliaslint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given parsed file and returns a
	// slice of Issues.
	Check(filename string, f *jsparse.File, table aliases.Table) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

type baseRule struct {
	severity tt.Severity
}

func (r *baseRule) Severity() tt.Severity     { return r.severity }
func (r *baseRule) SetSeverity(s tt.Severity) { r.severity = s }

type RelativeImportRule struct {
	baseRule
	settings   lints.Settings
	classifier lints.PathClassifier
}

func NewRelativeImportRule(e *Engine) LintRule {
	return &RelativeImportRule{
		baseRule:   baseRule{severity: tt.SeverityError},
		settings:   e.settings,
		classifier: e.classifier,
	}
}

func (r *RelativeImportRule) Check(filename string, f *jsparse.File, table aliases.Table) ([]tt.Issue, error) {
	return lints.DetectRelativeImports(filename, f, table, r.settings, r.classifier, r.severity), nil
}

func (r *RelativeImportRule) Name() string {
	return lints.RelativeImportRuleName
}

type DuplicateImportRule struct {
	baseRule
}

func NewDuplicateImportRule(_ *Engine) LintRule {
	return &DuplicateImportRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *DuplicateImportRule) Check(filename string, f *jsparse.File, _ aliases.Table) ([]tt.Issue, error) {
	return lints.DetectDuplicateImports(filename, f, r.severity), nil
}

func (r *DuplicateImportRule) Name() string {
	return lints.DuplicateImportRuleName
}

type UselessPathSegmentsRule struct {
	baseRule
}

func NewUselessPathSegmentsRule(_ *Engine) LintRule {
	return &UselessPathSegmentsRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *UselessPathSegmentsRule) Check(filename string, f *jsparse.File, _ aliases.Table) ([]tt.Issue, error) {
	return lints.DetectUselessPathSegments(filename, f, r.severity), nil
}

func (r *UselessPathSegmentsRule) Name() string {
	return lints.UselessPathSegmentsRuleName
}
