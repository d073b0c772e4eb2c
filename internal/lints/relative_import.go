package lints

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aliaslint/aliaslint/internal/aliases"
	"github.com/aliaslint/aliaslint/internal/jsparse"
	tt "github.com/aliaslint/aliaslint/internal/types"
)

const RelativeImportRuleName = "no-relative-imports"

// DetectRelativeImports flags relative import paths that should be written
// through a configured alias and attaches a fix that rewrites the literal
// between its quote delimiters.
func DetectRelativeImports(
	filename string,
	f *jsparse.File,
	table aliases.Table,
	settings Settings,
	classifier PathClassifier,
	severity tt.Severity,
) []tt.Issue {
	if classifier == nil {
		classifier = DefaultClassifier{}
	}

	var issues []tt.Issue
	for _, imp := range f.Imports {
		expected := ComputeExpectedPath(imp.Target, table)
		if !isIncorrectImport(imp.Path, expected, settings, classifier, table) {
			continue
		}

		issues = append(issues, tt.Issue{
			Rule:       RelativeImportRuleName,
			Severity:   severity,
			Filename:   filename,
			Message:    fmt.Sprintf("relative import %q should be written as %q", imp.Path, expected),
			Suggestion: expected,
			Start:      imp.StartPos,
			End:        imp.EndPos,
			// replace strictly between the quotes: one byte in from
			// each end of the literal
			Fix: &tt.Fix{
				Start:       imp.Start + 1,
				End:         imp.End - 1,
				Replacement: expected,
			},
			Confidence: 1.0,
		})
	}
	return issues
}

// ComputeExpectedPath returns the aliased form of target, or "" when no alias
// reaches it. For each table item in order the candidate is the alias prefix
// plus the path of target relative to the item's directory; the first
// candidate whose relative part does not escape the alias root wins.
func ComputeExpectedPath(target string, table aliases.Table) string {
	if target == "" || len(table) == 0 {
		return ""
	}
	for _, item := range table {
		rel, err := filepath.Rel(item.Path, target)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if isRelativeToParent(rel) {
			continue
		}
		if rel == "." {
			return strings.TrimSuffix(item.Alias, "/")
		}
		return item.Alias + rel
	}
	return ""
}

// isRelativeToParent reports whether p, once normalized, begins with a
// parent-directory traversal segment.
func isRelativeToParent(p string) bool {
	if p == "" {
		return false
	}
	p = path.Clean(filepath.ToSlash(p))
	return p == ".." || strings.HasPrefix(p, "../")
}

// countPathSeparators counts forward-slash separators in a literal specifier.
// A depth heuristic over the written text, not real path semantics.
func countPathSeparators(p string) int {
	return strings.Count(p, "/")
}

// IsMaxDepthExceeded reports whether current contains more parent-traversal
// segments than settings.MaxDepth allows.
func IsMaxDepthExceeded(current string, settings Settings) bool {
	if current == "" {
		return false
	}
	n := strings.Count(current, "../")
	if sep := string(os.PathSeparator); sep != "/" {
		n += strings.Count(current, ".."+sep)
	}
	return n > settings.MaxDepth
}

// isIncorrectImport decides whether the written specifier should be replaced
// by its aliased form. Depth exceedance fires unconditionally; the suggested
// heuristic only fires when the written form carries more separators than the
// aliased form would.
func isIncorrectImport(current, expected string, settings Settings, classifier PathClassifier, table aliases.Table) bool {
	if current == "" || expected == "" {
		return false
	}
	if classifier.IsExternal(expected, table) {
		return false
	}
	if IsMaxDepthExceeded(current, settings) {
		return true
	}
	if settings.Suggested {
		return countPathSeparators(current) > countPathSeparators(expected)
	}
	return false
}
