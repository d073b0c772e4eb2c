package lints

import (
	"fmt"

	"github.com/aliaslint/aliaslint/internal/jsparse"
	tt "github.com/aliaslint/aliaslint/internal/types"
)

const DuplicateImportRuleName = "duplicate-import"

// DetectDuplicateImports flags specifiers imported more than once in a file.
func DetectDuplicateImports(filename string, f *jsparse.File, severity tt.Severity) []tt.Issue {
	firstSeen := make(map[string]int)

	var issues []tt.Issue
	for _, imp := range f.Imports {
		if imp.Path == "" {
			continue
		}
		if line, ok := firstSeen[imp.Path]; ok {
			issues = append(issues, tt.Issue{
				Rule:       DuplicateImportRuleName,
				Severity:   severity,
				Filename:   filename,
				Message:    fmt.Sprintf("%q is already imported on line %d", imp.Path, line),
				Start:      imp.StartPos,
				End:        imp.EndPos,
				Confidence: 1.0,
			})
			continue
		}
		firstSeen[imp.Path] = imp.StartPos.Line
	}
	return issues
}
