package lints

import (
	"fmt"
	"path"
	"strings"

	"github.com/aliaslint/aliaslint/internal/jsparse"
	tt "github.com/aliaslint/aliaslint/internal/types"
)

const UselessPathSegmentsRuleName = "useless-path-segments"

// DetectUselessPathSegments flags relative specifiers that normalization
// would shorten, e.g. "./a/../b" or "./b/". The fix rewrites the literal in
// place, like the relative-import rule.
func DetectUselessPathSegments(filename string, f *jsparse.File, severity tt.Severity) []tt.Issue {
	var issues []tt.Issue
	for _, imp := range f.Imports {
		normalized, ok := normalizeRelative(imp.Path)
		if !ok || normalized == imp.Path {
			continue
		}

		issues = append(issues, tt.Issue{
			Rule:       UselessPathSegmentsRuleName,
			Severity:   severity,
			Filename:   filename,
			Message:    fmt.Sprintf("useless path segments in %q, should be %q", imp.Path, normalized),
			Suggestion: normalized,
			Start:      imp.StartPos,
			End:        imp.EndPos,
			Fix: &tt.Fix{
				Start:       imp.Start + 1,
				End:         imp.End - 1,
				Replacement: normalized,
			},
			Confidence: 1.0,
		})
	}
	return issues
}

// normalizeRelative cleans a relative specifier while keeping the leading
// "./" marker. Non-relative specifiers are left alone.
func normalizeRelative(spec string) (string, bool) {
	if spec != "." && spec != ".." &&
		!strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") {
		return "", false
	}
	cleaned := path.Clean(spec)
	if cleaned != ".." && !strings.HasPrefix(cleaned, "../") && cleaned != "." {
		cleaned = "./" + cleaned
	}
	return cleaned, true
}
