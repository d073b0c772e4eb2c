package fixer

import (
	"fmt"
	"os"
	"sort"

	tt "github.com/aliaslint/aliaslint/internal/types"
)

type Fixer struct {
	DryRun        bool
	MinConfidence float64 // threshold for fixing issues
}

func New(dryRun bool, threshold float64) *Fixer {
	return &Fixer{
		DryRun:        dryRun,
		MinConfidence: threshold,
	}
}

// Fix applies the fixes attached to the given issues, grouped per file.
func (f *Fixer) Fix(issues []tt.Issue) error {
	byFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		byFile[issue.Filename] = append(byFile[issue.Filename], issue)
	}

	files := make([]string, 0, len(byFile))
	for filename := range byFile {
		files = append(files, filename)
	}
	sort.Strings(files)

	for _, filename := range files {
		if err := f.fixFile(filename, byFile[filename]); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fixer) fixFile(filename string, issues []tt.Issue) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if f.DryRun {
		for _, issue := range issues {
			if issue.Fix == nil || issue.Confidence < f.MinConfidence {
				continue
			}
			fmt.Printf("Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			fmt.Printf("Replacement: %q\n", issue.Fix.Replacement)
		}
		return nil
	}

	fixed, applied := Apply(content, issues, f.MinConfidence)
	if applied == 0 {
		return nil
	}

	if err := os.WriteFile(filename, fixed, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Fixed %d issue(s) in %s\n", applied, filename)
	return nil
}

// Apply splices the issue fixes into src and returns the result with the
// number of fixes applied. Fixes are applied back to front so earlier offsets
// stay valid; overlapping or out-of-range fixes are skipped.
func Apply(src []byte, issues []tt.Issue, minConfidence float64) ([]byte, int) {
	var fixes []tt.Fix
	for _, issue := range issues {
		if issue.Fix == nil || issue.Confidence < minConfidence {
			continue
		}
		fix := *issue.Fix
		if fix.Start < 0 || fix.End > len(src) || fix.Start > fix.End {
			continue
		}
		fixes = append(fixes, fix)
	}

	sort.Slice(fixes, func(i, j int) bool {
		return fixes[i].Start > fixes[j].Start
	})

	applied := 0
	prevStart := len(src) + 1
	out := src
	for _, fix := range fixes {
		if fix.End > prevStart {
			continue
		}
		var buf []byte
		buf = append(buf, out[:fix.Start]...)
		buf = append(buf, fix.Replacement...)
		buf = append(buf, out[fix.End:]...)
		out = buf
		prevStart = fix.Start
		applied++
	}
	return out, applied
}
