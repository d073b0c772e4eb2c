package types

import "fmt"

// Position points into a source file. Offset is the byte offset from the
// start of the file; Line and Column are 1-based.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Fix is a byte-precise text replacement. It replaces the bytes in the
// half-open range [Start, End) with Replacement.
type Fix struct {
	Start       int
	End         int
	Replacement string
}

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule       string
	Severity   Severity
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      Position
	End        Position
	Fix        *Fix
	Confidence float64
}

// ConfigRule carries per-rule configuration from the config file.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}
