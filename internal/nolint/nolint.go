package nolint

import (
	"strings"

	"github.com/aliaslint/aliaslint/internal/jsparse"
)

const nolintPrefix = "nolint"

// Manager holds the nolint scopes parsed from one file's comments.
type Manager struct {
	file  *ruleSet
	lines map[int]*ruleSet
}

// ruleSet is the set of rules a nolint comment silences; all is set when the
// comment names no rules.
type ruleSet struct {
	all   bool
	rules map[string]struct{}
}

func (rs *ruleSet) matches(rule string) bool {
	if rs == nil {
		return false
	}
	if rs.all {
		return true
	}
	_, ok := rs.rules[rule]
	return ok
}

// ParseComments collects nolint scopes from a parsed file. A trailing comment
// applies to its own line, a comment on its own line applies to the next
// line, and a comment above the first code line applies to the whole file.
func ParseComments(f *jsparse.File) *Manager {
	m := &Manager{lines: make(map[int]*ruleSet)}

	for _, c := range f.Comments {
		rs, ok := parseComment(c.Text)
		if !ok {
			continue
		}
		switch {
		case !c.OwnLine:
			m.lines[c.Line] = rs
		case f.FirstCodeLine == 0 || c.Line < f.FirstCodeLine:
			m.file = rs
		default:
			m.lines[c.Line+1] = rs
		}
	}
	return m
}

// IsNolint reports whether rule is silenced at the given line.
func (m *Manager) IsNolint(line int, rule string) bool {
	if m == nil {
		return false
	}
	if m.file.matches(rule) {
		return true
	}
	return m.lines[line].matches(rule)
}

// parseComment recognizes "// nolint" and "// nolint:rule1,rule2" comments
// (block-comment form included). Anything else is ignored.
func parseComment(text string) (*ruleSet, bool) {
	text = strings.TrimPrefix(text, "//")
	if strings.HasPrefix(text, "/*") {
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	}
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, nolintPrefix) {
		return nil, false
	}
	rest := text[len(nolintPrefix):]

	if rest == "" {
		return &ruleSet{all: true}, true
	}
	if rest[0] != ':' {
		return nil, false
	}
	rest = strings.TrimSpace(rest[1:])
	if rest == "" {
		// a colon with no rules is malformed; ignore it
		return nil, false
	}

	rs := &ruleSet{rules: make(map[string]struct{})}
	for _, name := range strings.Split(rest, ",") {
		if name = strings.TrimSpace(name); name != "" {
			rs.rules[name] = struct{}{}
		}
	}
	return rs, true
}
