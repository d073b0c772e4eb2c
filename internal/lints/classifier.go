package lints

import (
	"strings"

	"github.com/aliaslint/aliaslint/internal/aliases"
)

// PathClassifier decides whether a specifier names an external package.
// External targets are a policy exclusion, never flagged. The boundary rules
// (scoped npm names vs. aliases that happen to start with '@') are
// heuristics, so the classifier is pluggable.
type PathClassifier interface {
	IsExternal(specifier string, table aliases.Table) bool
}

// DefaultClassifier treats a specifier as external unless it is relative,
// absolute, or carries a configured alias prefix. The alias table is
// consulted first so an alias literally named "@scope/" claims "@scope/pkg"
// before the bare-name test can.
type DefaultClassifier struct{}

func (DefaultClassifier) IsExternal(specifier string, table aliases.Table) bool {
	if specifier == "" {
		return false
	}
	for _, item := range table {
		if strings.HasPrefix(specifier, item.Alias) ||
			specifier == strings.TrimSuffix(item.Alias, "/") {
			return false
		}
	}
	if specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") ||
		strings.HasPrefix(specifier, "../") ||
		strings.HasPrefix(specifier, "/") {
		return false
	}
	return true
}
