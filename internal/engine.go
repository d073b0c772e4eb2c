package internal

import (
	"sort"
	"strings"
	"sync"

	"github.com/aliaslint/aliaslint/internal/aliases"
	"github.com/aliaslint/aliaslint/internal/jsparse"
	"github.com/aliaslint/aliaslint/internal/lints"
	"github.com/aliaslint/aliaslint/internal/nolint"
	tt "github.com/aliaslint/aliaslint/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	rootDir      string
	ignoredRules map[string]bool
	ignoredPaths []string
	rules        map[string]LintRule

	// the alias table is loaded once per root and shared read-only across
	// file analyses
	aliasCache   *aliases.Cache
	extraAliases []aliases.Item

	settings   lints.Settings
	classifier lints.PathClassifier

	watchState
}

// NewEngine creates a new lint engine rooted at rootDir. rules applies
// per-rule severities from the configuration.
func NewEngine(rootDir string, rules map[string]tt.ConfigRule, settings lints.Settings, extraAliases []aliases.Item) (*Engine, error) {
	engine := &Engine{
		rootDir:      rootDir,
		ignoredRules: make(map[string]bool),
		aliasCache:   aliases.NewCache(),
		extraAliases: extraAliases,
		settings:     settings,
		classifier:   lints.DefaultClassifier{},
	}
	engine.applyRules(rules)
	return engine, nil
}

type ruleConstructor func(e *Engine) LintRule

type ruleMap map[string]ruleConstructor

var allRuleConstructors = ruleMap{
	lints.RelativeImportRuleName:      NewRelativeImportRule,
	lints.DuplicateImportRuleName:     NewDuplicateImportRule,
	lints.UselessPathSegmentsRuleName: NewUselessPathSegmentsRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	for key, rule := range rules {
		r := e.findRule(key)
		if r == nil {
			newRuleCstr := allRuleConstructors[key]
			if newRuleCstr == nil {
				// unknown rule, continue to the next one
				continue
			}
			newRule := newRuleCstr(e)
			newRule.SetSeverity(rule.Severity)
			e.rules[key] = newRule
		} else {
			if rule.Severity == tt.SeverityOff {
				e.IgnoreRule(key)
			}
			r.SetSeverity(rule.Severity)
		}
	}
}

func (e *Engine) registerDefaultRules() {
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr(e)
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// IgnoreRule skips the named rule for the rest of the run.
func (e *Engine) IgnoreRule(rule string) {
	e.ignoredRules[rule] = true
}

// IgnorePath skips files whose path contains the given fragment.
func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, path)
}

func (e *Engine) isPathIgnored(path string) bool {
	for _, ignored := range e.ignoredPaths {
		if strings.Contains(path, ignored) {
			return true
		}
	}
	return false
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isPathIgnored(filename) {
		return nil, nil
	}

	parsed, err := jsparse.ParseFile(filename)
	if err != nil {
		return nil, err
	}
	return e.lint(filename, parsed)
}

// RunSource lints an in-memory source buffer. Used by tests and editor
// integrations; the source is treated as a .tsx file so every supported
// syntax parses.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	parsed, err := jsparse.Parse("source.tsx", source)
	if err != nil {
		return nil, err
	}
	return e.lint("source.tsx", parsed)
}

func (e *Engine) lint(filename string, parsed *jsparse.File) ([]tt.Issue, error) {
	table := e.aliasCache.Get(e.rootDir, e.extraAliases)
	nolintMgr := nolint.ParseComments(parsed)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		if e.ignoredRules[rule.Name()] || rule.Severity() == tt.SeverityOff {
			continue
		}
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			issues, err := r.Check(filename, parsed, table)
			if err != nil {
				return
			}

			kept := issues[:0]
			for _, issue := range issues {
				if !nolintMgr.IsNolint(issue.Start.Line, issue.Rule) {
					kept = append(kept, issue)
				}
			}

			mu.Lock()
			allIssues = append(allIssues, kept...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	sort.Slice(allIssues, func(i, j int) bool {
		if allIssues[i].Start.Offset != allIssues[j].Start.Offset {
			return allIssues[i].Start.Offset < allIssues[j].Start.Offset
		}
		return allIssues[i].Rule < allIssues[j].Rule
	})
	return allIssues, nil
}
