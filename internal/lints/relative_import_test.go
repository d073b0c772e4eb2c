package lints

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliaslint/aliaslint/internal/aliases"
	"github.com/aliaslint/aliaslint/internal/jsparse"
)

func TestComputeExpectedPath(t *testing.T) {
	t.Parallel()

	appTable := aliases.Table{{Alias: "@app/", Path: "/proj/src/app"}}

	tests := []struct {
		name     string
		target   string
		table    aliases.Table
		expected string
	}{
		{
			name:     "empty target",
			target:   "",
			table:    appTable,
			expected: "",
		},
		{
			name:     "empty table",
			target:   "/proj/src/app/utils/helper",
			table:    nil,
			expected: "",
		},
		{
			name:     "target inside alias root",
			target:   "/proj/src/app/components/Button",
			table:    appTable,
			expected: "@app/components/Button",
		},
		{
			name:     "target outside alias root is rejected",
			target:   "/proj/src/utils/helper",
			table:    appTable,
			expected: "",
		},
		{
			name:   "first usable alias wins",
			target: "/proj/src/app/components/Button",
			table: aliases.Table{
				{Alias: "@components/", Path: "/proj/src/app/components"},
				{Alias: "@app/", Path: "/proj/src/app"},
			},
			expected: "@components/Button",
		},
		{
			name:   "parent-relative candidates are skipped, not selected in order",
			target: "/proj/src/app/components/Button",
			table: aliases.Table{
				{Alias: "@lib/", Path: "/proj/src/lib"},
				{Alias: "@app/", Path: "/proj/src/app"},
			},
			expected: "@app/components/Button",
		},
		{
			name:     "target equal to alias root collapses to the bare alias",
			target:   "/proj/src/app",
			table:    appTable,
			expected: "@app",
		},
		{
			name:     "bare package target never matches",
			target:   "lodash",
			table:    appTable,
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeExpectedPath(tc.target, tc.table))
		})
	}
}

func TestIsRelativeToParent(t *testing.T) {
	t.Parallel()

	assert.True(t, isRelativeToParent("../utils/helper"))
	assert.True(t, isRelativeToParent(".."))
	assert.True(t, isRelativeToParent("a/../../b"))
	assert.False(t, isRelativeToParent("components/Button"))
	assert.False(t, isRelativeToParent("a/../b"))
	assert.False(t, isRelativeToParent("."))
	assert.False(t, isRelativeToParent(""))
}

func TestCountPathSeparators(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, countPathSeparators(""))
	assert.Equal(t, 0, countPathSeparators("lodash"))
	assert.Equal(t, 2, countPathSeparators("@app/a/b"))
	assert.Equal(t, 3, countPathSeparators("../../a/b"))
}

func TestIsMaxDepthExceeded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		current  string
		maxDepth int
		expected bool
	}{
		{"three levels over limit of two", "../../../a", 2, true},
		{"one level within limit", "../a", 2, false},
		{"exactly at the limit", "../../a", 2, false},
		{"empty input", "", 2, false},
		{"zero tolerance", "../a", 0, true},
		{"plain sibling import", "./a", 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := IsMaxDepthExceeded(tc.current, Settings{MaxDepth: tc.maxDepth})
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestIsIncorrectImport(t *testing.T) {
	t.Parallel()

	classifier := DefaultClassifier{}
	table := aliases.Table{{Alias: "@app/", Path: "/proj/src/app"}}

	tests := []struct {
		name     string
		current  string
		expected string
		settings Settings
		want     bool
	}{
		{
			name:     "empty current",
			current:  "",
			expected: "@app/a",
			settings: Settings{MaxDepth: 2},
			want:     false,
		},
		{
			name:     "empty expected",
			current:  "../../a",
			expected: "",
			settings: Settings{MaxDepth: 2},
			want:     false,
		},
		{
			name:     "external expected is never flagged",
			current:  "../../../a",
			expected: "lodash",
			settings: Settings{MaxDepth: 2},
			want:     false,
		},
		{
			name:     "depth exceedance fires without suggested",
			current:  "../../../a",
			expected: "@app/a",
			settings: Settings{MaxDepth: 2},
			want:     true,
		},
		{
			name:     "depth exceedance fires even when expected is not shorter",
			current:  "../../../a",
			expected: "@app/deeply/nested/path/a",
			settings: Settings{MaxDepth: 2},
			want:     true,
		},
		{
			name:     "within depth and suggested off",
			current:  "../../a/b",
			expected: "@app/a/b",
			settings: Settings{MaxDepth: 2},
			want:     false,
		},
		{
			name:     "suggested flags textually deeper current",
			current:  "../../a/b",
			expected: "@app/a/b",
			settings: Settings{MaxDepth: 2, Suggested: true},
			want:     true,
		},
		{
			name:     "suggested suppressed when expected is deeper",
			current:  "../../a/b",
			expected: "@app/a/b/c/d",
			settings: Settings{MaxDepth: 2, Suggested: true},
			want:     false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := isIncorrectImport(tc.current, tc.expected, tc.settings, classifier, table)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDefaultClassifier(t *testing.T) {
	t.Parallel()

	table := aliases.Table{{Alias: "@app/", Path: "/proj/src/app"}}
	scoped := aliases.Table{{Alias: "@scope/", Path: "/proj/src/scope"}}
	classifier := DefaultClassifier{}

	assert.True(t, classifier.IsExternal("lodash", table))
	assert.True(t, classifier.IsExternal("@scope/pkg", table))
	assert.False(t, classifier.IsExternal("@scope/pkg", scoped), "a literal alias prefix claims the scoped name")
	assert.False(t, classifier.IsExternal("@app/a/b", table))
	assert.False(t, classifier.IsExternal("@app", table))
	assert.False(t, classifier.IsExternal("./a", table))
	assert.False(t, classifier.IsExternal("../a", table))
	assert.False(t, classifier.IsExternal("/abs/path", table))
	assert.False(t, classifier.IsExternal("", table))
}

func TestDetectRelativeImports(t *testing.T) {
	t.Parallel()

	table := aliases.Table{{Alias: "@lib/", Path: "/proj/src/lib"}}

	source := strings.Join([]string{
		`import helper from '../../../lib/util/helper';`,
		`import near from './sibling';`,
		`import lodash from 'lodash';`,
	}, "\n")

	f, err := jsparse.Parse("/proj/src/app/pages/home/index.ts", []byte(source))
	require.NoError(t, err)
	require.Len(t, f.Imports, 3)

	issues := DetectRelativeImports("/proj/src/app/pages/home/index.ts", f, table, DefaultSettings(), nil, 0)
	require.Len(t, issues, 1)

	issue := issues[0]
	assert.Equal(t, RelativeImportRuleName, issue.Rule)
	assert.Contains(t, issue.Message, `"../../../lib/util/helper"`)
	assert.Contains(t, issue.Message, `"@lib/util/helper"`)
	assert.Equal(t, "@lib/util/helper", issue.Suggestion)

	// the fix must target exactly the text between the quotes
	require.NotNil(t, issue.Fix)
	lit := f.Imports[0]
	assert.Equal(t, lit.Start+1, issue.Fix.Start)
	assert.Equal(t, lit.End-1, issue.Fix.End)
	assert.Equal(t, "../../../lib/util/helper", source[issue.Fix.Start:issue.Fix.End])
}

func TestDetectRelativeImportsFixIsIdempotent(t *testing.T) {
	t.Parallel()

	table := aliases.Table{{Alias: "@lib/", Path: "/proj/src/lib"}}
	source := `import helper from '../../../lib/helper';`

	f, err := jsparse.Parse("/proj/src/app/pages/home/index.ts", []byte(source))
	require.NoError(t, err)

	issues := DetectRelativeImports("index.ts", f, table, DefaultSettings(), nil, 0)
	require.Len(t, issues, 1)
	fix := issues[0].Fix
	require.NotNil(t, fix)

	fixed := source[:fix.Start] + fix.Replacement + source[fix.End:]
	assert.Equal(t, `import helper from '@lib/helper';`, fixed)

	refixed, err := jsparse.Parse("/proj/src/app/pages/home/index.ts", []byte(fixed))
	require.NoError(t, err)
	again := DetectRelativeImports("index.ts", refixed, table, DefaultSettings(), nil, 0)
	assert.Empty(t, again, "the fixed import must not be flagged again")
}
