package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliaslint/aliaslint/internal/aliases"
	"github.com/aliaslint/aliaslint/internal/lints"
	tt "github.com/aliaslint/aliaslint/internal/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestEngine(t *testing.T, root string, rules map[string]tt.ConfigRule) *Engine {
	t.Helper()
	engine, err := NewEngine(root, rules, lints.DefaultSettings(), []aliases.Item{
		{Alias: "@lib/", Path: filepath.Join(root, "lib")},
	})
	require.NoError(t, err)
	return engine
}

func TestEngineRunFlagsDeepRelativeImport(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "src", "app", "pages", "home.ts")
	writeFile(t, file, `import util from '../../../lib/util';`)

	engine := newTestEngine(t, root, nil)
	issues, err := engine.Run(file)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	assert.Equal(t, lints.RelativeImportRuleName, issues[0].Rule)
	assert.Equal(t, "@lib/util", issues[0].Suggestion)
	assert.Equal(t, file, issues[0].Filename)
}

func TestEngineRunRespectsNolint(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "src", "app", "pages", "home.ts")
	writeFile(t, file, `import util from '../../../lib/util'; // nolint:no-relative-imports`)

	engine := newTestEngine(t, root, nil)
	issues, err := engine.Run(file)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineIgnoreRule(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "src", "app", "pages", "home.ts")
	writeFile(t, file, `import util from '../../../lib/util';`)

	engine := newTestEngine(t, root, nil)
	engine.IgnoreRule(lints.RelativeImportRuleName)
	issues, err := engine.Run(file)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineIgnorePath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "src", "vendor", "deep.ts")
	writeFile(t, file, `import util from '../../../../../lib/util';`)

	engine := newTestEngine(t, root, nil)
	engine.IgnorePath("vendor")
	issues, err := engine.Run(file)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineSeverityOffDisablesRule(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "src", "main.ts")
	writeFile(t, file, "import a from './x';\nimport b from './x';\n")

	engine := newTestEngine(t, root, map[string]tt.ConfigRule{
		lints.DuplicateImportRuleName: {Severity: tt.SeverityOff},
	})
	issues, err := engine.Run(file)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineSeverityOverride(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "src", "main.ts")
	writeFile(t, file, "import a from './x';\nimport b from './x';\n")

	engine := newTestEngine(t, root, map[string]tt.ConfigRule{
		lints.DuplicateImportRuleName: {Severity: tt.SeverityError},
	})
	issues, err := engine.Run(file)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
}

func TestEngineRunSource(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(t.TempDir(), nil, lints.DefaultSettings(), nil)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("import a from './x/../y';"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, lints.UselessPathSegmentsRuleName, issues[0].Rule)
}

func TestEngineRunMissingFile(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, t.TempDir(), nil)
	_, err := engine.Run(filepath.Join("does", "not", "exist.ts"))
	assert.Error(t, err)
}

func TestEngineIssuesAreSortedByOffset(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "src", "main.ts")
	writeFile(t, file, "import a from './p/../q';\nimport b from './p/../q';\n")

	engine := newTestEngine(t, root, nil)
	issues, err := engine.Run(file)
	require.NoError(t, err)
	require.Len(t, issues, 3) // two useless-segments, one duplicate

	for i := 1; i < len(issues); i++ {
		assert.LessOrEqual(t, issues[i-1].Start.Offset, issues[i].Start.Offset)
	}
}
