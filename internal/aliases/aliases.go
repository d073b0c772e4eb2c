package aliases

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Item maps an alias prefix to the project directory it stands for.
// Aliases are normalized to end with "/" so a candidate import is the plain
// concatenation of the alias and a relative path.
type Item struct {
	Alias string `yaml:"alias" json:"alias"`
	Path  string `yaml:"path" json:"path"`
}

// Table is an ordered alias list. Order matters: the first item that yields a
// usable candidate wins.
type Table []Item

// Load builds the alias table for a project root. Explicit items come first,
// followed by aliases discovered in tsconfig.json / jsconfig.json
// (compilerOptions.baseUrl + paths). A missing or malformed project
// configuration degrades to whatever the explicit items provide; Load never
// fails.
func Load(rootDir string, extra []Item) Table {
	var table Table
	for _, item := range extra {
		if it, ok := normalizeItem(rootDir, item.Alias, item.Path); ok {
			table = append(table, it)
		}
	}
	table = append(table, loadProjectConfig(rootDir)...)
	return table
}

var projectConfigFiles = []string{"tsconfig.json", "jsconfig.json"}

func loadProjectConfig(rootDir string) Table {
	for _, name := range projectConfigFiles {
		data, err := os.ReadFile(filepath.Join(rootDir, name))
		if err != nil {
			continue
		}
		table, err := parseProjectConfig(rootDir, data)
		if err != nil {
			continue
		}
		return table
	}
	return nil
}

type compilerOptions struct {
	CompilerOptions struct {
		BaseURL string          `json:"baseUrl"`
		Paths   json.RawMessage `json:"paths"`
	} `json:"compilerOptions"`
}

// parseProjectConfig extracts the alias table from a tsconfig/jsconfig body.
// The paths object is decoded off the raw token stream because its key order
// decides alias priority and a map decode would lose it.
func parseProjectConfig(rootDir string, data []byte) (Table, error) {
	var cfg compilerOptions
	if err := json.Unmarshal(stripJSONC(data), &cfg); err != nil {
		return nil, err
	}
	if len(cfg.CompilerOptions.Paths) == 0 {
		return nil, nil
	}

	base := filepath.Join(rootDir, filepath.FromSlash(cfg.CompilerOptions.BaseURL))

	dec := json.NewDecoder(bytes.NewReader(cfg.CompilerOptions.Paths))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}

	var table Table
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		pattern, ok := keyTok.(string)
		if !ok {
			return nil, nil
		}
		var targets []string
		if err := dec.Decode(&targets); err != nil {
			return nil, err
		}
		if len(targets) == 0 {
			continue
		}
		// only the first target is considered; multiple equally good
		// mappings are out of scope
		dir := filepath.Join(base, filepath.FromSlash(strings.TrimSuffix(targets[0], "*")))
		if item, ok := normalizeItem(rootDir, strings.TrimSuffix(pattern, "*"), dir); ok {
			table = append(table, item)
		}
	}
	return table, nil
}

func normalizeItem(rootDir, alias, dir string) (Item, bool) {
	alias = strings.TrimSpace(alias)
	dir = strings.TrimSpace(dir)
	if alias == "" || dir == "" {
		return Item{}, false
	}
	if !strings.HasSuffix(alias, "/") {
		alias += "/"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(rootDir, dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Item{}, false
	}
	return Item{Alias: alias, Path: filepath.Clean(abs)}, true
}

// stripJSONC removes // and /* */ comments plus trailing commas so tsconfig
// files, which allow both, survive a strict JSON decode. String contents are
// left untouched. Comments go first; a trailing comma may only reveal itself
// once the comment sitting between it and the closing brace is gone.
func stripJSONC(data []byte) []byte {
	return stripTrailingCommas(stripComments(data))
}

func stripComments(data []byte) []byte {
	var out bytes.Buffer
	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out.WriteByte(c)
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				out.WriteByte('\n')
			}
		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			i += 2
			for i+1 < len(data) && !(data[i] == '*' && data[i+1] == '/') {
				i++
			}
			i++ // skip the closing '/'
		default:
			out.WriteByte(c)
		}
	}
	return out.Bytes()
}

func stripTrailingCommas(data []byte) []byte {
	var out bytes.Buffer
	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out.WriteByte(c)
		case c == ',':
			// drop the comma when only whitespace separates it from a
			// closing brace or bracket
			j := i + 1
			for j < len(data) && (data[j] == ' ' || data[j] == '\t' || data[j] == '\n' || data[j] == '\r') {
				j++
			}
			if j < len(data) && (data[j] == '}' || data[j] == ']') {
				continue
			}
			out.WriteByte(c)
		default:
			out.WriteByte(c)
		}
	}
	return out.Bytes()
}
