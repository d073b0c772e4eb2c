package jsparse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	tt "github.com/aliaslint/aliaslint/internal/types"
)

// ImportDecl is a single import occurrence in a source file: the string
// literal of an import/export statement, a require() call, or a dynamic
// import(). Start and End are byte offsets of the literal INCLUDING its
// surrounding quotes; Path is the specifier text between the quotes.
type ImportDecl struct {
	Node *sitter.Node

	// Path is the literal specifier as written ("../utils/helper").
	Path string

	// Target is the absolute filesystem path the specifier resolves to
	// when it is relative; for bare and aliased specifiers it is the
	// specifier itself.
	Target string

	Start int
	End   int

	StartPos tt.Position
	EndPos   tt.Position
}

// Comment is a single-line or block comment with its position. OwnLine is
// true when nothing but whitespace precedes it on its line.
type Comment struct {
	Text    string
	Line    int
	OwnLine bool
}

// File is the parse result for one source file.
type File struct {
	Path     string
	Source   []byte
	Imports  []ImportDecl
	Comments []Comment

	// FirstCodeLine is the line of the first top-level node that is not a
	// comment, or 0 when the file holds no code.
	FirstCodeLine int
}

// SupportedExtensions lists the file extensions the parser understands.
var SupportedExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
	".ts":  true,
	".tsx": true,
}

func languageFor(path string) (*sitter.Language, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage(), nil
	case ".ts":
		return typescript.GetLanguage(), nil
	case ".tsx":
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// ParseFile reads and parses a source file.
func ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Parse(path, source)
}

// Parse parses source as the language implied by path's extension and
// collects import occurrences and comments in one pass.
func Parse(path string, source []byte) (*File, error) {
	lang, err := languageFor(path)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file %s", path)
	}

	f := &File{Path: path, Source: source}
	f.collect(tree.RootNode())
	return f, nil
}

func (f *File) collect(root *sitter.Node) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != "comment" {
			f.FirstCodeLine = int(child.StartPoint().Row) + 1
			break
		}
	}

	walk(root, func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement", "export_statement":
			if lit := n.ChildByFieldName("source"); lit != nil && lit.Type() == "string" {
				f.addImport(lit)
			}
		case "call_expression":
			if lit := requireArgument(n, f.Source); lit != nil {
				f.addImport(lit)
			}
		case "comment":
			f.addComment(n)
		}
	})
}

// requireArgument returns the string literal argument of require("x") and
// dynamic import("x") calls, or nil.
func requireArgument(call *sitter.Node, source []byte) *sitter.Node {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return nil
	}
	switch fn.Type() {
	case "identifier":
		if string(source[fn.StartByte():fn.EndByte()]) != "require" {
			return nil
		}
	case "import":
	default:
		return nil
	}

	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return nil
	}
	arg := args.NamedChild(0)
	if arg.Type() != "string" {
		return nil
	}
	return arg
}

func (f *File) addImport(lit *sitter.Node) {
	start, end := int(lit.StartByte()), int(lit.EndByte())
	if end-start < 2 || end > len(f.Source) {
		return
	}
	spec := string(f.Source[start+1 : end-1])

	f.Imports = append(f.Imports, ImportDecl{
		Node:     lit,
		Path:     spec,
		Target:   resolveTarget(f.Path, spec),
		Start:    start,
		End:      end,
		StartPos: position(lit.StartPoint(), start),
		EndPos:   position(lit.EndPoint(), end),
	})
}

func (f *File) addComment(n *sitter.Node) {
	start := int(n.StartByte())
	f.Comments = append(f.Comments, Comment{
		Text:    string(f.Source[start:n.EndByte()]),
		Line:    int(n.StartPoint().Row) + 1,
		OwnLine: f.ownLine(start),
	})
}

// ownLine reports whether only whitespace precedes offset on its line.
func (f *File) ownLine(offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		c := f.Source[i]
		if c == '\n' {
			return true
		}
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}

func position(p sitter.Point, offset int) tt.Position {
	return tt.Position{
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
		Offset: offset,
	}
}

// resolveTarget maps a relative specifier to the absolute filesystem path it
// points at, anchored at the importing file's directory. Non-relative
// specifiers (bare packages, aliases, absolute paths) pass through unchanged.
func resolveTarget(filePath, spec string) string {
	if spec == "" {
		return ""
	}
	if spec == "." || spec == ".." ||
		strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") {
		abs, err := filepath.Abs(filepath.Join(filepath.Dir(filePath), filepath.FromSlash(spec)))
		if err != nil {
			return ""
		}
		return abs
	}
	return spec
}

// walk recursively traverses the tree and applies visitor to each node.
func walk(node *sitter.Node, visitor func(*sitter.Node)) {
	visitor(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visitor)
	}
}
