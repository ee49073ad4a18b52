// Package guard implements the conditional-inclusion pass. Top-level
// declarations in a Go source file may carry guard comments of the
// form
//
//	//atomica:requires 64
//
// in their doc comment. When the probed capability set lacks a
// required width, the declaration is removed from the output entirely:
// its name, body, doc comment and the guard itself all disappear, so
// nothing downstream can see a symbol for it. Retained declarations
// are copied byte-for-byte.
//
// A deficient target missing from the rule table keeps its guarded
// declarations and fails later, wherever they are compiled or linked.
// That gap is a table-maintenance contract, not something this pass
// can detect.
package guard

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"atomica/internal/atomics"
)

// Marker starts a guard line inside a doc comment.
const Marker = "//atomica:requires"

// Result is the outcome of filtering one source file.
type Result struct {
	// Output is the filtered source.
	Output []byte
	// Elided names every declaration that was removed.
	Elided []string
}

// Filter evaluates the guard comments in src against the capability
// set and returns the source with failing declarations elided. A guard
// with several requires-lines drops the declaration if ANY required
// width is absent.
func Filter(filename string, src []byte, s atomics.Set) (Result, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", filename, err)
	}

	type span struct{ start, end int }
	var cuts []span
	var elided []string

	tf := fset.File(file.Pos())
	for _, decl := range file.Decls {
		doc := declDoc(decl)
		if doc == nil {
			continue
		}
		widths, err := requiredWidths(fset, doc)
		if err != nil {
			return Result{}, err
		}
		if len(widths) == 0 {
			continue
		}
		drop := false
		for _, w := range widths {
			if !s.Has(w) {
				drop = true
				break
			}
		}
		if !drop {
			continue
		}
		cuts = append(cuts, span{
			start: tf.Offset(doc.Pos()),
			end:   tf.Offset(decl.End()),
		})
		elided = append(elided, declNames(decl)...)
	}

	if len(cuts) == 0 {
		return Result{Output: src, Elided: nil}, nil
	}

	var out []byte
	prev := 0
	for _, c := range cuts {
		out = append(out, src[prev:c.start]...)
		prev = c.end
		// Swallow the newline terminating the declaration and any
		// blank lines that followed it.
		for prev < len(src) && src[prev] == '\n' {
			prev++
		}
	}
	out = append(out, src[prev:]...)
	return Result{Output: out, Elided: elided}, nil
}

func declDoc(decl ast.Decl) *ast.CommentGroup {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		return d.Doc
	case *ast.GenDecl:
		return d.Doc
	default:
		return nil
	}
}

// requiredWidths extracts the widths named by guard lines in a doc
// comment. An unparsable width is a hard error: failing closed here is
// cheaper than retaining an item the target cannot compile.
func requiredWidths(fset *token.FileSet, doc *ast.CommentGroup) ([]atomics.Width, error) {
	var widths []atomics.Width
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, Marker)
		if !ok {
			continue
		}
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			// A different directive that merely shares the prefix.
			continue
		}
		tok := strings.TrimSpace(rest)
		w, err := atomics.ParseWidth(tok)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fset.Position(c.Pos()), err)
		}
		widths = append(widths, w)
	}
	return widths, nil
}

func declNames(decl ast.Decl) []string {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		return []string{d.Name.Name}
	case *ast.GenDecl:
		var names []string
		for _, spec := range d.Specs {
			switch sp := spec.(type) {
			case *ast.TypeSpec:
				names = append(names, sp.Name.Name)
			case *ast.ValueSpec:
				for _, n := range sp.Names {
					names = append(names, n.Name)
				}
			}
		}
		return names
	default:
		return nil
	}
}
