// Package outcome models the normalized parsing outcome a test adapter
// emits and the expected-outcome files stored next to each test case.
//
// A PASS outcome lists every name-path of the parsed document with its
// typed value, one per line:
//
//	main.value = Integer(123)
//
// A FAIL outcome consists of a single line naming the acceptable error
// classes:
//
//	FAIL = Syntax|UnexpectedEnd
package outcome

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/erbsland-dev/elcl-conformance/internal/types"
)

// Value is a single typed value from a PASS outcome.
type Value struct {
	Type string // value type name, e.g. "Integer", "Text", "Float"
	Raw  string // textual representation inside the parentheses
}

// String returns the canonical outcome text for the value.
func (v Value) String() string {
	return fmt.Sprintf("%s(%s)", v.Type, v.Raw)
}

// Document is a parsed outcome: either the full set of name-path values of
// an accepted configuration document, or the error classes of a rejection.
type Document struct {
	Outcome      types.Outcome
	ErrorClasses []types.ErrorClass
	ErrorMessage string
	Values       map[string]Value
}

// NewDocument creates an empty document with the given outcome.
func NewDocument(o types.Outcome) *Document {
	return &Document{
		Outcome: o,
		Values:  make(map[string]Value),
	}
}

// NamePaths returns the sorted name-paths of a PASS document.
func (d *Document) NamePaths() []string {
	paths := make([]string, 0, len(d.Values))
	for name := range d.Values {
		paths = append(paths, name)
	}
	sort.Strings(paths)
	return paths
}

// Write emits the document in the canonical outcome text form.
func (d *Document) Write(w io.Writer) error {
	if d.Outcome == types.OutcomePass {
		for _, name := range d.NamePaths() {
			if _, err := fmt.Fprintf(w, "%s = %s\n", name, d.Values[name]); err != nil {
				return err
			}
		}
		return nil
	}
	classes := make([]string, 0, len(d.ErrorClasses))
	for _, ec := range d.ErrorClasses {
		classes = append(classes, ec.String())
	}
	_, err := fmt.Fprintf(w, "FAIL = %s\n", strings.Join(classes, "|"))
	return err
}
