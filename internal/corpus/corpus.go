// Package corpus scans the conformance test suite and produces the ordered
// set of test cases for a selected tier and language version.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/erbsland-dev/elcl-conformance/internal/types"
)

// CaseExtension is the file extension of test documents.
const CaseExtension = ".elcl"

// OutcomeExtension is the file extension of expected-outcome files.
const OutcomeExtension = ".out"

// ErrNoCases indicates that the scan found no test cases.
var ErrNoCases = errors.New("no test files found")

// Case is a single immutable test case: a configuration document plus its
// expected-outcome file.
type Case struct {
	ID          int    // position in the deterministic case order
	Name        string // corpus-relative path, slash-separated
	Category    string // top-level category directory, e.g. "core"
	Path        string // absolute path to the test document
	OutcomePath string // absolute path to the expected-outcome file
}

// Scan walks the corpus below root for the given language version and
// returns all test cases of the selected tier, sorted by their
// corpus-relative name so runs are reproducible.
//
// Every test case must have an expected-outcome sidecar; a missing sidecar
// means the suite itself is broken and aborts the scan.
func Scan(root string, tier types.Tier, version string) ([]Case, error) {
	if err := tier.Validate(); err != nil {
		return nil, err
	}
	versionDir, err := types.LangVersionDir(version)
	if err != nil {
		return nil, err
	}
	base, err := filepath.Abs(filepath.Join(root, versionDir))
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(base); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("test suite directory not found: %s", base)
	}

	var cases []Case
	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), CaseExtension) {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		category, _, found := strings.Cut(name, "/")
		if !found || !tier.Includes(category) {
			return nil
		}
		outcomePath := strings.TrimSuffix(path, CaseExtension) + OutcomeExtension
		if info, err := os.Stat(outcomePath); err != nil || info.IsDir() {
			return fmt.Errorf("the outcome file for a test case is missing: %s",
				filepath.ToSlash(strings.TrimSuffix(rel, CaseExtension)+OutcomeExtension))
		}
		cases = append(cases, Case{
			Name:        name,
			Category:    category,
			Path:        path,
			OutcomePath: outcomePath,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(cases) == 0 {
		return nil, ErrNoCases
	}

	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	for i := range cases {
		cases[i].ID = i
	}
	return cases, nil
}
