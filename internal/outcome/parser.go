package outcome

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/erbsland-dev/elcl-conformance/internal/types"
)

var (
	valueLinePattern = regexp.MustCompile(`(?i)^([^=]+?)\s*=\s*(\w+)\((.*)\)\s*$`)
	failLinePattern  = regexp.MustCompile(`(?i)^FAIL\s*=\s*(.*?)\s*$`)
	failClassPattern = regexp.MustCompile(`^(\w+)(?:\((.*)\))?$`)
)

// ParseFile reads and parses an expected-outcome file. Whether the file
// describes a PASS or FAIL outcome follows from the file name, which
// contains either "PASS" or "FAIL".
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read outcome file: %w", err)
	}
	name := filepath.Base(path)
	switch {
	case strings.Contains(name, "PASS"):
		return ParsePass(string(data))
	case strings.Contains(name, "FAIL"):
		return ParseFail(string(data))
	default:
		return nil, fmt.Errorf("unknown outcome file name: %s", name)
	}
}

// ParsePass parses the outcome text of an accepted document.
func ParsePass(text string) (*Document, error) {
	doc := NewDocument(types.OutcomePass)
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		match := valueLinePattern.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("line %d: unexpected format for value", i+1)
		}
		name := strings.TrimSpace(match[1])
		if _, exists := doc.Values[name]; exists {
			return nil, fmt.Errorf("line %d: duplicated name-path: %s", i+1, name)
		}
		doc.Values[name] = Value{
			Type: strings.TrimSpace(match[2]),
			Raw:  strings.TrimSpace(match[3]),
		}
	}
	return doc, nil
}

// ParseFail parses the outcome text of a rejected document. A FAIL outcome
// has exactly one failure line listing one or more error classes separated
// by '|'; an error class may carry an optional message in parentheses.
func ParseFail(text string) (*Document, error) {
	doc := NewDocument(types.OutcomeFail)
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(doc.ErrorClasses) > 0 {
			return nil, fmt.Errorf("line %d: error classes already defined in previous lines", i+1)
		}
		match := failLinePattern.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("line %d: unexpected format for failure line", i+1)
		}
		for _, entry := range strings.Split(match[1], "|") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			classMatch := failClassPattern.FindStringSubmatch(entry)
			if classMatch == nil {
				return nil, fmt.Errorf("line %d: invalid error class format: %s", i+1, entry)
			}
			errorClass, err := types.ParseErrorClass(classMatch[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: unknown error class: %s", i+1, classMatch[1])
			}
			for _, existing := range doc.ErrorClasses {
				if existing == errorClass {
					return nil, fmt.Errorf("line %d: duplicated error class: %s", i+1, errorClass)
				}
			}
			doc.ErrorClasses = append(doc.ErrorClasses, errorClass)
			if classMatch[2] != "" {
				doc.ErrorMessage = classMatch[2]
			}
		}
	}
	if len(doc.ErrorClasses) == 0 {
		return nil, fmt.Errorf("no error classes found in failure outcome")
	}
	return doc, nil
}
