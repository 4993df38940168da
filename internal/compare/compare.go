// Package compare decides whether an adapter outcome matches the expected
// outcome of a test case and records the differences when it does not.
package compare

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/erbsland-dev/elcl-conformance/internal/outcome"
	"github.com/erbsland-dev/elcl-conformance/internal/types"
)

// Per-case scores. A clean pass scores higher than a pass with an accepted
// deviation; failures score nothing.
const (
	ScorePass      = 10
	ScoreDeviation = 8
)

// floatTolerance is the absolute tolerance for comparing Float values.
const floatTolerance = 0.000001

// acceptedSyntaxErrors lists the expected error classes a parser may report
// as a plain Syntax error without failing the test case. Minimal parsers are
// not required to distinguish these fine-grained classes.
var acceptedSyntaxErrors = []types.ErrorClass{
	types.ErrorUnexpectedEnd,
	types.ErrorCharacter,
	types.ErrorLimitExceeded,
	types.ErrorIndentation,
	types.ErrorUnsupported,
}

// ignoredMetaNames are informational entries a PASS outcome may contain that
// never take part in the comparison.
var ignoredMetaNames = []string{"@version", "@features"}

// Result is the verdict of comparing one test case.
type Result struct {
	Status      types.Status
	Differences []string
	Score       int
}

// Failure creates a failing result with a single difference line. It is used
// for adapter invocation failures where no outcome exists to compare.
func Failure(difference string) *Result {
	return &Result{
		Status:      types.StatusFail,
		Differences: []string{difference},
	}
}

// Outcomes compares the actual adapter outcome against the expected one.
func Outcomes(actual, expected *outcome.Document) *Result {
	if actual.Outcome != expected.Outcome {
		return &Result{
			Status: types.StatusFail,
			Differences: []string{
				fmt.Sprintf("Status: expected %s, got %s", expected.Outcome, actual.Outcome),
			},
		}
	}
	if actual.Outcome == types.OutcomeFail {
		return compareFailure(actual, expected)
	}
	return compareValues(actual, expected)
}

// compareFailure checks the single error class the adapter reported against
// the set of acceptable classes from the expected outcome.
func compareFailure(actual, expected *outcome.Document) *Result {
	result := &Result{Status: types.StatusPass}
	if len(actual.ErrorClasses) != 1 {
		result.Status = types.StatusFail
		result.Differences = append(result.Differences,
			fmt.Sprintf("Error classes: expected one, got %d", len(actual.ErrorClasses)))
		return result
	}
	actualClass := actual.ErrorClasses[0]
	for _, expectedClass := range expected.ErrorClasses {
		if actualClass == expectedClass {
			result.Score = ScorePass
			return result
		}
	}
	if actualClass == types.ErrorSyntax && isAcceptedSyntaxError(expected.ErrorClasses[0]) {
		result.Status = types.StatusPassWithDeviation
		result.Score = ScoreDeviation
		result.Differences = append(result.Differences,
			fmt.Sprintf("Expected error %s but got %s, which is also accepted.",
				expected.ErrorClasses[0], actualClass))
		return result
	}
	result.Status = types.StatusFail
	result.Differences = append(result.Differences,
		fmt.Sprintf("Error classes: expected one of %s, got %s",
			joinClasses(expected.ErrorClasses), actualClass))
	return result
}

// compareValues checks the name-path sets and every individual value of an
// accepted document. Name-paths compare case-insensitively; informational
// meta entries are ignored.
func compareValues(actual, expected *outcome.Document) *Result {
	result := &Result{Status: types.StatusPass}

	actualPaths := comparablePaths(actual)
	expectedPaths := comparablePaths(expected)

	for _, name := range actual.NamePaths() {
		if isMetaName(name) {
			continue
		}
		if _, ok := expectedPaths[strings.ToLower(name)]; !ok {
			result.Status = types.StatusFail
			result.Differences = append(result.Differences,
				fmt.Sprintf("Name path: Unexpected name-path '%s'", strings.ToLower(name)))
		}
	}
	for _, name := range expected.NamePaths() {
		if isMetaName(name) {
			continue
		}
		if _, ok := actualPaths[strings.ToLower(name)]; !ok {
			result.Status = types.StatusFail
			result.Differences = append(result.Differences,
				fmt.Sprintf("Name path: Missing name-path '%s'", strings.ToLower(name)))
		}
	}
	if result.Status == types.StatusFail {
		return result
	}

	for _, name := range actual.NamePaths() {
		if isMetaName(name) {
			continue
		}
		actualValue := actual.Values[name]
		expectedValue, ok := expectedPaths[strings.ToLower(name)]
		if !ok {
			result.Status = types.StatusFail
			result.Differences = append(result.Differences,
				fmt.Sprintf("Value '%s' has no expected counterpart", name))
			continue
		}
		if difference := compareValue(actualValue, expectedValue); difference != "" {
			result.Status = types.StatusFail
			result.Differences = append(result.Differences,
				fmt.Sprintf("Value '%s' does not match: %s", name, difference))
		}
	}
	if result.Status == types.StatusPass {
		result.Score = ScorePass
	}
	return result
}

// compareValue compares a single value and returns a difference description,
// or the empty string on a match. Float values compare within an absolute
// tolerance; everything else compares textually.
func compareValue(actual, expected outcome.Value) string {
	if actual.Type != expected.Type {
		return fmt.Sprintf("Expected type %s, got %s", expected.Type, actual.Type)
	}
	if actual.Type != "Float" {
		if actual.Raw != expected.Raw {
			return fmt.Sprintf("Expected value %s, got %s", expected.Raw, actual.Raw)
		}
		return ""
	}
	actualFloat, err1 := strconv.ParseFloat(actual.Raw, 64)
	expectedFloat, err2 := strconv.ParseFloat(expected.Raw, 64)
	if err1 != nil || err2 != nil || math.Abs(actualFloat-expectedFloat) > floatTolerance {
		return fmt.Sprintf("Expected value %s, got %s", expected.Raw, actual.Raw)
	}
	return ""
}

// comparablePaths maps the lowercase name-paths of a document to their
// values, skipping meta entries.
func comparablePaths(doc *outcome.Document) map[string]outcome.Value {
	paths := make(map[string]outcome.Value, len(doc.Values))
	for name, value := range doc.Values {
		if isMetaName(name) {
			continue
		}
		paths[strings.ToLower(name)] = value
	}
	return paths
}

func isMetaName(name string) bool {
	for _, meta := range ignoredMetaNames {
		if name == meta {
			return true
		}
	}
	return false
}

func isAcceptedSyntaxError(ec types.ErrorClass) bool {
	for _, accepted := range acceptedSyntaxErrors {
		if ec == accepted {
			return true
		}
	}
	return false
}

func joinClasses(classes []types.ErrorClass) string {
	names := make([]string, 0, len(classes))
	for _, ec := range classes {
		names = append(names, ec.String())
	}
	return strings.Join(names, ", ")
}
