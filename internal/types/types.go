// Package types provides type-safe constants for the conformance test runner.
//
// This package centralizes all enumerated types used throughout the codebase,
// replacing magic strings with typed constants that provide compile-time safety
// and validation methods.
package types

import (
	"fmt"
	"strings"
)

// Format represents the report output format.
type Format string

const (
	// FormatText renders the human-readable report with the summary banner.
	FormatText Format = "text"
	// FormatJSON renders the machine-readable report.
	FormatJSON Format = "json"
)

// AllFormats returns all valid report formats.
func AllFormats() []Format {
	return []Format{FormatText, FormatJSON}
}

// Validate checks if the Format is a valid value.
func (f Format) Validate() error {
	switch f {
	case FormatText, FormatJSON:
		return nil
	case "":
		return fmt.Errorf("format is required")
	default:
		return fmt.Errorf("invalid format '%s' (must be text or json)", f)
	}
}

// String returns the string representation of the Format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a string into a Format.
// An empty string selects the default text format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format '%s' (must be text or json)", s)
	}
}

// Outcome represents the expected or reported result of parsing a test
// document: either the parser accepts it (PASS) or rejects it (FAIL).
type Outcome string

const (
	// OutcomePass indicates the document must parse, or the adapter accepted it.
	OutcomePass Outcome = "PASS"
	// OutcomeFail indicates the document must be rejected, or the adapter rejected it.
	OutcomeFail Outcome = "FAIL"
)

// String returns the string representation of the Outcome.
func (o Outcome) String() string {
	return string(o)
}

// Status represents the verdict of comparing an adapter outcome against the
// expected outcome.
type Status string

const (
	// StatusPass indicates the adapter outcome matched the expectation exactly.
	StatusPass Status = "pass"
	// StatusPassWithDeviation indicates the adapter reported an error class
	// that deviates from the expected one but is still accepted.
	StatusPassWithDeviation Status = "pass_with_accepted_deviation"
	// StatusFail indicates the adapter outcome did not match the expectation.
	StatusFail Status = "fail"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// IsPassing returns true unless the status is a failure.
func (s Status) IsPassing() bool {
	return s != StatusFail
}

// ErrorClass represents one of the error categories a conforming parser
// reports when it rejects a document.
type ErrorClass string

const (
	ErrorIO            ErrorClass = "IO"
	ErrorEncoding      ErrorClass = "Encoding"
	ErrorUnexpectedEnd ErrorClass = "UnexpectedEnd"
	ErrorCharacter     ErrorClass = "Character"
	ErrorSyntax        ErrorClass = "Syntax"
	ErrorLimitExceeded ErrorClass = "LimitExceeded"
	ErrorNameConflict  ErrorClass = "NameConflict"
	ErrorIndentation   ErrorClass = "Indentation"
	ErrorUnsupported   ErrorClass = "Unsupported"
	ErrorSignature     ErrorClass = "Signature"
	ErrorAccess        ErrorClass = "Access"
	ErrorValidation    ErrorClass = "Validation"
	ErrorInternal      ErrorClass = "Internal"
)

// AllErrorClasses returns all error classes defined by the language.
func AllErrorClasses() []ErrorClass {
	return []ErrorClass{
		ErrorIO, ErrorEncoding, ErrorUnexpectedEnd, ErrorCharacter,
		ErrorSyntax, ErrorLimitExceeded, ErrorNameConflict, ErrorIndentation,
		ErrorUnsupported, ErrorSignature, ErrorAccess, ErrorValidation,
		ErrorInternal,
	}
}

// String returns the string representation of the ErrorClass.
func (e ErrorClass) String() string {
	return string(e)
}

// ParseErrorClass parses a string into an ErrorClass, ignoring case.
// Returns an error if the string is not a known error class.
func ParseErrorClass(s string) (ErrorClass, error) {
	lower := strings.ToLower(s)
	for _, ec := range AllErrorClasses() {
		if strings.ToLower(string(ec)) == lower {
			return ec, nil
		}
	}
	return "", fmt.Errorf("unknown error class '%s'", s)
}

// DefaultLangVersion is the default, and currently the only supported,
// language version of the conformance suite.
const DefaultLangVersion = "1.0"

// langVersionDirs maps supported language versions to their corpus
// subdirectory names.
var langVersionDirs = map[string]string{
	"1.0": "V1_0",
}

// ValidateLangVersion checks that the requested language version is supported.
func ValidateLangVersion(version string) error {
	if _, ok := langVersionDirs[version]; !ok {
		return fmt.Errorf("unsupported language version: %s", version)
	}
	return nil
}

// LangVersionDir returns the corpus subdirectory for a language version.
// Returns an error for unsupported versions.
func LangVersionDir(version string) (string, error) {
	dir, ok := langVersionDirs[version]
	if !ok {
		return "", fmt.Errorf("unsupported language version: %s", version)
	}
	return dir, nil
}
