package types

import (
	"fmt"
	"strings"
)

// Tier represents a parser conformance tier. Tiers are cumulative: the
// standard tier includes every category of the minimal tier, and the full
// tier includes every category of the standard tier.
type Tier string

const (
	// TierMinimal covers the core language features only.
	TierMinimal Tier = "minimal"
	// TierStandard covers the features every regular parser should support.
	TierStandard Tier = "standard"
	// TierFull covers the complete language.
	TierFull Tier = "full"
)

// tierCategories lists the test-case categories included in each tier.
// A category is the top-level directory a test case lives in.
var tierCategories = map[Tier][]string{
	TierMinimal: {
		"byte-count",
		"core",
		"float",
	},
	TierStandard: {
		"byte-count",
		"byte-data",
		"code",
		"core",
		"date-time",
		"float",
		"multiline-byte-data",
		"multiline-code",
		"multiline-text",
		"section-list",
		"text-names",
		"value-list",
	},
	TierFull: {
		"byte-count",
		"byte-data",
		"code",
		"core",
		"date-time",
		"float",
		"multiline-byte-data",
		"multiline-code",
		"multiline-regex",
		"multiline-text",
		"regex",
		"section-list",
		"text-names",
		"time-delta",
		"value-list",
	},
}

// AllTiers returns all valid tiers, from smallest to largest.
func AllTiers() []Tier {
	return []Tier{TierMinimal, TierStandard, TierFull}
}

// Validate checks if the Tier is a valid value.
func (t Tier) Validate() error {
	switch t {
	case TierMinimal, TierStandard, TierFull:
		return nil
	case "":
		return fmt.Errorf("tier is required")
	default:
		return fmt.Errorf("invalid tier '%s' (must be minimal, standard, or full)", t)
	}
}

// String returns the string representation of the Tier.
func (t Tier) String() string {
	return string(t)
}

// Categories returns the test-case categories included in this tier.
func (t Tier) Categories() []string {
	return tierCategories[t]
}

// Includes returns true if the given category belongs to this tier.
func (t Tier) Includes(category string) bool {
	for _, c := range tierCategories[t] {
		if c == category {
			return true
		}
	}
	return false
}

// ParseTier parses a string into a Tier, ignoring case.
// An empty string selects the default full tier.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(s) {
	case "minimal":
		return TierMinimal, nil
	case "standard":
		return TierStandard, nil
	case "full", "":
		return TierFull, nil
	default:
		return "", fmt.Errorf("invalid tier '%s' (must be minimal, standard, or full)", s)
	}
}
