package types

import (
	"testing"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Tier
		wantErr bool
	}{
		{"minimal", "minimal", TierMinimal, false},
		{"standard", "standard", TierStandard, false},
		{"full", "full", TierFull, false},
		{"empty defaults to full", "", TierFull, false},
		{"mixed case", "Standard", TierStandard, false},
		{"invalid", "maximal", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTier(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTierCategoriesAreCumulative(t *testing.T) {
	tiers := AllTiers()
	for i := 1; i < len(tiers); i++ {
		smaller := tiers[i-1]
		larger := tiers[i]
		for _, category := range smaller.Categories() {
			if !larger.Includes(category) {
				t.Errorf("tier %s is missing category %q from tier %s", larger, category, smaller)
			}
		}
		if len(larger.Categories()) <= len(smaller.Categories()) {
			t.Errorf("tier %s should include more categories than tier %s", larger, smaller)
		}
	}
}

func TestTierValidate(t *testing.T) {
	for _, tier := range AllTiers() {
		if err := tier.Validate(); err != nil {
			t.Errorf("Validate() on %s returned error: %v", tier, err)
		}
	}
	if err := Tier("").Validate(); err == nil {
		t.Error("Validate() on empty tier should return error")
	}
	if err := Tier("bogus").Validate(); err == nil {
		t.Error("Validate() on bogus tier should return error")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseErrorClass(t *testing.T) {
	tests := []struct {
		input   string
		want    ErrorClass
		wantErr bool
	}{
		{"Syntax", ErrorSyntax, false},
		{"syntax", ErrorSyntax, false},
		{"UNEXPECTEDEND", ErrorUnexpectedEnd, false},
		{"NameConflict", ErrorNameConflict, false},
		{"NoSuchClass", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseErrorClass(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseErrorClass(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseErrorClass(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLangVersion(t *testing.T) {
	if err := ValidateLangVersion("1.0"); err != nil {
		t.Errorf("ValidateLangVersion(1.0) returned error: %v", err)
	}
	if err := ValidateLangVersion("2.0"); err == nil {
		t.Error("ValidateLangVersion(2.0) should return error")
	}

	dir, err := LangVersionDir("1.0")
	if err != nil {
		t.Fatalf("LangVersionDir(1.0) returned error: %v", err)
	}
	if dir != "V1_0" {
		t.Errorf("LangVersionDir(1.0) = %q, want V1_0", dir)
	}
	if _, err := LangVersionDir("0.9"); err == nil {
		t.Error("LangVersionDir(0.9) should return error")
	}
}

func TestStatusIsPassing(t *testing.T) {
	if !StatusPass.IsPassing() {
		t.Error("StatusPass should be passing")
	}
	if !StatusPassWithDeviation.IsPassing() {
		t.Error("StatusPassWithDeviation should be passing")
	}
	if StatusFail.IsPassing() {
		t.Error("StatusFail should not be passing")
	}
}
