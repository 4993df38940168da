package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erbsland-dev/elcl-conformance/internal/types"
)

// detailLimit caps the number of test cases listed per detail section.
const detailLimit = 10

// Banner is the headline printed before a run starts.
const Banner = "Erbsland Configuration Language - Conformance Test"

// BannerRule is the separator line printed below the banner.
var BannerRule = strings.Repeat("-", 78)

var summaryRule = "-*" + strings.Repeat("=", 74) + "*-"

var titleCaser = cases.Title(language.English)

// textRenderer renders the fixed-width summary banner with the pass
// percentage and the tier score, followed by the failing-case details.
type textRenderer struct{}

func (r *textRenderer) Render(w io.Writer, s *Summary) error {
	var sb strings.Builder

	sb.WriteString(summaryRule + "\n\n")
	if s.Passing() {
		sb.WriteString(strings.Repeat(" ", 20) + "+*+    Conformance test PASSED    +*+\n\n")
	} else {
		sb.WriteString(strings.Repeat(" ", 20) + "XXX    Conformance test FAILED    XXX\n\n")
	}

	sb.WriteString(fmt.Sprintf("    %.2f%% tests passed (%d/%d)\n",
		s.Percentage, s.Passed, s.Total))
	if s.PassedWithDeviation > 0 {
		sb.WriteString(fmt.Sprintf("    %.2f%% tests passed with acceptable deviation (%d/%d)\n",
			roundPercentage(s.PassedWithDeviation, s.Total), s.PassedWithDeviation, s.Total))
	}
	if s.Failed > 0 {
		sb.WriteString(fmt.Sprintf("    %.2f%% tests failed (%d/%d)\n",
			roundPercentage(s.Failed, s.Total), s.Failed, s.Total))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("    %s-Tier Parser Score: %d\n\n",
		titleCaser.String(s.Tier.String()), s.Score))
	sb.WriteString(summaryRule + "\n\n")

	if s.Failed > 0 {
		sb.WriteString(fmt.Sprintf("%d Failed Tests:\n\n", s.Failed))
		writeDetails(&sb, s.failureReports(types.StatusFail))
	}
	if s.PassedWithDeviation > 0 {
		sb.WriteString(fmt.Sprintf("%d Passed Tests with Acceptable Deviation:\n\n", s.PassedWithDeviation))
		writeDetails(&sb, s.failureReports(types.StatusPassWithDeviation))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// writeDetails lists the affected cases with their difference lines,
// truncating after the detail limit.
func writeDetails(sb *strings.Builder, reports []CaseReport) {
	for i, report := range reports {
		sb.WriteString(fmt.Sprintf("  Test %s:\n", report.Case))
		for _, difference := range report.Differences {
			sb.WriteString(fmt.Sprintf("    - %s\n", difference))
		}
		if i+1 >= detailLimit && len(reports) > i+1 {
			sb.WriteString(fmt.Sprintf("  ... +%d more\n", len(reports)-(i+1)))
			break
		}
	}
}
