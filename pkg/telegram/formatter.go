package telegram

import (
	"fmt"
	"strings"
	"time"

	"stock-quality-engine/internal/scoring/dto"
)

// maxReportedFailures bounds the failure list in a summary message so
// a bad run does not exceed the Telegram message size limit.
const maxReportedFailures = 10

// FormatRunSummary renders a batch run summary as a Markdown message
// for the operator channel.
func FormatRunSummary(summary *dto.RunSummary) string {
	var b strings.Builder

	b.WriteString("*Score adjustment run completed*\n")
	b.WriteString(fmt.Sprintf("Run: `%s`\n", summary.RunID))
	b.WriteString(fmt.Sprintf("Duration: %s\n", summary.CompletedAt.Sub(summary.StartedAt).Round(time.Millisecond)))
	b.WriteString(fmt.Sprintf("Assets: %d total, %d scored, %d passthrough\n", summary.Total, summary.Scored, summary.Passthrough))
	b.WriteString(fmt.Sprintf("Ineligible: %d, degraded: %d, failed: %d\n", summary.Ineligible, summary.Degraded, summary.Failed))

	if len(summary.Failures) > 0 {
		b.WriteString("\n*Failures:*\n")
		for i, failure := range summary.Failures {
			if i == maxReportedFailures {
				b.WriteString(fmt.Sprintf("... and %d more\n", len(summary.Failures)-maxReportedFailures))
				break
			}
			b.WriteString(fmt.Sprintf("- `%s`: %s\n", failure.AssetCode, failure.Error))
		}
	}

	return b.String()
}
