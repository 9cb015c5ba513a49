package telegram

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"stock-quality-engine/internal/scoring/dto"

	"github.com/stretchr/testify/assert"
)

func TestFormatRunSummary(t *testing.T) {
	started := time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)
	summary := &dto.RunSummary{
		RunID:       "run-7",
		StartedAt:   started,
		CompletedAt: started.Add(42 * time.Second),
		Total:       120,
		Scored:      110,
		Passthrough: 5,
		Ineligible:  12,
		Degraded:    1,
		Failed:      4,
		Failures: []dto.AssetFailure{
			{AssetCode: "ZOMB", Error: "no raw score available"},
		},
	}

	msg := FormatRunSummary(summary)

	assert.Contains(t, msg, "run-7")
	assert.Contains(t, msg, "42s")
	assert.Contains(t, msg, "120 total")
	assert.Contains(t, msg, "ZOMB")
}

func TestFormatRunSummaryTruncatesFailures(t *testing.T) {
	summary := &dto.RunSummary{RunID: "run-8"}
	for i := 0; i < 25; i++ {
		summary.Failures = append(summary.Failures, dto.AssetFailure{
			AssetCode: fmt.Sprintf("AST%02d", i),
			Error:     "connection reset",
		})
	}

	msg := FormatRunSummary(summary)

	assert.Equal(t, maxReportedFailures, strings.Count(msg, "connection reset"))
	assert.Contains(t, msg, "and 15 more")
}
