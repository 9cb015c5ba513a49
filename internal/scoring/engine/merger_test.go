package engine

import (
	"encoding/json"
	"testing"
	"time"

	"stock-quality-engine/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeScoreFirstRun(t *testing.T) {
	now := time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)
	breakdown := Breakdown{Version: BreakdownVersion, Features: BreakdownFeatures{CapsApplied: []string{}}}

	record, err := MergeScore(nil, 7, 42.5, 80, breakdown, now)
	require.NoError(t, err)

	assert.Equal(t, uint(7), record.AssetID)
	assert.Equal(t, 42.5, record.ScoreTotal)
	assert.Equal(t, 80, record.Confidence)
	assert.Equal(t, now, record.UpdatedAt)
}

func TestMergeScoreConfidenceNeverRecovers(t *testing.T) {
	prev := &entity.AssetScore{AssetID: 7, ScoreTotal: 10, Confidence: 30}

	record, err := MergeScore(prev, 7, 75, 80, Breakdown{Version: BreakdownVersion}, time.Now())
	require.NoError(t, err)

	// Score is always overwritten, confidence keeps the prior low mark.
	assert.Equal(t, 75.0, record.ScoreTotal)
	assert.Equal(t, 30, record.Confidence)
}

func TestMergeScoreConfidenceCanDrop(t *testing.T) {
	prev := &entity.AssetScore{AssetID: 7, Confidence: 90}

	record, err := MergeScore(prev, 7, 50, 40, Breakdown{Version: BreakdownVersion}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 40, record.Confidence)
}

func TestMergeScoreBreakdownRoundTrip(t *testing.T) {
	m := InvestabilityMetrics{
		AverageDailyValueUSD: 150_000,
		Coverage:             0.75,
		StaleRatio:           0.12,
		ZeroVolumeRatio:      0.08,
		BarCount:             45,
	}
	adjusted := Adjust(87.5, m, 27, DefaultAdjusterConfig())
	breakdown := NewBreakdown(87.5, m, 27, adjusted)

	record, err := MergeScore(nil, 3, adjusted.FinalScoreTotal, 27, breakdown, time.Now())
	require.NoError(t, err)

	var decoded Breakdown
	require.NoError(t, json.Unmarshal(record.Breakdown, &decoded))

	assert.Equal(t, BreakdownVersion, decoded.Version)
	assert.Equal(t, 87.5, decoded.Features.RawScoreTotal)
	assert.Equal(t, 27, decoded.Features.DataConfidence)
	assert.Equal(t, adjusted.CapsApplied, decoded.Features.CapsApplied)
	assert.Equal(t, adjusted.FinalScoreTotal, decoded.Features.FinalScoreTotal)
	assert.False(t, decoded.Degraded)
}

func TestMergeScoreDeterministicBreakdown(t *testing.T) {
	m := InvestabilityMetrics{AverageDailyValueUSD: 1_000_000, Coverage: 0.9, BarCount: 60}
	adjusted := Adjust(70, m, 85, DefaultAdjusterConfig())
	breakdown := NewBreakdown(70, m, 85, adjusted)
	now := time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)

	first, err := MergeScore(nil, 1, adjusted.FinalScoreTotal, 85, breakdown, now)
	require.NoError(t, err)
	second, err := MergeScore(nil, 1, adjusted.FinalScoreTotal, 85, breakdown, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
