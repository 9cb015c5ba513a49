package dto

import "time"

// StreamDataBatchTrigger is the payload of a batch-run trigger message
// on the score.batch.trigger stream.
type StreamDataBatchTrigger struct {
	RunID       string `json:"run_id"`
	TriggeredBy string `json:"triggered_by"`
}

// AssetFailure records one asset that could not be scored during a run.
type AssetFailure struct {
	AssetCode string `json:"asset_code"`
	Error     string `json:"error"`
}

// RunSummary aggregates the outcome of one batch run. Per-asset
// failures never abort the batch; they are collected here and reported
// at the end.
type RunSummary struct {
	RunID       string         `json:"run_id"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	Total       int            `json:"total"`
	Scored      int            `json:"scored"`
	Passthrough int            `json:"passthrough"`
	Ineligible  int            `json:"ineligible"`
	Degraded    int            `json:"degraded"`
	Failed      int            `json:"failed"`
	Failures    []AssetFailure `json:"failures,omitempty"`
}
