package dto

import "encoding/json"

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ScoreResponse is the API shape of a persisted asset score.
type ScoreResponse struct {
	AssetCode  string          `json:"asset_code"`
	ScoreTotal float64         `json:"score_total"`
	Confidence int             `json:"confidence"`
	Breakdown  json.RawMessage `json:"breakdown"`
	UpdatedAt  string          `json:"updated_at"`
}

// GatingResponse is the API shape of a persisted gating status.
type GatingResponse struct {
	AssetCode  string  `json:"asset_code"`
	Eligible   bool    `json:"eligible"`
	Reason     *string `json:"reason"`
	Liquidity  float64 `json:"liquidity"`
	Coverage   float64 `json:"coverage"`
	StaleRatio float64 `json:"stale_ratio"`
	UpdatedAt  string  `json:"updated_at"`
}

// TriggerRunResponse acknowledges an enqueued batch run.
type TriggerRunResponse struct {
	RunID string `json:"run_id"`
}
