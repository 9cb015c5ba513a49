package entity

import "time"

// GatingStatus records whether an asset may appear in ranked output.
// One row per asset, latest run only.
type GatingStatus struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	AssetID      uint      `gorm:"not null;uniqueIndex" json:"asset_id"`
	Eligible     bool      `gorm:"not null" json:"eligible"`
	Reason       *string   `json:"reason"`
	LiquidityUSD float64   `gorm:"column:liquidity_usd" json:"liquidity"`
	Coverage     float64   `gorm:"not null" json:"coverage"`
	StaleRatio   float64   `gorm:"not null" json:"stale_ratio"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (GatingStatus) TableName() string {
	return "gating_statuses"
}
