package entity

import "time"

// RawScore is the momentum/value/safety composite supplied by the
// upstream scoring service. Read-only input to the adjustment engine.
type RawScore struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	AssetID    uint      `gorm:"not null;index" json:"asset_id"`
	ScoreTotal float64   `gorm:"not null" json:"score_total"`
	ComputedAt time.Time `gorm:"not null" json:"computed_at"`
}

func (RawScore) TableName() string {
	return "raw_scores"
}
