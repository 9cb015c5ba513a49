package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AssetScore is the investability-adjusted score record, one row per
// asset, overwritten on every scoring run. Confidence never increases
// across runs without an explicit re-validation.
type AssetScore struct {
	ID         int64          `gorm:"primaryKey" json:"id"`
	AssetID    uint           `gorm:"not null;uniqueIndex" json:"asset_id"`
	ScoreTotal float64        `gorm:"not null" json:"score_total"`
	Confidence int            `gorm:"not null" json:"confidence"`
	Breakdown  datatypes.JSON `gorm:"type:jsonb" json:"breakdown"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (AssetScore) TableName() string {
	return "asset_scores"
}
