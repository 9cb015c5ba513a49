package entity

import (
	"time"

	"gorm.io/gorm"
)

// Asset is one tradable instrument in the scoring universe.
type Asset struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Code       string         `gorm:"not null;uniqueIndex" json:"code"`
	Name       string         `gorm:"not null" json:"name"`
	MarketCode string         `gorm:"not null;index" json:"market_code"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (Asset) TableName() string {
	return "assets"
}
