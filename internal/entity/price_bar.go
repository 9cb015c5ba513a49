package entity

import "time"

// PriceBar is one daily OHLCV bar. Rows are written by the market data
// ingestion service; this engine only reads them.
type PriceBar struct {
	ID      int64     `gorm:"primaryKey" json:"id"`
	AssetID uint      `gorm:"not null;index:idx_price_bars_asset_date" json:"asset_id"`
	Date    time.Time `gorm:"not null;index:idx_price_bars_asset_date" json:"date"`
	Open    float64   `json:"open"`
	High    float64   `json:"high"`
	Low     float64   `json:"low"`
	Close   float64   `json:"close"`
	Volume  float64   `json:"volume"`
}

func (PriceBar) TableName() string {
	return "price_bars"
}
