package repository

import (
	"context"
	"fmt"
	"time"

	"stock-quality-engine/internal/entity"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type PriceBarRepository interface {
	GetBars(ctx context.Context, assetID uint, from, to time.Time) ([]entity.PriceBar, error)
}

type priceBarRepository struct {
	db    *gorm.DB
	cache *gocache.Cache
}

// NewPriceBarRepository creates a price bar reader with a short-TTL
// in-memory cache, so retried or overlapping runs do not re-read
// identical windows.
func NewPriceBarRepository(db *gorm.DB, cacheTTL time.Duration) PriceBarRepository {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &priceBarRepository{
		db:    db,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func (r *priceBarRepository) GetBars(ctx context.Context, assetID uint, from, to time.Time) ([]entity.PriceBar, error) {
	key := fmt.Sprintf("%d:%s:%s", assetID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if cached, ok := r.cache.Get(key); ok {
		return cached.([]entity.PriceBar), nil
	}

	var bars []entity.PriceBar
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND date >= ? AND date <= ?", assetID, from, to).
		Order("date ASC").
		Find(&bars).Error
	if err != nil {
		return nil, err
	}

	r.cache.Set(key, bars, gocache.DefaultExpiration)
	return bars, nil
}
