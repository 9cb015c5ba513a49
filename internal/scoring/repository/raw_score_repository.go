package repository

import (
	"context"
	"errors"

	"stock-quality-engine/internal/entity"

	"gorm.io/gorm"
)

type RawScoreRepository interface {
	GetLatest(ctx context.Context, assetID uint) (*entity.RawScore, error)
}

type rawScoreRepository struct {
	db *gorm.DB
}

func NewRawScoreRepository(db *gorm.DB) RawScoreRepository {
	return &rawScoreRepository{db: db}
}

// GetLatest returns the most recent raw score for the asset, or nil
// when the upstream scorer has not produced one yet.
func (r *rawScoreRepository) GetLatest(ctx context.Context, assetID uint) (*entity.RawScore, error) {
	var score entity.RawScore
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("computed_at DESC").
		First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}
