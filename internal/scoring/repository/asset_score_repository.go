package repository

import (
	"context"
	"errors"

	"stock-quality-engine/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssetScoreRepository interface {
	FindByAssetID(ctx context.Context, assetID uint) (*entity.AssetScore, error)
	Upsert(ctx context.Context, score *entity.AssetScore) error
}

type assetScoreRepository struct {
	db *gorm.DB
}

func NewAssetScoreRepository(db *gorm.DB) AssetScoreRepository {
	return &assetScoreRepository{db: db}
}

func (r *assetScoreRepository) FindByAssetID(ctx context.Context, assetID uint) (*entity.AssetScore, error) {
	var score entity.AssetScore
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// Upsert writes the full record in one statement so score, confidence
// and breakdown can never be observed partially updated.
func (r *assetScoreRepository) Upsert(ctx context.Context, score *entity.AssetScore) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score_total", "confidence", "breakdown", "updated_at"}),
	}).Create(score).Error
}
