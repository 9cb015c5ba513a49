package repository

import (
	"context"
	"errors"

	"stock-quality-engine/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GatingStatusRepository interface {
	FindByAssetID(ctx context.Context, assetID uint) (*entity.GatingStatus, error)
	Upsert(ctx context.Context, status *entity.GatingStatus) error
}

type gatingStatusRepository struct {
	db *gorm.DB
}

func NewGatingStatusRepository(db *gorm.DB) GatingStatusRepository {
	return &gatingStatusRepository{db: db}
}

func (r *gatingStatusRepository) FindByAssetID(ctx context.Context, assetID uint) (*entity.GatingStatus, error) {
	var status entity.GatingStatus
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *gatingStatusRepository) Upsert(ctx context.Context, status *entity.GatingStatus) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"eligible", "reason", "liquidity_usd", "coverage", "stale_ratio", "updated_at"}),
	}).Create(status).Error
}
