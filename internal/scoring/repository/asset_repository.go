package repository

import (
	"context"
	"errors"

	"stock-quality-engine/internal/entity"

	"gorm.io/gorm"
)

type AssetRepository interface {
	GetAssets(ctx context.Context) ([]entity.Asset, error)
	FindByCode(ctx context.Context, code string) (*entity.Asset, error)
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) GetAssets(ctx context.Context) ([]entity.Asset, error) {
	var assets []entity.Asset
	if err := r.db.WithContext(ctx).Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepository) FindByCode(ctx context.Context, code string) (*entity.Asset, error) {
	var asset entity.Asset
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}
