package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stock-quality-engine/internal/scoring/dto"
)

// ErrNotFound marks lookups for assets or records that do not exist,
// as opposed to storage failures.
var ErrNotFound = errors.New("not found")

// GetScore returns the latest persisted score record for an asset code.
func (s *scoringService) GetScore(ctx context.Context, assetCode string) (*dto.ScoreResponse, error) {
	asset, err := s.assetRepo.FindByCode(ctx, assetCode)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("asset %s: %w", assetCode, ErrNotFound)
	}
	score, err := s.scoreRepo.FindByAssetID(ctx, asset.ID)
	if err != nil {
		return nil, err
	}
	if score == nil {
		return nil, fmt.Errorf("no score recorded for asset %s: %w", assetCode, ErrNotFound)
	}
	return &dto.ScoreResponse{
		AssetCode:  asset.Code,
		ScoreTotal: score.ScoreTotal,
		Confidence: score.Confidence,
		Breakdown:  json.RawMessage(score.Breakdown),
		UpdatedAt:  score.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// GetGating returns the latest gating decision for an asset code.
func (s *scoringService) GetGating(ctx context.Context, assetCode string) (*dto.GatingResponse, error) {
	asset, err := s.assetRepo.FindByCode(ctx, assetCode)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("asset %s: %w", assetCode, ErrNotFound)
	}
	status, err := s.gatingRepo.FindByAssetID(ctx, asset.ID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, fmt.Errorf("no gating status recorded for asset %s: %w", assetCode, ErrNotFound)
	}
	return &dto.GatingResponse{
		AssetCode:  asset.Code,
		Eligible:   status.Eligible,
		Reason:     status.Reason,
		Liquidity:  status.LiquidityUSD,
		Coverage:   status.Coverage,
		StaleRatio: status.StaleRatio,
		UpdatedAt:  status.UpdatedAt.Format(time.RFC3339),
	}, nil
}
