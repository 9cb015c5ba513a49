package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"stock-quality-engine/internal/entity"
	"stock-quality-engine/internal/scoring/config"
	"stock-quality-engine/internal/scoring/dto"
	"stock-quality-engine/internal/scoring/engine"
	"stock-quality-engine/internal/scoring/repository"
	"stock-quality-engine/pkg/common"
	"stock-quality-engine/pkg/logger"
	"stock-quality-engine/pkg/telegram"
	"stock-quality-engine/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ScoringService runs the asset quality and liquidity score adjustment
// pipeline over the configured universe.
type ScoringService interface {
	ProcessTask(ctx context.Context)
	TriggerRun(ctx context.Context, triggeredBy string) (string, error)
	RunBatch(ctx context.Context, trigger dto.StreamDataBatchTrigger) *dto.RunSummary
	GetScore(ctx context.Context, assetCode string) (*dto.ScoreResponse, error)
	GetGating(ctx context.Context, assetCode string) (*dto.GatingResponse, error)
}

type scoringService struct {
	cfg             *config.Config
	log             *logger.Logger
	redisClient     *redis.Client
	assetRepo       repository.AssetRepository
	priceBarRepo    repository.PriceBarRepository
	rawScoreRepo    repository.RawScoreRepository
	scoreRepo       repository.AssetScoreRepository
	gatingRepo      repository.GatingStatusRepository
	notifier        telegram.Notifier
	adjustedMarkets map[string]struct{}
	now             func() time.Time
}

// NewScoringService creates a new ScoringService. notifier may be nil
// when operator notifications are disabled.
func NewScoringService(
	cfg *config.Config,
	log *logger.Logger,
	redisClient *redis.Client,
	assetRepo repository.AssetRepository,
	priceBarRepo repository.PriceBarRepository,
	rawScoreRepo repository.RawScoreRepository,
	scoreRepo repository.AssetScoreRepository,
	gatingRepo repository.GatingStatusRepository,
	notifier telegram.Notifier,
) ScoringService {
	markets := make(map[string]struct{}, len(cfg.Scoring.AdjustedMarkets))
	for _, m := range cfg.Scoring.AdjustedMarkets {
		markets[m] = struct{}{}
	}
	return &scoringService{
		cfg:             cfg,
		log:             log,
		redisClient:     redisClient,
		assetRepo:       assetRepo,
		priceBarRepo:    priceBarRepo,
		rawScoreRepo:    rawScoreRepo,
		scoreRepo:       scoreRepo,
		gatingRepo:      gatingRepo,
		notifier:        notifier,
		adjustedMarkets: markets,
		now:             time.Now,
	}
}

// ProcessTask dequeues and executes a single batch-run trigger.
func (s *scoringService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamScoreBatchTrigger, ">"},
		Count:    1,
		Block:    2 * time.Second, // allow graceful shutdown
	}).Result()
	if err != nil {
		if err == context.Canceled || err == redis.Nil {
			return
		}
		s.log.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]
	payload, ok := message.Values["payload"].(string)
	if !ok {
		s.log.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", message.ID))
		return
	}

	var trigger dto.StreamDataBatchTrigger
	if err := json.Unmarshal([]byte(payload), &trigger); err != nil {
		s.log.Error("Failed to unmarshal trigger payload", logger.ErrorField(err), logger.Field("message_id", message.ID))
		return
	}

	s.log.Info("Processing batch run", logger.StringField("run_id", trigger.RunID), logger.StringField("triggered_by", trigger.TriggeredBy))
	s.RunBatch(ctx, trigger)

	if err := s.ackNDel(ctx, common.RedisStreamScoreBatchTrigger, message.ID); err != nil {
		s.log.Error("Failed to acknowledge trigger message", logger.ErrorField(err), logger.Field("message_id", message.ID))
	}
}

// TriggerRun enqueues a batch run and returns its run ID.
func (s *scoringService) TriggerRun(ctx context.Context, triggeredBy string) (string, error) {
	trigger := dto.StreamDataBatchTrigger{
		RunID:       uuid.NewString(),
		TriggeredBy: triggeredBy,
	}
	payload, err := json.Marshal(trigger)
	if err != nil {
		return "", err
	}
	if err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamScoreBatchTrigger,
		Values: map[string]interface{}{"payload": payload},
		MaxLen: s.cfg.Redis.StreamMaxLen,
	}).Err(); err != nil {
		return "", err
	}
	s.log.Info("Batch run enqueued", logger.StringField("run_id", trigger.RunID), logger.StringField("triggered_by", triggeredBy))
	return trigger.RunID, nil
}

// RunBatch scores every asset in the universe with a bounded worker
// pool. Per-asset computation is independent; a single asset's failure
// never aborts the batch.
func (s *scoringService) RunBatch(ctx context.Context, trigger dto.StreamDataBatchTrigger) *dto.RunSummary {
	summary := &dto.RunSummary{RunID: trigger.RunID, StartedAt: s.now()}

	assets, err := s.assetRepo.GetAssets(ctx)
	if err != nil {
		s.log.Error("Failed to load asset universe", logger.ErrorField(err), logger.StringField("run_id", trigger.RunID))
		summary.CompletedAt = s.now()
		return summary
	}
	summary.Total = len(assets)

	concurrency := s.cfg.Scoring.MaxConcurrentAssets
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, asset := range assets {
		asset := asset
		wg.Add(1)
		sem <- struct{}{}
		utils.GoSafe(func() {
			defer wg.Done()
			defer func() { <-sem }()

			outcome, err := s.scoreAsset(ctx, asset)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				summary.Failures = append(summary.Failures, dto.AssetFailure{AssetCode: asset.Code, Error: err.Error()})
				s.log.Warn("Asset scoring failed", logger.ErrorField(err), logger.StringField("asset_code", asset.Code), logger.StringField("run_id", trigger.RunID))
				return
			}
			switch {
			case outcome.passthrough:
				summary.Passthrough++
			case outcome.degraded:
				summary.Degraded++
			default:
				summary.Scored++
			}
			if outcome.ineligible {
				summary.Ineligible++
			}
		})
	}
	wg.Wait()

	summary.CompletedAt = s.now()
	s.log.Info("Batch run completed",
		logger.StringField("run_id", trigger.RunID),
		logger.IntField("total", summary.Total),
		logger.IntField("scored", summary.Scored),
		logger.IntField("passthrough", summary.Passthrough),
		logger.IntField("ineligible", summary.Ineligible),
		logger.IntField("degraded", summary.Degraded),
		logger.IntField("failed", summary.Failed))

	s.publishSummary(ctx, summary)
	s.notifyOperators(ctx, summary)
	return summary
}

type assetOutcome struct {
	passthrough bool
	degraded    bool
	ineligible  bool
}

func (s *scoringService) scoreAsset(ctx context.Context, asset entity.Asset) (assetOutcome, error) {
	var outcome assetOutcome

	rawScore, err := s.rawScoreRepo.GetLatest(ctx, asset.ID)
	if err != nil {
		return outcome, fmt.Errorf("load raw score: %w", err)
	}
	if rawScore == nil {
		return outcome, fmt.Errorf("no raw score available for asset %s", asset.Code)
	}

	prev, err := s.scoreRepo.FindByAssetID(ctx, asset.ID)
	if err != nil {
		return outcome, fmt.Errorf("load previous score: %w", err)
	}

	now := s.now()

	if !s.inAdjustedScope(asset) {
		outcome.passthrough = true
		return outcome, s.writePassthrough(ctx, asset, rawScore.ScoreTotal, prev, now)
	}

	to := now
	from := now.AddDate(0, 0, -s.cfg.Scoring.LookbackDays)
	bars, err := s.priceBarRepo.GetBars(ctx, asset.ID, from, to)
	if err != nil {
		return outcome, fmt.Errorf("load price bars: %w", err)
	}

	metrics := engine.ComputeMetrics(bars, utils.CountWeekdays(from, to))
	confidence, finalScore, breakdown, degraded := s.computeAdjustment(rawScore.ScoreTotal, metrics, prev)
	outcome.degraded = degraded

	gate := engine.EvaluateGate(metrics, s.cfg.Scoring.Engine.Gating)
	outcome.ineligible = !gate.Eligible

	record, err := engine.MergeScore(prev, asset.ID, finalScore, confidence, breakdown, now)
	if err != nil {
		return outcome, fmt.Errorf("merge score: %w", err)
	}

	if err := s.withRetry(ctx, func(ctx context.Context) error {
		return s.scoreRepo.Upsert(ctx, &record)
	}); err != nil {
		return outcome, fmt.Errorf("upsert score: %w", err)
	}

	status := entity.GatingStatus{
		AssetID:      asset.ID,
		Eligible:     gate.Eligible,
		LiquidityUSD: gate.LiquidityUSD,
		Coverage:     gate.Coverage,
		StaleRatio:   gate.StaleRatio,
		UpdatedAt:    now,
	}
	if gate.Reason != "" {
		reason := gate.Reason
		status.Reason = &reason
	}
	if err := s.withRetry(ctx, func(ctx context.Context) error {
		return s.gatingRepo.Upsert(ctx, &status)
	}); err != nil {
		return outcome, fmt.Errorf("upsert gating status: %w", err)
	}

	return outcome, nil
}

// computeAdjustment runs the pure scoring math, falling back to a raw
// score passthrough with a degraded breakdown if anything panics.
func (s *scoringService) computeAdjustment(rawScore float64, metrics engine.InvestabilityMetrics, prev *entity.AssetScore) (confidence int, finalScore float64, breakdown engine.Breakdown, degraded bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("Score adjustment failed, passing raw score through", logger.Field("panic", r))
			degraded = true
			finalScore = rawScore
			confidence = s.cfg.Scoring.Engine.Confidence.MinConfidence
			if prev != nil {
				confidence = prev.Confidence
			}
			breakdown = engine.Breakdown{
				Version:  engine.BreakdownVersion,
				Degraded: true,
				Features: engine.BreakdownFeatures{
					RawScoreTotal:   rawScore,
					FinalScoreTotal: rawScore,
					CapsApplied:     []string{},
				},
			}
		}
	}()

	confidence = engine.ScoreConfidence(metrics, s.cfg.Scoring.Engine.Confidence)
	adjusted := engine.Adjust(rawScore, metrics, confidence, s.cfg.Scoring.Engine.Adjuster)
	breakdown = engine.NewBreakdown(rawScore, metrics, confidence, adjusted)
	return confidence, adjusted.FinalScoreTotal, breakdown, false
}

// writePassthrough persists an out-of-scope asset with its raw score
// unmodified. Gating is not evaluated for unadjusted scopes.
func (s *scoringService) writePassthrough(ctx context.Context, asset entity.Asset, rawScore float64, prev *entity.AssetScore, now time.Time) error {
	confidence := 100
	if prev != nil {
		confidence = prev.Confidence
	}
	breakdown := engine.Breakdown{
		Version:     engine.BreakdownVersion,
		Passthrough: true,
		Features: engine.BreakdownFeatures{
			RawScoreTotal:   rawScore,
			FinalScoreTotal: rawScore,
			CapsApplied:     []string{},
		},
	}
	record, err := engine.MergeScore(prev, asset.ID, rawScore, confidence, breakdown, now)
	if err != nil {
		return fmt.Errorf("merge passthrough score: %w", err)
	}
	if err := s.withRetry(ctx, func(ctx context.Context) error {
		return s.scoreRepo.Upsert(ctx, &record)
	}); err != nil {
		return fmt.Errorf("upsert passthrough score: %w", err)
	}
	return nil
}

func (s *scoringService) inAdjustedScope(asset entity.Asset) bool {
	_, ok := s.adjustedMarkets[asset.MarketCode]
	return ok
}

// withRetry retries a persistence operation with linear backoff. The
// last error is returned once attempts are exhausted.
func (s *scoringService) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	maxAttempts := s.cfg.Scoring.UpsertMaxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * s.cfg.Scoring.UpsertRetryBackoff):
		}
	}
	return err
}

func (s *scoringService) publishSummary(ctx context.Context, summary *dto.RunSummary) {
	payload, err := json.Marshal(summary)
	if err != nil {
		s.log.Error("Failed to marshal run summary", logger.ErrorField(err), logger.StringField("run_id", summary.RunID))
		return
	}
	if err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamScoreRunSummary,
		Values: map[string]interface{}{"payload": payload},
		MaxLen: s.cfg.Redis.StreamMaxLen,
	}).Err(); err != nil {
		s.log.Error("Failed to publish run summary", logger.ErrorField(err), logger.StringField("run_id", summary.RunID))
	}
}

func (s *scoringService) notifyOperators(ctx context.Context, summary *dto.RunSummary) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendMessage(ctx, telegram.FormatRunSummary(summary)); err != nil {
		s.log.Error("Failed to send run summary notification", logger.ErrorField(err), logger.StringField("run_id", summary.RunID))
	}
}

func (s *scoringService) ackNDel(ctx context.Context, streamName, messageID string) error {
	if err := s.redisClient.XAck(ctx, streamName, common.RedisStreamGroup, messageID).Err(); err != nil {
		return err
	}
	return s.redisClient.XDel(ctx, streamName, messageID).Err()
}
