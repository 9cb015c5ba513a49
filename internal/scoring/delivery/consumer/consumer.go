package consumer

import (
	"context"
	"sync"
	"time"

	"stock-quality-engine/internal/scoring/config"
	"stock-quality-engine/internal/scoring/service"
	"stock-quality-engine/pkg/logger"
	"stock-quality-engine/pkg/utils"

	"github.com/robfig/cron/v3"
)

// RedisConsumer drives the scoring service from the batch-trigger
// stream and, optionally, an in-process cron schedule.
type RedisConsumer struct {
	cfg            *config.Config
	scoringService service.ScoringService
	logger         *logger.Logger
	cron           *cron.Cron
	stopChan       chan struct{}
	wg             sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(cfg *config.Config, scoringService service.ScoringService, log *logger.Logger) *RedisConsumer {
	return &RedisConsumer{
		cfg:            cfg,
		scoringService: scoringService,
		logger:         log,
		stopChan:       make(chan struct{}),
	}
}

// Start begins the consumer's trigger processing loop and the optional
// cron schedule.
func (c *RedisConsumer) Start(ctx context.Context) error {
	c.logger.Info("Scoring consumer started")
	c.registerStreamHandler(ctx, c.scoringService.ProcessTask, c.cfg.Scoring.RedisStreamTriggerTimeout)

	if c.cfg.Scoring.Cron != "" {
		c.cron = cron.New()
		_, err := c.cron.AddFunc(c.cfg.Scoring.Cron, func() {
			if _, err := c.scoringService.TriggerRun(ctx, "cron"); err != nil {
				c.logger.Error("Failed to enqueue scheduled run", logger.ErrorField(err))
			}
		})
		if err != nil {
			return err
		}
		c.cron.Start()
		c.logger.Info("Cron schedule registered", logger.StringField("spec", c.cfg.Scoring.Cron))
	}
	return nil
}

func (c *RedisConsumer) registerStreamHandler(ctx context.Context, fn func(ctx context.Context), timeout time.Duration) {
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Scoring consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Scoring consumer stopping")
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			}
		}
	})
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	if c.cron != nil {
		c.cron.Stop()
	}
	close(c.stopChan)
	c.wg.Wait()
	c.logger.Info("Scoring consumer stopped")
}
