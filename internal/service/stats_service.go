package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lumora-labs/coursecraft-api/internal/models"
	appErrors "github.com/lumora-labs/coursecraft-api/pkg/errors"
)

const statsCacheKey = "coursecraft:stats:overview"

type statsRepository interface {
	Overview(ctx context.Context) (*models.StatsOverview, error)
}

type statsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// StatsService serves the aggregate overview, cached for a short TTL so
// dashboard polling does not hammer the database.
type StatsService struct {
	repo    statsRepository
	cache   statsCache
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
}

// NewStatsService constructs StatsService. A nil cache disables caching;
// metrics may be nil.
func NewStatsService(repo statsRepository, cache statsCache, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *StatsService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{repo: repo, cache: cache, metrics: metrics, ttl: ttl, logger: logger}
}

// Overview returns the stats snapshot, from cache when fresh.
func (s *StatsService) Overview(ctx context.Context) (*models.StatsOverview, error) {
	if s.cache != nil {
		var cached models.StatsOverview
		err := s.cache.Get(ctx, statsCacheKey, &cached)
		if err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheLookup(true)
			}
			return &cached, nil
		}
		if s.metrics != nil {
			s.metrics.RecordCacheLookup(false)
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
	}

	overview, err := s.repo.Overview(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load stats")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, overview, s.ttl); err != nil {
			s.logger.Warn("stats cache write failed", zap.Error(err))
		}
	}
	return overview, nil
}

// Invalidate drops the cached snapshot; called after writes that change
// the counts.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.logger.Warn("stats cache invalidate failed", zap.Error(err))
	}
}
