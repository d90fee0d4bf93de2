package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
)

type personnelSource interface {
	Search(ctx context.Context, q models.PersonnelSearch) ([]models.PersonnelRecord, error)
	Stats(ctx context.Context, personnelCode, districtCode string) (*models.PersonnelStats, error)
}

// PersonnelServiceConfig tunes search behaviour.
type PersonnelServiceConfig struct {
	SearchLimit int
	CacheTTL    time.Duration
}

// PersonnelService backs the personnel search box and the ranking-stats
// block. Results are cached briefly so repeated keystroke queries resolve
// from Redis; the cache key carries the full query, so a stale response for
// an older query can never overwrite a newer one.
type PersonnelService struct {
	repo   personnelSource
	cache  *CacheService
	logger *zap.Logger
	cfg    PersonnelServiceConfig
}

// NewPersonnelService constructs the service.
func NewPersonnelService(repo personnelSource, cache *CacheService, logger *zap.Logger, cfg PersonnelServiceConfig) *PersonnelService {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 50
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonnelService{repo: repo, cache: cache, logger: logger, cfg: cfg}
}

// Search returns roster entries matching the query.
func (s *PersonnelService) Search(ctx context.Context, q models.PersonnelSearch) ([]models.PersonnelRecord, error) {
	q.Limit = s.cfg.SearchLimit
	key := personnelSearchKey(q)

	var cached []models.PersonnelRecord
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	records, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search personnel: %w", err)
	}
	if records == nil {
		records = []models.PersonnelRecord{}
	}
	if err := s.cache.Set(ctx, key, records, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("cache personnel search", zap.String("key", key), zap.Error(err))
	}
	return records, nil
}

// Stats returns ranking figures for one personnel record.
func (s *PersonnelService) Stats(ctx context.Context, personnelCode, districtCode string) (*models.PersonnelStats, error) {
	if personnelCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "personnelCode الزامی است")
	}
	key := fmt.Sprintf("personnel:stats:%s:%s", personnelCode, districtCode)

	var cached models.PersonnelStats
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	stats, err := s.repo.Stats(ctx, personnelCode, districtCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("personnel stats: %w", err)
	}
	if err := s.cache.Set(ctx, key, stats, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("cache personnel stats", zap.String("key", key), zap.Error(err))
	}
	return stats, nil
}

func personnelSearchKey(q models.PersonnelSearch) string {
	return "personnel:search:" + strings.Join([]string{q.PersonnelCode, q.DistrictCode, strings.ToLower(q.Search)}, ":")
}
