package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/repository"
)

const smartSchoolCacheKey = "reports:smart-school"

type statsSource interface {
	CountTotal(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) ([]repository.StatusCount, error)
	CountByField(ctx context.Context) ([]repository.StatusCount, error)
	CountByGender(ctx context.Context) ([]repository.StatusCount, error)
	CountByDistrictStatus(ctx context.Context) ([]repository.DistrictStatusCount, error)
	CountByDistrictGender(ctx context.Context) ([]repository.DistrictStatusCount, error)
}

// StatsService computes the smart-school report from SQL aggregates and keeps
// a short-lived cached copy so the reports page does not hammer the database.
type StatsService struct {
	repo     statsSource
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewStatsService constructs the service.
func NewStatsService(repo statsSource, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *StatsService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// BuildReport assembles the full report, serving the cached copy when fresh.
func (s *StatsService) BuildReport(ctx context.Context) (*dto.SmartSchoolReport, error) {
	var cached dto.SmartSchoolReport
	if hit, err := s.cache.Get(ctx, smartSchoolCacheKey, &cached); err == nil && hit {
		cached.Cached = true
		return &cached, nil
	}

	report, err := s.buildFresh(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, smartSchoolCacheKey, report, s.cacheTTL); err != nil {
		s.logger.Warn("cache smart school report", zap.Error(err))
	}
	return report, nil
}

// DistrictReport narrows the full report to one district.
func (s *StatsService) DistrictReport(ctx context.Context, districtCode string) (*dto.DistrictReportRow, error) {
	report, err := s.BuildReport(ctx)
	if err != nil {
		return nil, err
	}
	for i := range report.Districts {
		if report.Districts[i].DistrictCode == districtCode {
			return &report.Districts[i], nil
		}
	}
	return &dto.DistrictReportRow{
		DistrictCode: districtCode,
		ByStatus:     map[string]int{},
		ByGender:     map[string]int{},
	}, nil
}

// Invalidate drops the cached report; called after bulk data loads.
func (s *StatsService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, smartSchoolCacheKey); err != nil {
		s.logger.Warn("invalidate smart school report cache", zap.Error(err))
	}
}

func (s *StatsService) buildFresh(ctx context.Context) (*dto.SmartSchoolReport, error) {
	total, err := s.repo.CountTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("count total requests: %w", err)
	}
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	byField, err := s.repo.CountByField(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by field: %w", err)
	}
	byGender, err := s.repo.CountByGender(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by gender: %w", err)
	}
	districtStatus, err := s.repo.CountByDistrictStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by district and status: %w", err)
	}
	districtGender, err := s.repo.CountByDistrictGender(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by district and gender: %w", err)
	}

	report := &dto.SmartSchoolReport{
		TotalRequests: total,
		ByStatus:      countsToMap(byStatus),
		ByField:       countsToMap(byField),
		ByGender:      countsToMap(byGender),
	}

	districts := make(map[string]*dto.DistrictReportRow)
	for _, row := range districtStatus {
		district := ensureDistrict(districts, row.DistrictCode)
		district.ByStatus[row.Key] += row.Count
		district.TotalRequests += row.Count
	}
	for _, row := range districtGender {
		district := ensureDistrict(districts, row.DistrictCode)
		district.ByGender[row.Key] += row.Count
	}

	codes := make([]string, 0, len(districts))
	for code := range districts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	report.Districts = make([]dto.DistrictReportRow, 0, len(codes))
	for _, code := range codes {
		report.Districts = append(report.Districts, *districts[code])
	}
	return report, nil
}

func countsToMap(rows []repository.StatusCount) map[string]int {
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out
}

func ensureDistrict(districts map[string]*dto.DistrictReportRow, code string) *dto.DistrictReportRow {
	if district, ok := districts[code]; ok {
		return district
	}
	district := &dto.DistrictReportRow{
		DistrictCode: code,
		ByStatus:     map[string]int{},
		ByGender:     map[string]int{},
	}
	districts[code] = district
	return district
}
