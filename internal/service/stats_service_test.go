package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/repository"
	appErrors "github.com/parsa-edu/transfer-appeal-api/pkg/errors"
)

type statsSourceStub struct {
	total          int
	byStatus       []repository.StatusCount
	byField        []repository.StatusCount
	byGender       []repository.StatusCount
	districtStatus []repository.DistrictStatusCount
	districtGender []repository.DistrictStatusCount
	calls          int
}

func (s *statsSourceStub) CountTotal(ctx context.Context) (int, error) {
	s.calls++
	return s.total, nil
}

func (s *statsSourceStub) CountByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	return s.byStatus, nil
}

func (s *statsSourceStub) CountByField(ctx context.Context) ([]repository.StatusCount, error) {
	return s.byField, nil
}

func (s *statsSourceStub) CountByGender(ctx context.Context) ([]repository.StatusCount, error) {
	return s.byGender, nil
}

func (s *statsSourceStub) CountByDistrictStatus(ctx context.Context) ([]repository.DistrictStatusCount, error) {
	return s.districtStatus, nil
}

func (s *statsSourceStub) CountByDistrictGender(ctx context.Context) ([]repository.DistrictStatusCount, error) {
	return s.districtGender, nil
}

// memCacheRepo emulates the redis-backed cache with JSON round-trips so hits
// exercise the same serialisation path as production.
type memCacheRepo struct {
	entries map[string][]byte
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{entries: map[string][]byte{}}
}

func (m *memCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.entries = map[string][]byte{}
	return nil
}

func statsFixture() *statsSourceStub {
	return &statsSourceStub{
		total: 5,
		byStatus: []repository.StatusCount{
			{Key: "source_review", Count: 3},
			{Key: "user_no_action", Count: 2},
		},
		byField:  []repository.StatusCount{{Key: "آموزگار", Count: 5}},
		byGender: []repository.StatusCount{{Key: "female", Count: 3}, {Key: "male", Count: 2}},
		districtStatus: []repository.DistrictStatusCount{
			{DistrictCode: "1310", Key: "source_review", Count: 1},
			{DistrictCode: "1205", Key: "source_review", Count: 2},
			{DistrictCode: "1205", Key: "user_no_action", Count: 2},
		},
		districtGender: []repository.DistrictStatusCount{
			{DistrictCode: "1205", Key: "female", Count: 3},
			{DistrictCode: "1310", Key: "male", Count: 1},
		},
	}
}

func TestBuildReportAggregatesDistrictsInOrder(t *testing.T) {
	stub := statsFixture()
	cache := NewCacheService(nil, nil, time.Minute, zap.NewNop(), false)
	svc := NewStatsService(stub, cache, time.Minute, zap.NewNop())

	report, err := svc.BuildReport(context.Background())
	require.NoError(t, err)

	require.Equal(t, 5, report.TotalRequests)
	require.Equal(t, 3, report.ByStatus["source_review"])
	require.False(t, report.Cached)

	require.Len(t, report.Districts, 2)
	require.Equal(t, "1205", report.Districts[0].DistrictCode)
	require.Equal(t, "1310", report.Districts[1].DistrictCode)
	require.Equal(t, 4, report.Districts[0].TotalRequests)
	require.Equal(t, 3, report.Districts[0].ByGender["female"])
}

func TestBuildReportServesCachedCopy(t *testing.T) {
	stub := statsFixture()
	cache := NewCacheService(newMemCacheRepo(), nil, time.Minute, zap.NewNop(), true)
	svc := NewStatsService(stub, cache, time.Minute, zap.NewNop())

	first, err := svc.BuildReport(context.Background())
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.Equal(t, 1, stub.calls)

	second, err := svc.BuildReport(context.Background())
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, 1, stub.calls, "a fresh hit must not touch the database")
	require.Equal(t, first.TotalRequests, second.TotalRequests)
}

func TestInvalidateForcesRebuild(t *testing.T) {
	stub := statsFixture()
	cache := NewCacheService(newMemCacheRepo(), nil, time.Minute, zap.NewNop(), true)
	svc := NewStatsService(stub, cache, time.Minute, zap.NewNop())

	_, err := svc.BuildReport(context.Background())
	require.NoError(t, err)

	svc.Invalidate(context.Background())

	report, err := svc.BuildReport(context.Background())
	require.NoError(t, err)
	require.False(t, report.Cached)
	require.Equal(t, 2, stub.calls)
}

func TestDistrictReportFallsBackToEmptyRow(t *testing.T) {
	stub := statsFixture()
	cache := NewCacheService(nil, nil, time.Minute, zap.NewNop(), false)
	svc := NewStatsService(stub, cache, time.Minute, zap.NewNop())

	known, err := svc.DistrictReport(context.Background(), "1205")
	require.NoError(t, err)
	require.Equal(t, 4, known.TotalRequests)

	unknown, err := svc.DistrictReport(context.Background(), "9999")
	require.NoError(t, err)
	require.Equal(t, "9999", unknown.DistrictCode)
	require.Zero(t, unknown.TotalRequests)
	require.NotNil(t, unknown.ByStatus)
}
