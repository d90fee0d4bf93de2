package service

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	"github.com/parsa-edu/transfer-appeal-api/internal/repository"
	"github.com/parsa-edu/transfer-appeal-api/pkg/storage"
)

type exportRequestStub struct {
	requests []models.TransferAppealRequest
	err      error
}

func (s *exportRequestStub) List(ctx context.Context, filter repository.ServerFilter) ([]models.TransferAppealRequest, error) {
	return s.requests, s.err
}

type exportSpecStub struct {
	mu      sync.Mutex
	specs   map[string]*models.TransferApplicantSpec
	failFor map[string]bool

	inFlight    int32
	maxInFlight int32
	batches     [][]string
}

func (s *exportSpecStub) ListByNationalIDs(ctx context.Context, nationalIDs []string) (map[string]models.TransferApplicantSpec, error) {
	current := atomic.AddInt32(&s.inFlight, 1)
	for {
		max := atomic.LoadInt32(&s.maxInFlight)
		if current <= max || atomic.CompareAndSwapInt32(&s.maxInFlight, max, current) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)
	defer atomic.AddInt32(&s.inFlight, -1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, nationalIDs)
	out := make(map[string]models.TransferApplicantSpec, len(nationalIDs))
	for _, nationalID := range nationalIDs {
		if s.failFor[nationalID] {
			return nil, errors.New("spec lookup failed")
		}
		if spec, ok := s.specs[nationalID]; ok && spec != nil {
			out[nationalID] = *spec
		}
	}
	return out, nil
}

type exportReasonStub struct {
	reasons []models.TransferReason
	err     error
}

func (s *exportReasonStub) ListActive(ctx context.Context) ([]models.TransferReason, error) {
	return s.reasons, s.err
}

type memoryStorage struct {
	saved map[string][]byte
}

func (s *memoryStorage) Save(filename string, data []byte) (string, error) {
	if s.saved == nil {
		s.saved = map[string][]byte{}
	}
	s.saved[filename] = data
	return filename, nil
}

func (s *memoryStorage) Open(filename string) (*os.File, error) { return nil, os.ErrNotExist }
func (s *memoryStorage) Delete(filename string) error           { return nil }
func (s *memoryStorage) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	return nil, nil
}

func exportFixtureRequests() []models.TransferAppealRequest {
	return []models.TransferAppealRequest{
		{ID: "r1", PersonnelCode: "9001", NationalID: "111", FullName: "مریم احمدی",
			CurrentRequestStatus: models.StatusExceptionEligibilityApproval,
			SelectedReasons:      []models.SelectedReason{{ReasonID: "reason-1"}}},
		{ID: "r2", PersonnelCode: "9002", NationalID: "222", FullName: "علی رضایی",
			CurrentRequestStatus: models.StatusSourceRejection},
	}
}

func newExportFixture(specs *exportSpecStub, reasons *exportReasonStub, concurrency int) (*ExportService, *memoryStorage) {
	store := &memoryStorage{}
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	svc := NewExportService(
		&exportRequestStub{requests: exportFixtureRequests()},
		specs, reasons, nil, store, signer,
		ExportConfig{APIPrefix: "/api/v1", EnrichConcurrency: concurrency, EnrichBatchSize: 4},
		zap.NewNop(),
	)
	return svc, store
}

func TestExportGenerateTransferAppealsCSV(t *testing.T) {
	specs := &exportSpecStub{specs: map[string]*models.TransferApplicantSpec{
		"111": {NationalID: "111", DestinationPriorities: models.DestinationPriorities{
			{Priority: 1, DistrictCode: "1310", DistrictName: "ناحیه یک", TransferType: "دائم"},
		}, CulturalCouple: models.CulturalCouple{IsCulturalCouple: true, SpousePersonnelCode: "8800"},
			ApprovedClauses: models.StringList{"بند الف"}},
		"222": {NationalID: "222"},
	}}
	reasons := &exportReasonStub{reasons: []models.TransferReason{
		{ID: "reason-1", Title: "بیماری خاص"},
		{ID: "reason-2", Title: "همسر شاغل"},
	}}
	svc, store := newExportFixture(specs, reasons, 2)

	job := &models.ExportJob{
		ID:     "job-1",
		Type:   models.ExportTypeTransferAppeals,
		Params: models.ExportJobParams{Format: models.ExportFormatCSV},
	}
	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)
	require.Contains(t, result.URL, "/api/v1/exports/job-1/download?token=")
	require.Len(t, store.saved, 1)

	var payload []byte
	for _, data := range store.saved {
		payload = data
	}
	content := string(payload)
	require.Contains(t, content, "مریم احمدی")
	require.Contains(t, content, "ناحیه یک")
	require.Contains(t, content, "بیماری خاص")
	require.Contains(t, content, models.StatusExceptionEligibilityApproval.Text())
}

func TestExportGenerateFailsWhenReasonsUnavailable(t *testing.T) {
	svc, _ := newExportFixture(&exportSpecStub{}, &exportReasonStub{err: errors.New("db down")}, 2)

	_, err := svc.Generate(context.Background(), &models.ExportJob{
		ID: "job-1", Type: models.ExportTypeTransferAppeals,
		Params: models.ExportJobParams{Format: models.ExportFormatCSV},
	})
	require.Error(t, err)
}

func TestExportSpecFailureDegradesRow(t *testing.T) {
	specs := &exportSpecStub{
		specs:   map[string]*models.TransferApplicantSpec{"111": {NationalID: "111"}},
		failFor: map[string]bool{"222": true},
	}
	svc, store := newExportFixture(specs, &exportReasonStub{}, 2)

	_, err := svc.Generate(context.Background(), &models.ExportJob{
		ID: "job-1", Type: models.ExportTypeTransferAppeals,
		Params: models.ExportJobParams{Format: models.ExportFormatCSV},
	})
	require.NoError(t, err)

	var payload []byte
	for _, data := range store.saved {
		payload = data
	}
	// degraded rows still export with placeholder cells
	require.Contains(t, string(payload), "مریم احمدی")
	require.Contains(t, string(payload), "علی رضایی")
	require.Contains(t, string(payload), "-")
}

func TestEnrichSpecsBoundsConcurrency(t *testing.T) {
	requests := make([]models.TransferAppealRequest, 0, 20)
	specMap := make(map[string]*models.TransferApplicantSpec, 20)
	for i := 0; i < 20; i++ {
		id := string(rune('a' + i))
		requests = append(requests, models.TransferAppealRequest{ID: id, NationalID: id})
		specMap[id] = &models.TransferApplicantSpec{NationalID: id}
	}
	specs := &exportSpecStub{specs: specMap}
	svc, _ := newExportFixture(specs, &exportReasonStub{}, 3)

	results := svc.enrichSpecs(context.Background(), requests)
	require.Len(t, results, 20)
	require.LessOrEqual(t, specs.maxInFlight, int32(3))
	require.Len(t, specs.batches, 5)
	for _, batch := range specs.batches {
		require.LessOrEqual(t, len(batch), 4)
	}
}

func TestExportGenerateXLSX(t *testing.T) {
	specs := &exportSpecStub{specs: map[string]*models.TransferApplicantSpec{
		"111": {NationalID: "111"}, "222": {NationalID: "222"},
	}}
	svc, store := newExportFixture(specs, &exportReasonStub{}, 2)

	_, err := svc.Generate(context.Background(), &models.ExportJob{
		ID: "job-2", Type: models.ExportTypeTransferAppeals,
		Params: models.ExportJobParams{Format: models.ExportFormatXLSX},
	})
	require.NoError(t, err)
	for name, data := range store.saved {
		require.Contains(t, name, "transfer-appeals-")
		// xlsx payloads are zip archives
		require.Equal(t, byte('P'), data[0])
		require.Equal(t, byte('K'), data[1])
	}
}
