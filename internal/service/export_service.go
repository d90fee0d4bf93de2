package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/parsa-edu/transfer-appeal-api/internal/dto"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	"github.com/parsa-edu/transfer-appeal-api/internal/repository"
	"github.com/parsa-edu/transfer-appeal-api/pkg/export"
	"github.com/parsa-edu/transfer-appeal-api/pkg/storage"
)

type exportRequestSource interface {
	List(ctx context.Context, filter repository.ServerFilter) ([]models.TransferAppealRequest, error)
}

type exportSpecSource interface {
	ListByNationalIDs(ctx context.Context, nationalIDs []string) (map[string]models.TransferApplicantSpec, error)
}

type exportReasonSource interface {
	ListActive(ctx context.Context) ([]models.TransferReason, error)
}

type smartSchoolReporter interface {
	BuildReport(ctx context.Context) (*dto.SmartSchoolReport, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, sheetTitle string) ([]byte, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix         string
	ResultTTL         time.Duration
	EnrichConcurrency int
	EnrichBatchSize   int
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ExportFormat
	ExpiresAt    time.Time
}

// SpecResult is the per-request outcome of the applicant-spec enrichment pool. A
// failed lookup degrades that row's form columns to "-" without aborting
// the batch.
type SpecResult struct {
	Spec *models.TransferApplicantSpec
	Err  error
}

// ExportService assembles export datasets and persists rendered files.
type ExportService struct {
	requests exportRequestSource
	specs    exportSpecSource
	reasons  exportReasonSource
	reports  smartSchoolReporter
	storage  fileStorage
	xlsx     xlsxRenderer
	csv      csvRenderer
	pdf      pdfRenderer
	signer   *storage.SignedURLSigner
	logger   *zap.Logger
	cfg      ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(requests exportRequestSource, specs exportSpecSource, reasons exportReasonSource, reports smartSchoolReporter, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.EnrichConcurrency <= 0 {
		cfg.EnrichConcurrency = 5
	}
	if cfg.EnrichBatchSize <= 0 {
		cfg.EnrichBatchSize = 50
	}
	return &ExportService{
		requests: requests,
		specs:    specs,
		reasons:  reasons,
		reports:  reports,
		storage:  store,
		xlsx:     export.NewXLSXExporter(),
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		signer:   signer,
		logger:   logger,
		cfg:      cfg,
	}
}

// Generate builds the dataset for a job and stores the rendered export.
func (s *ExportService) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}

	var (
		dataset export.Dataset
		title   string
		err     error
	)
	switch job.Type {
	case models.ExportTypeTransferAppeals:
		dataset, title, err = s.buildTransferAppealsDataset(ctx, job.Params)
	case models.ExportTypeSmartSchool:
		dataset, title, err = s.buildSmartSchoolDataset(ctx)
	default:
		err = fmt.Errorf("unsupported export type %s", job.Type)
	}
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch job.Params.Format {
	case models.ExportFormatXLSX:
		payload, err = s.xlsx.Render(dataset, title)
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported export format %s", job.Params.Format)
	}
	if err != nil {
		return nil, err
	}

	filename := buildExportFilename(job)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	signedURL := fmt.Sprintf("%s/exports/%s/download?token=%s", prefix, job.ID, token)

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          signedURL,
		Format:       job.Params.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func buildExportFilename(job *models.ExportJob) string {
	date := time.Now().UTC().Format("2006-01-02")
	switch job.Type {
	case models.ExportTypeSmartSchool:
		return fmt.Sprintf("smart-school-report-%s.%s", date, job.Params.Format)
	default:
		return fmt.Sprintf("transfer-appeals-%s.%s", date, job.Params.Format)
	}
}

func (s *ExportService) buildTransferAppealsDataset(ctx context.Context, params models.ExportJobParams) (export.Dataset, string, error) {
	// the configured reason list drives the presence columns; without it no
	// sheet can be assembled
	reasons, err := s.reasons.ListActive(ctx)
	if err != nil {
		return export.Dataset{}, "", fmt.Errorf("load transfer reasons: %w", err)
	}

	requests, err := s.requests.List(ctx, repository.ServerFilter{
		EmploymentField: params.EmploymentField,
		Gender:          params.Gender,
		DistrictCode:    params.DistrictCode,
	})
	if err != nil {
		return export.Dataset{}, "", fmt.Errorf("load requests: %w", err)
	}
	filtered := FilterRequests(requests, params.Filter())
	filtered = SortRequests(filtered, params.SortBy, params.SortOrder)

	specs := s.enrichSpecs(ctx, filtered)

	headers := transferAppealHeaders(reasons)
	rows := make([]map[string]string, 0, len(filtered))
	for i := range filtered {
		rows = append(rows, buildTransferAppealRow(&filtered[i], specs[filtered[i].NationalID], reasons))
	}
	return export.Dataset{Headers: headers, Rows: rows}, "درخواست‌های تجدیدنظر انتقال", nil
}

// enrichSpecs fetches the transfer form of every request in batches through
// a bounded worker pool. A failed batch records the error against each of
// its national IDs so the rows degrade without aborting the export.
func (s *ExportService) enrichSpecs(ctx context.Context, requests []models.TransferAppealRequest) map[string]SpecResult {
	results := make(map[string]SpecResult, len(requests))
	if len(requests) == 0 {
		return results
	}

	nationalIDs := make([]string, 0, len(requests))
	seen := make(map[string]struct{}, len(requests))
	for _, request := range requests {
		if _, ok := seen[request.NationalID]; ok {
			continue
		}
		seen[request.NationalID] = struct{}{}
		nationalIDs = append(nationalIDs, request.NationalID)
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	work := make(chan []string)
	for i := 0; i < s.cfg.EnrichConcurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range work {
				specs, err := s.specs.ListByNationalIDs(ctx, batch)
				mu.Lock()
				if err != nil {
					for _, nationalID := range batch {
						results[nationalID] = SpecResult{Err: err}
					}
				} else {
					for _, nationalID := range batch {
						if spec, ok := specs[nationalID]; ok {
							clone := spec
							results[nationalID] = SpecResult{Spec: &clone}
						}
					}
				}
				mu.Unlock()
				if err != nil {
					s.logger.Warn("spec enrichment batch failed",
						zap.Int("batch_size", len(batch)), zap.Error(err))
				}
			}
		}()
	}
	for start := 0; start < len(nationalIDs); start += s.cfg.EnrichBatchSize {
		end := start + s.cfg.EnrichBatchSize
		if end > len(nationalIDs) {
			end = len(nationalIDs)
		}
		work <- nationalIDs[start:end]
	}
	close(work)
	wg.Wait()
	return results
}

func transferAppealHeaders(reasons []models.TransferReason) []string {
	headers := []string{
		"کد پرسنلی", "کد ملی", "نام و نام خانوادگی", "تلفن", "جنسیت", "منطقه", "رشته شغلی",
	}
	for p := 1; p <= models.MaxDestinationPriorities; p++ {
		headers = append(headers,
			fmt.Sprintf("اولویت %d - منطقه", p),
			fmt.Sprintf("اولویت %d - نوع انتقال", p))
	}
	for _, reason := range reasons {
		headers = append(headers, reason.Title)
	}
	headers = append(headers,
		"بندهای تأییدشده", "زوج فرهنگی", "کد پرسنلی همسر", "منطقه همسر",
		"وضعیت درخواست", "نتیجه", "امتیاز تأییدشده", "رتبه در گروه", "تاریخ ثبت")
	return headers
}

func buildTransferAppealRow(request *models.TransferAppealRequest, specResult SpecResult, reasons []models.TransferReason) map[string]string {
	row := map[string]string{
		"کد پرسنلی":          request.PersonnelCode,
		"کد ملی":             request.NationalID,
		"نام و نام خانوادگی": request.FullName,
		"تلفن":               request.Phone,
		"جنسیت":              request.Gender,
		"منطقه":              request.DistrictCode,
		"رشته شغلی":          request.EmploymentField,
		"وضعیت درخواست":      request.CurrentRequestStatus.Text(),
		"نتیجه":              models.DecisionText(request.CurrentRequestStatus),
		"امتیاز تأییدشده":    formatScore(request.ApprovedScore),
		"رتبه در گروه":       RankDisplay(request),
		"تاریخ ثبت":          request.CreatedAt.Format("2006/01/02"),
	}

	selected := make(map[string]struct{}, len(request.SelectedReasons))
	for _, reason := range request.SelectedReasons {
		selected[reason.ReasonID] = struct{}{}
	}
	for _, reason := range reasons {
		if _, ok := selected[reason.ID]; ok {
			row[reason.Title] = "دارد"
		} else {
			row[reason.Title] = "-"
		}
	}

	spec := specResult.Spec
	if specResult.Err != nil || spec == nil {
		for p := 1; p <= models.MaxDestinationPriorities; p++ {
			row[fmt.Sprintf("اولویت %d - منطقه", p)] = "-"
			row[fmt.Sprintf("اولویت %d - نوع انتقال", p)] = "-"
		}
		row["بندهای تأییدشده"] = "-"
		row["زوج فرهنگی"] = "-"
		row["کد پرسنلی همسر"] = "-"
		row["منطقه همسر"] = "-"
		return row
	}

	byPriority := make(map[int]models.DestinationPriority, len(spec.DestinationPriorities))
	for _, priority := range spec.DestinationPriorities {
		byPriority[priority.Priority] = priority
	}
	for p := 1; p <= models.MaxDestinationPriorities; p++ {
		districtKey := fmt.Sprintf("اولویت %d - منطقه", p)
		typeKey := fmt.Sprintf("اولویت %d - نوع انتقال", p)
		if priority, ok := byPriority[p]; ok {
			name := priority.DistrictName
			if name == "" {
				name = priority.DistrictCode
			}
			row[districtKey] = name
			row[typeKey] = priority.TransferType
		} else {
			row[districtKey] = "-"
			row[typeKey] = "-"
		}
	}

	if len(spec.ApprovedClauses) > 0 {
		row["بندهای تأییدشده"] = strings.Join(spec.ApprovedClauses, "، ")
	} else {
		row["بندهای تأییدشده"] = "-"
	}
	if spec.CulturalCouple.IsCulturalCouple {
		row["زوج فرهنگی"] = "بله"
		row["کد پرسنلی همسر"] = orDash(spec.CulturalCouple.SpousePersonnelCode)
		row["منطقه همسر"] = orDash(spec.CulturalCouple.SpouseDistrictCode)
	} else {
		row["زوج فرهنگی"] = "خیر"
		row["کد پرسنلی همسر"] = "-"
		row["منطقه همسر"] = "-"
	}
	return row
}

func (s *ExportService) buildSmartSchoolDataset(ctx context.Context) (export.Dataset, string, error) {
	report, err := s.reports.BuildReport(ctx)
	if err != nil {
		return export.Dataset{}, "", fmt.Errorf("build smart school report: %w", err)
	}

	headers := []string{"منطقه", "کل درخواست‌ها", "وضعیت", "تعداد"}
	rows := make([]map[string]string, 0, len(report.Districts)*4)
	for _, district := range report.Districts {
		statuses := make([]string, 0, len(district.ByStatus))
		for status := range district.ByStatus {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		for _, status := range statuses {
			rows = append(rows, map[string]string{
				"منطقه":         district.DistrictCode,
				"کل درخواست‌ها": fmt.Sprintf("%d", district.TotalRequests),
				"وضعیت":         models.RequestStatus(status).Text(),
				"تعداد":         fmt.Sprintf("%d", district.ByStatus[status]),
			})
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}, "گزارش مدرسه هوشمند", nil
}

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *score)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
