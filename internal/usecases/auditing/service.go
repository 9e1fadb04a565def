package auditing

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vfg2006/agency-ratecard-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/repository"
	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
	"github.com/vfg2006/agency-ratecard-api/pkg/log"
	"github.com/vfg2006/agency-ratecard-api/pkg/utils"
	"github.com/vfg2006/agency-ratecard-api/pkg/validation"
)

type AuditService interface {
	AnalyzeWorkLog(ctx context.Context, request *domain.AnalyzeWorkLogRequest) (*domain.PendingReview, error)
	ToggleOverage(ctx context.Context, request *domain.ToggleOverageRequest) (*domain.PendingReview, error)
	ConfirmWorkLog(ctx context.Context, request *domain.ConfirmWorkLogRequest) (*domain.WorkLog, error)
	DeleteWorkLog(ctx context.Context, id string) error
	ListWorkLogs(ctx context.Context, brandID *string) ([]*domain.WorkLog, error)
	AuditBrand(ctx context.Context, brandID string) (*domain.BrandAudit, error)
	AuditPortfolio(ctx context.Context) ([]domain.BrandAudit, error)
	TakeSnapshot(ctx context.Context, retain int) (*domain.PortfolioSnapshot, error)
	ListSnapshots(ctx context.Context) ([]domain.PortfolioSnapshot, error)
}

type Service struct {
	mu           sync.Locker
	brandRepo    repository.BrandRepository
	workLogRepo  repository.WorkLogRepository
	rateRepo     repository.RateRepository
	snapshotRepo repository.SnapshotRepository
	mapper       gemini.Mapper
	now          func() time.Time
}

func NewService(
	mu sync.Locker,
	brandRepo repository.BrandRepository,
	workLogRepo repository.WorkLogRepository,
	rateRepo repository.RateRepository,
	snapshotRepo repository.SnapshotRepository,
	mapper gemini.Mapper,
) *Service {
	return &Service{
		mu:           mu,
		brandRepo:    brandRepo,
		workLogRepo:  workLogRepo,
		rateRepo:     rateRepo,
		snapshotRepo: snapshotRepo,
		mapper:       mapper,
		now:          time.Now,
	}
}

// AnalyzeWorkLog sends a brand's work history to the mapper. Nothing is stored until
// the returned review is confirmed.
func (s *Service) AnalyzeWorkLog(ctx context.Context, request *domain.AnalyzeWorkLogRequest) (*domain.PendingReview, error) {
	if request.BrandID == "" {
		return nil, apiErrors.NewServiceError(ErrBrandIDRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if err := validation.Struct(request.Period); err != nil {
		return nil, err
	}

	input := request.Input.MapperInput()
	if strings.TrimSpace(input) == "" {
		return nil, apiErrors.NewServiceError(ErrEmptyInput, apiErrors.ErrMissingRequiredData, "provide work history text or table rows")
	}

	brand, err := s.findBrand(ctx, request.BrandID)
	if err != nil {
		return nil, err
	}

	globalRates, err := s.rateRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("auditing: failed to load rates")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to load rates")
	}

	months := request.Period.Months()
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"brand_id":   brand.ID,
		"log_months": months,
		"log_table":  request.Input.IsTable(),
	})

	review, err := s.mapper.AnalyzeWorkLog(ctx, gemini.WorkLogInput{
		Brand:        brand,
		Input:        input,
		Rates:        domain.MergeRates(brand.LearnedRates, globalRates),
		PeriodMonths: months,
	})
	if err != nil {
		logger.WithError(err).Error("auditing: work history analysis failed")
		return nil, apiErrors.NewServiceError(ErrMapperFailure, apiErrors.ErrExternalService, err.Error())
	}

	if review.Health == "" {
		review.Health = domain.HealthHealthy
	}
	if review.Deliverables == nil {
		review.Deliverables = []domain.EstimateItem{}
	}

	logger.WithField("log_deliverables", len(review.Deliverables)).Info("auditing: work history analyzed")

	return review, nil
}

func (s *Service) ToggleOverage(ctx context.Context, request *domain.ToggleOverageRequest) (*domain.PendingReview, error) {
	review := request.Review
	review.Deliverables = append([]domain.EstimateItem(nil), request.Review.Deliverables...)

	if err := review.ToggleOverage(request.Index); err != nil {
		return nil, apiErrors.NewServiceError(ErrInvalidIndex, apiErrors.ErrInvalidRequest, err.Error()).
			WithField("index", request.Index)
	}

	return &review, nil
}

// ConfirmWorkLog turns a reviewed analysis into a stored log and teaches the brand
// every service it has not priced before.
func (s *Service) ConfirmWorkLog(ctx context.Context, request *domain.ConfirmWorkLogRequest) (*domain.WorkLog, error) {
	if request.BrandID == "" {
		return nil, apiErrors.NewServiceError(ErrBrandIDRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if err := validation.Struct(request.Period); err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, apiErrors.NewServiceError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	brands, err := s.listBrands(ctx)
	if err != nil {
		return nil, err
	}
	idx := domain.FindBrand(brands, request.BrandID)
	if idx < 0 {
		return nil, brandNotFound(request.BrandID)
	}
	brand := &brands[idx]

	logs, err := s.listLogs(ctx)
	if err != nil {
		return nil, err
	}

	review := request.Review
	months := request.Period.Months()

	deliverables := review.Deliverables
	if deliverables == nil {
		deliverables = []domain.EstimateItem{}
	}

	health := review.Health
	if health == "" {
		health = domain.HealthHealthy
	}

	rawInput := request.Input.Text
	if request.Input.IsTable() {
		rawInput = utils.CompactJSON(request.Input.Rows)
	}

	workLog := &domain.WorkLog{
		ID:               id,
		BrandID:          brand.ID,
		Sequence:         domain.NextSequence(logs),
		CreatedAt:        s.now().UTC(),
		Month:            request.Period.Label(),
		PeriodMonths:     months,
		RawInput:         rawInput,
		Deliverables:     deliverables,
		TotalMarketValue: review.TotalMarketValue,
		ActualBilled:     domain.ActualBilled(review, brand, months),
		OverageTotal:     review.OverageTotal,
		Health:           health,
		AIInsight:        review.AIInsight,
	}

	learned := brand.LearnFromDeliverables(deliverables, utils.MustGenerateID)
	logs = append(logs, workLog)

	if err := s.workLogRepo.SaveWithBrands(ctx, logs, brands); err != nil {
		log.ForContext(ctx).WithError(err).Error("auditing: failed to save work log")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to save work log")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"brand_id":      brand.ID,
		"log_id":        workLog.ID,
		"log_month":     workLog.Month,
		"log_billed":    workLog.ActualBilled,
		"brand_learned": len(learned),
	}).Info("auditing: work log confirmed")

	return workLog, nil
}

func (s *Service) DeleteWorkLog(ctx context.Context, id string) error {
	if id == "" {
		return apiErrors.NewServiceError(ErrWorkLogIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := s.listLogs(ctx)
	if err != nil {
		return err
	}

	kept := make([]*domain.WorkLog, 0, len(logs))
	for _, l := range logs {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(logs) {
		return apiErrors.NewServiceError(ErrWorkLogNotFound, apiErrors.ErrNotFound, id).WithField("log_id", id)
	}

	if err := s.workLogRepo.Save(ctx, kept); err != nil {
		log.ForContext(ctx).WithError(err).Error("auditing: failed to save work logs")
		return apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to delete work log")
	}

	log.ForContext(ctx).WithField("log_id", id).Info("auditing: work log deleted")

	return nil
}

// ListWorkLogs returns logs oldest first, restricted to one brand when brandID is set.
func (s *Service) ListWorkLogs(ctx context.Context, brandID *string) ([]*domain.WorkLog, error) {
	logs, err := s.listLogs(ctx)
	if err != nil {
		return nil, err
	}

	if brandID != nil && *brandID != "" {
		return domain.BrandLogs(*brandID, logs), nil
	}

	return domain.SortLogs(logs), nil
}

func (s *Service) AuditBrand(ctx context.Context, brandID string) (*domain.BrandAudit, error) {
	if brandID == "" {
		return nil, apiErrors.NewServiceError(ErrBrandIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	brand, err := s.findBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}

	logs, err := s.listLogs(ctx)
	if err != nil {
		return nil, err
	}

	audit := domain.AuditBrand(brand, logs)
	return &audit, nil
}

func (s *Service) AuditPortfolio(ctx context.Context) ([]domain.BrandAudit, error) {
	brands, err := s.listBrands(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := s.listLogs(ctx)
	if err != nil {
		return nil, err
	}

	audits := make([]domain.BrandAudit, 0, len(brands))
	for i := range brands {
		audits = append(audits, domain.AuditBrand(&brands[i], logs))
	}

	return audits, nil
}

// TakeSnapshot stores the current portfolio audit, keeping the newest retain snapshots.
func (s *Service) TakeSnapshot(ctx context.Context, retain int) (*domain.PortfolioSnapshot, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, apiErrors.NewServiceError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	audits, err := s.AuditPortfolio(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := domain.PortfolioSnapshot{
		ID:      id,
		TakenAt: s.now().UTC(),
		Brands:  audits,
	}

	if err := s.snapshotRepo.Append(ctx, snapshot, retain); err != nil {
		log.ForContext(ctx).WithError(err).Error("auditing: failed to save snapshot")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to save snapshot")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"snapshot_id":     snapshot.ID,
		"snapshot_brands": len(audits),
	}).Info("auditing: portfolio snapshot stored")

	return &snapshot, nil
}

func (s *Service) ListSnapshots(ctx context.Context) ([]domain.PortfolioSnapshot, error) {
	snapshots, err := s.snapshotRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("auditing: failed to load snapshots")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to load snapshots")
	}
	if snapshots == nil {
		snapshots = []domain.PortfolioSnapshot{}
	}
	return snapshots, nil
}

func (s *Service) findBrand(ctx context.Context, id string) (*domain.Brand, error) {
	brands, err := s.listBrands(ctx)
	if err != nil {
		return nil, err
	}

	idx := domain.FindBrand(brands, id)
	if idx < 0 {
		return nil, brandNotFound(id)
	}

	return &brands[idx], nil
}

func (s *Service) listBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.brandRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("auditing: failed to load brands")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to load brands")
	}
	return brands, nil
}

func (s *Service) listLogs(ctx context.Context) ([]*domain.WorkLog, error) {
	logs, err := s.workLogRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("auditing: failed to load work logs")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to load work logs")
	}
	return logs, nil
}

func brandNotFound(id string) error {
	return apiErrors.NewServiceError(ErrBrandNotFound, apiErrors.ErrNotFound, id).WithField("brand_id", id)
}
