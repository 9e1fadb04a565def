package learning

import (
	"context"
	"strings"
	"sync"

	"github.com/vfg2006/agency-ratecard-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/repository"
	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
	"github.com/vfg2006/agency-ratecard-api/pkg/log"
	"github.com/vfg2006/agency-ratecard-api/pkg/utils"
	"github.com/vfg2006/agency-ratecard-api/pkg/validation"
)

type InsightService interface {
	IngestInvoice(ctx context.Context, request *domain.IngestInvoiceRequest) ([]domain.InvoiceInsight, error)
	ListInsights(ctx context.Context) ([]domain.InvoiceInsight, error)
	UpdateInsight(ctx context.Context, request *domain.UpdateInsightRequest) (*domain.InvoiceInsight, error)
	ApproveInsight(ctx context.Context, id string) (*domain.ServiceRate, error)
	DiscardInsight(ctx context.Context, id string) error
}

type Service struct {
	mu          sync.Locker
	insightRepo repository.InsightRepository
	rateRepo    repository.RateRepository
	mapper      gemini.Mapper
}

func NewService(
	mu sync.Locker,
	insightRepo repository.InsightRepository,
	rateRepo repository.RateRepository,
	mapper gemini.Mapper,
) *Service {
	return &Service{
		mu:          mu,
		insightRepo: insightRepo,
		rateRepo:    rateRepo,
		mapper:      mapper,
	}
}

// IngestInvoice extracts billed services from an invoice and queues them for review.
// It returns only the insights found in this invoice.
func (s *Service) IngestInvoice(ctx context.Context, request *domain.IngestInvoiceRequest) ([]domain.InvoiceInsight, error) {
	hasFile := request.File != nil && len(request.File.Data) > 0
	if strings.TrimSpace(request.Text) == "" && !hasFile {
		return nil, apiErrors.NewServiceError(ErrEmptyInvoice, apiErrors.ErrMissingRequiredData, "")
	}

	var file *domain.Attachment
	if hasFile {
		file = request.File
	}

	found, err := s.mapper.AnalyzeInvoice(ctx, request.Text, file)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("learning: invoice analysis failed")
		return nil, apiErrors.NewServiceError(ErrMapperFailure, apiErrors.ErrExternalService, err.Error())
	}

	for i := range found {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, apiErrors.NewServiceError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
		}
		found[i].ID = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	insights, err := s.listInsights(ctx)
	if err != nil {
		return nil, err
	}

	insights = append(insights, found...)
	if err := s.insightRepo.Save(ctx, insights); err != nil {
		log.ForContext(ctx).WithError(err).Error("learning: failed to save insights")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to save insights")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"insight_found":   len(found),
		"insight_pending": len(insights),
	}).Info("learning: invoice analyzed")

	if found == nil {
		found = []domain.InvoiceInsight{}
	}
	return found, nil
}

func (s *Service) ListInsights(ctx context.Context) ([]domain.InvoiceInsight, error) {
	insights, err := s.listInsights(ctx)
	if err != nil {
		return nil, err
	}
	if insights == nil {
		insights = []domain.InvoiceInsight{}
	}
	return insights, nil
}

// UpdateInsight corrects a pending insight before it is approved.
func (s *Service) UpdateInsight(ctx context.Context, request *domain.UpdateInsightRequest) (*domain.InvoiceInsight, error) {
	if request.ID == "" {
		return nil, apiErrors.NewServiceError(ErrInsightIDRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if err := validation.Struct(request); err != nil {
		return nil, err
	}
	if request.DetectedRate != nil && *request.DetectedRate < 0 {
		return nil, apiErrors.NewServiceError(ErrInvalidInsight, apiErrors.ErrInvalidRequest, "detected rate cannot be negative").
			WithField("detectedRate", "gte=0")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	insights, err := s.listInsights(ctx)
	if err != nil {
		return nil, err
	}

	idx := findInsight(insights, request.ID)
	if idx < 0 {
		return nil, notFound(request.ID)
	}
	insight := &insights[idx]

	if request.DetectedName != nil && strings.TrimSpace(*request.DetectedName) != "" {
		insight.DetectedName = strings.TrimSpace(*request.DetectedName)
	}
	if request.DetectedCategory != nil {
		insight.DetectedCategory = *request.DetectedCategory
	}
	if request.DetectedRate != nil {
		insight.DetectedRate = *request.DetectedRate
	}
	if request.DetectedCurrency != nil {
		insight.DetectedCurrency = *request.DetectedCurrency
	}
	if request.DetectedUnit != nil {
		insight.DetectedUnit = *request.DetectedUnit
	}

	if err := s.insightRepo.Save(ctx, insights); err != nil {
		log.ForContext(ctx).WithError(err).Error("learning: failed to save insights")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to update insight")
	}

	updated := *insight
	return &updated, nil
}

// ApproveInsight merges the insight into the global catalog and drops it from the queue.
func (s *Service) ApproveInsight(ctx context.Context, id string) (*domain.ServiceRate, error) {
	if id == "" {
		return nil, apiErrors.NewServiceError(ErrInsightIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	insights, err := s.listInsights(ctx)
	if err != nil {
		return nil, err
	}

	idx := findInsight(insights, id)
	if idx < 0 {
		return nil, notFound(id)
	}
	insight := insights[idx]
	if strings.TrimSpace(insight.DetectedName) == "" {
		return nil, apiErrors.NewServiceError(ErrInvalidInsight, apiErrors.ErrInvalidRequest, "insight has no service name").
			WithField("insight_id", id)
	}

	rates, err := s.rateRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("learning: failed to load rates")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to load rates")
	}

	rates = insight.ApplyTo(rates, utils.MustGenerateID)
	remaining := append(insights[:idx:idx], insights[idx+1:]...)

	if err := s.insightRepo.SaveWithRates(ctx, remaining, rates); err != nil {
		log.ForContext(ctx).WithError(err).Error("learning: failed to save approved insight")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to approve insight")
	}

	rate := *domain.FindRate(rates, insight.DetectedName)

	log.ForContext(ctx).WithFields(log.Fields{
		"insight_id": id,
		"rate_id":    rate.ID,
		"rate_name":  rate.Name,
	}).Info("learning: insight merged into catalog")

	return &rate, nil
}

func (s *Service) DiscardInsight(ctx context.Context, id string) error {
	if id == "" {
		return apiErrors.NewServiceError(ErrInsightIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	insights, err := s.listInsights(ctx)
	if err != nil {
		return err
	}

	idx := findInsight(insights, id)
	if idx < 0 {
		return notFound(id)
	}

	insights = append(insights[:idx], insights[idx+1:]...)
	if err := s.insightRepo.Save(ctx, insights); err != nil {
		log.ForContext(ctx).WithError(err).Error("learning: failed to save insights")
		return apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to discard insight")
	}

	log.ForContext(ctx).WithField("insight_id", id).Info("learning: insight discarded")

	return nil
}

func (s *Service) listInsights(ctx context.Context) ([]domain.InvoiceInsight, error) {
	insights, err := s.insightRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("learning: failed to load insights")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to load insights")
	}
	return insights, nil
}

func findInsight(insights []domain.InvoiceInsight, id string) int {
	for i := range insights {
		if insights[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(id string) error {
	return apiErrors.NewServiceError(ErrInsightNotFound, apiErrors.ErrNotFound, id).WithField("insight_id", id)
}
