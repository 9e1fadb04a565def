package estimating

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vfg2006/agency-ratecard-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/repository"
	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/branding"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/ratecard"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
	"github.com/vfg2006/agency-ratecard-api/pkg/log"
	"github.com/vfg2006/agency-ratecard-api/pkg/utils"
	"github.com/vfg2006/agency-ratecard-api/pkg/validation"
)

const unnamedClient = "Unnamed Client"

type EstimateService interface {
	Estimate(ctx context.Context, request *domain.EstimateRequest) (*domain.EstimateResponse, error)
	SaveEstimate(ctx context.Context, request *domain.SaveEstimateRequest) (*domain.HistoryItem, error)
	ListHistory(ctx context.Context) ([]domain.HistoryItem, error)
	DeleteHistory(ctx context.Context, id string) error
	UpdateHistoryStatus(ctx context.Context, id string, status domain.HistoryStatus) (*domain.HistoryItem, error)
}

type Service struct {
	mu          sync.Locker
	historyRepo repository.HistoryRepository
	rateCard    ratecard.RateCardService
	brands      branding.BrandService
	mapper      gemini.Mapper
	now         func() time.Time
}

func NewService(
	mu sync.Locker,
	historyRepo repository.HistoryRepository,
	rateCard ratecard.RateCardService,
	brands branding.BrandService,
	mapper gemini.Mapper,
) *Service {
	return &Service{
		mu:          mu,
		historyRepo: historyRepo,
		rateCard:    rateCard,
		brands:      brands,
		mapper:      mapper,
		now:         time.Now,
	}
}

// Estimate prices a scope of work against the effective rate card. A selected brand
// contributes its learned rates and its region.
func (s *Service) Estimate(ctx context.Context, request *domain.EstimateRequest) (*domain.EstimateResponse, error) {
	if strings.TrimSpace(request.Scope) == "" && (request.Image == nil || len(request.Image.Data) == 0) {
		return nil, apiErrors.NewServiceError(ErrEmptyScope, apiErrors.ErrMissingRequiredData, "")
	}
	if err := validation.Struct(request); err != nil {
		return nil, err
	}

	var brand *domain.Brand
	if request.BrandID != nil && *request.BrandID != "" {
		found, err := s.brands.GetBrand(ctx, *request.BrandID)
		if err != nil {
			return nil, err
		}
		brand = found
	}

	region := request.Region
	if brand != nil && brand.Region != "" {
		region = brand.Region
	}
	if region == "" {
		region = domain.RegionIndia
	}

	rates, err := s.rateCard.EffectiveRates(ctx, request.BrandID)
	if err != nil {
		return nil, err
	}

	settings, err := s.rateCard.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithField("region", region)
	if brand != nil {
		logger = logger.WithField("brand_id", brand.ID)
	}

	estimate, err := s.mapper.Estimate(ctx, gemini.EstimateInput{
		Scope:    request.Scope,
		Image:    request.Image,
		Region:   region,
		Rates:    rates,
		Brand:    brand,
		Settings: settings,
	})
	if err != nil {
		logger.WithError(err).Error("estimating: estimate generation failed")
		return nil, apiErrors.NewServiceError(ErrMapperFailure, apiErrors.ErrExternalService, err.Error())
	}

	if estimate.Items == nil {
		estimate.Items = []domain.EstimateItem{}
	}
	estimate.RawInput = request.Scope

	logger.WithFields(log.Fields{
		"history_items": len(estimate.Items),
		"history_total": estimate.TotalEstimate,
	}).Info("estimating: estimate generated")

	return estimate, nil
}

// SaveEstimate stores an estimate as a Draft history item.
func (s *Service) SaveEstimate(ctx context.Context, request *domain.SaveEstimateRequest) (*domain.HistoryItem, error) {
	if err := validation.Struct(request); err != nil {
		return nil, err
	}

	clientName := unnamedClient
	if request.ClientName != nil && strings.TrimSpace(*request.ClientName) != "" {
		clientName = strings.TrimSpace(*request.ClientName)
	}

	var brandID *string
	if request.BrandID != nil && *request.BrandID != "" {
		brand, err := s.brands.GetBrand(ctx, *request.BrandID)
		if err != nil {
			return nil, err
		}
		clientName = brand.Name
		brandID = &brand.ID
	}

	region := request.Region
	if region == "" {
		region = domain.RegionIndia
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, apiErrors.NewServiceError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	item := domain.HistoryItem{
		ID:            id,
		Timestamp:     s.now().UnixMilli(),
		ClientName:    &clientName,
		BrandID:       brandID,
		Region:        region,
		FinalEstimate: request.Estimate,
		Status:        domain.HistoryStatusDraft,
		Notes:         request.Notes,
	}
	if item.FinalEstimate.Items == nil {
		item.FinalEstimate.Items = []domain.EstimateItem{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.listHistory(ctx)
	if err != nil {
		return nil, err
	}

	history = append(history, item)
	if err := s.historyRepo.Save(ctx, history); err != nil {
		log.ForContext(ctx).WithError(err).Error("estimating: failed to save history")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to save estimate")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"history_id":     item.ID,
		"history_client": clientName,
	}).Info("estimating: estimate saved")

	return &item, nil
}

// ListHistory returns saved estimates, newest first.
func (s *Service) ListHistory(ctx context.Context) ([]domain.HistoryItem, error) {
	history, err := s.listHistory(ctx)
	if err != nil {
		return nil, err
	}

	newestFirst := make([]domain.HistoryItem, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		newestFirst = append(newestFirst, history[i])
	}

	return newestFirst, nil
}

func (s *Service) DeleteHistory(ctx context.Context, id string) error {
	if id == "" {
		return apiErrors.NewServiceError(ErrHistoryIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.listHistory(ctx)
	if err != nil {
		return err
	}

	idx := findHistory(history, id)
	if idx < 0 {
		return notFound(id)
	}

	history = append(history[:idx], history[idx+1:]...)
	if err := s.historyRepo.Save(ctx, history); err != nil {
		log.ForContext(ctx).WithError(err).Error("estimating: failed to save history")
		return apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to delete history item")
	}

	log.ForContext(ctx).WithField("history_id", id).Info("estimating: history item deleted")

	return nil
}

func (s *Service) UpdateHistoryStatus(ctx context.Context, id string, status domain.HistoryStatus) (*domain.HistoryItem, error) {
	if id == "" {
		return nil, apiErrors.NewServiceError(ErrHistoryIDRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if !status.Valid() {
		return nil, apiErrors.NewServiceError(ErrInvalidStatus, apiErrors.ErrInvalidRequest, string(status)).
			WithField("status", "oneof=Draft Sent Accepted Rejected")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.listHistory(ctx)
	if err != nil {
		return nil, err
	}

	idx := findHistory(history, id)
	if idx < 0 {
		return nil, notFound(id)
	}

	history[idx].Status = status
	if err := s.historyRepo.Save(ctx, history); err != nil {
		log.ForContext(ctx).WithError(err).Error("estimating: failed to save history")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to update history item")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"history_id":     id,
		"history_status": status,
	}).Info("estimating: history status updated")

	updated := history[idx]
	return &updated, nil
}

func (s *Service) listHistory(ctx context.Context) ([]domain.HistoryItem, error) {
	history, err := s.historyRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("estimating: failed to load history")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to load history")
	}
	return history, nil
}

func findHistory(history []domain.HistoryItem, id string) int {
	for i := range history {
		if history[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(id string) error {
	return apiErrors.NewServiceError(ErrHistoryNotFound, apiErrors.ErrNotFound, id).WithField("history_id", id)
}
