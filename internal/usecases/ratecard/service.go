package ratecard

import (
	"context"
	"strings"
	"sync"

	"github.com/vfg2006/agency-ratecard-api/infrastructure/repository"
	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
	"github.com/vfg2006/agency-ratecard-api/pkg/log"
	"github.com/vfg2006/agency-ratecard-api/pkg/utils"
	"github.com/vfg2006/agency-ratecard-api/pkg/validation"
)

type RateCardService interface {
	ListRates(ctx context.Context) ([]domain.ServiceRate, error)
	AddRate(ctx context.Context, request *domain.CreateRateRequest) (*domain.ServiceRate, error)
	UpdateRate(ctx context.Context, request *domain.UpdateRateRequest) (*domain.ServiceRate, error)
	// ResolveRate returns nil when neither the brand nor the catalog knows the service.
	ResolveRate(ctx context.Context, serviceName string, brandID *string) (*domain.ServiceRate, error)
	EffectiveRates(ctx context.Context, brandID *string) ([]domain.ServiceRate, error)
	GetSettings(ctx context.Context) (*domain.PricingSettings, error)
	UpdateSettings(ctx context.Context, settings *domain.PricingSettings) (*domain.PricingSettings, error)
}

type Service struct {
	mu           sync.Locker
	rateRepo     repository.RateRepository
	settingsRepo repository.SettingsRepository
	brandRepo    repository.BrandRepository
}

// NewService builds the rate card; writes are serialized through mu, which is shared
// with every service that writes the same collections.
func NewService(
	mu sync.Locker,
	rateRepo repository.RateRepository,
	settingsRepo repository.SettingsRepository,
	brandRepo repository.BrandRepository,
) *Service {
	return &Service{
		mu:           mu,
		rateRepo:     rateRepo,
		settingsRepo: settingsRepo,
		brandRepo:    brandRepo,
	}
}

func (s *Service) ListRates(ctx context.Context) ([]domain.ServiceRate, error) {
	rates, err := s.rateRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("ratecard: failed to load rates")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to load rates")
	}
	return rates, nil
}

func (s *Service) AddRate(ctx context.Context, request *domain.CreateRateRequest) (*domain.ServiceRate, error) {
	if err := validation.Struct(request); err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, apiErrors.NewServiceError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	rate := domain.ServiceRate{
		ID:           id,
		Name:         strings.TrimSpace(request.Name),
		Category:     request.Category,
		CurrentRate:  request.CurrentRate,
		Currency:     request.Currency,
		IndustryRate: request.IndustryRate,
		Unit:         strings.TrimSpace(request.Unit),
		Notes:        request.Notes,
	}
	if rate.Category == "" {
		rate.Category = domain.CategoryOther
	}
	if rate.Currency == "" {
		rate.Currency = domain.CurrencyINR
	}
	if rate.Unit == "" {
		rate.Unit = domain.DefaultUnit
	}
	if rate.IndustryRate <= 0 {
		rate.IndustryRate = rate.CurrentRate * domain.IndustryRateMarkup
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rates, err := s.ListRates(ctx)
	if err != nil {
		return nil, err
	}

	rates = append(rates, rate)
	if err := s.rateRepo.Save(ctx, rates); err != nil {
		log.ForContext(ctx).WithError(err).Error("ratecard: failed to save rates")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to save rate")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"rate_id":   rate.ID,
		"rate_name": rate.Name,
	}).Info("ratecard: rate added")

	return &rate, nil
}

func (s *Service) UpdateRate(ctx context.Context, request *domain.UpdateRateRequest) (*domain.ServiceRate, error) {
	if request.ID == "" {
		return nil, apiErrors.NewServiceError(ErrRateIDRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if err := validation.Struct(request); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rates, err := s.ListRates(ctx)
	if err != nil {
		return nil, err
	}

	var rate *domain.ServiceRate
	for i := range rates {
		if rates[i].ID == request.ID {
			rate = &rates[i]
			break
		}
	}
	if rate == nil {
		return nil, apiErrors.NewServiceError(ErrRateNotFound, apiErrors.ErrNotFound, request.ID).WithField("rate_id", request.ID)
	}

	if request.Name != nil && strings.TrimSpace(*request.Name) != "" {
		rate.Name = strings.TrimSpace(*request.Name)
	}
	if request.Category != nil {
		rate.Category = *request.Category
	}
	if request.CurrentRate != nil {
		rate.CurrentRate = *request.CurrentRate
	}
	if request.Currency != nil {
		rate.Currency = *request.Currency
	}
	if request.IndustryRate != nil {
		rate.IndustryRate = *request.IndustryRate
	}
	if request.Unit != nil {
		rate.Unit = *request.Unit
	}
	if request.Notes != nil {
		rate.Notes = request.Notes
	}

	if err := s.rateRepo.Save(ctx, rates); err != nil {
		log.ForContext(ctx).WithError(err).Error("ratecard: failed to save rates")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to update rate")
	}

	updated := *rate
	return &updated, nil
}

func (s *Service) ResolveRate(ctx context.Context, serviceName string, brandID *string) (*domain.ServiceRate, error) {
	brand, global, err := s.rateContext(ctx, brandID)
	if err != nil {
		return nil, err
	}

	return domain.ResolveRate(serviceName, brand, global), nil
}

func (s *Service) EffectiveRates(ctx context.Context, brandID *string) ([]domain.ServiceRate, error) {
	brand, global, err := s.rateContext(ctx, brandID)
	if err != nil {
		return nil, err
	}

	if brand == nil {
		return global, nil
	}

	return domain.MergeRates(brand.LearnedRates, global), nil
}

func (s *Service) rateContext(ctx context.Context, brandID *string) (*domain.Brand, []domain.ServiceRate, error) {
	global, err := s.ListRates(ctx)
	if err != nil {
		return nil, nil, err
	}

	if brandID == nil || *brandID == "" {
		return nil, global, nil
	}

	brands, err := s.brandRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("ratecard: failed to load brands")
		return nil, nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to load brands")
	}

	idx := domain.FindBrand(brands, *brandID)
	if idx < 0 {
		return nil, nil, apiErrors.NewServiceError(ErrBrandNotFound, apiErrors.ErrNotFound, *brandID).WithField("brand_id", *brandID)
	}

	return &brands[idx], global, nil
}

func (s *Service) GetSettings(ctx context.Context) (*domain.PricingSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("ratecard: failed to load settings")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to load settings")
	}
	return settings, nil
}

// UpdateSettings replaces the whole settings document.
func (s *Service) UpdateSettings(ctx context.Context, settings *domain.PricingSettings) (*domain.PricingSettings, error) {
	if settings == nil {
		return nil, apiErrors.NewServiceError(ErrInvalidSettings, apiErrors.ErrMissingRequiredData, "settings body is required")
	}
	if settings.AgencyMultiplier < 0 || settings.InternationalMultiplier < 0 {
		return nil, apiErrors.NewServiceError(ErrInvalidSettings, apiErrors.ErrInvalidRequest, "multipliers cannot be negative")
	}
	if settings.Tiers == nil {
		settings.Tiers = []domain.TierDefinition{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		log.ForContext(ctx).WithError(err).Error("ratecard: failed to save settings")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to save settings")
	}

	return settings, nil
}
