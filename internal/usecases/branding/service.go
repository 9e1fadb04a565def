package branding

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

type BrandService interface {
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	GetBrand(ctx context.Context, id string) (*domain.Brand, error)
	CreateBrand(ctx context.Context, request *domain.CreateBrandRequest) (*domain.Brand, error)
	UpdateBrand(ctx context.Context, request *domain.UpdateBrandRequest) (*domain.Brand, error)
}

type Service struct {
	mu        sync.Locker
	brandRepo repository.BrandRepository
}

func NewService(mu sync.Locker, brandRepo repository.BrandRepository) *Service {
	return &Service{
		mu:        mu,
		brandRepo: brandRepo,
	}
}

func (s *Service) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.brandRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("branding: failed to load brands")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to load brands")
	}
	return brands, nil
}

func (s *Service) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	if id == "" {
		return nil, apiErrors.NewServiceError(ErrBrandIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	brands, err := s.ListBrands(ctx)
	if err != nil {
		return nil, err
	}

	idx := domain.FindBrand(brands, id)
	if idx < 0 {
		return nil, notFound(id)
	}

	return &brands[idx], nil
}

// CreateBrand registers a brand. The retainer fee is not range checked; zero and
// negative values are stored as given.
func (s *Service) CreateBrand(ctx context.Context, request *domain.CreateBrandRequest) (*domain.Brand, error) {
	if err := validation.Struct(request); err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, apiErrors.NewServiceError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	brand := domain.Brand{
		ID:                 id,
		Name:               strings.TrimSpace(request.Name),
		BillingModel:       request.BillingModel,
		MonthlyRetainerFee: request.MonthlyRetainerFee,
		RetainerScopeLimit: request.RetainerScopeLimit,
		Currency:           request.Currency,
		Region:             request.Region,
		LearnedRates:       []domain.ServiceRate{},
	}
	if brand.BillingModel == "" {
		brand.BillingModel = domain.BillingModelRetainer
	}
	if brand.Currency == "" {
		brand.Currency = domain.CurrencyINR
	}
	if brand.Region == "" {
		brand.Region = domain.RegionIndia
	}
	if brand.MonthlyRetainerFee == nil && brand.BillingModel != domain.BillingModelProject {
		zero := 0.0
		brand.MonthlyRetainerFee = &zero
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	brands, err := s.ListBrands(ctx)
	if err != nil {
		return nil, err
	}

	brands = append(brands, brand)
	if err := s.brandRepo.Save(ctx, brands); err != nil {
		log.ForContext(ctx).WithError(err).Error("branding: failed to save brands")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to save brand")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"brand_id":   brand.ID,
		"brand_name": brand.Name,
	}).Info("branding: brand created")

	return &brand, nil
}

// UpdateBrand edits the brand in place. Confirmed work logs keep the figures they were saved with.
func (s *Service) UpdateBrand(ctx context.Context, request *domain.UpdateBrandRequest) (*domain.Brand, error) {
	if request.ID == "" {
		return nil, apiErrors.NewServiceError(ErrBrandIDRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if err := validation.Struct(request); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	brands, err := s.ListBrands(ctx)
	if err != nil {
		return nil, err
	}

	idx := domain.FindBrand(brands, request.ID)
	if idx < 0 {
		return nil, notFound(request.ID)
	}
	brand := &brands[idx]

	if request.Name != nil && strings.TrimSpace(*request.Name) != "" {
		brand.Name = strings.TrimSpace(*request.Name)
	}
	if request.BillingModel != nil {
		brand.BillingModel = *request.BillingModel
	}
	if request.MonthlyRetainerFee != nil {
		brand.MonthlyRetainerFee = request.MonthlyRetainerFee
	}
	if request.RetainerScopeLimit != nil {
		brand.RetainerScopeLimit = request.RetainerScopeLimit
	}
	if request.Currency != nil {
		brand.Currency = *request.Currency
	}
	if request.Region != nil {
		brand.Region = *request.Region
	}

	if err := s.brandRepo.Save(ctx, brands); err != nil {
		log.ForContext(ctx).WithError(err).Error("branding: failed to save brands")
		return nil, apiErrors.NewServiceError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "failed to update brand")
	}

	log.ForContext(ctx).WithField("brand_id", brand.ID).Info("branding: brand updated")

	updated := *brand
	return &updated, nil
}

func notFound(id string) error {
	return apiErrors.NewServiceError(ErrBrandNotFound, apiErrors.ErrNotFound, id).WithField("brand_id", id)
}
