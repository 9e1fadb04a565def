package branding

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/repository"
	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
)

func newTestService() *Service {
	repos := repository.NewRepositories(repository.NewMemoryStore())
	return NewService(&sync.Mutex{}, repos.Brands)
}

func floatPtr(f float64) *float64 { return &f }

func TestService_CreateBrand(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		request  *domain.CreateBrandRequest
		validate func(t *testing.T, brand *domain.Brand, err error)
	}{
		{
			name:    "defaults billing model currency and region",
			request: &domain.CreateBrandRequest{Name: " Best Steel "},
			validate: func(t *testing.T, brand *domain.Brand, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Best Steel", brand.Name)
				assert.Equal(t, domain.BillingModelRetainer, brand.BillingModel)
				assert.Equal(t, domain.CurrencyINR, brand.Currency)
				assert.Equal(t, domain.RegionIndia, brand.Region)
				require.NotNil(t, brand.MonthlyRetainerFee)
				assert.Equal(t, 0.0, *brand.MonthlyRetainerFee)
				assert.NotNil(t, brand.LearnedRates)
				assert.Empty(t, brand.LearnedRates)
			},
		},
		{
			name:    "project brands keep the fee unset",
			request: &domain.CreateBrandRequest{Name: "Mason George", BillingModel: domain.BillingModelProject, Currency: domain.CurrencyEUR, Region: domain.RegionInternational},
			validate: func(t *testing.T, brand *domain.Brand, err error) {
				require.NoError(t, err)
				assert.Nil(t, brand.MonthlyRetainerFee)
				assert.Equal(t, 0.0, brand.RetainerFee())
			},
		},
		{
			name:    "negative fee is accepted",
			request: &domain.CreateBrandRequest{Name: "Refunded", MonthlyRetainerFee: floatPtr(-500)},
			validate: func(t *testing.T, brand *domain.Brand, err error) {
				require.NoError(t, err)
				assert.Equal(t, -500.0, brand.RetainerFee())
			},
		},
		{
			name:    "blank name is rejected",
			request: &domain.CreateBrandRequest{Name: "\t"},
			validate: func(t *testing.T, brand *domain.Brand, err error) {
				var serviceErr *apiErrors.ServiceError
				require.ErrorAs(t, err, &serviceErr)
				assert.Equal(t, apiErrors.ErrInvalidRequest, serviceErr.Code)
			},
		},
		{
			name:    "unknown billing model is rejected",
			request: &domain.CreateBrandRequest{Name: "X", BillingModel: "Barter"},
			validate: func(t *testing.T, brand *domain.Brand, err error) {
				require.Error(t, err)
				assert.Nil(t, brand)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService()
			brand, err := service.CreateBrand(ctx, tt.request)
			tt.validate(t, brand, err)

			if err == nil {
				stored, getErr := service.GetBrand(ctx, brand.ID)
				require.NoError(t, getErr)
				assert.Equal(t, brand.Name, stored.Name)

				brands, listErr := service.ListBrands(ctx)
				require.NoError(t, listErr)
				assert.Len(t, brands, 6)
			}
		})
	}
}

func TestService_UpdateBrand(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	model := domain.BillingModelHybrid
	updated, err := service.UpdateBrand(ctx, &domain.UpdateBrandRequest{
		ID:                 "b2",
		BillingModel:       &model,
		MonthlyRetainerFee: floatPtr(45000),
	})
	require.NoError(t, err)
	assert.Equal(t, "Shumee", updated.Name)
	assert.Equal(t, domain.BillingModelHybrid, updated.BillingModel)
	assert.Equal(t, 45000.0, updated.RetainerFee())

	stored, err := service.GetBrand(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, 45000.0, stored.RetainerFee())

	_, err = service.UpdateBrand(ctx, &domain.UpdateBrandRequest{ID: "nope"})
	assert.True(t, errors.Is(err, ErrBrandNotFound))

	_, err = service.GetBrand(ctx, "")
	assert.True(t, errors.Is(err, ErrBrandIDRequired))
}
