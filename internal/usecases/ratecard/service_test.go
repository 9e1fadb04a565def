package ratecard

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

func newTestService(t *testing.T) (*Service, *repository.Repositories) {
	t.Helper()
	repos := repository.NewRepositories(repository.NewMemoryStore())
	return NewService(&sync.Mutex{}, repos.Rates, repos.Settings, repos.Brands), repos
}

func stringPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestService_AddRate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		request  *domain.CreateRateRequest
		validate func(t *testing.T, rate *domain.ServiceRate, err error)
	}{
		{
			name:    "applies defaults",
			request: &domain.CreateRateRequest{Name: "  UGC Video ", CurrentRate: 800},
			validate: func(t *testing.T, rate *domain.ServiceRate, err error) {
				require.NoError(t, err)
				assert.NotEmpty(t, rate.ID)
				assert.Equal(t, "UGC Video", rate.Name)
				assert.Equal(t, domain.CategoryOther, rate.Category)
				assert.Equal(t, domain.CurrencyINR, rate.Currency)
				assert.Equal(t, "per unit", rate.Unit)
				assert.Equal(t, 1200.0, rate.IndustryRate)
			},
		},
		{
			name:    "keeps explicit industry rate",
			request: &domain.CreateRateRequest{Name: "Logo", CurrentRate: 5000, IndustryRate: 20000, Category: domain.CategoryDesign, Currency: domain.CurrencyUSD, Unit: "per logo"},
			validate: func(t *testing.T, rate *domain.ServiceRate, err error) {
				require.NoError(t, err)
				assert.Equal(t, 20000.0, rate.IndustryRate)
				assert.Equal(t, domain.CurrencyUSD, rate.Currency)
			},
		},
		{
			name:    "rejects blank name",
			request: &domain.CreateRateRequest{Name: " ", CurrentRate: 100},
			validate: func(t *testing.T, rate *domain.ServiceRate, err error) {
				var serviceErr *apiErrors.ServiceError
				require.ErrorAs(t, err, &serviceErr)
				assert.Equal(t, apiErrors.ErrInvalidRequest, serviceErr.Code)
				assert.Nil(t, rate)
			},
		},
		{
			name:    "rejects non-positive rate",
			request: &domain.CreateRateRequest{Name: "Free work", CurrentRate: 0},
			validate: func(t *testing.T, rate *domain.ServiceRate, err error) {
				require.Error(t, err)
				assert.Nil(t, rate)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService(t)
			rate, err := service.AddRate(ctx, tt.request)
			tt.validate(t, rate, err)

			rates, listErr := service.ListRates(ctx)
			require.NoError(t, listErr)
			if err == nil {
				assert.Len(t, rates, 10)
				assert.Equal(t, rate.ID, rates[9].ID)
			} else {
				assert.Len(t, rates, 9)
			}
		})
	}
}

func TestService_UpdateRate(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	updated, err := service.UpdateRate(ctx, &domain.UpdateRateRequest{
		ID:          "1",
		CurrentRate: floatPtr(1500),
		Notes:       stringPtr("raised for 2025"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Reel Editing", updated.Name)
	assert.Equal(t, 1500.0, updated.CurrentRate)
	assert.Equal(t, 4000.0, updated.IndustryRate)

	rates, err := service.ListRates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, rates[0].CurrentRate)

	_, err = service.UpdateRate(ctx, &domain.UpdateRateRequest{ID: "missing"})
	assert.True(t, errors.Is(err, ErrRateNotFound))

	_, err = service.UpdateRate(ctx, &domain.UpdateRateRequest{})
	assert.True(t, errors.Is(err, ErrRateIDRequired))
}

func TestService_ResolveRate(t *testing.T) {
	ctx := context.Background()
	service, repos := newTestService(t)

	brands, err := repos.Brands.List(ctx)
	require.NoError(t, err)
	brands[1].LearnedRates = []domain.ServiceRate{{ID: "l1", Name: "reel editing", CurrentRate: 1800}}
	require.NoError(t, repos.Brands.Save(ctx, brands))

	tests := []struct {
		name     string
		service  string
		brandID  *string
		expected *float64
		err      error
	}{
		{name: "learned rate wins", service: "Reel Editing", brandID: stringPtr("b2"), expected: floatPtr(1800)},
		{name: "catalog fallback for brand", service: "STATIC GRAPHIC", brandID: stringPtr("b2"), expected: floatPtr(500)},
		{name: "catalog without brand", service: "Reel Editing", expected: floatPtr(1000)},
		{name: "brand without learned rates", service: "Reel Editing", brandID: stringPtr("b1"), expected: floatPtr(1000)},
		{name: "unknown service", service: "Reel"},
		{name: "unknown brand", service: "Reel Editing", brandID: stringPtr("b404"), err: ErrBrandNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := service.ResolveRate(ctx, tt.service, tt.brandID)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}
			require.NoError(t, err)
			if tt.expected == nil {
				assert.Nil(t, rate)
				return
			}
			require.NotNil(t, rate)
			assert.Equal(t, *tt.expected, rate.CurrentRate)
		})
	}
}

func TestService_EffectiveRates(t *testing.T) {
	ctx := context.Background()
	service, repos := newTestService(t)

	brands, err := repos.Brands.List(ctx)
	require.NoError(t, err)
	brands[0].LearnedRates = []domain.ServiceRate{
		{ID: "l1", Name: "MOTION GRAPHICS", CurrentRate: 300},
		{ID: "l2", Name: "Podcast Edit", CurrentRate: 2500},
	}
	require.NoError(t, repos.Brands.Save(ctx, brands))

	rates, err := service.EffectiveRates(ctx, stringPtr("b1"))
	require.NoError(t, err)
	require.Len(t, rates, 10)
	assert.Equal(t, "l1", rates[0].ID)
	assert.Equal(t, "l2", rates[1].ID)
	for _, rate := range rates[2:] {
		assert.NotEqual(t, "Motion Graphics", rate.Name)
	}

	global, err := service.EffectiveRates(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, global, 9)
}

func TestService_Settings(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	settings, err := service.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, settings.SeniorHourlyCost)

	settings.AgencyMultiplier = 3
	settings.Tiers = nil
	_, err = service.UpdateSettings(ctx, settings)
	require.NoError(t, err)

	stored, err := service.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.0, stored.AgencyMultiplier)
	assert.NotNil(t, stored.Tiers)
	assert.Empty(t, stored.Tiers)

	_, err = service.UpdateSettings(ctx, &domain.PricingSettings{AgencyMultiplier: -1})
	assert.True(t, errors.Is(err, ErrInvalidSettings))

	_, err = service.UpdateSettings(ctx, nil)
	assert.True(t, errors.Is(err, ErrInvalidSettings))
}
