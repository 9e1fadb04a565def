package auditing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/agency-ratecard-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/integrator/gemini/mocks"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/repository"
	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
)

func newTestService(t *testing.T) (*Service, *mocks.MockMapper, *repository.Repositories) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mapper := mocks.NewMockMapper(ctrl)
	repos := repository.NewRepositories(repository.NewMemoryStore())

	service := NewService(&sync.Mutex{}, repos.Brands, repos.WorkLogs, repos.Rates, repos.Snapshots, mapper)
	service.now = func() time.Time { return time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC) }

	return service, mapper, repos
}

func floatPtr(f float64) *float64 { return &f }

func stringPtr(s string) *string { return &s }

func firstQuarter() domain.BillingPeriod {
	return domain.BillingPeriod{StartYear: 2026, StartMonth: time.January, EndYear: 2026, EndMonth: time.March}
}

func singleMonth(month time.Month) domain.BillingPeriod {
	return domain.BillingPeriod{StartYear: 2026, StartMonth: month, EndYear: 2026, EndMonth: month}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var serviceErr *apiErrors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, code, serviceErr.Code)
}

func TestService_AnalyzeWorkLog(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		request  *domain.AnalyzeWorkLogRequest
		setup    func(mapper *mocks.MockMapper)
		validate func(t *testing.T, review *domain.PendingReview, err error)
	}{
		{
			name: "table rows are sent as tab separated lines",
			request: &domain.AnalyzeWorkLogRequest{
				BrandID: "b3",
				Input: domain.WorkInput{Rows: []domain.TableRow{
					{Task: "Reel Editing", Quantity: "12", Price: "1000"},
					{Task: "  ", Quantity: "1", Price: "1"},
					{Task: "Static Graphic", Quantity: "4", Price: ""},
				}},
				Period: firstQuarter(),
			},
			setup: func(mapper *mocks.MockMapper) {
				mapper.EXPECT().
					AnalyzeWorkLog(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in gemini.WorkLogInput) (*domain.PendingReview, error) {
						assert.Equal(t, "Reel Editing\t12\t1000\nStatic Graphic\t4\t", in.Input)
						assert.Equal(t, 3, in.PeriodMonths)
						assert.Equal(t, "b3", in.Brand.ID)
						assert.Len(t, in.Rates, 9)
						return &domain.PendingReview{TotalMarketValue: 14000}, nil
					})
			},
			validate: func(t *testing.T, review *domain.PendingReview, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.HealthHealthy, review.Health)
				assert.NotNil(t, review.Deliverables)
				assert.Equal(t, 14000.0, review.TotalMarketValue)
			},
		},
		{
			name:    "blank text is rejected without calling the mapper",
			request: &domain.AnalyzeWorkLogRequest{BrandID: "b3", Input: domain.WorkInput{Text: " \n "}, Period: firstQuarter()},
			setup:   func(mapper *mocks.MockMapper) {},
			validate: func(t *testing.T, review *domain.PendingReview, err error) {
				require.ErrorIs(t, err, ErrEmptyInput)
				requireCode(t, err, apiErrors.ErrMissingRequiredData)
				assert.Nil(t, review)
			},
		},
		{
			name: "rows without tasks are rejected without calling the mapper",
			request: &domain.AnalyzeWorkLogRequest{
				BrandID: "b3",
				Input:   domain.WorkInput{Rows: []domain.TableRow{{Task: "", Quantity: "2", Price: "10"}}},
				Period:  firstQuarter(),
			},
			setup: func(mapper *mocks.MockMapper) {},
			validate: func(t *testing.T, review *domain.PendingReview, err error) {
				require.ErrorIs(t, err, ErrEmptyInput)
			},
		},
		{
			name:    "unknown brand",
			request: &domain.AnalyzeWorkLogRequest{BrandID: "missing", Input: domain.WorkInput{Text: "12 reels"}, Period: firstQuarter()},
			setup:   func(mapper *mocks.MockMapper) {},
			validate: func(t *testing.T, review *domain.PendingReview, err error) {
				require.ErrorIs(t, err, ErrBrandNotFound)
				requireCode(t, err, apiErrors.ErrNotFound)
			},
		},
		{
			name:    "invalid month",
			request: &domain.AnalyzeWorkLogRequest{BrandID: "b3", Input: domain.WorkInput{Text: "12 reels"}, Period: domain.BillingPeriod{StartYear: 2026, StartMonth: 0, EndYear: 2026, EndMonth: 13}},
			setup:   func(mapper *mocks.MockMapper) {},
			validate: func(t *testing.T, review *domain.PendingReview, err error) {
				requireCode(t, err, apiErrors.ErrInvalidRequest)
			},
		},
		{
			name:    "mapper failure surfaces as external service error",
			request: &domain.AnalyzeWorkLogRequest{BrandID: "b3", Input: domain.WorkInput{Text: "12 reels"}, Period: singleMonth(time.February)},
			setup: func(mapper *mocks.MockMapper) {
				mapper.EXPECT().
					AnalyzeWorkLog(gomock.Any(), gomock.Any()).
					Return(nil, &gemini.MapperError{Op: gemini.OpAnalyzeWorkLog, Kind: gemini.ErrorKindParse, Err: errors.New("bad json")})
			},
			validate: func(t *testing.T, review *domain.PendingReview, err error) {
				require.ErrorIs(t, err, ErrMapperFailure)
				requireCode(t, err, apiErrors.ErrExternalService)
				assert.Nil(t, review)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mapper, repos := newTestService(t)
			tt.setup(mapper)

			review, err := service.AnalyzeWorkLog(ctx, tt.request)
			tt.validate(t, review, err)

			logs, listErr := repos.WorkLogs.List(ctx)
			require.NoError(t, listErr)
			assert.Empty(t, logs)
		})
	}
}

func TestService_ToggleOverage(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	review := domain.PendingReview{
		Deliverables: []domain.EstimateItem{
			{Service: "Reel Editing", Total: 3000},
			{Service: "Ad Creative (Video)", Total: 2000, IsOverage: true},
		},
		OverageTotal: 2000,
	}

	toggled, err := service.ToggleOverage(ctx, &domain.ToggleOverageRequest{Review: review, Index: 0})
	require.NoError(t, err)
	assert.True(t, toggled.Deliverables[0].IsOverage)
	assert.Equal(t, 5000.0, toggled.OverageTotal)
	assert.False(t, review.Deliverables[0].IsOverage)

	_, err = service.ToggleOverage(ctx, &domain.ToggleOverageRequest{Review: review, Index: 2})
	require.ErrorIs(t, err, ErrInvalidIndex)
	requireCode(t, err, apiErrors.ErrInvalidRequest)
}

func TestService_ConfirmWorkLog(t *testing.T) {
	ctx := context.Background()
	video := domain.CategoryVideo

	tests := []struct {
		name     string
		request  *domain.ConfirmWorkLogRequest
		validate func(t *testing.T, workLog *domain.WorkLog, repos *repository.Repositories, err error)
	}{
		{
			name: "bills fee times months plus overage",
			request: &domain.ConfirmWorkLogRequest{
				BrandID: "b3",
				Review:  domain.PendingReview{OverageTotal: 5000, AIInsight: "fine"},
				Input:   domain.WorkInput{Text: "12 reels"},
				Period:  firstQuarter(),
			},
			validate: func(t *testing.T, workLog *domain.WorkLog, repos *repository.Repositories, err error) {
				require.NoError(t, err)
				assert.Equal(t, 50000.0, workLog.ActualBilled)
				assert.Equal(t, 3, workLog.PeriodMonths)
				assert.Equal(t, "January 2026 — March 2026", workLog.Month)
				assert.Equal(t, domain.HealthHealthy, workLog.Health)
				assert.Equal(t, "12 reels", workLog.RawInput)
				assert.Equal(t, int64(1), workLog.Sequence)
				assert.NotNil(t, workLog.Deliverables)
			},
		},
		{
			name: "sheet revenue wins over the formula",
			request: &domain.ConfirmWorkLogRequest{
				BrandID: "b3",
				Review:  domain.PendingReview{OverageTotal: 5000, TotalSheetRevenue: floatPtr(83000), Health: domain.HealthLoss},
				Input:   domain.WorkInput{Rows: []domain.TableRow{{Task: "Reel Editing", Quantity: "12", Price: "1000"}}},
				Period:  singleMonth(time.April),
			},
			validate: func(t *testing.T, workLog *domain.WorkLog, repos *repository.Repositories, err error) {
				require.NoError(t, err)
				assert.Equal(t, 83000.0, workLog.ActualBilled)
				assert.Equal(t, "April 2026", workLog.Month)
				assert.Equal(t, domain.HealthLoss, workLog.Health)
				assert.Equal(t, `[{"task":"Reel Editing","quantity":"12","price":"1000"}]`, workLog.RawInput)
			},
		},
		{
			name: "learns new services once",
			request: &domain.ConfirmWorkLogRequest{
				BrandID: "b2",
				Review: domain.PendingReview{Deliverables: []domain.EstimateItem{
					{Service: "Drone Shoot", Quantity: 1, Unit: "per day", SuggestedRate: 20000, Total: 20000, Category: &video},
					{Service: "drone shoot", Quantity: 1, Unit: "per day", SuggestedRate: 25000, Total: 25000},
					{Service: "Carousel", Quantity: 2, SuggestedRate: 1500, Total: 3000},
				}},
				Input:  domain.WorkInput{Text: "drone and carousels"},
				Period: singleMonth(time.May),
			},
			validate: func(t *testing.T, workLog *domain.WorkLog, repos *repository.Repositories, err error) {
				require.NoError(t, err)

				brands, listErr := repos.Brands.List(context.Background())
				require.NoError(t, listErr)
				brand := brands[domain.FindBrand(brands, "b2")]
				require.Len(t, brand.LearnedRates, 2)

				drone := domain.FindRate(brand.LearnedRates, "DRONE SHOOT")
				require.NotNil(t, drone)
				assert.Equal(t, 20000.0, drone.CurrentRate)
				assert.Equal(t, 30000.0, drone.IndustryRate)
				assert.Equal(t, domain.CategoryVideo, drone.Category)
				assert.Equal(t, domain.CurrencyINR, drone.Currency)

				carousel := domain.FindRate(brand.LearnedRates, "Carousel")
				require.NotNil(t, carousel)
				assert.Equal(t, domain.CategoryOther, carousel.Category)
			},
		},
		{
			name:    "unknown brand",
			request: &domain.ConfirmWorkLogRequest{BrandID: "missing", Period: firstQuarter()},
			validate: func(t *testing.T, workLog *domain.WorkLog, repos *repository.Repositories, err error) {
				require.ErrorIs(t, err, ErrBrandNotFound)
				logs, listErr := repos.WorkLogs.List(context.Background())
				require.NoError(t, listErr)
				assert.Empty(t, logs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, repos := newTestService(t)
			workLog, err := service.ConfirmWorkLog(ctx, tt.request)
			tt.validate(t, workLog, repos, err)
		})
	}
}

func TestService_WorkLogLifecycle(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	var ids []string
	for month := time.January; month <= time.July; month++ {
		workLog, err := service.ConfirmWorkLog(ctx, &domain.ConfirmWorkLogRequest{
			BrandID: "b2",
			Review:  domain.PendingReview{TotalSheetRevenue: floatPtr(float64(month) * 10000)},
			Input:   domain.WorkInput{Text: month.String()},
			Period:  singleMonth(month),
		})
		require.NoError(t, err)
		ids = append(ids, workLog.ID)
	}

	_, err := service.ConfirmWorkLog(ctx, &domain.ConfirmWorkLogRequest{
		BrandID: "b1",
		Review:  domain.PendingReview{Health: domain.HealthWarning},
		Input:   domain.WorkInput{Text: "cashbook"},
		Period:  singleMonth(time.January),
	})
	require.NoError(t, err)

	logs, err := service.ListWorkLogs(ctx, stringPtr("b2"))
	require.NoError(t, err)
	require.Len(t, logs, 7)
	assert.Equal(t, "January 2026", logs[0].Month)
	assert.Equal(t, "July 2026", logs[6].Month)

	all, err := service.ListWorkLogs(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 8)

	// window keeps February to July: (2+3+4+5+6+7) * 10000 / 6
	audit, err := service.AuditBrand(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, 45000.0, audit.EffectiveMonthlyRevenue)
	assert.Equal(t, 7, audit.LogCount)
	assert.Equal(t, 40000.0, audit.NominalRetainer)

	require.NoError(t, service.DeleteWorkLog(ctx, ids[6]))
	audit, err = service.AuditBrand(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, 35000.0, audit.EffectiveMonthlyRevenue)

	err = service.DeleteWorkLog(ctx, ids[6])
	require.ErrorIs(t, err, ErrWorkLogNotFound)
	requireCode(t, err, apiErrors.ErrNotFound)

	portfolio, err := service.AuditPortfolio(ctx)
	require.NoError(t, err)
	require.Len(t, portfolio, 5)
	assert.Equal(t, domain.HealthWarning, portfolio[0].DealHealth)
	assert.Equal(t, 100000.0, portfolio[0].EffectiveMonthlyRevenue)
	assert.Equal(t, domain.HealthNoData, portfolio[2].DealHealth)
	assert.Equal(t, 15000.0, portfolio[2].EffectiveMonthlyRevenue)
	assert.Equal(t, 0.0, portfolio[3].EffectiveMonthlyRevenue)
}

func TestService_TakeSnapshot(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	empty, err := service.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for i := 0; i < 3; i++ {
		snapshot, err := service.TakeSnapshot(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, snapshot.Brands, 5)
		assert.NotEmpty(t, snapshot.ID)
	}

	snapshots, err := service.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshots, 2)
}
