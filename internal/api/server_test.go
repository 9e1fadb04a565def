package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/agency-ratecard-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/integrator/gemini/mocks"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/repository"
	"github.com/vfg2006/agency-ratecard-api/internal/config"
	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/auditing"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/branding"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/estimating"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/learning"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/ratecard"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type stubDigest struct {
	triggered int
}

func (s *stubDigest) TriggerManualSync(ctx context.Context) bool {
	s.triggered++
	return true
}

func (s *stubDigest) GetStatus() map[string]any {
	return map[string]any{"sync_enabled": false}
}

type testAPI struct {
	handler http.Handler
	mapper  *mocks.MockMapper
	digest  *stubDigest
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctrl := gomock.NewController(t)
	mapper := mocks.NewMockMapper(ctrl)

	mu := &sync.Mutex{}
	repos := repository.NewRepositories(repository.NewMemoryStore())
	rateCard := ratecard.NewService(mu, repos.Rates, repos.Settings, repos.Brands)
	brands := branding.NewService(mu, repos.Brands)
	digest := &stubDigest{}

	cfg := &config.Config{Server: config.Server{AllowedOrigins: []string{"http://localhost:5173"}}}
	services := Services{
		RateCard:        rateCard,
		Brands:          brands,
		Audit:           auditing.NewService(mu, repos.Brands, repos.WorkLogs, repos.Rates, repos.Snapshots, mapper),
		Estimates:       estimating.NewService(mu, repos.History, rateCard, brands, mapper),
		Insights:        learning.NewService(mu, repos.Insights, repos.Rates, mapper),
		PortfolioDigest: digest,
	}

	return &testAPI{handler: NewHandler(cfg, services), mapper: mapper, digest: digest}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestServer_Routes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:       "healthcheck",
			method:     http.MethodGet,
			path:       "/healthcheck",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.NotEmpty(t, rec.Body.String())
				assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
			},
		},
		{
			name:       "seeded rates",
			method:     http.MethodGet,
			path:       "/v1/rates",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Len(t, decode[[]domain.ServiceRate](t, rec), 9)
			},
		},
		{
			name:       "add rate validation error",
			method:     http.MethodPost,
			path:       "/v1/rates",
			body:       map[string]any{"name": "", "currentRate": 10},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				apiErr := decode[apiErrors.APIError](t, rec)
				assert.Equal(t, apiErrors.ErrInvalidRequest, apiErr.Code)
			},
		},
		{
			name:       "malformed body",
			method:     http.MethodPost,
			path:       "/v1/brands",
			body:       "not an object",
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrInvalidFormat, decode[apiErrors.APIError](t, rec).Code)
			},
		},
		{
			name:       "resolve rate unknown service",
			method:     http.MethodGet,
			path:       "/v1/rates/resolve?name=Hologram",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "resolve rate is case insensitive",
			method:     http.MethodGet,
			path:       "/v1/rates/resolve?name=reel%20editing",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "1", decode[domain.ServiceRate](t, rec).ID)
			},
		},
		{
			name:       "resolve rate requires a name",
			method:     http.MethodGet,
			path:       "/v1/rates/resolve",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown brand",
			method:     http.MethodGet,
			path:       "/v1/brands/nope",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "brand audit without logs",
			method:     http.MethodGet,
			path:       "/v1/brands/b3/audit",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				audit := decode[domain.BrandAudit](t, rec)
				assert.Equal(t, 15000.0, audit.EffectiveMonthlyRevenue)
				assert.Equal(t, domain.HealthNoData, audit.DealHealth)
			},
		},
		{
			name:       "empty work history is rejected",
			method:     http.MethodPost,
			path:       "/v1/brands/b3/worklogs/analyze",
			body:       map[string]any{"input": map[string]any{"text": "  "}, "period": map[string]any{"startYear": 2026, "startMonth": 1, "endYear": 2026, "endMonth": 1}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "history status must be known",
			method:     http.MethodPut,
			path:       "/v1/history/x/status",
			body:       map[string]any{"status": "Lost"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty snapshot list",
			method:     http.MethodGet,
			path:       "/v1/audit/snapshots",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, "[]", rec.Body.String())
			},
		},
		{
			name:       "unknown cron type",
			method:     http.MethodPost,
			path:       "/v1/cron/everything/run",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "cron status",
			method:     http.MethodGet,
			path:       "/v1/cron/status",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, decode[map[string]any](t, rec), "portfolio-digest")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			rec := api.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestServer_WorkLogFlow(t *testing.T) {
	api := newTestAPI(t)

	api.mapper.EXPECT().
		AnalyzeWorkLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in gemini.WorkLogInput) (*domain.PendingReview, error) {
			assert.Equal(t, "Reel Editing\t12\t1000", in.Input)
			return &domain.PendingReview{
				Deliverables: []domain.EstimateItem{
					{Service: "Reel Editing", Quantity: 12, SuggestedRate: 1000, Total: 12000},
					{Service: "Drone Shoot", Quantity: 1, SuggestedRate: 5000, Total: 5000},
				},
				TotalMarketValue: 17000,
			}, nil
		})

	period := map[string]any{"startYear": 2026, "startMonth": 1, "endYear": 2026, "endMonth": 3}
	input := map[string]any{"rows": []map[string]string{{"task": "Reel Editing", "quantity": "12", "price": "1000"}}}

	rec := api.do(t, http.MethodPost, "/v1/brands/b3/worklogs/analyze", map[string]any{"input": input, "period": period})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	review := decode[domain.PendingReview](t, rec)
	assert.Equal(t, domain.HealthHealthy, review.Health)

	rec = api.do(t, http.MethodPost, "/v1/reviews/toggle-overage", map[string]any{"review": review, "index": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	review = decode[domain.PendingReview](t, rec)
	assert.Equal(t, 5000.0, review.OverageTotal)

	rec = api.do(t, http.MethodPost, "/v1/brands/b3/worklogs", map[string]any{"review": review, "input": input, "period": period})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	workLog := decode[domain.WorkLog](t, rec)
	assert.Equal(t, 50000.0, workLog.ActualBilled)

	rec = api.do(t, http.MethodGet, "/v1/brands/b3/rates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rates := decode[[]domain.ServiceRate](t, rec)
	require.Len(t, rates, 10)
	assert.Equal(t, "Reel Editing", rates[0].Name)
	assert.Equal(t, "Drone Shoot", rates[1].Name)

	rec = api.do(t, http.MethodGet, "/v1/audit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	audits := decode[[]domain.BrandAudit](t, rec)
	require.Len(t, audits, 5)
	assert.InDelta(t, 16666.67, audits[2].EffectiveMonthlyRevenue, 0.01)

	rec = api.do(t, http.MethodDelete, "/v1/worklogs/"+workLog.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/v1/brands/b3/worklogs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestServer_EstimateAndInvoice(t *testing.T) {
	api := newTestAPI(t)
	png := []byte{0x89, 'P', 'N', 'G'}

	api.mapper.EXPECT().
		Estimate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in gemini.EstimateInput) (*domain.EstimateResponse, error) {
			require.NotNil(t, in.Image)
			assert.Equal(t, png, in.Image.Data)
			assert.Equal(t, "image/png", in.Image.MimeType)
			return &domain.EstimateResponse{TotalEstimate: 42000, Currency: "INR"}, nil
		})

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	rec := api.do(t, http.MethodPost, "/v1/estimates", map[string]any{"scope": "brand refresh", "image": map[string]any{"data": dataURL}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	estimate := decode[domain.EstimateResponse](t, rec)

	rec = api.do(t, http.MethodPost, "/v1/history", map[string]any{"estimate": estimate, "brandId": "b1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decode[domain.HistoryItem](t, rec)
	assert.Equal(t, "CashBook", *item.ClientName)

	rec = api.do(t, http.MethodPut, "/v1/history/"+item.ID+"/status", map[string]any{"status": "Sent"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.HistoryStatusSent, decode[domain.HistoryItem](t, rec).Status)

	api.mapper.EXPECT().
		AnalyzeInvoice(gomock.Any(), "INV-7", gomock.Nil()).
		Return([]domain.InvoiceInsight{{DetectedName: "Podcast Edit", DetectedRate: 3000, DetectedCurrency: domain.CurrencyINR}}, nil)

	rec = api.do(t, http.MethodPost, "/v1/insights", map[string]any{"text": "INV-7"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	insights := decode[[]domain.InvoiceInsight](t, rec)
	require.Len(t, insights, 1)

	rec = api.do(t, http.MethodPost, "/v1/insights/"+insights[0].ID+"/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 4500.0, decode[domain.ServiceRate](t, rec).IndustryRate)

	rec = api.do(t, http.MethodGet, "/v1/rates/resolve?name=podcast%20edit", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/v1/cron/portfolio-digest/run", nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, api.digest.triggered)
}

func TestServer_Cors(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/rates", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/rates", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNew_RequiresServices(t *testing.T) {
	_, err := New(&config.Config{}, Services{})
	assert.Error(t, err)
}
