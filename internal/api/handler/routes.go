package handler

import (
	"net/http"

	"github.com/vfg2006/agency-ratecard-api/internal/api/handler/router"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/auditing"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/branding"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/estimating"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/learning"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/ratecard"
	"github.com/vfg2006/agency-ratecard-api/pkg/middleware"
)

var uploads = []func(http.Handler) http.Handler{middleware.MaxBodyBytes(uploadLimit)}

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func RateCard(service ratecard.RateCardService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/rates",
			Method:  http.MethodGet,
			Handler: ListRates(service),
		},
		{
			Path:    "/v1/rates",
			Method:  http.MethodPost,
			Handler: AddRate(service),
		},
		{
			Path:    "/v1/rates/resolve",
			Method:  http.MethodGet,
			Handler: ResolveRate(service),
		},
		{
			Path:    "/v1/rates/:id",
			Method:  http.MethodPut,
			Handler: UpdateRate(service),
		},
		{
			Path:    "/v1/settings",
			Method:  http.MethodGet,
			Handler: GetSettings(service),
		},
		{
			Path:    "/v1/settings",
			Method:  http.MethodPut,
			Handler: UpdateSettings(service),
		},
		{
			Path:    "/v1/brands/:id/rates",
			Method:  http.MethodGet,
			Handler: EffectiveRates(service),
		},
	}
}

func Brands(service branding.BrandService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/brands",
			Method:  http.MethodGet,
			Handler: ListBrands(service),
		},
		{
			Path:    "/v1/brands",
			Method:  http.MethodPost,
			Handler: CreateBrand(service),
		},
		{
			Path:    "/v1/brands/:id",
			Method:  http.MethodGet,
			Handler: GetBrand(service),
		},
		{
			Path:    "/v1/brands/:id",
			Method:  http.MethodPut,
			Handler: UpdateBrand(service),
		},
	}
}

func Audit(service auditing.AuditService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/brands/:id/audit",
			Method:  http.MethodGet,
			Handler: AuditBrand(service),
		},
		{
			Path:    "/v1/brands/:id/worklogs",
			Method:  http.MethodGet,
			Handler: ListWorkLogs(service),
		},
		{
			Path:    "/v1/brands/:id/worklogs",
			Method:  http.MethodPost,
			Handler: ConfirmWorkLog(service),
		},
		{
			Path:        "/v1/brands/:id/worklogs/analyze",
			Method:      http.MethodPost,
			Handler:     AnalyzeWorkLog(service),
			Middlewares: uploads,
		},
		{
			Path:    "/v1/reviews/toggle-overage",
			Method:  http.MethodPost,
			Handler: ToggleOverage(service),
		},
		{
			Path:    "/v1/worklogs/:id",
			Method:  http.MethodDelete,
			Handler: DeleteWorkLog(service),
		},
		{
			Path:    "/v1/audit",
			Method:  http.MethodGet,
			Handler: AuditPortfolio(service),
		},
		{
			Path:    "/v1/audit/snapshots",
			Method:  http.MethodGet,
			Handler: ListSnapshots(service),
		},
	}
}

func Estimates(service estimating.EstimateService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/estimates",
			Method:      http.MethodPost,
			Handler:     Estimate(service),
			Middlewares: uploads,
		},
		{
			Path:    "/v1/history",
			Method:  http.MethodGet,
			Handler: ListHistory(service),
		},
		{
			Path:    "/v1/history",
			Method:  http.MethodPost,
			Handler: SaveEstimate(service),
		},
		{
			Path:    "/v1/history/:id/status",
			Method:  http.MethodPut,
			Handler: UpdateHistoryStatus(service),
		},
		{
			Path:    "/v1/history/:id",
			Method:  http.MethodDelete,
			Handler: DeleteHistory(service),
		},
	}
}

func Insights(service learning.InsightService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/insights",
			Method:  http.MethodGet,
			Handler: ListInsights(service),
		},
		{
			Path:        "/v1/insights",
			Method:      http.MethodPost,
			Handler:     IngestInvoice(service),
			Middlewares: uploads,
		},
		{
			Path:    "/v1/insights/:id",
			Method:  http.MethodPut,
			Handler: UpdateInsight(service),
		},
		{
			Path:    "/v1/insights/:id",
			Method:  http.MethodDelete,
			Handler: DiscardInsight(service),
		},
		{
			Path:    "/v1/insights/:id/approve",
			Method:  http.MethodPost,
			Handler: ApproveInsight(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
