package handler

import (
	"context"
	"net/http"

	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
)

const CronJobTypePortfolioDigest = "portfolio-digest"

// DigestJob is a background job that can be started on demand.
type DigestJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

type CronJobServices struct {
	PortfolioDigest DigestJob
}

func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := pathParam(r, "type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "cron job type is required", nil)
			return
		}

		var started bool
		switch cronType {
		case CronJobTypePortfolioDigest:
			if services.PortfolioDigest == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "portfolio digest is not available", nil)
				return
			}
			started = services.PortfolioDigest.TriggerManualSync(r.Context())
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "unknown cron job type, accepted values: "+CronJobTypePortfolioDigest, nil)
			return
		}

		message := "cron job started"
		if !started {
			message = "cron job already running"
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": message,
			"type":    cronType,
			"started": started,
		})
	})
}

func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.PortfolioDigest != nil {
			status[CronJobTypePortfolioDigest] = services.PortfolioDigest.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
