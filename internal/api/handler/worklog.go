package handler

import (
	"net/http"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/auditing"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
)

func ListWorkLogs(service auditing.AuditService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		brandID := pathParam(r, "id")

		logs, err := service.ListWorkLogs(r.Context(), &brandID)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to list work logs")
			return
		}

		writeJSON(w, r, http.StatusOK, logs)
	})
}

func AnalyzeWorkLog(service auditing.AuditService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request domain.AnalyzeWorkLogRequest
		if !decodeBody(w, r, &request) {
			return
		}
		request.BrandID = pathParam(r, "id")

		review, err := service.AnalyzeWorkLog(r.Context(), &request)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to analyze work history")
			return
		}

		writeJSON(w, r, http.StatusOK, review)
	})
}

func ToggleOverage(service auditing.AuditService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request domain.ToggleOverageRequest
		if !decodeBody(w, r, &request) {
			return
		}

		review, err := service.ToggleOverage(r.Context(), &request)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to toggle overage")
			return
		}

		writeJSON(w, r, http.StatusOK, review)
	})
}

func ConfirmWorkLog(service auditing.AuditService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request domain.ConfirmWorkLogRequest
		if !decodeBody(w, r, &request) {
			return
		}
		request.BrandID = pathParam(r, "id")

		workLog, err := service.ConfirmWorkLog(r.Context(), &request)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to confirm work log")
			return
		}

		writeJSON(w, r, http.StatusCreated, workLog)
	})
}

func DeleteWorkLog(service auditing.AuditService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteWorkLog(r.Context(), pathParam(r, "id")); err != nil {
			apiErrors.WriteFromError(w, err, "failed to delete work log")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func AuditBrand(service auditing.AuditService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		audit, err := service.AuditBrand(r.Context(), pathParam(r, "id"))
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to audit brand")
			return
		}

		writeJSON(w, r, http.StatusOK, audit)
	})
}

func AuditPortfolio(service auditing.AuditService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		audits, err := service.AuditPortfolio(r.Context())
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to audit portfolio")
			return
		}

		writeJSON(w, r, http.StatusOK, audits)
	})
}

func ListSnapshots(service auditing.AuditService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshots, err := service.ListSnapshots(r.Context())
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to list snapshots")
			return
		}

		writeJSON(w, r, http.StatusOK, snapshots)
	})
}
