package handler

import (
	"net/http"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/estimating"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
)

type estimateBody struct {
	Scope   string             `json:"scope"`
	Image   *attachmentPayload `json:"image,omitempty"`
	Region  domain.Region      `json:"region"`
	BrandID *string            `json:"brandId,omitempty"`
}

type historyStatusBody struct {
	Status domain.HistoryStatus `json:"status"`
}

func Estimate(service estimating.EstimateService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body estimateBody
		if !decodeBody(w, r, &body) {
			return
		}

		image, err := body.Image.toDomain()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "image is not valid base64", nil)
			return
		}

		estimate, err := service.Estimate(r.Context(), &domain.EstimateRequest{
			Scope:   body.Scope,
			Image:   image,
			Region:  body.Region,
			BrandID: body.BrandID,
		})
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to generate estimate")
			return
		}

		writeJSON(w, r, http.StatusOK, estimate)
	})
}

func ListHistory(service estimating.EstimateService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		history, err := service.ListHistory(r.Context())
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to list history")
			return
		}

		writeJSON(w, r, http.StatusOK, history)
	})
}

func SaveEstimate(service estimating.EstimateService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request domain.SaveEstimateRequest
		if !decodeBody(w, r, &request) {
			return
		}

		item, err := service.SaveEstimate(r.Context(), &request)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to save estimate")
			return
		}

		writeJSON(w, r, http.StatusCreated, item)
	})
}

func UpdateHistoryStatus(service estimating.EstimateService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body historyStatusBody
		if !decodeBody(w, r, &body) {
			return
		}

		item, err := service.UpdateHistoryStatus(r.Context(), pathParam(r, "id"), body.Status)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to update history status")
			return
		}

		writeJSON(w, r, http.StatusOK, item)
	})
}

func DeleteHistory(service estimating.EstimateService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteHistory(r.Context(), pathParam(r, "id")); err != nil {
			apiErrors.WriteFromError(w, err, "failed to delete history item")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
