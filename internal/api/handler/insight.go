package handler

import (
	"net/http"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/learning"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
)

type invoiceBody struct {
	Text string             `json:"text"`
	File *attachmentPayload `json:"file,omitempty"`
}

func ListInsights(service learning.InsightService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		insights, err := service.ListInsights(r.Context())
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to list insights")
			return
		}

		writeJSON(w, r, http.StatusOK, insights)
	})
}

func IngestInvoice(service learning.InsightService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body invoiceBody
		if !decodeBody(w, r, &body) {
			return
		}

		file, err := body.File.toDomain()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "file is not valid base64", nil)
			return
		}

		insights, err := service.IngestInvoice(r.Context(), &domain.IngestInvoiceRequest{Text: body.Text, File: file})
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to analyze invoice")
			return
		}

		writeJSON(w, r, http.StatusCreated, insights)
	})
}

func UpdateInsight(service learning.InsightService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request domain.UpdateInsightRequest
		if !decodeBody(w, r, &request) {
			return
		}
		request.ID = pathParam(r, "id")

		insight, err := service.UpdateInsight(r.Context(), &request)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to update insight")
			return
		}

		writeJSON(w, r, http.StatusOK, insight)
	})
}

func ApproveInsight(service learning.InsightService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rate, err := service.ApproveInsight(r.Context(), pathParam(r, "id"))
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to approve insight")
			return
		}

		writeJSON(w, r, http.StatusOK, rate)
	})
}

func DiscardInsight(service learning.InsightService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := service.DiscardInsight(r.Context(), pathParam(r, "id")); err != nil {
			apiErrors.WriteFromError(w, err, "failed to discard insight")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
