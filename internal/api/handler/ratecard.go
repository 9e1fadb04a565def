package handler

import (
	"net/http"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/ratecard"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
)

func ListRates(service ratecard.RateCardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rates, err := service.ListRates(r.Context())
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to list rates")
			return
		}

		writeJSON(w, r, http.StatusOK, rates)
	})
}

func AddRate(service ratecard.RateCardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request domain.CreateRateRequest
		if !decodeBody(w, r, &request) {
			return
		}

		rate, err := service.AddRate(r.Context(), &request)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to add rate")
			return
		}

		writeJSON(w, r, http.StatusCreated, rate)
	})
}

func UpdateRate(service ratecard.RateCardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request domain.UpdateRateRequest
		if !decodeBody(w, r, &request) {
			return
		}
		request.ID = pathParam(r, "id")

		rate, err := service.UpdateRate(r.Context(), &request)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to update rate")
			return
		}

		writeJSON(w, r, http.StatusOK, rate)
	})
}

// ResolveRate answers 404 when neither the brand nor the catalog knows the service.
func ResolveRate(service ratecard.RateCardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := optionalQuery(r, "name")
		if name == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "query parameter name is required", nil)
			return
		}

		rate, err := service.ResolveRate(r.Context(), *name, optionalQuery(r, "brand_id"))
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to resolve rate")
			return
		}
		if rate == nil {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "no rate known for service", map[string]any{"name": *name})
			return
		}

		writeJSON(w, r, http.StatusOK, rate)
	})
}

func EffectiveRates(service ratecard.RateCardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		brandID := pathParam(r, "id")

		rates, err := service.EffectiveRates(r.Context(), &brandID)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to list brand rates")
			return
		}

		writeJSON(w, r, http.StatusOK, rates)
	})
}

func GetSettings(service ratecard.RateCardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		settings, err := service.GetSettings(r.Context())
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to load settings")
			return
		}

		writeJSON(w, r, http.StatusOK, settings)
	})
}

func UpdateSettings(service ratecard.RateCardService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var settings domain.PricingSettings
		if !decodeBody(w, r, &settings) {
			return
		}

		updated, err := service.UpdateSettings(r.Context(), &settings)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to update settings")
			return
		}

		writeJSON(w, r, http.StatusOK, updated)
	})
}
