package handler

import (
	"net/http"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/internal/usecases/branding"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
)

func ListBrands(service branding.BrandService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		brands, err := service.ListBrands(r.Context())
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to list brands")
			return
		}

		writeJSON(w, r, http.StatusOK, brands)
	})
}

func GetBrand(service branding.BrandService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		brand, err := service.GetBrand(r.Context(), pathParam(r, "id"))
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to load brand")
			return
		}

		writeJSON(w, r, http.StatusOK, brand)
	})
}

func CreateBrand(service branding.BrandService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request domain.CreateBrandRequest
		if !decodeBody(w, r, &request) {
			return
		}

		brand, err := service.CreateBrand(r.Context(), &request)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to create brand")
			return
		}

		writeJSON(w, r, http.StatusCreated, brand)
	})
}

func UpdateBrand(service branding.BrandService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request domain.UpdateBrandRequest
		if !decodeBody(w, r, &request) {
			return
		}
		request.ID = pathParam(r, "id")

		brand, err := service.UpdateBrand(r.Context(), &request)
		if err != nil {
			apiErrors.WriteFromError(w, err, "failed to update brand")
			return
		}

		writeJSON(w, r, http.StatusOK, brand)
	})
}
