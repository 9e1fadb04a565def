package handler

import (
	"errors"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
	"github.com/vfg2006/agency-ratecard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// uploadLimit bounds bodies that may carry an inline image or PDF.
const uploadLimit = 20 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("handler: failed to encode response")
	}
}

// decodeBody reads the JSON body into dst and writes the error response itself when it fails.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "request body is required", nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "request body too large", nil)
			return false
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "invalid request body: "+err.Error(), nil)
		return false
	}

	return true
}

func pathParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// optionalQuery returns nil for an absent or blank query parameter.
func optionalQuery(r *http.Request, name string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil
	}
	return &value
}
