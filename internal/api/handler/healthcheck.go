package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/agency-ratecard-api/pkg/log"
)

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(time.Now().Format(time.RFC3339))); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("handler: error responding to healthcheck")
		}
	})
}
