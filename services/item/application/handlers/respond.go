package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/laundry-inventory/pkg/errhttp"
	"github.com/ghuser/laundry-inventory/pkg/logger"
	"github.com/ghuser/laundry-inventory/pkg/telemetry"
)

var errInvalidID = errors.New("invalid item id")

// itemID parses the {id} path parameter.
func itemID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// writeError logs and reports server-side failures before writing the mapped status.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	writeErrorStatus(w, r, log, errhttp.StatusFor(err), err)
}

func writeErrorStatus(w http.ResponseWriter, r *http.Request, log logger.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		telemetry.CaptureError(r.Context(), err)
	}
	errhttp.WriteErrorStatus(w, status, err)
}
