// Package errhttp maps inventory domain errors to HTTP status codes.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/laundry-inventory/pkg/httpx"
	itemdomain "github.com/ghuser/laundry-inventory/services/item/domain"
)

// WriteError writes err as {"error": ...} with the status from StatusFor.
func WriteError(w http.ResponseWriter, err error) {
	WriteErrorStatus(w, StatusFor(err), err)
}

// WriteErrorStatus writes err with an explicit status, for endpoints whose
// contract overrides the default mapping. 5xx messages are replaced with the
// status text.
func WriteErrorStatus(w http.ResponseWriter, status int, err error) {
	httpx.JSONError(w, status, httpx.SafeError(err, status))
}

// StatusFor returns the HTTP status for err, matching wrapped sentinels.
// A rejected stock adjustment is a client error, not a conflict: the request
// asked for more than is on hand.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, itemdomain.ErrInvalidItem):
		return http.StatusBadRequest
	case errors.Is(err, itemdomain.ErrInsufficientStock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
