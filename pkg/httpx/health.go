package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (Database, RedisClient, EventBus all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Component states reported by the health endpoint.
const (
	StateOK          = "ok"
	StateUnreachable = "unreachable"
	StateDisabled    = "disabled"
)

// HealthChecks holds the dependencies probed by the health endpoint.
//
// Database and EventBus are required: if either is unreachable the service
// reports "unavailable" with 503. Redis only backs the read cache, so losing
// it reports "degraded" but still answers 200. A nil checker is reported as
// "disabled"; ITEM_STORE=memory runs without any of them.
type HealthChecks struct {
	Store    string
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
}

type healthResponse struct {
	Status   string `json:"status"`
	Store    string `json:"store,omitempty"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	EventBus string `json:"event_bus"`
}

// HealthHandler returns an http.HandlerFunc that probes every configured
// dependency within a 2s budget.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{
			Status:   "ok",
			Store:    checks.Store,
			Database: probe(ctx, checks.Database),
			Redis:    probe(ctx, checks.Redis),
			EventBus: probe(ctx, checks.EventBus),
		}

		status := http.StatusOK
		switch {
		case resp.Database == StateUnreachable, resp.EventBus == StateUnreachable:
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		case resp.Redis == StateUnreachable:
			resp.Status = "degraded"
		}
		JSON(w, status, resp)
	}
}

func probe(ctx context.Context, c HealthChecker) string {
	if c == nil {
		return StateDisabled
	}
	if err := c.Ping(ctx); err != nil {
		return StateUnreachable
	}
	return StateOK
}
