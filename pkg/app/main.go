package app

import (
	"github.com/ghuser/laundry-inventory/pkg/cache"
	"github.com/ghuser/laundry-inventory/pkg/config"
	"github.com/ghuser/laundry-inventory/pkg/database"
	"github.com/ghuser/laundry-inventory/pkg/events"
	"github.com/ghuser/laundry-inventory/pkg/logger"
	"github.com/ghuser/laundry-inventory/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// cmd/api passes it to ItemRoutes; cmd/worker builds the item services from it.
//
// Db, EventBus and Redis are nil when ITEM_STORE=memory; TemporalClient is nil
// unless TEMPORAL_ENABLED is set. Services must treat nil as "not configured".
//
// app.Logger injects trace_id, span_id and request_id when given a context:
//
//	app.Logger.InfoContext(ctx, "processing item", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
}
