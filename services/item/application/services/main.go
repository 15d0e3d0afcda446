package services

import (
	"github.com/ghuser/laundry-inventory/pkg/app"
	"github.com/ghuser/laundry-inventory/pkg/cache"
	"github.com/ghuser/laundry-inventory/pkg/logger"
	"github.com/ghuser/laundry-inventory/services/item/domain/repositories"
	"github.com/ghuser/laundry-inventory/services/item/infrastructure/persistence/memory"
	"github.com/ghuser/laundry-inventory/services/item/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
	Log  logger.Logger
}

// New wires all item application services with infrastructure from the Application container.
// Without a database the in-memory repository is used and caching is off.
func New(a *app.Application) *Services {
	var repo repositories.ItemRepository
	if a.Db != nil {
		repo = postgres.NewItemRepository(a.Db, a.EventBus)
	} else {
		repo = memory.NewItemRepository()
	}

	var opts []Option
	if a.Redis != nil {
		opts = append(opts, WithCache(cache.NewItemCache(a.Redis)))
	}

	return &Services{
		Item: NewItemService(repo, a.Logger, opts...),
		Log:  a.Logger,
	}
}
