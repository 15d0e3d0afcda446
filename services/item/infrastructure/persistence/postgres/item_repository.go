package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/ghuser/laundry-inventory/pkg/database"
	"github.com/ghuser/laundry-inventory/pkg/events"
	itemdomain "github.com/ghuser/laundry-inventory/services/item/domain"
	domainevents "github.com/ghuser/laundry-inventory/services/item/domain/events"
	"github.com/ghuser/laundry-inventory/services/item/domain/models"
	"github.com/ghuser/laundry-inventory/services/item/domain/repositories"
)

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// Postgres SQLSTATE codes mapped to domain errors.
const (
	pgCheckViolation   = "23514"
	pgNotNullViolation = "23502"
	pgNumericOverflow  = "22003"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. Every mutation publishes its domain event on the write's own
// transaction; pass a nil bus to disable publishing.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

func (r *ItemRepository) FindAll(ctx context.Context) ([]*models.Item, error) {
	return r.list(ctx, "find all items", selectItems+` ORDER BY id`)
}

// GetByID returns ErrItemNotFound if no row has the given id.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	var row itemRow
	if err := r.db.DB().GetContext(ctx, &row, selectItems+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return row.toItem(), nil
}

// Save inserts or overwrites item and publishes item.created / item.updated
// within the same transaction.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		row := rowFromItem(item)
		topic := domainevents.TopicItemUpdated

		if item.ID == 0 {
			stmt, err := tx.PrepareNamedContext(ctx, insertItem)
			if err != nil {
				return fmt.Errorf("prepare insert item: %w", err)
			}
			defer stmt.Close() //nolint:errcheck
			if err := stmt.GetContext(ctx, &item.ID, row); err != nil {
				return mapWriteError("insert item", err)
			}
			topic = domainevents.TopicItemCreated
		} else {
			res, err := tx.NamedExecContext(ctx, updateItem, row)
			if err != nil {
				return mapWriteError("update item", err)
			}
			if n, err := res.RowsAffected(); err != nil {
				return fmt.Errorf("update item: %w", err)
			} else if n == 0 {
				return fmt.Errorf("update item %d: %w", item.ID, itemdomain.ErrItemNotFound)
			}
		}

		evt := domainevents.NewItemChangedEvent(item)
		return r.publish(ctx, tx, topic, evt.EventID.String(), evt)
	})
}

// Delete removes an item by ID and publishes item.deleted, stamped at, when a
// row was removed.
func (r *ItemRepository) Delete(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if n == 0 {
			return nil
		}
		evt := domainevents.NewItemDeletedEvent(id, at)
		return r.publish(ctx, tx, domainevents.TopicItemDeleted, evt.EventID.String(), evt)
	})
}

func (r *ItemRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.DB().GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM inventory_items WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

func (r *ItemRepository) FindByCategory(ctx context.Context, category string) ([]*models.Item, error) {
	return r.list(ctx, "find items by category", selectItems+` WHERE category = $1 ORDER BY id`, category)
}

// FindByNameContaining matches fragment literally: LIKE wildcards in the
// fragment are escaped.
func (r *ItemRepository) FindByNameContaining(ctx context.Context, fragment string) ([]*models.Item, error) {
	return r.list(ctx, "search items",
		selectItems+` WHERE name ILIKE '%' || $1 || '%' ESCAPE '\' ORDER BY id`,
		escapeLike(fragment),
	)
}

func (r *ItemRepository) FindByQuantityAtMost(ctx context.Context, n int) ([]*models.Item, error) {
	return r.list(ctx, "find items by quantity", selectItems+` WHERE quantity <= $1 ORDER BY id`, n)
}

// AdjustQuantity applies delta with a single conditional UPDATE so concurrent
// adjustments cannot lose updates or drive the quantity negative. When no row
// is updated the item is re-checked to tell a missing ID from insufficient stock.
func (r *ItemRepository) AdjustQuantity(ctx context.Context, id int64, delta int, at time.Time) (*models.Item, error) {
	var item *models.Item
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var row itemRow
		err := tx.GetContext(ctx, &row, adjustQuantity, id, delta, at.UTC())
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM inventory_items WHERE id = $1)`, id); err != nil {
				return fmt.Errorf("check item exists: %w", err)
			}
			if !exists {
				return itemdomain.ErrItemNotFound
			}
			return fmt.Errorf("adjust item %d by %d: %w", id, delta, itemdomain.ErrInsufficientStock)
		}
		if err != nil {
			return mapWriteError("adjust quantity", err)
		}

		item = row.toItem()
		evt := domainevents.NewStockAdjustedEvent(item, delta)
		return r.publish(ctx, tx, domainevents.TopicStockAdjusted, evt.EventID.String(), evt)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *ItemRepository) list(ctx context.Context, op, query string, args ...any) ([]*models.Item, error) {
	var rows []itemRow
	if err := r.db.DB().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	items := make([]*models.Item, len(rows))
	for i := range rows {
		items[i] = rows[i].toItem()
	}
	return items, nil
}

func (r *ItemRepository) publish(ctx context.Context, tx *sqlx.Tx, topic, eventID string, payload any) error {
	if r.bus == nil {
		return nil
	}
	msg, err := events.NewMessage(ctx, eventID, payload)
	if err != nil {
		return err
	}
	msg.Metadata.Set("event_version", fmt.Sprint(domainevents.SchemaVersion))
	if err := r.bus.PublishInTx(tx.Tx, topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// mapWriteError translates constraint violations into ErrInvalidItem.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCheckViolation, pgNotNullViolation, pgNumericOverflow:
			return fmt.Errorf("%s: %w: %s", op, itemdomain.ErrInvalidItem, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
