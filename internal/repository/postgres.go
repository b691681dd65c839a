package repository

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/blumelein/blumelein-server/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// column list shared by every read path
var orderColumns = []string{
	"order_id", "items", "buyer_full_name", "buyer_email", "buyer_phone",
	"delivery_address", "payment_status", "order_status", "created_at", "updated_at",
}

// PostgresRepository implements OrderRepository on PostgreSQL. Each order is
// one row; items are stored as a JSONB document, mirroring the aggregate
// ownership of the model.
type PostgresRepository struct {
	dsn  string
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewPostgresRepository creates an unconnected repository for the given DSN.
func NewPostgresRepository(dsn string) *PostgresRepository {
	return &PostgresRepository{
		dsn: dsn,
		sb:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Init connects the pool and runs pending migrations.
func (r *PostgresRepository) Init(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, r.dsn)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}

	if err := r.migrate(pool); err != nil {
		pool.Close()
		return err
	}

	r.pool = pool
	return nil
}

func (r *PostgresRepository) migrate(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close releases the pool. Safe to call after a partial Init.
func (r *PostgresRepository) Close(ctx context.Context) error {
	if r.pool != nil {
		r.pool.Close()
		r.pool = nil
	}
	return nil
}

// CreateOrder inserts the order row.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	if r.pool == nil {
		return models.Order{}, ErrNotReady
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return models.Order{}, fmt.Errorf("encode items: %w", err)
	}

	query, args, err := r.sb.Insert("orders").
		Columns(orderColumns...).
		Values(order.OrderID, items, order.BuyerFullName, order.BuyerEmail, order.BuyerPhone,
			order.DeliveryAddress, order.PaymentStatus, order.OrderStatus, order.CreatedAt, order.UpdatedAt).
		ToSql()
	if err != nil {
		return models.Order{}, fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return order, nil
}

// GetOrder fetches a single order row.
func (r *PostgresRepository) GetOrder(ctx context.Context, id uuid.UUID) (models.Order, error) {
	if r.pool == nil {
		return models.Order{}, ErrNotReady
	}

	query, args, err := r.sb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"order_id": id}).
		ToSql()
	if err != nil {
		return models.Order{}, fmt.Errorf("build select: %w", err)
	}

	order, err := scanOrder(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, fmt.Errorf("select order: %w", err)
	}
	return order, nil
}

// GetAllOrders returns all rows, newest first. order_id is the tie-break so
// the ordering stays deterministic.
func (r *PostgresRepository) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	if r.pool == nil {
		return nil, ErrNotReady
	}

	query, args, err := r.sb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "order_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// UpdateOrderPaymentStatus runs a single UPDATE ... RETURNING, so the status
// change and updated_at refresh are one atomic write.
func (r *PostgresRepository) UpdateOrderPaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) (models.Order, error) {
	return r.updateStatus(ctx, id, "payment_status", string(status))
}

// UpdateOrderStatus is the fulfillment counterpart of UpdateOrderPaymentStatus.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (models.Order, error) {
	return r.updateStatus(ctx, id, "order_status", string(status))
}

func (r *PostgresRepository) updateStatus(ctx context.Context, id uuid.UUID, column, value string) (models.Order, error) {
	if r.pool == nil {
		return models.Order{}, ErrNotReady
	}

	query, args, err := r.sb.Update("orders").
		Set(column, value).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"order_id": id}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return models.Order{}, fmt.Errorf("build update: %w", err)
	}

	order, err := scanOrder(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, fmt.Errorf("update %s: %w", column, err)
	}
	return order, nil
}

func returningColumns() string {
	out := orderColumns[0]
	for _, c := range orderColumns[1:] {
		out += ", " + c
	}
	return out
}

func scanOrder(row pgx.Row) (models.Order, error) {
	var (
		o     models.Order
		items []byte
	)
	err := row.Scan(&o.OrderID, &items, &o.BuyerFullName, &o.BuyerEmail, &o.BuyerPhone,
		&o.DeliveryAddress, &o.PaymentStatus, &o.OrderStatus, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return models.Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return models.Order{}, fmt.Errorf("decode items: %w", err)
	}
	return o, nil
}
