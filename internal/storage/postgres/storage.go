package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/errors"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage uses. Tests substitute
// a mock through newPgxPool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL. It is the
// authoritative order directory: the pending -> paid transition happens
// here and nowhere else.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

type agentRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Agents() repository.AgentRepository {
	return &agentRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS agents (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            order_number TEXT UNIQUE NOT NULL,
            customer_name TEXT NOT NULL,
            customer_phone TEXT NOT NULL,
            delivery_address TEXT NOT NULL,
            zone TEXT NOT NULL,
            county TEXT NOT NULL,
            subtotal NUMERIC(12,2) NOT NULL,
            shipping_fee NUMERIC(12,2) NOT NULL DEFAULT 0,
            tax NUMERIC(12,2) NOT NULL DEFAULT 0,
            discount NUMERIC(12,2) NOT NULL DEFAULT 0,
            total NUMERIC(12,2) NOT NULL,
            payment_method TEXT NOT NULL,
            payment_status TEXT NOT NULL DEFAULT 'pending',
            paid_at TIMESTAMPTZ,
            placed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            name TEXT NOT NULL,
            unit_price NUMERIC(12,2) NOT NULL,
            quantity INT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id BIGSERIAL PRIMARY KEY,
            order_number TEXT UNIQUE NOT NULL REFERENCES orders(order_number),
            method TEXT NOT NULL,
            amount_received NUMERIC(12,2) NOT NULL,
            external_reference TEXT NOT NULL DEFAULT '',
            external_transaction_id TEXT NOT NULL DEFAULT '',
            customer_phone TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            zone TEXT NOT NULL DEFAULT '',
            county TEXT NOT NULL DEFAULT '',
            transaction_reference TEXT UNIQUE NOT NULL,
            recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_pending ON orders(placed_at) WHERE payment_status='pending'`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- AgentRepository implementation ---

func (r *agentRepository) Create(ctx context.Context, login, passwordHash string) (*model.Agent, error) {
	const query = `INSERT INTO agents (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var a model.Agent
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	a.Login = login
	a.PasswordHash = passwordHash
	return &a, nil
}

func (r *agentRepository) GetByLogin(ctx context.Context, login string) (*model.Agent, error) {
	const query = `SELECT id, login, password_hash, created_at FROM agents WHERE login=$1`
	var a model.Agent
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *agentRepository) GetByID(ctx context.Context, id int64) (*model.Agent, error) {
	const query = `SELECT id, login, password_hash, created_at FROM agents WHERE id=$1`
	var a model.Agent
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const insertOrder = `INSERT INTO orders
        (order_number, customer_name, customer_phone, delivery_address, zone, county,
         subtotal, shipping_fee, tax, discount, total, payment_method, payment_status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id, placed_at, updated_at`
	const insertItem = `INSERT INTO order_items (order_id, name, unit_price, quantity) VALUES ($1, $2, $3, $4) RETURNING id`

	created := *order
	created.PaymentStatus = model.PaymentStatusPending
	created.PaidAt = nil

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertOrder,
			order.OrderNumber, order.CustomerName, order.CustomerPhone, order.DeliveryAddress,
			order.Zone, order.County,
			order.Subtotal.String(), order.ShippingFee.String(), order.Tax.String(),
			order.Discount.String(), order.Total.String(),
			string(order.PaymentMethod), string(model.PaymentStatusPending),
		).Scan(&created.ID, &created.PlacedAt, &created.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		created.Items = make([]model.OrderItem, 0, len(order.Items))
		for _, item := range order.Items {
			stored := item
			if err := tx.QueryRow(ctx, insertItem, created.ID, item.Name, item.UnitPrice.String(), item.Quantity).Scan(&stored.ID); err != nil {
				return err
			}
			created.Items = append(created.Items, stored)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

const orderColumns = `id, order_number, customer_name, customer_phone, delivery_address, zone, county,
        subtotal::text, shipping_fee::text, tax::text, discount::text, total::text,
        payment_method, payment_status, paid_at, placed_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o                                        model.Order
		subtotal, shipping, tax, discount, total string
		method, status                           string
	)
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerPhone, &o.DeliveryAddress,
		&o.Zone, &o.County, &subtotal, &shipping, &tax, &discount, &total,
		&method, &status, &o.PaidAt, &o.PlacedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if o.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, fmt.Errorf("parse subtotal: %w", err)
	}
	if o.ShippingFee, err = decimal.NewFromString(shipping); err != nil {
		return nil, fmt.Errorf("parse shipping fee: %w", err)
	}
	if o.Tax, err = decimal.NewFromString(tax); err != nil {
		return nil, fmt.Errorf("parse tax: %w", err)
	}
	if o.Discount, err = decimal.NewFromString(discount); err != nil {
		return nil, fmt.Errorf("parse discount: %w", err)
	}
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	o.PaymentMethod = model.PaymentMethod(method)
	o.PaymentStatus = model.PaymentStatus(status)
	return &o, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `SELECT id, name, unit_price::text, quantity FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, order.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item  model.OrderItem
			price string
		)
		if err := rows.Scan(&item.ID, &item.Name, &price, &item.Quantity); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse unit price: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListPendingPayment(ctx context.Context, limit, offset int) ([]model.PendingOrder, error) {
	const query = `SELECT o.order_number, o.customer_name, o.customer_phone, o.zone, o.county, o.total::text,
                   (SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id) AS item_count,
                   o.placed_at
                   FROM orders o
                   WHERE o.payment_status='pending'
                   ORDER BY o.placed_at
                   LIMIT $1 OFFSET $2`
	rows, err := r.storage.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PendingOrder
	for rows.Next() {
		var (
			p     model.PendingOrder
			total string
		)
		if err := rows.Scan(&p.OrderNumber, &p.CustomerName, &p.CustomerPhone, &p.Zone, &p.County, &total, &p.ItemCount, &p.PlacedAt); err != nil {
			return nil, err
		}
		if p.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CommitPayment flips the order to paid with a compare-and-set update, so
// concurrent submissions for the same order resolve to exactly one winner.
// The amount received is taken from the order row itself, never from the
// caller, and the transaction reference is generated here.
func (r *orderRepository) CommitPayment(ctx context.Context, number string, record model.PaymentRecord) (*model.PaymentReceipt, error) {
	const markPaid = `UPDATE orders
                      SET payment_status='paid', paid_at=NOW(), updated_at=NOW()
                      WHERE order_number=$1 AND payment_status='pending'
                      RETURNING total::text, zone, county, paid_at`
	const classify = `SELECT payment_status FROM orders WHERE order_number=$1`
	const insertPayment = `INSERT INTO payments
        (order_number, method, amount_received, external_reference, external_transaction_id,
         customer_phone, notes, zone, county, transaction_reference)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	receipt := &model.PaymentReceipt{
		OrderNumber:          number,
		Method:               record.Method,
		TransactionReference: newTransactionReference(),
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var (
			total        string
			zone, county string
			paidAt       time.Time
		)
		err := tx.QueryRow(ctx, markPaid, number).Scan(&total, &zone, &county, &paidAt)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			// Zero rows updated: the order is missing or already settled.
			var status string
			if err := tx.QueryRow(ctx, classify, number).Scan(&status); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domainErrors.ErrNotFound
				}
				return err
			}
			return domainErrors.ErrOrderAlreadyPaid
		}

		amount, err := decimal.NewFromString(total)
		if err != nil {
			return fmt.Errorf("parse total: %w", err)
		}
		receipt.AmountReceived = amount
		receipt.PaidAt = paidAt

		_, err = tx.Exec(ctx, insertPayment,
			number, string(record.Method), amount.String(),
			record.ExternalReference, record.ExternalTransactionID,
			record.CustomerPhone, record.Notes, zone, county,
			receipt.TransactionReference,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrOrderAlreadyPaid
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func newTransactionReference() string {
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) GetByOrderNumber(ctx context.Context, number string) (*model.Payment, error) {
	const query = `SELECT id, order_number, method, amount_received::text, external_reference,
                   external_transaction_id, customer_phone, notes, zone, county,
                   transaction_reference, recorded_at
                   FROM payments WHERE order_number=$1`
	var (
		p      model.Payment
		method string
		amount string
	)
	err := r.storage.pool.QueryRow(ctx, query, number).Scan(
		&p.ID, &p.OrderNumber, &method, &amount, &p.ExternalReference,
		&p.ExternalTransactionID, &p.CustomerPhone, &p.Notes, &p.Zone, &p.County,
		&p.TransactionReference, &p.RecordedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if p.AmountReceived, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	p.Method = model.PaymentMethod(method)
	return &p, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
