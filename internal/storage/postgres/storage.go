package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/errors"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/model"
	"github.com/CBillups260/RoweBrosWebsite-sub001/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool the storage layer relies on.
// pgxmock provides the same surface in tests.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// lineRecord is the JSONB shape of one denormalized order line. Money fields
// are stored as strings to keep decimal values exact.
type lineRecord struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Amount    string `json:"amount"`
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
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

var _ repository.Factory = (*Storage)(nil)

// Factory methods for domain repositories.
func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price NUMERIC(12,2) NOT NULL,
            images JSONB NOT NULL DEFAULT '[]',
            category_id TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            payment_reference TEXT UNIQUE NOT NULL,
            customer_first_name TEXT NOT NULL,
            customer_last_name TEXT NOT NULL,
            customer_email TEXT NOT NULL,
            customer_phone TEXT NOT NULL DEFAULT '',
            delivery_address TEXT NOT NULL,
            delivery_city TEXT NOT NULL,
            delivery_state TEXT NOT NULL DEFAULT '',
            delivery_zip TEXT NOT NULL DEFAULT '',
            delivery_date TEXT NOT NULL,
            delivery_time TEXT NOT NULL DEFAULT '',
            delivery_instructions TEXT NOT NULL DEFAULT '',
            line_items JSONB NOT NULL,
            subtotal NUMERIC(12,2) NOT NULL,
            delivery_fee NUMERIC(12,2) NOT NULL,
            tax NUMERIC(12,2) NOT NULL,
            total NUMERIC(12,2) NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- ProductRepository implementation ---

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT id, name, description, price, images, category_id FROM products ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	const query = `SELECT id, name, description, price, images, category_id FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p      model.Product
		images []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &images, &p.CategoryID); err != nil {
		return model.Product{}, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return model.Product{}, fmt.Errorf("decode product images: %w", err)
		}
	}
	return p, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, bool, error) {
	lines, err := encodeLines(order.Lines)
	if err != nil {
		return nil, false, err
	}

	const query = `INSERT INTO orders (
            id, payment_reference,
            customer_first_name, customer_last_name, customer_email, customer_phone,
            delivery_address, delivery_city, delivery_state, delivery_zip,
            delivery_date, delivery_time, delivery_instructions,
            line_items, subtotal, delivery_fee, tax, total, status
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
        ON CONFLICT (payment_reference) DO NOTHING
        RETURNING created_at, updated_at`

	created := *order
	err = r.storage.pool.QueryRow(ctx, query,
		order.ID, order.PaymentReference,
		order.Customer.FirstName, order.Customer.LastName, order.Customer.Email, order.Customer.Phone,
		order.Delivery.Address, order.Delivery.City, order.Delivery.State, order.Delivery.ZipCode,
		order.Delivery.Date, order.Delivery.TimeWindow, order.Delivery.Instructions,
		lines, order.Pricing.Subtotal, order.Pricing.DeliveryFee, order.Pricing.Tax, order.Pricing.Total,
		order.Status,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetByPaymentReference(ctx, order.PaymentReference)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &created, true, nil
}

func (r *orderRepository) GetByPaymentReference(ctx context.Context, reference string) (*model.Order, error) {
	const query = `SELECT id, payment_reference,
            customer_first_name, customer_last_name, customer_email, customer_phone,
            delivery_address, delivery_city, delivery_state, delivery_zip,
            delivery_date, delivery_time, delivery_instructions,
            line_items, subtotal, delivery_fee, tax, total, status, created_at, updated_at
        FROM orders WHERE payment_reference=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	const query = `SELECT id, payment_reference,
            customer_first_name, customer_last_name, customer_email, customer_phone,
            delivery_address, delivery_city, delivery_state, delivery_zip,
            delivery_date, delivery_time, delivery_instructions,
            line_items, subtotal, delivery_fee, tax, total, status, created_at, updated_at
        FROM orders ORDER BY created_at DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o     model.Order
		lines []byte
	)
	err := row.Scan(
		&o.ID, &o.PaymentReference,
		&o.Customer.FirstName, &o.Customer.LastName, &o.Customer.Email, &o.Customer.Phone,
		&o.Delivery.Address, &o.Delivery.City, &o.Delivery.State, &o.Delivery.ZipCode,
		&o.Delivery.Date, &o.Delivery.TimeWindow, &o.Delivery.Instructions,
		&lines, &o.Pricing.Subtotal, &o.Pricing.DeliveryFee, &o.Pricing.Tax, &o.Pricing.Total,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if o.Lines, err = decodeLines(lines); err != nil {
		return nil, err
	}
	return &o, nil
}

func encodeLines(lines []model.OrderLine) ([]byte, error) {
	records := make([]lineRecord, 0, len(lines))
	for _, l := range lines {
		records = append(records, lineRecord{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice.String(),
			Quantity:  l.Quantity,
			Amount:    l.Amount.String(),
		})
	}
	return json.Marshal(records)
}

func decodeLines(data []byte) ([]model.OrderLine, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var records []lineRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode order lines: %w", err)
	}

	lines := make([]model.OrderLine, 0, len(records))
	for _, rec := range records {
		unitPrice, err := decimal.NewFromString(rec.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("decode line unit price: %w", err)
		}
		amount, err := decimal.NewFromString(rec.Amount)
		if err != nil {
			return nil, fmt.Errorf("decode line amount: %w", err)
		}
		lines = append(lines, model.OrderLine{
			ProductID: rec.ProductID,
			Name:      rec.Name,
			UnitPrice: unitPrice,
			Quantity:  rec.Quantity,
			Amount:    amount,
		})
	}
	return lines, nil
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
