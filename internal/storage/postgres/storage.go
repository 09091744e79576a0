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

	domainErrors "github.com/linkmart/linkmart/internal/domain/errors"
	"github.com/linkmart/linkmart/internal/domain/model"
	"github.com/linkmart/linkmart/internal/domain/repository"
	"github.com/linkmart/linkmart/internal/lifecycle"
)

// pgxPool is the subset of pgxpool.Pool the storage uses. Kept as an
// interface so tests can substitute a pgxmock pool.
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

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type benchmarkRepository struct {
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
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Benchmarks() repository.BenchmarkRepository {
	return &benchmarkRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'account',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL,
            status TEXT NOT NULL DEFAULT 'draft',
            state TEXT NOT NULL DEFAULT 'configuring',
            subtotal_cents BIGINT NOT NULL DEFAULT 0,
            total_retail_cents BIGINT NOT NULL DEFAULT 0,
            total_wholesale_cents BIGINT NOT NULL DEFAULT 0,
            profit_margin_cents BIGINT NOT NULL DEFAULT 0,
            approved_at TIMESTAMPTZ,
            approved_by BIGINT,
            paid_at TIMESTAMPTZ,
            invoiced_at TIMESTAMPTZ,
            version BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_groups (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            client_id BIGINT NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_line_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            group_id BIGINT NOT NULL REFERENCES order_groups(id),
            target_page_url TEXT NOT NULL,
            anchor_text TEXT NOT NULL DEFAULT '',
            retail_cents BIGINT NOT NULL DEFAULT 0,
            wholesale_cents BIGINT NOT NULL DEFAULT 0,
            status TEXT NOT NULL DEFAULT '',
            pool TEXT NOT NULL DEFAULT '',
            status_migrated_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_benchmarks (
            id UUID PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            captured_by BIGINT NOT NULL REFERENCES users(id),
            capture_reason TEXT NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            payload JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_account ON orders(account_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_line_items_order ON order_line_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_benchmarks_order ON order_benchmarks(order_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.UserRole) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE login=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) FirstInternal(ctx context.Context) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users
                   WHERE role='internal' ORDER BY created_at, id LIMIT 1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, account_id, status, state, subtotal_cents, total_retail_cents,
       total_wholesale_cents, profit_margin_cents, approved_at, approved_by,
       paid_at, invoiced_at, version, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.AccountID, &o.Status, &o.State,
		&o.SubtotalCents, &o.TotalRetailCents, &o.TotalWholesaleCents, &o.ProfitMarginCents,
		&o.ApprovedAt, &o.ApprovedBy, &o.PaidAt, &o.InvoicedAt,
		&o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, accountID int64, state model.OrderState, totals model.OrderTotals, groups []repository.NewOrderGroup) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (account_id, state, subtotal_cents, total_retail_cents, total_wholesale_cents, profit_margin_cents)
                             VALUES ($1, $2, $3, $4, $5, $6)
                             RETURNING ` + orderColumns
		var err error
		order, err = scanOrder(tx.QueryRow(ctx, insertOrder, accountID, state,
			totals.SubtotalCents, totals.TotalRetailCents, totals.TotalWholesaleCents, totals.ProfitMarginCents))
		if err != nil {
			return err
		}

		for _, g := range groups {
			const insertGroup = `INSERT INTO order_groups (order_id, client_id, name) VALUES ($1, $2, $3) RETURNING id`
			var groupID int64
			if err := tx.QueryRow(ctx, insertGroup, order.ID, g.ClientID, g.Name).Scan(&groupID); err != nil {
				return err
			}
			for _, li := range g.LineItems {
				const insertItem = `INSERT INTO order_line_items (order_id, group_id, target_page_url, anchor_text, retail_cents, wholesale_cents)
                                    VALUES ($1, $2, $3, $4, $5, $6)`
				if _, err := tx.Exec(ctx, insertItem, order.ID, groupID, li.TargetPageURL, li.AnchorText, li.RetailCents, li.WholesaleCents); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE account_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, accountID)
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

func (r *orderRepository) ListGroups(ctx context.Context, orderID int64) ([]model.OrderGroup, error) {
	const query = `SELECT id, order_id, client_id, name, created_at
                   FROM order_groups WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderGroup
	for rows.Next() {
		var g model.OrderGroup
		if err := rows.Scan(&g.ID, &g.OrderID, &g.ClientID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListLineItems(ctx context.Context, orderID int64) ([]model.OrderLineItem, error) {
	const query = `SELECT id, order_id, group_id, target_page_url, anchor_text, retail_cents,
                          wholesale_cents, status, pool, status_migrated_at, created_at, updated_at
                   FROM order_line_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderLineItem
	for rows.Next() {
		var li model.OrderLineItem
		if err := rows.Scan(&li.ID, &li.OrderID, &li.GroupID, &li.TargetPageURL, &li.AnchorText,
			&li.RetailCents, &li.WholesaleCents, &li.Status, &li.Pool, &li.StatusMigratedAt,
			&li.CreatedAt, &li.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, li)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ApplyTransition(ctx context.Context, orderID, expectedVersion int64, m lifecycle.Mutation) (*model.Order, error) {
	const query = `UPDATE orders SET
                       status=$1,
                       approved_at = CASE WHEN $2 THEN NULL ELSE approved_at END,
                       approved_by = CASE WHEN $2 THEN NULL ELSE approved_by END,
                       paid_at     = CASE WHEN $3 THEN NULL ELSE paid_at END,
                       version = version + 1,
                       updated_at = NOW()
                   WHERE id=$4 AND version=$5
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, m.Status, m.ClearApproval, m.ClearPayment, orderID, expectedVersion))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.conflictOrMissing(ctx, orderID)
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) Submit(ctx context.Context, orderID, expectedVersion int64, totals model.OrderTotals, state model.OrderState) (*model.Order, error) {
	const query = `UPDATE orders SET
                       status=$1,
                       state=$2,
                       subtotal_cents=$3,
                       total_retail_cents=$4,
                       total_wholesale_cents=$5,
                       profit_margin_cents=$6,
                       version = version + 1,
                       updated_at = NOW()
                   WHERE id=$7 AND version=$8
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, lifecycle.StatusPendingConfirmation, state,
		totals.SubtotalCents, totals.TotalRetailCents, totals.TotalWholesaleCents, totals.ProfitMarginCents,
		orderID, expectedVersion))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.conflictOrMissing(ctx, orderID)
		}
		return nil, err
	}
	return order, nil
}

// conflictOrMissing distinguishes a missing row from a version mismatch
// after a conditional update matched nothing.
func (r *orderRepository) conflictOrMissing(ctx context.Context, orderID int64) error {
	if _, err := r.GetByID(ctx, orderID); err != nil {
		return err
	}
	return domainErrors.ErrVersionConflict
}

func (r *orderRepository) SelectStaleTotalsBatch(ctx context.Context, limit int) ([]model.Order, error) {
	const selectQuery = `SELECT ` + orderColumns + ` FROM orders o
                         WHERE o.status='draft'
                           AND EXISTS (
                               SELECT 1 FROM order_line_items li
                               WHERE li.order_id = o.id AND li.updated_at > o.updated_at)
                         ORDER BY o.updated_at
                         LIMIT $1
                         FOR UPDATE OF o SKIP LOCKED`

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			order, err := scanOrder(rows)
			if err != nil {
				return err
			}
			orders = append(orders, *order)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateTotals(ctx context.Context, orderID int64, totals model.OrderTotals) error {
	const query = `UPDATE orders SET
                       subtotal_cents=$1,
                       total_retail_cents=$2,
                       total_wholesale_cents=$3,
                       profit_margin_cents=$4,
                       version = version + 1,
                       updated_at = NOW()
                   WHERE id=$5`
	tag, err := r.storage.pool.Exec(ctx, query,
		totals.SubtotalCents, totals.TotalRetailCents, totals.TotalWholesaleCents, totals.ProfitMarginCents, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- BenchmarkRepository implementation ---

func (r *benchmarkRepository) Create(ctx context.Context, benchmark *model.OrderBenchmark) (*model.OrderBenchmark, error) {
	payload, err := json.Marshal(benchmark.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode benchmark payload: %w", err)
	}

	const query = `INSERT INTO order_benchmarks (id, order_id, captured_by, capture_reason, notes, payload)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING created_at`
	created := *benchmark
	err = r.storage.pool.QueryRow(ctx, query,
		benchmark.ID, benchmark.OrderID, benchmark.CapturedBy,
		benchmark.CaptureReason, benchmark.Notes, payload).Scan(&created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *benchmarkRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderBenchmark, error) {
	const query = `SELECT id, order_id, captured_by, capture_reason, notes, payload, created_at
                   FROM order_benchmarks WHERE order_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderBenchmark
	for rows.Next() {
		var b model.OrderBenchmark
		var payload []byte
		if err := rows.Scan(&b.ID, &b.OrderID, &b.CapturedBy, &b.CaptureReason, &b.Notes, &payload, &b.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &b.Payload); err != nil {
			return nil, fmt.Errorf("decode benchmark payload: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *benchmarkRepository) RollbackPoolMigration(ctx context.Context, orderID int64) (model.PoolRollbackResult, error) {
	var result model.PoolRollbackResult
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const clearItems = `UPDATE order_line_items SET status='', status_migrated_at=NULL, updated_at=NOW()
                            WHERE order_id=$1 AND status_migrated_at IS NOT NULL`
		tag, err := tx.Exec(ctx, clearItems, orderID)
		if err != nil {
			return err
		}
		result.LineItemsCleared = tag.RowsAffected()

		// Scoped strictly by migration tags so submission-flow benchmarks
		// are never touched.
		const deleteBenchmarks = `DELETE FROM order_benchmarks
                                  WHERE order_id=$1 AND (capture_reason=$2 OR notes=$3)`
		tag, err = tx.Exec(ctx, deleteBenchmarks, orderID,
			model.BenchmarkReasonMigrationRetroactive, model.MigrationBenchmarkNotes)
		if err != nil {
			return err
		}
		result.BenchmarksDeleted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return model.PoolRollbackResult{}, err
	}
	return result, nil
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
