package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"freshtracker/internal/freshdate"
	"freshtracker/internal/products"
)

const healthCheckTimeout = 2 * time.Second

const productColumns = "id, name, weight, expiry_date, type, threshold_days, is_deleted, created_at, updated_at, deleted_at"

type PostgresRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgres(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one row and fills the derived days_remaining against the
// current instant, so every read path reports freshness at query time.
func (r *PostgresRepository) scanProduct(row rowScanner) (products.Product, error) {
	var (
		p         products.Product
		expiry    time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.Weight, &expiry, &p.Type, &p.ThresholdDays,
		&p.IsDeleted, &p.CreatedAt, &p.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return products.Product{}, err
	}

	p.ExpiryDate = expiry.Format(freshdate.Canonical)
	p.DaysRemaining = products.DaysRemaining(expiry, r.now())
	if deletedAt.Valid {
		t := deletedAt.Time
		p.DeletedAt = &t
	}
	return p, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, np products.NewProduct) (products.Product, error) {
	query := `
		INSERT INTO products (name, weight, expiry_date, type, threshold_days)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + productColumns

	p, err := r.scanProduct(r.db.QueryRowContext(ctx, query,
		np.Name, np.Weight, np.ExpiryDate, np.Type, np.ThresholdDays,
	))
	if err != nil {
		return products.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetOne(ctx context.Context, id int64) (products.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND is_deleted = FALSE
	`

	p, err := r.scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return products.Product{}, products.ErrNotFound
	}
	if err != nil {
		return products.Product{}, fmt.Errorf("select product %d: %w", id, err)
	}
	return p, nil
}

// GetAll lists every live product, soonest-expiring first.
func (r *PostgresRepository) GetAll(ctx context.Context) ([]products.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_deleted = FALSE
		ORDER BY expiry_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	list := make([]products.Product, 0)
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return list, nil
}

// Update writes only the columns listed in the change set, plus updated_at.
// Column names come from the enumerated Field constants; values are always
// bound as parameters.
func (r *PostgresRepository) Update(ctx context.Context, id int64, changes products.ChangeSet) error {
	if changes.Empty() {
		return products.ErrNoFieldsToUpdate
	}

	assignments := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+1)
	for i, change := range changes {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", change.Field, i+1))
		args = append(args, change.Value)
	}
	assignments = append(assignments, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d AND is_deleted = FALSE",
		strings.Join(assignments, ", "), len(args),
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return products.ErrNotFound
	}

	return nil
}

// SoftDelete marks a live product deleted. An already-deleted or unknown id
// reports ErrNotFound; rows are never removed physically.
func (r *PostgresRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE products
		SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete product %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return products.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	return r.db.PingContext(ctx)
}
