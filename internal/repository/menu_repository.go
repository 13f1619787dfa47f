package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stormkid2009/restooo/internal/domain"
)

// MenuRepository defines persistence access for menu items.
type MenuRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	List(ctx context.Context) ([]domain.MenuItem, error)
}

type menuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository returns a Postgres-backed implementation.
func NewMenuRepository(pool *pgxpool.Pool) MenuRepository {
	return &menuRepository{pool: pool}
}

func (r *menuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        INSERT INTO menu_items (name, description, category, price_cents, available)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.Category,
		item.PriceCents,
		item.Available,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *menuRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        UPDATE menu_items
        SET name=$1, description=$2, category=$3, price_cents=$4, available=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		item.Name,
		item.Description,
		item.Category,
		item.PriceCents,
		item.Available,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	const query = `
        SELECT id, name, description, category, price_cents, available, created_at, updated_at
        FROM menu_items WHERE id=$1`

	var item domain.MenuItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.PriceCents,
		&item.Available,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	const query = `
        SELECT id, name, description, category, price_cents, available, created_at, updated_at
        FROM menu_items ORDER BY category, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Category,
			&item.PriceCents,
			&item.Available,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
