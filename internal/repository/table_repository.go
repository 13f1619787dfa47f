package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stormkid2009/restooo/internal/domain"
)

// TableRepository defines persistence access for dining tables.
type TableRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Table, error)
	List(ctx context.Context) ([]domain.Table, error)
}

type tableRepository struct {
	pool *pgxpool.Pool
}

// NewTableRepository returns a Postgres-backed implementation.
func NewTableRepository(pool *pgxpool.Pool) TableRepository {
	return &tableRepository{pool: pool}
}

func (r *tableRepository) GetByID(ctx context.Context, id string) (*domain.Table, error) {
	const query = `SELECT id, number, capacity FROM dining_tables WHERE id=$1`

	var table domain.Table
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&table.ID,
		&table.Number,
		&table.Capacity,
	); err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) List(ctx context.Context) ([]domain.Table, error) {
	const query = `SELECT id, number, capacity FROM dining_tables ORDER BY capacity, number`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []domain.Table
	for rows.Next() {
		var table domain.Table
		if err := rows.Scan(&table.ID, &table.Number, &table.Capacity); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}
