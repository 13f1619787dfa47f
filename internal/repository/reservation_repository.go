package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stormkid2009/restooo/internal/domain"
)

// ReservationRepository defines persistence access for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Cancel(ctx context.Context, id string) error
	ListByDay(ctx context.Context, day time.Time) ([]domain.Reservation, error)
	BookedTableIDs(ctx context.Context, startsAt time.Time) ([]string, error)
}

type reservationRepository struct {
	pool *pgxpool.Pool
}

// NewReservationRepository returns a Postgres-backed implementation.
func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &reservationRepository{pool: pool}
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	const query = `
        INSERT INTO reservations
            (confirmation_code, table_id, guest_name, guest_phone, party_size, starts_at, status, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		res.ConfirmationCode,
		res.TableID,
		res.GuestName,
		res.GuestPhone,
		res.PartySize,
		res.StartsAt,
		res.Status,
		res.CreatedBy,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	const query = `
        SELECT id, confirmation_code, table_id, guest_name, guest_phone, party_size,
               starts_at, status, created_by, created_at, updated_at
        FROM reservations WHERE id=$1`

	var res domain.Reservation
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.ConfirmationCode,
		&res.TableID,
		&res.GuestName,
		&res.GuestPhone,
		&res.PartySize,
		&res.StartsAt,
		&res.Status,
		&res.CreatedBy,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) Cancel(ctx context.Context, id string) error {
	const query = `
        UPDATE reservations SET status=$1, updated_at=NOW()
        WHERE id=$2 AND status=$3`

	cmd, err := r.pool.Exec(ctx, query,
		domain.ReservationStatusCancelled,
		id,
		domain.ReservationStatusBooked,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reservationRepository) ListByDay(ctx context.Context, day time.Time) ([]domain.Reservation, error) {
	const query = `
        SELECT id, confirmation_code, table_id, guest_name, guest_phone, party_size,
               starts_at, status, created_by, created_at, updated_at
        FROM reservations
        WHERE starts_at >= $1 AND starts_at < $2
        ORDER BY starts_at`

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(
			&res.ID,
			&res.ConfirmationCode,
			&res.TableID,
			&res.GuestName,
			&res.GuestPhone,
			&res.PartySize,
			&res.StartsAt,
			&res.Status,
			&res.CreatedBy,
			&res.CreatedAt,
			&res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *reservationRepository) BookedTableIDs(ctx context.Context, startsAt time.Time) ([]string, error) {
	const query = `
        SELECT table_id FROM reservations
        WHERE starts_at=$1 AND status=$2`

	rows, err := r.pool.Query(ctx, query, startsAt, domain.ReservationStatusBooked)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
