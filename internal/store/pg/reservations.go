package pg

import (
	"context"
	"database/sql"
	"errors"

	"reserva.org/internal/reservation"
)

const reservationColumns = `id, requester_id, task_id, status, comment, version, created_at, updated_at`

// Save upserts the reservation. New rows (Version 0) are inserted; updates
// compare-and-swap on version so a stale caller gets ErrVersionConflict.
func (s *Store) Save(ctx context.Context, r *reservation.Reservation) error {
	if r.Version == 0 {
		err := s.db.QueryRowContext(ctx, `
			insert into reservations (id, requester_id, task_id, status, comment, version, created_at, updated_at)
			values ($1, $2, $3, $4, $5, 1, $6, $7)
			returning version
		`, r.ID, r.RequesterID, r.TaskID, string(r.Status), r.Comment, r.CreatedAt, r.UpdatedAt).Scan(&r.Version)
		if err != nil {
			if pgErr, ok := maybePgError(err); ok {
				switch pgErr.Code {
				case pgErrUniqueViolation:
					return reservation.ErrVersionConflict
				case pgErrForeignKeyViolation:
					return reservation.ErrTaskRequired
				}
			}
			return err
		}
		return nil
	}

	res, err := s.db.ExecContext(ctx, `
		update reservations
		set status = $1, comment = $2, updated_at = $3, version = version + 1
		where id = $4 and version = $5
	`, string(r.Status), r.Comment, r.UpdatedAt, r.ID, r.Version)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the row is gone or someone updated it first.
		var exists bool
		if err := s.db.QueryRowContext(ctx, `select exists(select 1 from reservations where id = $1)`, r.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return reservation.ErrNotFound
		}
		return reservation.ErrVersionConflict
	}
	r.Version++
	return nil
}

func (s *Store) Find(ctx context.Context, id string) (*reservation.Reservation, error) {
	row := s.db.QueryRowContext(ctx, `select `+reservationColumns+` from reservations where id = $1`, id)
	return scanReservation(row)
}

func (s *Store) List(ctx context.Context) ([]*reservation.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, `select `+reservationColumns+` from reservations order by id asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (s *Store) ListByRequester(ctx context.Context, requesterID string) ([]*reservation.Reservation, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+reservationColumns+` from reservations where requester_id = $1 order by id asc`, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*reservation.Reservation, error) {
	var (
		r      reservation.Reservation
		status string
	)
	err := row.Scan(&r.ID, &r.RequesterID, &r.TaskID, &status, &r.Comment, &r.Version, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, reservation.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.Status = reservation.Status(status)
	return &r, nil
}

func collectReservations(rows *sql.Rows) ([]*reservation.Reservation, error) {
	var res []*reservation.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
