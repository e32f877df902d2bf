package pg

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"reserva.org/internal/task"
)

func nullIfEmpty(s string) sql.NullString {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	_, err := s.db.ExecContext(ctx, `
		insert into tasks (id, title, category_id, available, created_at, updated_at)
		values ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.Title, nullIfEmpty(t.CategoryID), t.Available, t.CreatedAt, t.UpdatedAt)
	if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrForeignKeyViolation {
		return task.ErrNotFound
	}
	return err
}

func (s *Store) FindTask(ctx context.Context, id string) (*task.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		select id, title, coalesce(category_id, ''), available, created_at, updated_at
		from tasks where id = $1
	`, id)
	var t task.Task
	err := row.Scan(&t.ID, &t.Title, &t.CategoryID, &t.Available, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, task.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) ListTasks(ctx context.Context) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, title, coalesce(category_id, ''), available, created_at, updated_at
		from tasks order by id asc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []*task.Task
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.CategoryID, &t.Available, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, upd task.TaskUpdate) (*task.Task, error) {
	current, err := s.FindTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		current.Title = *upd.Title
	}
	if upd.CategoryID != nil {
		current.CategoryID = *upd.CategoryID
	}
	if upd.Available != nil {
		current.Available = *upd.Available
	}
	current.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		update tasks set title = $1, category_id = $2, available = $3, updated_at = $4
		where id = $5
	`, current.Title, nullIfEmpty(current.CategoryID), current.Available, current.UpdatedAt, id)
	if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrForeignKeyViolation {
		return nil, task.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from tasks where id = $1`, id)
	if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrForeignKeyViolation {
		return task.ErrInUse
	}
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return task.ErrNotFound
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `select exists(select 1 from tasks where id = $1)`, id).Scan(&exists)
	return exists, err
}

func (s *Store) SetAvailability(ctx context.Context, id string, available bool) error {
	res, err := s.db.ExecContext(ctx,
		`update tasks set available = $1, updated_at = now() where id = $2`, available, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return task.ErrNotFound
	}
	return nil
}

func (s *Store) CreateCategory(ctx context.Context, c *task.Category) error {
	_, err := s.db.ExecContext(ctx, `
		insert into categories (id, name, created_at, updated_at)
		values ($1, $2, $3, $4)
	`, c.ID, c.Name, c.CreatedAt, c.UpdatedAt)
	return err
}

func (s *Store) FindCategory(ctx context.Context, id string) (*task.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, name, created_at, updated_at from categories where id = $1`, id)
	var c task.Category
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, task.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*task.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, name, created_at, updated_at from categories order by id asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []*task.Category
	for rows.Next() {
		var c task.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id string, upd task.CategoryUpdate) (*task.Category, error) {
	current, err := s.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		current.Name = *upd.Name
	}
	current.UpdatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`update categories set name = $1, updated_at = $2 where id = $3`, current.Name, current.UpdatedAt, id)
	if err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from categories where id = $1`, id)
	if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrForeignKeyViolation {
		return task.ErrInUse
	}
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return task.ErrNotFound
	}
	return nil
}
