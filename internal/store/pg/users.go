package pg

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"reserva.org/internal/auth"
	"reserva.org/internal/user"
)

// Roles are stored as a comma-joined text column; ParseRoles drops anything
// unknown when reading back.
func joinRoles(roles []auth.Role) string {
	labels := make([]string, 0, len(roles))
	for _, r := range roles {
		labels = append(labels, string(r))
	}
	return strings.Join(labels, ",")
}

func splitRoles(raw string) []auth.Role {
	if raw == "" {
		return nil
	}
	return auth.ParseRoles(strings.Split(raw, ","))
}

func (s *Store) Create(ctx context.Context, u *user.User) error {
	_, err := s.db.ExecContext(ctx, `
		insert into users (id, email, name, roles, password_hash, created_at)
		values ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.Email, u.Name, joinRoles(u.Roles), u.PasswordHash, u.CreatedAt)
	if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
		return user.ErrEmailTaken
	}
	return err
}

func (s *Store) FindByID(ctx context.Context, id string) (*user.User, error) {
	return s.findUser(ctx, `where id = $1`, id)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.findUser(ctx, `where email = $1`, email)
}

func (s *Store) findUser(ctx context.Context, where string, arg any) (*user.User, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, email, name, roles, password_hash, created_at from users `+where, arg)
	var (
		u     user.User
		roles string
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &roles, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Roles = splitRoles(roles)
	return &u, nil
}

func (s *Store) List(ctx context.Context) ([]*user.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, email, name, roles, password_hash, created_at from users order by id asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []*user.User
	for rows.Next() {
		var (
			u     user.User
			roles string
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &roles, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Roles = splitRoles(roles)
		res = append(res, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
