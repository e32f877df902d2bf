package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"reserva.org/internal/reservation"
	"reserva.org/internal/task"
	"reserva.org/internal/user"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db), mock
}

func TestSaveInsertsNewReservation(t *testing.T) {
	store, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("insert into reservations").
		WithArgs("res-1", "user-a", "task-1", "pending", "", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))

	r := &reservation.Reservation{
		ID: "res-1", RequesterID: "user-a", TaskID: "task-1",
		Status: reservation.StatusPending, CreatedAt: now, UpdatedAt: now,
	}
	if err := store.Save(context.Background(), r); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if r.Version != 1 {
		t.Fatalf("version after insert: %d", r.Version)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSaveUpdateVersionConflict(t *testing.T) {
	store, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectExec("update reservations").
		WithArgs("approved", "", now, "res-1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("select exists").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	r := &reservation.Reservation{
		ID: "res-1", Status: reservation.StatusApproved, Version: 1, UpdatedAt: now,
	}
	if err := store.Save(context.Background(), r); !errors.Is(err, reservation.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSaveUpdateMissingRow(t *testing.T) {
	store, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectExec("update reservations").
		WithArgs("approved", "", now, "res-ghost", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("select exists").
		WithArgs("res-ghost").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	r := &reservation.Reservation{
		ID: "res-ghost", Status: reservation.StatusApproved, Version: 3, UpdatedAt: now,
	}
	if err := store.Save(context.Background(), r); !errors.Is(err, reservation.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindReservation(t *testing.T) {
	store, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("select (.+) from reservations where id").
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "requester_id", "task_id", "status", "comment", "version", "created_at", "updated_at",
		}).AddRow("res-1", "user-a", "task-1", "approved", "urgent", int64(2), now, now))

	r, err := store.Find(context.Background(), "res-1")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if r.Status != reservation.StatusApproved || r.Comment != "urgent" || r.Version != 2 {
		t.Fatalf("unexpected row: %+v", r)
	}
}

func TestFindReservationNotFound(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("select (.+) from reservations where id").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "requester_id", "task_id", "status", "comment", "version", "created_at", "updated_at",
		}))

	if _, err := store.Find(context.Background(), "nope"); !errors.Is(err, reservation.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTaskForeignKey(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec("delete from tasks").
		WithArgs("task-1").
		WillReturnError(&pgconn.PgError{Code: pgErrForeignKeyViolation})

	if err := store.DeleteTask(context.Background(), "task-1"); !errors.Is(err, task.ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
}

func TestSetAvailabilityMissingTask(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec("update tasks set available").
		WithArgs(false, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.SetAvailability(context.Background(), "ghost", false); !errors.Is(err, task.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectExec("insert into users").
		WithArgs("u-1", "ada@example.org", "Ada", "member", "hash", now).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	u := &user.User{ID: "u-1", Email: "ada@example.org", Name: "Ada", Roles: splitRoles("member"), PasswordHash: "hash", CreatedAt: now}
	if err := store.Create(context.Background(), u); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestFindUserByEmailParsesRoles(t *testing.T) {
	store, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("select (.+) from users where email").
		WithArgs("root@example.org").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "roles", "password_hash", "created_at"}).
			AddRow("u-1", "root@example.org", "Root", "admin,member", "hash", now))

	u, err := store.FindByEmail(context.Background(), "root@example.org")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if !u.Actor().IsAdmin() {
		t.Fatalf("admin role lost in round trip: %v", u.Roles)
	}
}
