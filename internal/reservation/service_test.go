package reservation

import (
	"context"
	"errors"
	"testing"

	"reserva.org/internal/auth"
)

var (
	adminActor  = &auth.Actor{ID: "admin-1", Roles: []auth.Role{auth.RoleAdmin}}
	memberActor = &auth.Actor{ID: "user-a", Roles: []auth.Role{auth.RoleMember}}
)

func newTestService(t *testing.T) (*Service, *InMemory, *fakeTasks) {
	t.Helper()
	store := NewInMemory()
	tasks := newFakeTasks()
	return NewService(store, tasks), store, tasks
}

func TestCreateReservation(t *testing.T) {
	svc, _, _ := newTestService(t)

	r, err := svc.Create(context.Background(), memberActor, "task-R42", "need it Friday")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.Status != StatusPending {
		t.Fatalf("new reservation must be pending, got %s", r.Status)
	}
	if r.RequesterID != "user-a" || r.TaskID != "task-R42" {
		t.Fatalf("ownership not recorded: %+v", r)
	}
	if r.Comment != "need it Friday" {
		t.Fatalf("comment changed: %q", r.Comment)
	}
	if r.ID == "" {
		t.Fatal("expected assigned identifier")
	}
}

func TestCreateWithoutActorFailsBeforeValidation(t *testing.T) {
	svc, _, tasks := newTestService(t)
	tasks.existsErr = errors.New("lookup must not run")

	// Task reference is empty too; authorization must win.
	if _, err := svc.Create(context.Background(), nil, "", ""); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, tasks := newTestService(t)

	if _, err := svc.Create(context.Background(), memberActor, "   ", ""); !errors.Is(err, ErrTaskRequired) {
		t.Fatalf("expected ErrTaskRequired, got %v", err)
	}

	long := make([]byte, MaxCommentLength+1)
	for i := range long {
		long[i] = 'y'
	}
	if _, err := svc.Create(context.Background(), memberActor, "task-1", string(long)); !errors.Is(err, ErrCommentTooLong) {
		t.Fatalf("expected ErrCommentTooLong, got %v", err)
	}

	tasks.exists = false
	if _, err := svc.Create(context.Background(), memberActor, "task-ghost", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing task, got %v", err)
	}
}

func TestMemberCannotChangeStatusEvenOnOwnReservation(t *testing.T) {
	svc, _, _ := newTestService(t)
	r, err := svc.Create(context.Background(), memberActor, "task-R42", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Approve(context.Background(), memberActor, r.ID); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), memberActor, r.ID); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.ChangeStatus(context.Background(), memberActor, r.ID, "approved", nil); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAdminApproveThenReject(t *testing.T) {
	svc, _, _ := newTestService(t)
	r, err := svc.Create(context.Background(), memberActor, "task-R42", "need it Friday")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	approved, err := svc.Approve(context.Background(), adminActor, r.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("unexpected status: %s", approved.Status)
	}

	// Default mode keeps the observed permissive behavior.
	rejected, err := svc.Reject(context.Background(), adminActor, r.ID)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Fatalf("unexpected status: %s", rejected.Status)
	}
}

func TestListScopedByRole(t *testing.T) {
	svc, _, _ := newTestService(t)
	other := &auth.Actor{ID: "user-b", Roles: []auth.Role{auth.RoleMember}}

	if _, err := svc.Create(context.Background(), memberActor, "task-1", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), other, "task-2", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := svc.List(context.Background(), adminActor)
	if err != nil {
		t.Fatalf("List as admin: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin should see all reservations, got %d", len(all))
	}

	mine, err := svc.List(context.Background(), memberActor)
	if err != nil {
		t.Fatalf("List as member: %v", err)
	}
	if len(mine) != 1 || mine[0].RequesterID != "user-a" {
		t.Fatalf("member should see only own reservations, got %+v", mine)
	}

	if _, err := svc.List(context.Background(), nil); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for anonymous list, got %v", err)
	}
}

func TestGetHidesForeignReservations(t *testing.T) {
	svc, _, _ := newTestService(t)
	other := &auth.Actor{ID: "user-b", Roles: []auth.Role{auth.RoleMember}}

	r, err := svc.Create(context.Background(), memberActor, "task-1", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(context.Background(), other, r.ID); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Get(context.Background(), adminActor, r.ID); err != nil {
		t.Fatalf("admin Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), memberActor, r.ID); err != nil {
		t.Fatalf("owner Get: %v", err)
	}
}

func TestChangeStatusParsesInput(t *testing.T) {
	svc, _, _ := newTestService(t)
	r, err := svc.Create(context.Background(), memberActor, "task-1", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.ChangeStatus(context.Background(), adminActor, r.ID, "label.pending", nil); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	updated, err := svc.ChangeStatus(context.Background(), adminActor, r.ID, "Returned", nil)
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if updated.Status != StatusReturned {
		t.Fatalf("unexpected status: %s", updated.Status)
	}
}
