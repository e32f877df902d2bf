package task

import (
	"context"
	"errors"
	"testing"

	"reserva.org/internal/auth"
)

var (
	admin  = &auth.Actor{ID: "admin-1", Roles: []auth.Role{auth.RoleAdmin}}
	member = &auth.Actor{ID: "member-1", Roles: []auth.Role{auth.RoleMember}}
)

func TestTaskCRUDGating(t *testing.T) {
	svc := NewService(NewInMemory())
	ctx := context.Background()

	if _, err := svc.CreateTask(ctx, member, "Projector", ""); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("member create: expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.CreateTask(ctx, nil, "Projector", ""); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("anonymous create: expected ErrUnauthorized, got %v", err)
	}

	created, err := svc.CreateTask(ctx, admin, "Projector", "")
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if !created.Available {
		t.Fatal("new tasks start available")
	}

	// Any authenticated actor may view.
	if _, err := svc.GetTask(ctx, member, created.ID); err != nil {
		t.Fatalf("member view: %v", err)
	}
	if _, err := svc.GetTask(ctx, nil, created.ID); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("anonymous view: expected ErrUnauthorized, got %v", err)
	}

	title := "Projector (4K)"
	if _, err := svc.UpdateTask(ctx, member, created.ID, TaskUpdate{Title: &title}); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("member update: expected ErrUnauthorized, got %v", err)
	}
	updated, err := svc.UpdateTask(ctx, admin, created.ID, TaskUpdate{Title: &title})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != title {
		t.Fatalf("title not updated: %q", updated.Title)
	}

	if err := svc.DeleteTask(ctx, member, created.ID); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("member delete: expected ErrUnauthorized, got %v", err)
	}
	if err := svc.DeleteTask(ctx, admin, created.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestTaskValidation(t *testing.T) {
	svc := NewService(NewInMemory())
	ctx := context.Background()

	if _, err := svc.CreateTask(ctx, admin, "   ", ""); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}

	created, err := svc.CreateTask(ctx, admin, "Camera", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	empty := " "
	if _, err := svc.UpdateTask(ctx, admin, created.ID, TaskUpdate{Title: &empty}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired on update, got %v", err)
	}
}

func TestDeleteReservedTaskBlocked(t *testing.T) {
	store := NewInMemory()
	svc := NewService(store)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, admin, "Tripod", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	store.MarkReserved(created.ID)

	if err := svc.DeleteTask(ctx, admin, created.ID); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
}

func TestCategoryCRUD(t *testing.T) {
	svc := NewService(NewInMemory())
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, member, "AV gear"); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("member create category: expected ErrUnauthorized, got %v", err)
	}
	cat, err := svc.CreateCategory(ctx, admin, "AV gear")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.GetCategory(ctx, member, cat.ID); err != nil {
		t.Fatalf("member view category: %v", err)
	}

	name := "Audio/Video"
	if _, err := svc.UpdateCategory(ctx, admin, cat.ID, CategoryUpdate{Name: &name}); err != nil {
		t.Fatalf("update category: %v", err)
	}
	if err := svc.DeleteCategory(ctx, admin, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	store := NewInMemory()
	svc := NewService(store)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, admin, "AV gear")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.CreateTask(ctx, admin, "Mixer", cat.ID); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := svc.DeleteCategory(ctx, admin, cat.ID); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
}

func TestAvailabilityGateway(t *testing.T) {
	store := NewInMemory()
	svc := NewService(store)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, admin, "Laptop", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := store.Exists(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
	if ok, _ := store.Exists(ctx, "ghost"); ok {
		t.Fatal("ghost task must not exist")
	}

	if err := store.SetAvailability(ctx, created.ID, false); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
	got, err := store.FindTask(ctx, created.ID)
	if err != nil || got.Available {
		t.Fatalf("availability not persisted: %+v, %v", got, err)
	}
}
