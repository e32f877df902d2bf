package auth

import (
	"context"
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv(secretEnvVariable, "test-secret")
	ResetSecretForTests()

	token, err := GenerateToken("user-42", "user@example.com", []string{"Admin", "member", "admin"}, 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseAndValidate(token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if claims.Subject != "user-42" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if len(claims.Roles) != 2 {
		t.Fatalf("roles were not deduplicated: %v", claims.Roles)
	}

	actor := claims.Actor()
	if actor.ID != "user-42" || !actor.IsAdmin() || !actor.HasRole(RoleMember) {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Setenv(secretEnvVariable, "test-secret")
	ResetSecretForTests()

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ParseAndValidate(token); err != ErrInvalidToken {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestParseRejectsExpired(t *testing.T) {
	t.Setenv(secretEnvVariable, "test-secret")
	ResetSecretForTests()

	token, err := GenerateToken("user-1", "", []string{"member"}, time.Millisecond)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := ParseAndValidate(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestGenerateRequiresSecret(t *testing.T) {
	t.Setenv(secretEnvVariable, "")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	if _, err := GenerateToken("user-1", "", []string{"member"}, time.Minute); err == nil {
		t.Fatal("expected error without configured secret")
	}
}

func TestContextActorRoundTrip(t *testing.T) {
	actor := &Actor{ID: "u7", Roles: []Role{RoleMember}}
	ctx := ContextWithActor(context.Background(), actor)

	got, ok := ActorFromContext(ctx)
	if !ok || got.ID != "u7" {
		t.Fatalf("unexpected actor: %+v ok=%v", got, ok)
	}
	if _, ok := ActorFromContext(context.Background()); ok {
		t.Fatal("empty context must not carry an actor")
	}
}
