package auth

import (
	"context"
	"strings"
)

// Role is a typed role label. The system distinguishes administrators from
// ordinary members; unknown labels are dropped during parsing rather than
// carried around as free-form strings.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ParseRole normalizes a raw label into a known Role.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.TrimSpace(strings.ToLower(raw))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleMember:
		return RoleMember, true
	default:
		return "", false
	}
}

// ParseRoles normalizes, deduplicates and filters a list of raw role labels.
func ParseRoles(raw []string) []Role {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[Role]struct{}, len(raw))
	var roles []Role
	for _, label := range raw {
		role, ok := ParseRole(label)
		if !ok {
			continue
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}
	return roles
}

// Actor is the authenticated identity performing an operation. A nil *Actor
// means "no actor" and is denied everything by the policy.
type Actor struct {
	ID    string
	Email string
	Roles []Role
}

// HasRole reports whether the actor carries the given role.
func (a *Actor) HasRole(role Role) bool {
	if a == nil {
		return false
	}
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the actor carries the administrator role.
func (a *Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// RoleStrings returns the actor's roles as raw labels, for logging and claims.
func (a *Actor) RoleStrings() []string {
	if a == nil || len(a.Roles) == 0 {
		return nil
	}
	out := make([]string, len(a.Roles))
	for i, r := range a.Roles {
		out[i] = string(r)
	}
	return out
}

type actorContextKey struct{}

// ContextWithActor attaches the authenticated actor to the context.
func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	if actor == nil {
		return ctx
	}
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the authenticated actor, if any.
func ActorFromContext(ctx context.Context) (*Actor, bool) {
	if ctx == nil {
		return nil, false
	}
	v, ok := ctx.Value(actorContextKey{}).(*Actor)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
