package auth

import "testing"

func TestDecideDeniesMissingActor(t *testing.T) {
	actions := []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionChangeStatus, ActionList}
	subjects := []SubjectKind{SubjectTask, SubjectCategory, SubjectReservation, SubjectUserList}
	for _, subject := range subjects {
		for _, action := range actions {
			if Decide(nil, action, subject) {
				t.Fatalf("nil actor allowed %s on %s", action, subject)
			}
		}
	}
}

func TestDecideTable(t *testing.T) {
	admin := &Actor{ID: "a1", Roles: []Role{RoleAdmin}}
	member := &Actor{ID: "m1", Roles: []Role{RoleMember}}

	cases := []struct {
		name    string
		actor   *Actor
		action  Action
		subject SubjectKind
		want    bool
	}{
		{"member views task", member, ActionView, SubjectTask, true},
		{"member creates task", member, ActionCreate, SubjectTask, false},
		{"admin creates task", admin, ActionCreate, SubjectTask, true},
		{"member edits task", member, ActionEdit, SubjectTask, false},
		{"admin deletes task", admin, ActionDelete, SubjectTask, true},
		{"member views category", member, ActionView, SubjectCategory, true},
		{"member deletes category", member, ActionDelete, SubjectCategory, false},
		{"admin edits category", admin, ActionEdit, SubjectCategory, true},
		{"member changes reservation status", member, ActionChangeStatus, SubjectReservation, false},
		{"admin changes reservation status", admin, ActionChangeStatus, SubjectReservation, true},
		{"member creates reservation", member, ActionCreate, SubjectReservation, true},
		{"member lists reservations", member, ActionList, SubjectReservation, true},
		{"member lists users", member, ActionList, SubjectUserList, false},
		{"admin lists users", admin, ActionList, SubjectUserList, true},
	}

	for _, tc := range cases {
		if got := Decide(tc.actor, tc.action, tc.subject); got != tc.want {
			t.Errorf("%s: Decide=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDecideDefaultDeny(t *testing.T) {
	admin := &Actor{ID: "a1", Roles: []Role{RoleAdmin}}
	if Decide(admin, ActionDelete, SubjectUserList) {
		t.Fatal("unlisted pair must be denied, even for admins")
	}
	if Decide(admin, Action("promote"), SubjectTask) {
		t.Fatal("unknown action must be denied")
	}
	if Decide(admin, ActionView, SubjectKind("invoice")) {
		t.Fatal("unknown subject must be denied")
	}
}

func TestRequire(t *testing.T) {
	member := &Actor{ID: "m1", Roles: []Role{RoleMember}}
	if err := Require(member, ActionChangeStatus, SubjectReservation); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := Require(member, ActionView, SubjectTask); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseRoles(t *testing.T) {
	roles := ParseRoles([]string{"Admin", " member ", "admin", "superuser", ""})
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %v", roles)
	}
	if roles[0] != RoleAdmin || roles[1] != RoleMember {
		t.Fatalf("unexpected roles: %v", roles)
	}
}
