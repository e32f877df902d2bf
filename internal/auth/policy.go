package auth

// Action identifies what the actor wants to do with a subject.
type Action string

const (
	ActionView         Action = "view"
	ActionCreate       Action = "create"
	ActionEdit         Action = "edit"
	ActionDelete       Action = "delete"
	ActionChangeStatus Action = "change_status"
	ActionList         Action = "list"
)

// SubjectKind identifies the kind of entity an action targets. The policy
// only ever inspects the kind, never the entity's fields.
type SubjectKind string

const (
	SubjectTask        SubjectKind = "task"
	SubjectCategory    SubjectKind = "category"
	SubjectReservation SubjectKind = "reservation"
	SubjectUserList    SubjectKind = "user_list"
)

type requirement uint8

const (
	deny requirement = iota
	anyActor
	adminOnly
)

// policyTable holds an explicit decision for every supported
// (subject, action) pair. Pairs absent from the table are denied.
var policyTable = map[SubjectKind]map[Action]requirement{
	SubjectTask: {
		ActionView:   anyActor,
		ActionCreate: adminOnly,
		ActionEdit:   adminOnly,
		ActionDelete: adminOnly,
	},
	SubjectCategory: {
		ActionView:   anyActor,
		ActionCreate: adminOnly,
		ActionEdit:   adminOnly,
		ActionDelete: adminOnly,
	},
	SubjectReservation: {
		ActionCreate:       anyActor,
		ActionList:         anyActor,
		ActionChangeStatus: adminOnly,
	},
	SubjectUserList: {
		ActionList: adminOnly,
	},
}

// Decide is the authorization policy: a pure function mapping
// (actor, action, subject kind) to allow/deny. An absent actor is denied
// unconditionally; unknown pairs default to deny. Safe for concurrent use.
func Decide(actor *Actor, action Action, subject SubjectKind) bool {
	if actor == nil {
		return false
	}
	actions, ok := policyTable[subject]
	if !ok {
		return false
	}
	switch actions[action] {
	case anyActor:
		return true
	case adminOnly:
		return actor.IsAdmin()
	default:
		return false
	}
}

// Require returns ErrUnauthorized unless Decide allows the action.
func Require(actor *Actor, action Action, subject SubjectKind) error {
	if !Decide(actor, action, subject) {
		return ErrUnauthorized
	}
	return nil
}
