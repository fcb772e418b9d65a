// Package access holds the permission table that gates every API operation.
//
// The table maps an operation to the minimum caller level it requires. Authorize is a
// pure function of (operation, principal) and is evaluated before the operation runs.
package access

import (
	"eventscheduler/internal/domain"
)

// Operation names an API action subject to authorization.
type Operation string

const (
	ListCategories  Operation = "categories.list"
	CreateCategory  Operation = "categories.create"
	UpdateCategory  Operation = "categories.update"
	DeleteCategory  Operation = "categories.delete"
	ListSlots       Operation = "slots.list"
	RetrieveSlot    Operation = "slots.retrieve"
	CreateSlot      Operation = "slots.create"
	UpdateSlot      Operation = "slots.update"
	DeleteSlot      Operation = "slots.delete"
	BookSlot        Operation = "slots.book"
	UnsubscribeSlot Operation = "slots.unsubscribe"
	ReadPreferences Operation = "preferences.read"
	EditPreferences Operation = "preferences.update"
	ListUsers       Operation = "users.list"
	RetrieveUser    Operation = "users.retrieve"
	Register        Operation = "auth.register"
	ObtainToken     Operation = "auth.token"
	RefreshToken    Operation = "auth.refresh"
)

// Level is the minimum caller level an operation requires.
type Level int

const (
	Anyone Level = iota
	Authenticated
	Admin
)

func (l Level) String() string {
	switch l {
	case Anyone:
		return "anyone"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

var policy = map[Operation]Level{
	ListCategories:  Anyone,
	CreateCategory:  Admin,
	UpdateCategory:  Admin,
	DeleteCategory:  Admin,
	ListSlots:       Authenticated,
	RetrieveSlot:    Authenticated,
	CreateSlot:      Admin,
	UpdateSlot:      Admin,
	DeleteSlot:      Admin,
	BookSlot:        Authenticated,
	UnsubscribeSlot: Authenticated,
	ReadPreferences: Authenticated,
	EditPreferences: Authenticated,
	ListUsers:       Admin,
	RetrieveUser:    Admin,
	Register:        Anyone,
	ObtainToken:     Anyone,
	RefreshToken:    Anyone,
}

// Required returns the level registered for op. Unknown operations report false.
func Required(op Operation) (Level, bool) {
	l, ok := policy[op]
	return l, ok
}

// credentialExchange lists the operations that take credentials in the body
// and never look at the bearer token.
var credentialExchange = map[Operation]bool{
	Register:     true,
	ObtainToken:  true,
	RefreshToken: true,
}

// IgnoresToken reports whether op is served without verifying the
// Authorization header.
func IgnoresToken(op Operation) bool {
	return credentialExchange[op]
}

// Authorize decides whether p may perform op. p is nil for anonymous callers.
// It returns domain.ErrUnauthenticated when credentials are needed but absent and
// domain.ErrForbidden when the caller's role is insufficient. Unknown operations are
// denied.
func Authorize(op Operation, p *domain.Principal) error {
	level, ok := policy[op]
	if !ok {
		if p == nil {
			return domain.ErrUnauthenticated
		}
		return domain.ErrForbidden
	}
	switch level {
	case Anyone:
		return nil
	case Authenticated:
		if p == nil {
			return domain.ErrUnauthenticated
		}
		return nil
	default:
		if p == nil {
			return domain.ErrUnauthenticated
		}
		if !p.IsAdmin() {
			return domain.ErrForbidden
		}
		return nil
	}
}
