package domain

import (
	"context"
	"time"
)

// User represents a registered account
// swagger:model User
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"date_joined"`
}

// NewUser returns a new regular User. ID is set by the repository on create.
func NewUser(username, passwordHash string, createdAt time.Time) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}
}

// Principal is the authenticated caller of a request, as carried by an access token.
type Principal struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// IsAdmin reports whether the principal may manage slots, categories and users.
func (p *Principal) IsAdmin() bool {
	return p != nil && (p.IsStaff || p.IsSuperuser)
}

// PrincipalOf builds the principal for an authenticated user.
func PrincipalOf(u *User) *Principal {
	return &Principal{
		UserID:      u.ID,
		Username:    u.Username,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}
}

// TokenPair is returned by the token endpoints. Refresh is empty on refresh calls.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// PasswordHasher hashes and verifies passwords.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// PasswordPolicy decides whether a password is strong enough.
// A rejection is returned as *WeakPasswordError.
type PasswordPolicy interface {
	Validate(username, password string) error
}

// TokenIssuer issues access and refresh tokens for a user.
type TokenIssuer interface {
	IssueAccess(user *User) (string, error)
	IssueRefresh(user *User) (string, error)
}

// TokenVerifier verifies tokens produced by a TokenIssuer.
type TokenVerifier interface {
	// Verify checks an access token and returns its principal.
	Verify(token string) (*Principal, error)
	// VerifyRefresh checks a refresh token and returns the user ID it was issued for.
	VerifyRefresh(token string) (userID int64, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, params PaginationParams) ([]*User, int, error)
	SetRoles(ctx context.Context, id int64, isStaff, isSuperuser bool) error
}

// AuthService covers registration and token handling.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*User, error)
	ObtainToken(ctx context.Context, username, password string) (*TokenPair, error)
	RefreshToken(ctx context.Context, refresh string) (*TokenPair, error)
}

// UserService exposes account listing for administrators.
type UserService interface {
	List(ctx context.Context, params PaginationParams) ([]*User, int, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Promote(ctx context.Context, username string, isStaff, isSuperuser bool) (*User, error)
}
