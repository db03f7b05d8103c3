package domain

import (
	"context"
	"time"
)

// Roles a user can sign up with. Organizers create and manage events;
// attendees register for them.
const (
	RoleAttendee  = "attendee"
	RoleOrganizer = "organizer"
)

// User represents a registered user.
// swagger:model User
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Salt             string    `json:"-"`
	Role             string    `json:"role"`
	OrganizationType string    `json:"organization_type,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TokenClaims is the identity extracted from a verified token.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the claims it carries.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// UserRepository defines the interface for user storage.
// Create reports a duplicate email as ErrDuplicateEmail.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetByResetToken(ctx context.Context, tokenHash string) (*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash, salt string) error
}

// AuthService defines sign-up, login, and password recovery.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password, role, organizationType string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// RequestPasswordReset emails a one-time reset token. It succeeds
	// silently for unknown emails so callers cannot probe for accounts.
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}
