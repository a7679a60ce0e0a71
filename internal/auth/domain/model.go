package domain

import "errors"

type Role string

const (
	RoleClient  Role = "client"
	RoleChef    Role = "chef"
	RoleCashier Role = "cashier"
	RoleAdmin   Role = "admin"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrWrongCredential = errors.New("wrong email or password")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidRole     = errors.New("invalid role")
	ErrWeakPassword    = errors.New("password too weak")
)

// User is the denormalized account document stored under users/{uid}.
// Field names match the existing Firestore collection.
type User struct {
	ID        int64  `firestore:"id" json:"id"`
	Email     string `firestore:"email" json:"email"`
	Name      string `firestore:"name" json:"name"`
	Role      Role   `firestore:"role" json:"role"`
	CreatedAt string `firestore:"createdAt" json:"createdAt"`

	// UID is the Firebase document key, not stored as a field.
	UID string `firestore:"-" json:"uid"`
}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleChef, RoleCashier, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// RedirectPath resolves the role-scoped area a user lands on after sign-in.
func (r Role) RedirectPath() string {
	switch r {
	case RoleChef:
		return "/chef"
	case RoleCashier:
		return "/cashier"
	case RoleAdmin:
		return "/admin"
	default:
		return "/client"
	}
}
