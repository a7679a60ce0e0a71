package service

import (
	"context"
	"fmt"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/punto-pos/pos-backend/internal/auth/domain"
)

// accounts is the slice of the Firebase Admin auth client the service uses.
type accounts interface {
	CreateUser(ctx context.Context, user *fbauth.UserToCreate) (*fbauth.UserRecord, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

type passwordVerifier interface {
	SignInWithPassword(ctx context.Context, email, password string) (*SignInSession, error)
}

type userStore interface {
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
	Create(ctx context.Context, uid string, user *domain.User) error
}

type AuthService struct {
	accounts accounts
	identity passwordVerifier
	users    userStore
}

func NewAuthService(accounts accounts, identity passwordVerifier, users userStore) *AuthService {
	return &AuthService{
		accounts: accounts,
		identity: identity,
		users:    users,
	}
}

// SignInResult carries everything the entry screen needs to route the user.
type SignInResult struct {
	User         *domain.User
	IDToken      string
	RefreshToken string
	Redirect     string
}

// SignUp registers the account with the identity provider and stores the
// denormalized user document with its sequential display id.
func (s *AuthService) SignUp(ctx context.Context, name, role, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}

	parsedRole, err := domain.ParseRole(strings.ToLower(strings.TrimSpace(role)))
	if err != nil {
		return nil, err
	}

	record, err := s.accounts.CreateUser(ctx, (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(name))
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	user := &domain.User{
		Email: email,
		Name:  name,
		Role:  parsedRole,
	}
	if err := s.users.Create(ctx, record.UID, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SignIn verifies the credentials, resolves the stored role and returns the
// role-scoped redirect path.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	session, err := s.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByUID(ctx, session.UID)
	if err != nil {
		return nil, err
	}

	return &SignInResult{
		User:         user,
		IDToken:      session.IDToken,
		RefreshToken: session.RefreshToken,
		Redirect:     user.Role.RedirectPath(),
	}, nil
}

// SignOut revokes the user's refresh tokens; outstanding ID tokens expire
// on their own within the hour.
func (s *AuthService) SignOut(ctx context.Context, uid string) error {
	if uid == "" {
		return fmt.Errorf("uid required")
	}
	if err := s.accounts.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}

// GetUser returns the stored user document for an authenticated UID.
func (s *AuthService) GetUser(ctx context.Context, uid string) (*domain.User, error) {
	return s.users.GetByUID(ctx, uid)
}
