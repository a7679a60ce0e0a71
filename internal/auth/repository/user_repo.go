package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/punto-pos/pos-backend/internal/auth/domain"
)

const (
	usersCollection    = "users"
	countersCollection = "counters"
	usersCounterDoc    = "users"
)

type UserRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{client: client}
}

// GetByUID retrieves a user document keyed by Firebase UID.
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	var user domain.User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	user.UID = doc.Ref.ID

	return &user, nil
}

// Create writes the user document and allocates the sequential display id
// in one transaction over counters/users.
func (r *UserRepository) Create(ctx context.Context, uid string, user *domain.User) error {
	if uid == "" {
		return fmt.Errorf("uid required")
	}
	if user.CreatedAt == "" {
		user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	counterRef := r.client.Collection(countersCollection).Doc(usersCounterDoc)
	userRef := r.client.Collection(usersCollection).Doc(uid)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		next := int64(1)
		snap, err := tx.Get(counterRef)
		if err == nil {
			n, err := snap.DataAt("next")
			if err != nil {
				return fmt.Errorf("counter field: %w", err)
			}
			if v, ok := n.(int64); ok {
				next = v
			}
		} else if status.Code(err) != codes.NotFound {
			return fmt.Errorf("read counter: %w", err)
		}

		user.ID = next

		if err := tx.Set(counterRef, map[string]any{"next": next + 1}); err != nil {
			return err
		}
		return tx.Set(userRef, user)
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	user.UID = uid
	return nil
}
