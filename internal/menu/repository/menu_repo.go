package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/punto-pos/pos-backend/internal/menu/domain"
)

const menuCollection = "menu"

// MenuRepository handles Firestore operations for the menu collection.
type MenuRepository struct {
	client *firestore.Client
}

func NewMenuRepository(client *firestore.Client) *MenuRepository {
	return &MenuRepository{client: client}
}

// List fetches the whole menu collection.
func (r *MenuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	iter := r.client.Collection(menuCollection).Documents(ctx)
	defer iter.Stop()

	items := make([]domain.MenuItem, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list menu: %w", err)
		}

		var item domain.MenuItem
		if err := doc.DataTo(&item); err != nil {
			return nil, fmt.Errorf("decode menu item %s: %w", doc.Ref.ID, err)
		}
		item.ID = doc.Ref.ID
		items = append(items, item)
	}

	return items, nil
}

// GetByID fetches a single dish document.
func (r *MenuRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	doc, err := r.client.Collection(menuCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}

	var item domain.MenuItem
	if err := doc.DataTo(&item); err != nil {
		return nil, fmt.Errorf("decode menu item: %w", err)
	}
	item.ID = doc.Ref.ID

	return &item, nil
}

// Create inserts the dish and backfills ID_dish with the generated document
// id, matching how existing documents were written.
func (r *MenuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	ref, _, err := r.client.Collection(menuCollection).Add(ctx, item)
	if err != nil {
		return fmt.Errorf("add menu item: %w", err)
	}

	item.ID = ref.ID
	if _, err := ref.Update(ctx, []firestore.Update{
		{Path: "ID_dish", Value: ref.ID},
	}); err != nil {
		return fmt.Errorf("backfill ID_dish: %w", err)
	}

	return nil
}

// Update applies a partial-field update to the dish document.
func (r *MenuRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	_, err := r.client.Collection(menuCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("update menu item: %w", err)
	}

	return nil
}

// Delete removes the dish document. Firestore deletes are idempotent, so a
// missing document is not an error.
func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(menuCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}
