package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/punto-pos/pos-backend/internal/menu/domain"
)

type menuStore interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// MenuService serves the menu from an in-memory cache that is refreshed by a
// full re-fetch after every mutation. Reads never hit Firestore once the
// cache is warm; external writers are not observed until the next mutation.
type MenuService struct {
	repo menuStore

	mu     sync.RWMutex
	cache  []domain.MenuItem
	loaded bool
}

func NewMenuService(repo menuStore) *MenuService {
	return &MenuService{repo: repo}
}

// List returns the cached menu, optionally filtered by category. An empty
// category returns everything.
func (s *MenuService) List(ctx context.Context, category domain.Category) ([]domain.MenuItem, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.MenuItem, 0, len(s.cache))
	for _, item := range s.cache {
		if category != "" && item.Category != category {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// GetByID reads through to the repository so price lookups are never stale.
func (s *MenuService) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *MenuService) Update(ctx context.Context, id string, fields map[string]any) error {
	if price, ok := fields["price"]; ok {
		if p, ok := price.(float64); ok && p <= 0 {
			return fmt.Errorf("price must be greater than zero")
		}
	}
	if raw, ok := fields["type"]; ok {
		cat, ok := raw.(string)
		if !ok {
			return domain.ErrInvalidCategory
		}
		parsed, err := domain.ParseCategory(cat)
		if err != nil {
			return err
		}
		fields["type"] = string(parsed)
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Refresh replaces the cache with a full collection fetch.
func (s *MenuService) Refresh(ctx context.Context) error {
	items, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache = items
	s.loaded = true
	s.mu.Unlock()

	return nil
}
