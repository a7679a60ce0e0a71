package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punto-pos/pos-backend/internal/menu/domain"
)

type fakeMenuStore struct {
	items     map[string]*domain.MenuItem
	nextID    int
	listCalls int
}

func newFakeMenuStore() *fakeMenuStore {
	return &fakeMenuStore{items: map[string]*domain.MenuItem{}}
}

func (f *fakeMenuStore) List(_ context.Context) ([]domain.MenuItem, error) {
	f.listCalls++
	out := make([]domain.MenuItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeMenuStore) GetByID(_ context.Context, id string) (*domain.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeMenuStore) Create(_ context.Context, item *domain.MenuItem) error {
	f.nextID++
	item.ID = "dish-" + strconv.Itoa(f.nextID)
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeMenuStore) Update(_ context.Context, id string, fields map[string]any) error {
	item, ok := f.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	if dish, ok := fields["dish"].(string); ok {
		item.Dish = dish
	}
	if price, ok := fields["price"].(float64); ok {
		item.Price = price
	}
	if cat, ok := fields["type"].(string); ok {
		item.Category = domain.Category(cat)
	}
	return nil
}

func (f *fakeMenuStore) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func TestCreateAppearsInFilteredList(t *testing.T) {
	store := newFakeMenuStore()
	svc := NewMenuService(store)

	pasta := &domain.MenuItem{Dish: "Pasta", Price: 10.00, Category: domain.CategoryPlato}
	require.NoError(t, svc.Create(context.Background(), pasta))
	require.NoError(t, svc.Create(context.Background(), &domain.MenuItem{
		Dish: "Agua", Price: 2.50, Category: domain.CategoryBebida,
	}))

	platos, err := svc.List(context.Background(), domain.CategoryPlato)
	require.NoError(t, err)
	require.Len(t, platos, 1)
	assert.Equal(t, "Pasta", platos[0].Dish)

	// The dish must not leak into other categories.
	postres, err := svc.List(context.Background(), domain.CategoryPostre)
	require.NoError(t, err)
	assert.Empty(t, postres)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateValidates(t *testing.T) {
	svc := NewMenuService(newFakeMenuStore())

	err := svc.Create(context.Background(), &domain.MenuItem{Dish: "Gratis", Price: 0, Category: domain.CategoryPlato})
	assert.Error(t, err)

	err = svc.Create(context.Background(), &domain.MenuItem{Dish: "Sopa", Price: 5, Category: "sopa"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestListServesFromCache(t *testing.T) {
	store := newFakeMenuStore()
	svc := NewMenuService(store)

	_, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	_, err = svc.List(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, store.listCalls, "reads after warm-up must hit the cache")
}

func TestMutationRefreshesCache(t *testing.T) {
	store := newFakeMenuStore()
	svc := NewMenuService(store)

	item := &domain.MenuItem{Dish: "Pasta", Price: 10.00, Category: domain.CategoryPlato}
	require.NoError(t, svc.Create(context.Background(), item))

	require.NoError(t, svc.Update(context.Background(), item.ID, map[string]any{"price": 12.00}))

	items, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 12.00, items[0].Price)
}

func TestUpdateValidatesFields(t *testing.T) {
	store := newFakeMenuStore()
	svc := NewMenuService(store)

	item := &domain.MenuItem{Dish: "Pasta", Price: 10.00, Category: domain.CategoryPlato}
	require.NoError(t, svc.Create(context.Background(), item))

	err := svc.Update(context.Background(), item.ID, map[string]any{"price": -3.0})
	assert.Error(t, err)

	err = svc.Update(context.Background(), item.ID, map[string]any{"type": "desayuno"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestDeleteRemovesFromList(t *testing.T) {
	store := newFakeMenuStore()
	svc := NewMenuService(store)

	item := &domain.MenuItem{Dish: "Pasta", Price: 10.00, Category: domain.CategoryPlato}
	require.NoError(t, svc.Create(context.Background(), item))
	require.NoError(t, svc.Delete(context.Background(), item.ID))

	items, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}
