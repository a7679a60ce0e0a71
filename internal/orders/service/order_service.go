package service

import (
	"context"
	"fmt"

	menudomain "github.com/punto-pos/pos-backend/internal/menu/domain"
	"github.com/punto-pos/pos-backend/internal/orders/domain"
)

type orderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Order, error)
	TransitionState(ctx context.Context, id string, next domain.Status) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	LatestByClient(ctx context.Context, clientID string) (*domain.Order, error)
	SubscribeLatest(ctx context.Context, clientID string, fn func(*domain.Order)) func()
}

type priceLookup interface {
	GetByID(ctx context.Context, id string) (*menudomain.MenuItem, error)
}

// OrderService owns order lifecycle rules: authoritative totals at creation
// and validated state transitions afterwards.
type OrderService struct {
	repo orderStore
	menu priceLookup
}

func NewOrderService(repo orderStore, menu priceLookup) *OrderService {
	return &OrderService{repo: repo, menu: menu}
}

// CreateRequest is an order as submitted by the client screen. The client
// total is advisory; the server recomputes it from live menu prices.
type CreateRequest struct {
	ClientID    string
	Lines       []domain.Line
	Table       int
	Allergies   []string
	ClientTotal float64
}

// Create validates the cart, prices it against the menu, and persists the
// order in the initial state.
func (s *OrderService) Create(ctx context.Context, req *CreateRequest) (*domain.Order, error) {
	order := &domain.Order{
		ClientID:  req.ClientID,
		Lines:     req.Lines,
		State:     domain.StatusReceived,
		Table:     req.Table,
		Allergies: req.Allergies,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	priceByDish := make(map[string]float64, len(order.Lines))
	for i, line := range order.Lines {
		if line.DishID == "" {
			return nil, fmt.Errorf("line %d: dish id is required", i)
		}
		item, err := s.menu.GetByID(ctx, line.DishID)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		// Denormalize the current dish name so historical displays keep
		// working even if the dish is renamed later.
		order.Lines[i].Dish = item.Dish
		priceByDish[line.DishID] = item.Price
	}

	order.Total = domain.ComputeTotal(order.Lines, priceByDish)
	if req.ClientTotal != 0 && !domain.TotalsMatch(req.ClientTotal, order.Total) {
		return nil, domain.ErrTotalMismatch
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update to non-lifecycle fields. State changes go
// through Transition; a state key here is rejected to keep the transition
// validation from being bypassed.
func (s *OrderService) Update(ctx context.Context, id string, fields map[string]any) (*domain.Order, error) {
	if _, ok := fields["state"]; ok {
		return nil, domain.ErrInvalidTransition
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	return s.repo.Update(ctx, id, fields)
}

// Transition moves the order one step forward in the lifecycle.
func (s *OrderService) Transition(ctx context.Context, id string, next domain.Status) (*domain.Order, error) {
	if _, err := domain.ParseStatus(string(next)); err != nil {
		return nil, err
	}
	return s.repo.TransitionState(ctx, id, next)
}

// Pay marks a delivered order as paid. The repository transaction enforces
// the entregado precondition, but checking here gives a cleaner error for
// the common "not delivered yet" case.
func (s *OrderService) Pay(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.State.Payable() {
		return nil, domain.ErrInvalidTransition
	}
	return s.repo.TransitionState(ctx, id, domain.StatusPaid)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *OrderService) LatestByClient(ctx context.Context, clientID string) (*domain.Order, error) {
	return s.repo.LatestByClient(ctx, clientID)
}

// WatchLatest invokes fn with the client's most recent order whenever the
// backing store pushes a change, including writes made outside this service.
// The returned function stops the watch.
func (s *OrderService) WatchLatest(ctx context.Context, clientID string, fn func(*domain.Order)) func() {
	return s.repo.SubscribeLatest(ctx, clientID, fn)
}
