package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/punto-pos/pos-backend/internal/orders/domain"
)

const ordersCollection = "orders"

type eventPublisher interface {
	Publish(ctx context.Context, order *domain.Order) error
}

// OrderRepository handles Firestore operations for the orders collection and
// emits an event after every mutation that changes a visible order.
type OrderRepository struct {
	client *firestore.Client
	events eventPublisher
}

func NewOrderRepository(client *firestore.Client, events eventPublisher) *OrderRepository {
	return &OrderRepository{client: client, events: events}
}

// Create inserts the order, backfills ID_Order with the generated document
// id, and publishes the new order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.Date == "" {
		order.Date = time.Now().UTC().Format(time.RFC3339Nano)
	}

	ref, _, err := r.client.Collection(ordersCollection).Add(ctx, order)
	if err != nil {
		return fmt.Errorf("add order: %w", err)
	}

	order.ID = ref.ID
	if _, err := ref.Update(ctx, []firestore.Update{
		{Path: "ID_Order", Value: ref.ID},
	}); err != nil {
		return fmt.Errorf("backfill ID_Order: %w", err)
	}

	if err := r.events.Publish(ctx, order); err != nil {
		// The write already landed; a lost event only delays the stream
		// until the next update.
		return nil
	}
	return nil
}

// GetByID fetches one order document.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	doc, err := r.client.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return decodeOrder(doc)
}

// List fetches all orders in chronological placement order.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	iter := r.client.Collection(ordersCollection).OrderBy("date", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	orders := make([]domain.Order, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}

		order, err := decodeOrder(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, nil
}

// Update applies a partial-field update, stamps statusUpdatedAt, and
// publishes the resulting order.
func (r *OrderRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Order, error) {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{
		Path:  "statusUpdatedAt",
		Value: time.Now().UTC().Format(time.RFC3339Nano),
	})

	ref := r.client.Collection(ordersCollection).Doc(id)
	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}

	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = r.events.Publish(ctx, order)
	return order, nil
}

// TransitionState moves the order to next with compare-and-swap semantics:
// the current state is read and validated inside a Firestore transaction, so
// two roles racing on the same order cannot interleave writes.
func (r *OrderRepository) TransitionState(ctx context.Context, id string, next domain.Status) (*domain.Order, error) {
	ref := r.client.Collection(ordersCollection).Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return domain.ErrOrderNotFound
			}
			return fmt.Errorf("read order: %w", err)
		}

		var current domain.Order
		if err := doc.DataTo(&current); err != nil {
			return fmt.Errorf("decode order: %w", err)
		}

		if !current.State.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "state", Value: string(next)},
			{Path: "statusUpdatedAt", Value: time.Now().UTC().Format(time.RFC3339Nano)},
		})
	})
	if err != nil {
		return nil, err
	}

	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = r.events.Publish(ctx, order)
	return order, nil
}

// Delete removes the order document.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(ordersCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// LatestByClient returns the most recent order placed by a client, or
// ErrOrderNotFound when they have none.
func (r *OrderRepository) LatestByClient(ctx context.Context, clientID string) (*domain.Order, error) {
	iter := r.client.Collection(ordersCollection).
		Where("ID_Client", "==", clientID).
		OrderBy("date", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest order: %w", err)
	}

	return decodeOrder(doc)
}

// SubscribeLatest mirrors the mobile app's snapshot listener: fn is invoked
// with the client's most recent order whenever Firestore pushes a change,
// and with nil when the client has no orders. The returned function stops
// the listener.
func (r *OrderRepository) SubscribeLatest(ctx context.Context, clientID string, fn func(*domain.Order)) func() {
	ctx, cancel := context.WithCancel(ctx)

	snaps := r.client.Collection(ordersCollection).
		Where("ID_Client", "==", clientID).
		OrderBy("date", firestore.Desc).
		Limit(1).
		Snapshots(ctx)

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				return
			}
			if snap.Size == 0 {
				fn(nil)
				continue
			}

			doc, err := snap.Documents.Next()
			if err != nil {
				continue
			}
			order, err := decodeOrder(doc)
			if err != nil {
				continue
			}
			fn(order)
		}
	}()

	return cancel
}

func decodeOrder(doc *firestore.DocumentSnapshot) (*domain.Order, error) {
	var order domain.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", doc.Ref.ID, err)
	}
	order.ID = doc.Ref.ID
	return &order, nil
}
