package integration

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punto-pos/pos-backend/internal/orders/domain"
	"github.com/punto-pos/pos-backend/internal/orders/events"
)

// setupTestRedis spins up an in-memory Redis and a client pointed at it.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return client, mr
}

func waitForOrder(t *testing.T, ch <-chan domain.Order) domain.Order {
	t.Helper()
	select {
	case order, ok := <-ch:
		require.True(t, ok, "subscription channel closed unexpectedly")
		return order
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for order event")
		return domain.Order{}
	}
}

func TestOrderEventsRoundTrip(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	pub := events.NewPublisher(client)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, unsubscribe := pub.Subscribe(ctx, "client-1")
	defer unsubscribe()

	// Subscribe in go-redis confirms asynchronously; give miniredis a beat.
	time.Sleep(50 * time.Millisecond)

	order := &domain.Order{
		ID:       "order-1",
		ClientID: "client-1",
		Date:     time.Now().UTC().Format(time.RFC3339Nano),
		State:    domain.StatusReceived,
		Table:    5,
		Total:    20.00,
		Lines: []domain.Line{
			{DishID: "pasta-id", Dish: "Pasta", Quantity: 2},
		},
	}
	require.NoError(t, pub.Publish(ctx, order))

	got := waitForOrder(t, updates)
	assert.Equal(t, "order-1", got.ID)
	assert.Equal(t, domain.StatusReceived, got.State)
	assert.Equal(t, 20.00, got.Total)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "pasta-id", got.Lines[0].DishID)
}

func TestOrderEventsAreScopedPerClient(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	pub := events.NewPublisher(client)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mine, unsubMine := pub.Subscribe(ctx, "client-1")
	defer unsubMine()
	theirs, unsubTheirs := pub.Subscribe(ctx, "client-2")
	defer unsubTheirs()

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, pub.Publish(ctx, &domain.Order{
		ID:       "order-1",
		ClientID: "client-1",
		State:    domain.StatusInProgress,
		Table:    5,
	}))

	got := waitForOrder(t, mine)
	assert.Equal(t, "order-1", got.ID)

	select {
	case leaked := <-theirs:
		t.Fatalf("order %s leaked to another client's channel", leaked.ID)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestPublishSkipsOrdersWithoutClient(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	pub := events.NewPublisher(client)

	// No client id means no channel; the publish must be a silent no-op.
	require.NoError(t, pub.Publish(context.Background(), &domain.Order{ID: "order-1"}))
	require.NoError(t, pub.Publish(context.Background(), nil))
}
