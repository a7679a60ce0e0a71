package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/punto-pos/pos-backend/internal/orders/domain"
)

const orderEventChannelPrefix = "pos:orders:events:" // per-client channel: pos:orders:events:{ID_Client}

// Publisher fans out order updates over Redis Pub/Sub, one channel per
// client, so the latest-order stream never has to poll Firestore.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func channelFor(clientID string) string {
	return orderEventChannelPrefix + clientID
}

// Publish sends the full order document to the client's channel. A publish
// with no subscribers is a no-op on the Redis side.
func (p *Publisher) Publish(ctx context.Context, order *domain.Order) error {
	if order == nil || order.ClientID == "" {
		return nil
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	if err := p.client.Publish(ctx, channelFor(order.ClientID), payload).Err(); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

// Subscribe returns a channel of order updates for one client and a cancel
// function that tears the subscription down.
func (p *Publisher) Subscribe(ctx context.Context, clientID string) (<-chan domain.Order, func()) {
	sub := p.client.Subscribe(ctx, channelFor(clientID))
	out := make(chan domain.Order, 8)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var order domain.Order
			if err := json.Unmarshal([]byte(msg.Payload), &order); err != nil {
				continue
			}
			select {
			case out <- order:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() { _ = sub.Close() }
}
