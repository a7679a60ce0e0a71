package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authctx "github.com/punto-pos/pos-backend/internal/auth"
	"github.com/punto-pos/pos-backend/internal/orders/domain"
)

// StreamLatestOrder streams the authenticated client's most recent order
// over Server-Sent Events. The stream is seeded with the current latest
// order and then driven by the Redis event channel; there is no polling.
// A Firestore snapshot watch is bridged into the event channel so writes
// made outside this service still reach the stream.
func (h *Handler) StreamLatestOrder(c *gin.Context) {
	clientID := authctx.UserFirebaseUID(c)
	if clientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	ctx := c.Request.Context()

	// Send the current latest order first so the client renders immediately.
	var lastSent []byte
	latest, err := h.orderService.LatestByClient(ctx, clientID)
	switch {
	case err == nil:
		lastSent = writeEvent(c, flusher, "initial", gin.H{"order": latest})
	case errors.Is(err, domain.ErrOrderNotFound):
		lastSent = writeEvent(c, flusher, "initial", gin.H{"order": nil})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to get latest order"})
		return
	}

	updates, cancel := h.events.Subscribe(ctx, clientID)
	defer cancel()

	// Bridge store-side snapshots into the event channel so mutations that
	// bypassed this service (other writers on the same collection) are
	// delivered too. Service-side writes arrive twice this way; the
	// duplicate suppression below keeps the wire clean.
	stopWatch := h.orderService.WatchLatest(ctx, clientID, func(order *domain.Order) {
		if order != nil {
			_ = h.events.Publish(ctx, order)
		}
	})
	defer stopWatch()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Client disconnected
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case order, open := <-updates:
			if !open {
				return
			}
			payload, _ := json.Marshal(gin.H{"order": order})
			if bytes.Equal(payload, lastSent) {
				continue
			}
			lastSent = writeEvent(c, flusher, "update", gin.H{"order": order})
		}
	}
}

func writeEvent(c *gin.Context, flusher http.Flusher, event string, payload gin.H) []byte {
	data, _ := json.Marshal(payload)
	fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, string(data))
	flusher.Flush()
	return data
}
