package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	t.Run("forward one step is allowed", func(t *testing.T) {
		assert.True(t, StatusReceived.CanTransitionTo(StatusInProgress))
		assert.True(t, StatusInProgress.CanTransitionTo(StatusDelivered))
		assert.True(t, StatusDelivered.CanTransitionTo(StatusPaid))
	})

	t.Run("skipping is rejected", func(t *testing.T) {
		assert.False(t, StatusReceived.CanTransitionTo(StatusDelivered))
		assert.False(t, StatusReceived.CanTransitionTo(StatusPaid))
		assert.False(t, StatusInProgress.CanTransitionTo(StatusPaid))
	})

	t.Run("reversal is rejected", func(t *testing.T) {
		assert.False(t, StatusInProgress.CanTransitionTo(StatusReceived))
		assert.False(t, StatusDelivered.CanTransitionTo(StatusInProgress))
		assert.False(t, StatusPaid.CanTransitionTo(StatusReceived))
		assert.False(t, StatusPaid.CanTransitionTo(StatusDelivered))
	})

	t.Run("self transition is rejected", func(t *testing.T) {
		assert.False(t, StatusReceived.CanTransitionTo(StatusReceived))
		assert.False(t, StatusPaid.CanTransitionTo(StatusPaid))
	})
}

func TestPayable(t *testing.T) {
	assert.False(t, StatusReceived.Payable())
	assert.False(t, StatusInProgress.Payable())
	assert.True(t, StatusDelivered.Payable())
	assert.False(t, StatusPaid.Payable())
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"recibido", "en proceso", "entregado", "Paid"} {
		s, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, Status(raw), s)
	}

	_, err := ParseStatus("paid") // state strings are case-sensitive
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("cancelado")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
