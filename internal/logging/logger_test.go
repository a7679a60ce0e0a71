package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var e map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &e))
	return e
}

func TestInfoEntryShape(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("pos-api", &buf)

	log.Info("menu_refresh", "menu cache refreshed", map[string]any{"items": 12})

	e := decodeEntry(t, &buf)
	assert.Equal(t, "INFO", e["level"])
	assert.Equal(t, "pos-api", e["service"])
	assert.Equal(t, "menu_refresh", e["action"])
	assert.Equal(t, "menu cache refreshed", e["message"])
	assert.Equal(t, float64(12), e["details"].(map[string]any)["items"])
	assert.NotContains(t, e, "request_id")
	assert.NotContains(t, e, "error")
}

func TestErrorReqCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("pos-api", &buf)

	log.ErrorReq("order_create", "order create failed", "req-123",
		map[string]any{"client": "uid-1"}, errors.New("boom"))

	e := decodeEntry(t, &buf)
	assert.Equal(t, "ERROR", e["level"])
	assert.Equal(t, "req-123", e["request_id"])
	assert.Equal(t, "boom", e["error"])
}

func TestInfoReqCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("pos-worker", &buf)

	log.InfoReq("archive_run", "archive run complete", "req-456", nil)

	e := decodeEntry(t, &buf)
	assert.Equal(t, "req-456", e["request_id"])
	assert.NotContains(t, e, "error")
}
