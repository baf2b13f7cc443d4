package broker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent("OrderPlaced", map[string]string{"order_number": "ORD-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "OrderPlaced", ev.EventType)
	assert.False(t, ev.Timestamp.IsZero())

	var payload map[string]string
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, "ORD-1", payload["order_number"])
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	ev, err := NewEvent("AnalyticsEvent", struct{}{})
	require.NoError(t, err)

	require.NoError(t, rec.Publish(context.Background(), "topic", "key", ev))

	got := rec.Snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "topic", got[0].Topic)
	assert.Equal(t, "key", got[0].Key)
}
