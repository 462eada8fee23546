package socketio

import (
	"context"
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURL(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		wantBase string
		wantPath string
		wantErr  string
	}{
		{name: "with path", raw: "http://localhost:3000/socket.io/", wantBase: "http://localhost:3000", wantPath: "/socket.io/"},
		{name: "no path", raw: "wss://events.example.com", wantBase: "wss://events.example.com", wantPath: ""},
		{name: "missing scheme", raw: "localhost:3000", wantErr: "must include scheme and host"},
		{name: "unparseable", raw: "http://[::1", wantErr: "failed to parse URL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			base, path, err := baseURL(tc.raw)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantBase, base)
			assert.Equal(t, tc.wantPath, path)
		})
	}
}

func TestPayload(t *testing.T) {
	msg, err := payload(events.TopicUnitPassed, events.UnitPassed{RunID: "r", Unit: "a", Iterations: 2})

	require.NoError(t, err)
	assert.Equal(t, events.TopicUnitPassed, msg["topic"])
	assert.Equal(t, map[string]any{"run_id": "r", "unit": "a", "iterations": float64(2)}, msg["data"])

	_, err = payload(events.TopicUnitPassed, "not an object")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit_passed")
}

func TestDial_RejectsBadURL(t *testing.T) {
	_, err := Dial(context.Background(), Options{URL: "no-scheme"})
	require.Error(t, err)
}

func TestPublisher_ClosedPublisherRejectsEvents(t *testing.T) {
	p := &Publisher{}
	require.NoError(t, p.Close())

	err := p.Publish(context.Background(), events.TopicRunStarted, events.RunStarted{RunID: "r"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}
