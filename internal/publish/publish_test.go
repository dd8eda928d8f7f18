package publish

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/specialistvlad/callplan/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	server "github.com/zishang520/socket.io/v2/socket"
)

func TestNewSocketIO(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		pub, err := NewSocketIO(SocketIOConfig{URL: "http://localhost:3000/socket.io/"})
		require.NoError(t, err)
		assert.Equal(t, DefaultEvent, pub.cfg.Event)
		assert.Equal(t, "/", pub.cfg.Namespace)
		assert.Equal(t, DefaultTimeout, pub.cfg.Timeout)
		assert.Equal(t, "/socket.io/", pub.target.Path)
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		pub, err := NewSocketIO(SocketIOConfig{URL: "wss://exec.example.com", Namespace: "/plans", Event: "schedule", Timeout: time.Second})
		require.NoError(t, err)
		assert.Equal(t, "schedule", pub.cfg.Event)
		assert.Equal(t, "/plans", pub.cfg.Namespace)
		assert.Equal(t, time.Second, pub.cfg.Timeout)
	})

	testCases := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"unparseable", "http://[::1", "failed to parse URL"},
		{"bad scheme", "ftp://host", "unsupported publish URL scheme"},
		{"no host", "http://", "has no host"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSocketIO(SocketIOConfig{URL: tc.url})
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestPayload(t *testing.T) {
	p := plan.New()
	p.Nodes["a"] = &plan.Node{Name: "a", Operation: "a", Dependencies: []string{}, Mode: plan.Sequential}
	p.ExecutionOrder = [][]string{{"a"}}

	data, err := payload(p)
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{"a"}}, data["execution_order"])

	nodes := data["nodes"].(map[string]any)
	node := nodes["a"].(map[string]any)
	assert.Equal(t, "sequential", node["execution_mode"])
}

// startLoopback runs a socket.io server that forwards every "plan" event it
// receives, and replies with "planned" when ack is true.
func startLoopback(t *testing.T, ack bool) (string, <-chan any) {
	t.Helper()

	received := make(chan any, 1)
	io := server.NewServer(nil, nil)
	io.On("connection", func(clients ...any) {
		client := clients[0].(*server.Socket)
		client.On("plan", func(data ...any) {
			if len(data) > 0 {
				received <- data[0]
			}
			if ack {
				client.Emit("planned", "ok")
			}
		})
	})

	srv := httptest.NewServer(io.ServeHandler(nil))
	t.Cleanup(func() {
		io.Close(nil)
		srv.Close()
	})
	return srv.URL + "/socket.io/", received
}

func samplePlan() *plan.Plan {
	p := plan.New()
	p.Nodes["a"] = &plan.Node{Name: "a", Operation: "a", Dependencies: []string{}, Mode: plan.Sequential}
	p.ExecutionOrder = [][]string{{"a"}}
	return p
}

func TestSocketIO_Publish(t *testing.T) {
	t.Run("plan is delivered and acknowledged", func(t *testing.T) {
		url, received := startLoopback(t, true)
		pub, err := NewSocketIO(SocketIOConfig{URL: url, AckEvent: "planned", Timeout: 5 * time.Second})
		require.NoError(t, err)

		require.NoError(t, pub.Publish(context.Background(), samplePlan()))

		select {
		case data := <-received:
			body, ok := data.(map[string]any)
			require.True(t, ok, "payload should decode to an object, got %T", data)
			assert.Equal(t, []any{[]any{"a"}}, body["execution_order"])
			assert.Contains(t, body["nodes"], "a")
		case <-time.After(5 * time.Second):
			t.Fatal("server did not receive the plan")
		}
	})

	t.Run("fire and forget returns after emitting", func(t *testing.T) {
		url, _ := startLoopback(t, false)
		pub, err := NewSocketIO(SocketIOConfig{URL: url, Timeout: 5 * time.Second})
		require.NoError(t, err)

		assert.NoError(t, pub.Publish(context.Background(), samplePlan()))
	})

	t.Run("missing acknowledgement times out", func(t *testing.T) {
		url, _ := startLoopback(t, false)
		pub, err := NewSocketIO(SocketIOConfig{URL: url, AckEvent: "planned", Timeout: 500 * time.Millisecond})
		require.NoError(t, err)

		err = pub.Publish(context.Background(), samplePlan())
		assert.ErrorContains(t, err, `waiting for "planned"`)
	})

	t.Run("unreachable endpoint fails", func(t *testing.T) {
		srv := httptest.NewServer(nil)
		url := srv.URL
		srv.Close()

		pub, err := NewSocketIO(SocketIOConfig{URL: url, Timeout: 2 * time.Second})
		require.NoError(t, err)
		assert.Error(t, pub.Publish(context.Background(), samplePlan()))
	})
}
