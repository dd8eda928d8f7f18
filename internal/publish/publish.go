// Package publish hands finished plans to a remote executor.
//
// Publishing happens after planning, in the application shell; the planner
// itself never performs I/O.
package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/callplan/internal/ctxlog"
	"github.com/specialistvlad/callplan/internal/plan"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Publisher delivers a plan somewhere outside the process.
type Publisher interface {
	Publish(ctx context.Context, p *plan.Plan) error
}

const (
	DefaultEvent   = "plan"
	DefaultTimeout = 15 * time.Second
)

// SocketIOConfig configures a socket.io publisher.
type SocketIOConfig struct {
	URL       string
	Namespace string
	// Event is the name the plan is emitted under.
	Event string
	// AckEvent, when set, is awaited after emitting as confirmation from the executor.
	AckEvent           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// SocketIO emits plans as socket.io events.
type SocketIO struct {
	cfg    SocketIOConfig
	target *url.URL
}

// NewSocketIO validates cfg and fills in defaults.
func NewSocketIO(cfg SocketIOConfig) (*SocketIO, error) {
	target, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	switch target.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported publish URL scheme %q", target.Scheme)
	}
	if target.Host == "" {
		return nil, fmt.Errorf("publish URL %q has no host", cfg.URL)
	}
	if cfg.Event == "" {
		cfg.Event = DefaultEvent
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &SocketIO{cfg: cfg, target: target}, nil
}

// Publish connects, emits the plan, optionally waits for the acknowledgement
// event, and disconnects.
func (s *SocketIO) Publish(ctx context.Context, p *plan.Plan) error {
	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "url", s.cfg.URL, "event", s.cfg.Event)

	data, err := payload(p)
	if err != nil {
		return err
	}

	opts := socket.DefaultOptions()
	opts.SetPath(s.target.Path)
	if s.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	scheme := s.target.Scheme
	switch scheme {
	case "ws":
		scheme = "http"
	case "wss":
		scheme = "https"
	}
	baseURL := fmt.Sprintf("%s://%s", scheme, s.target.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(s.cfg.Namespace, opts)
	defer io.Disconnect()

	// Only the first connection outcome is read; later ones are dropped so the
	// client's event goroutine never blocks.
	connected := make(chan error, 1)
	signal := func(err error) {
		select {
		case connected <- err:
		default:
		}
	}
	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected.", "sid", io.Id())
		signal(nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				signal(err)
				return
			}
		}
		signal(fmt.Errorf("connect_error: %v", errs))
	})

	acked := make(chan struct{}, 1)
	if s.cfg.AckEvent != "" {
		io.Once(types.EventName(s.cfg.AckEvent), func(...any) {
			select {
			case acked <- struct{}{}:
			default:
			}
		})
	}

	timer := time.NewTimer(s.cfg.Timeout)
	defer timer.Stop()

	io.Connect()
	select {
	case err := <-connected:
		if err != nil {
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-timer.C:
		return fmt.Errorf("timed out after %s waiting for socket.io connection", s.cfg.Timeout)
	}

	logger.Info("Publishing plan.", "nodes", len(p.Nodes), "levels", len(p.ExecutionOrder))
	io.Emit(s.cfg.Event, data)

	if s.cfg.AckEvent == "" {
		return nil
	}
	select {
	case <-acked:
		logger.Debug("Plan acknowledged.", "ack_event", s.cfg.AckEvent)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for %q: %w", s.cfg.AckEvent, ctx.Err())
	case <-timer.C:
		return fmt.Errorf("timed out after %s waiting for %q", s.cfg.Timeout, s.cfg.AckEvent)
	}
}

// payload converts the plan into plain JSON-shaped values for the wire.
func payload(p *plan.Plan) (map[string]any, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	return out, nil
}
