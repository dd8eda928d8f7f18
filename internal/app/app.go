package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/callplan/internal/hcl"
	"github.com/specialistvlad/callplan/internal/placeholder"
	"github.com/specialistvlad/callplan/internal/publish"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	loader    *hcl.Loader
	detector  placeholder.Detector
	publisher publish.Publisher
}

// Option customizes an App.
type Option func(*App)

// WithPublisher overrides the publisher derived from the configuration.
func WithPublisher(p publish.Publisher) Option {
	return func(a *App) {
		a.publisher = p
	}
}

// WithDetector overrides the placeholder detector used by the planner.
func WithDetector(d placeholder.Detector) Option {
	return func(a *App) {
		a.detector = d
	}
}

// NewApp is the constructor for the main application. The plan is written to
// outW and logs to logW, so JSON output stays machine-readable.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: hcl.NewLoader(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.publisher == nil && cfg.PublishURL != "" {
		pub, err := publish.NewSocketIO(publish.SocketIOConfig{
			URL:       cfg.PublishURL,
			Namespace: cfg.PublishNamespace,
			Event:     cfg.PublishEvent,
			AckEvent:  cfg.PublishAckEvent,
			Timeout:   cfg.PublishTimeout,

			InsecureSkipVerify: cfg.PublishInsecureSkipVerify,
		})
		if err != nil {
			return nil, fmt.Errorf("invalid publish configuration: %w", err)
		}
		a.publisher = pub
		logger.Debug("Plan publisher configured.", "url", cfg.PublishURL)
	}

	return a, nil
}
