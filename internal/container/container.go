// Package container wires the application's dependencies together so the
// CLI receives one explicitly owned store instead of a global.
package container

import (
	"fmt"

	"fjacquet/income-categories/internal/api"
	"fjacquet/income-categories/internal/config"
	"fjacquet/income-categories/internal/incomecategory"
	"fjacquet/income-categories/internal/logging"
	"fjacquet/income-categories/internal/notification"
)

// Container holds all application dependencies. Fields are private and
// exposed through getters so nothing is swapped after construction.
type Container struct {
	logger        logging.Logger
	config        *config.Config
	client        *api.Client
	notifications *notification.Queue
	store         *incomecategory.Store
}

// Option adjusts how NewContainer builds dependencies.
type Option func(*options)

type options struct {
	logger logging.Logger
}

// WithLogger uses logger instead of one built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout()),
		api.WithToken(cfg.API.Token),
		api.WithRateLimit(cfg.API.RequestsPerMinute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	queue := notification.NewQueue()
	store := incomecategory.NewStore(client, queue, logger,
		incomecategory.WithPageLimit(cfg.List.Limit),
	)

	logger.Debug("Container initialized",
		logging.F(logging.FieldURL, cfg.API.BaseURL),
		logging.F(logging.FieldLimit, cfg.List.Limit))

	return &Container{
		logger:        logger,
		config:        cfg,
		client:        client,
		notifications: queue,
		store:         store,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetClient returns the API client.
func (c *Container) GetClient() *api.Client {
	return c.client
}

// GetNotifications returns the queue the store pushes notifications to.
func (c *Container) GetNotifications() *notification.Queue {
	return c.notifications
}

// GetStore returns the income category store.
func (c *Container) GetStore() *incomecategory.Store {
	return c.store
}

// Close releases container resources.
func (c *Container) Close() error {
	c.client.CloseIdleConnections()
	c.logger.Debug("Container closed")
	return nil
}
