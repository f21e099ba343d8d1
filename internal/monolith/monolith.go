// Package monolith provides the application container and module interface.
package monolith

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/fd1az/cap-alpha/internal/config"
	"github.com/fd1az/cap-alpha/internal/di"
	"github.com/fd1az/cap-alpha/internal/logger"
)

// Monolith gives modules access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	Services() di.ServiceRegistry
	// OnClose registers a cleanup run by Close in reverse order.
	OnClose(fn func() error)
}

// Module is a bounded context that registers services and starts up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// App is the running application.
type App struct {
	config    *config.Config
	logger    logger.LoggerInterface
	container di.Container

	mu      sync.Mutex
	closers []func() error
}

var _ Monolith = (*App)(nil)

// New creates the container and registers the global "config" and "logger" services.
func New(cfg *config.Config, log logger.LoggerInterface) *App {
	container := di.NewContainer()
	container.Register("config", cfg)
	container.Register("logger", log)

	return &App{
		config:    cfg,
		logger:    log,
		container: container,
	}
}

func (a *App) Config() *config.Config         { return a.config }
func (a *App) Logger() logger.LoggerInterface { return a.logger }
func (a *App) Services() di.ServiceRegistry   { return a.container }

// Container exposes the container for module registration.
func (a *App) Container() di.Container { return a.container }

// OnClose registers a cleanup.
func (a *App) OnClose(fn func() error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, fn)
}

// RegisterModules registers every module's services.
func (a *App) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts modules in order.
func (a *App) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close runs cleanups in reverse registration order and joins their errors.
func (a *App) Close() error {
	a.mu.Lock()
	closers := slices.Clone(a.closers)
	a.closers = nil
	a.mu.Unlock()

	var errs []error
	for _, fn := range slices.Backward(closers) {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
