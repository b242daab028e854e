// Package bootstrap starts every petri controls instance embedded in a page.
//
// An App ties the pieces together: the page is scanned for mount points, the
// shared WebAssembly module is loaded once, and its entry point is called for
// each mount point in document order. Instance faults are reported and never
// stop the run; only a module load failure does.
//
//	doc, _ := htmldoc.ParseFile("page.html")
//	app, err := bootstrap.New(ctx, cfg, doc)
//	if err != nil {
//	    return err
//	}
//	defer app.Close(ctx)
//	report, err := app.Run(ctx)
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/petricontrols/bootstrap/application/dispatcher"
	"github.com/petricontrols/bootstrap/domain/entities"
	"github.com/petricontrols/bootstrap/domain/ports"
	"github.com/petricontrols/bootstrap/host"
	"github.com/petricontrols/bootstrap/hostfuncs"
	"github.com/petricontrols/bootstrap/infrastructure/htmldoc"
	"github.com/petricontrols/bootstrap/log"
)

// App is a configured dispatcher bound to one page and one module host.
type App struct {
	executor   *host.Executor
	dispatcher *dispatcher.Dispatcher
}

type appConfig struct {
	logOutput io.Writer
	logger    *slog.Logger
	sink      ports.DiagnosticSink
	loader    ports.ModuleLoader
	hostOpts  []host.Option
}

// Option configures an App.
type Option func(*appConfig)

// WithLogOutput sets where logs are written (default os.Stderr).
func WithLogOutput(w io.Writer) Option {
	return func(c *appConfig) {
		c.logOutput = w
	}
}

// WithLogger uses logger instead of one built from the log configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(c *appConfig) {
		c.logger = logger
	}
}

// WithSink replaces the logging diagnostic sink.
func WithSink(sink ports.DiagnosticSink) Option {
	return func(c *appConfig) {
		c.sink = sink
	}
}

// WithModuleLoader replaces loading the module from the configured path.
// Pass a dispatcher.SharedLoader to let several Apps use one module handle.
func WithModuleLoader(loader ports.ModuleLoader) Option {
	return func(c *appConfig) {
		c.loader = loader
	}
}

// WithHostOptions passes additional options to the module host.
func WithHostOptions(opts ...host.Option) Option {
	return func(c *appConfig) {
		c.hostOpts = append(c.hostOpts, opts...)
	}
}

// New builds an App for doc. cfg is expected to be validated already.
func New(ctx context.Context, cfg *entities.Config, doc *htmldoc.Document, opts ...Option) (*App, error) {
	ac := appConfig{logOutput: os.Stderr}
	for _, opt := range opts {
		opt(&ac)
	}

	logger := ac.logger
	if logger == nil {
		var err error
		logger, err = log.NewLogger(cfg.Log, ac.logOutput)
		if err != nil {
			return nil, err
		}
	}

	registry, err := hostfuncs.NewRegistry(
		hostfuncs.WithMiddleware(
			hostfuncs.PanicRecoveryMiddleware(),
			hostfuncs.SizeLimitMiddleware(hostfuncs.DefaultMaxRequestSize),
			hostfuncs.LoggingMiddleware(logger),
		),
		hostfuncs.WithBundle(hostfuncs.DocumentBundle(doc.Lookup)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build host functions: %w", err)
	}

	hostOpts := append([]host.Option{
		host.WithHostFunctions(registry),
		host.WithEntryPoint(cfg.Module.EntryPoint),
		host.WithHostModuleName(cfg.Module.HostModule),
		host.WithLogger(logger),
	}, ac.hostOpts...)
	executor, err := host.NewExecutor(ctx, hostOpts...)
	if err != nil {
		return nil, err
	}

	loader := ac.loader
	if loader == nil {
		loader = &host.FileLoader{Executor: executor, Path: cfg.Module.Path}
	}
	loader = withTimeout(loader, cfg.Module.LoadTimeout)

	sink := ac.sink
	if sink == nil {
		sink = log.NewSink(logger)
	}

	d := dispatcher.New(loader, doc,
		dispatcher.WithMarker(cfg.Marker),
		dispatcher.WithLogger(logger),
		dispatcher.WithSink(sink),
	)

	return &App{executor: executor, dispatcher: d}, nil
}

// Run performs the bootstrap. It returns an error only when the module cannot be
// loaded, the page cannot be queried, or the App has already run.
func (a *App) Run(ctx context.Context) (*entities.Report, error) {
	return a.dispatcher.Bootstrap(ctx)
}

// State reports the current run state.
func (a *App) State() entities.RunState {
	return a.dispatcher.State()
}

// Close releases the module host.
func (a *App) Close(ctx context.Context) error {
	return a.executor.Close(ctx)
}

// withTimeout bounds the module load. The dispatcher itself has no deadline.
func withTimeout(loader ports.ModuleLoader, timeout time.Duration) ports.ModuleLoader {
	if timeout <= 0 {
		return loader
	}
	return ports.ModuleLoaderFunc(func(ctx context.Context) (ports.Module, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return loader.Load(ctx)
	})
}
