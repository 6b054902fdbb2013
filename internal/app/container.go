package app

import (
	"context"
	"path/filepath"

	"github.com/freand76/kalkon/internal/application/calc"
	"github.com/freand76/kalkon/internal/application/doctor"
	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/infrastructure/config"
	"github.com/freand76/kalkon/internal/infrastructure/eval"
	"github.com/freand76/kalkon/internal/infrastructure/history"
	"github.com/freand76/kalkon/internal/infrastructure/sessionlog"
	"github.com/freand76/kalkon/internal/pkg/filesystem"
	"github.com/freand76/kalkon/internal/pkg/logger"
	"github.com/freand76/kalkon/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	Calc           *calc.Service
	Doctor         *doctor.Service
	SessionLog     ports.SessionLog
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log := logger.NewStd(verbose)

	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	engine := eval.New(cfg.GetPrecisionBits())
	historyStore := history.NewMemoryStore(cfg.History.Retention)
	sessionLog := openSessionLog(cfg, log)

	calcService, err := calc.NewService(calc.Deps{
		Engine:     engine,
		History:    historyStore,
		SessionLog: sessionLog,
		Logger:     log,
		StackDepth: cfg.GetStackDepth(),
		Digits:     cfg.GetDisplayDigits(),
	})
	if err != nil {
		return nil, err
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		SessionLog:     sessionLog,
	}

	return &Container{
		Config:         cfg,
		Calc:           calcService,
		Doctor:         doctorService,
		SessionLog:     sessionLog,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
	}, nil
}

// openSessionLog opens the configured persistence backend, or nil when
// logging is disabled. A database that cannot be opened falls back to
// the JSONL store so a corrupt file never blocks the calculator.
func openSessionLog(cfg domain.Config, log ports.Logger) ports.SessionLog {
	if !cfg.IsSessionLogEnabled() {
		return nil
	}
	path := cfg.SessionLog.Path
	if path == "" {
		path = filepath.Join(filesystem.ConfigDir(), domain.SessionDBFileName)
	}
	store, err := sessionlog.NewSQLiteStore(path)
	if err == nil {
		return store
	}
	log.Warn("session database unavailable, falling back to JSONL", map[string]interface{}{
		"path":  path,
		"error": err.Error(),
	})
	return sessionlog.NewFileStore(filesystem.ConfigDir())
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.SessionLog != nil {
		return c.SessionLog.Close()
	}
	return nil
}
