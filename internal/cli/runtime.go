package cli

import (
	"fmt"

	"go.uber.org/zap"

	"retirement-planner/internal/config"
	"retirement-planner/internal/engine"
	"retirement-planner/internal/logger"
	"retirement-planner/internal/profiles"
)

type runtime struct {
	cfg      *config.Config
	log      *zap.Logger
	registry *profiles.Registry
	engine   *engine.Engine
}

// load wires config, logging, profiles and the engine the same way the
// service does. Logging stays at error level unless --verbose is set.
func (o *options) load() (*runtime, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	level := "error"
	if o.verbose {
		level = cfg.Logging.Level
	}
	log, err := logger.New(level, "console")
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	reg, err := profiles.Load(cfg.Profiles.Path, cfg.Assumptions, cfg.Profiles.Default)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:      cfg,
		log:      log,
		registry: reg,
		engine:   engine.New(reg, engine.WithLogger(log)),
	}, nil
}
