package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"retirement-planner/internal/config"
	"retirement-planner/internal/engine"
	"retirement-planner/internal/handler"
	"retirement-planner/internal/logger"
	"retirement-planner/internal/profiles"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.Must(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	reg, err := profiles.Load(cfg.Profiles.Path, cfg.Assumptions, cfg.Profiles.Default)
	if err != nil {
		log.Fatal("profiles load failed", zap.Error(err))
	}

	eng := engine.New(reg, engine.WithLogger(log))
	h, err := handler.New(eng, log)
	if err != nil {
		log.Fatal("handler init failed", zap.Error(err))
	}

	server := &fasthttp.Server{
		Handler:            h.Route,
		Name:               cfg.App.Name,
		ReadTimeout:        cfg.Server.ReadTimeout,
		WriteTimeout:       cfg.Server.WriteTimeout,
		MaxRequestBodySize: cfg.Server.MaxRequestBodySize,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("retirement planner starting",
			zap.String("addr", cfg.Server.Addr()),
			zap.String("environment", cfg.App.Environment),
			zap.String("default_profile", reg.DefaultName()),
			zap.Strings("profiles", reg.Names()),
		)
		errCh <- server.ListenAndServe(cfg.Server.Addr())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
		if err := server.Shutdown(); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}
}
