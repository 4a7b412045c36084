package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gpustat-server/internal/capability"
	"gpustat-server/internal/collector/cpu"
	"gpustat-server/internal/collector/gpu"
	"gpustat-server/internal/collector/memory"
	"gpustat-server/internal/collector/system"
	"gpustat-server/internal/config"
	"gpustat-server/internal/core"
	"gpustat-server/internal/domain"
	"gpustat-server/internal/logger"
	"gpustat-server/internal/storage/snapshot"
	"gpustat-server/internal/transport/rest"
	"gpustat-server/internal/transport/websocket"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	detector := capability.NewDetector(cfg.CapabilityRecheck, log)
	detector.Detect()
	libUsable := func() bool { return detector.State().Available }

	engine := core.NewEngine(
		log,
		detector,
		cpu.NewCollector(log, libUsable),
		memory.NewCollector(log, libUsable),
		gpu.NewCollector(log),
		system.NewCollector(log, libUsable),
		cfg.GPUCacheTTL,
	)

	ms := snapshot.NewMetricsStore()
	hub := websocket.NewHub(log)

	sched := core.NewScheduler(cfg.ScrapeInterval, log, engine.Snapshot, func(s domain.Snapshot) {
		ms.Set(s)
		hub.Emit("snapshot.updated", s)
	})
	go sched.Start(ctx)
	go hub.Run(ctx)

	latest := func() ([]byte, bool) {
		snap, ok := ms.Get()
		if !ok {
			return nil, false
		}
		message, err := json.Marshal(websocket.Event{Event: "snapshot.updated", Payload: snap})
		if err != nil {
			return nil, false
		}
		return message, true
	}

	wsHandler := websocket.NewHandler(hub, log, cfg.AllowedOrigins, latest)
	metricsHandler := rest.NewMetricsHandler(engine, log)

	router := rest.NewRouter(cfg, &rest.RouterDeps{
		Metrics: metricsHandler,
		WS:      wsHandler,
	})

	srv := rest.NewServer(router, cfg.Address)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting http server", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http server shutdown error", "error", err)
		}

	case err := <-errCh:
		log.Error("http server error", "error", err)
	}

	log.Info("server stopped")
}
