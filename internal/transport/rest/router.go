// Package rest
package rest

import (
	"net/http"
	"time"

	"gpustat-server/internal/config"
	"gpustat-server/internal/transport/rest/middleware"
	"gpustat-server/internal/transport/websocket"
)

type RouterDeps struct {
	Metrics *MetricsHandler
	WS      *websocket.Handler
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg.AllowedOrigins))

	// Anything not routed below is a 404 with an empty body.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("GET /{$}", serveDashboard)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /api/system", deps.Metrics.System)
	mux.HandleFunc("GET /api/system/status", deps.Metrics.Status)

	if deps.WS != nil {
		mux.HandleFunc("GET /ws", deps.WS.Serve)
	}

	return globalMw.Apply(mux)
}

func NewServer(handler http.Handler, addr string) *http.Server {
	return &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 10 * time.Second,
		// Snapshot sampling blocks for a couple of seconds on the
		// library path, so the write timeout leaves headroom.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
