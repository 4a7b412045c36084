package rest

import (
	"context"
	"net/http"

	"gpustat-server/internal/domain"
	"gpustat-server/internal/logger"
)

type SnapshotService interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	Status(ctx context.Context) domain.StatusReport
}

type MetricsHandler struct {
	engine SnapshotService
	log    logger.Logger
}

func NewMetricsHandler(engine SnapshotService, log logger.Logger) *MetricsHandler {
	return &MetricsHandler{engine: engine, log: log}
}

func (h *MetricsHandler) System(w http.ResponseWriter, r *http.Request) {
	snap, err := h.engine.Snapshot(r.Context())
	if err != nil {
		h.log.Error("http: snapshot failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

func (h *MetricsHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Status(r.Context()))
}
