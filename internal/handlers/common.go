package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/radlens/scanprep/internal/config"
	"github.com/radlens/scanprep/internal/inference"
	"github.com/radlens/scanprep/internal/standardize"
	"github.com/radlens/scanprep/internal/storage"
)

type Handler struct {
	scanStore   *storage.ScanStore
	pipeline    *standardize.Pipeline
	inference   *inference.Client
	uploadLimit int64
}

func New(cfg *config.Config) *Handler {
	h := &Handler{
		scanStore:   storage.New(),
		pipeline:    standardize.NewPipeline(standardize.WithFlushWait(cfg.RenderFlushWait)),
		uploadLimit: int64(cfg.UploadLimitMB) * 1024 * 1024,
	}
	if cfg.InferenceURL != "" {
		h.inference = inference.New(cfg.InferenceURL)
	}
	return h
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
