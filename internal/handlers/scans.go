package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/radlens/scanprep/internal/compose"
	"github.com/radlens/scanprep/internal/encode"
	"github.com/radlens/scanprep/internal/models"
	"github.com/radlens/scanprep/internal/standardize"
)

// heatmapOpacity is the blend strength for inference localization maps.
const heatmapOpacity = 0.4

// HandleScans serves GET (list) and POST (upload) on /api/scans.
func (h *Handler) HandleScans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		scans := h.scanStore.GetAll()
		scanList := make([]*models.ScanSession, 0, len(scans))
		for _, scan := range scans {
			scanList = append(scanList, scan)
		}
		h.writeJSON(w, scanList)
	case http.MethodPost:
		contentType := r.Header.Get("Content-Type")
		if strings.Contains(contentType, "application/json") {
			h.handleURLUpload(w, r)
			return
		}
		h.handleFileUpload(w, r)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleScanDetail serves GET and DELETE on /api/scans/{id}.
func (h *Handler) HandleScanDetail(w http.ResponseWriter, r *http.Request) {
	scanID := strings.TrimPrefix(r.URL.Path, "/api/scans/")

	scan, exists := h.scanStore.Get(scanID)
	if !exists {
		h.writeError(w, "Scan not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, scan)
	case http.MethodDelete:
		h.scanStore.Delete(scanID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleURLUpload(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ImageURL string `json:"image_url"`
		IsDicom  bool   `json:"is_dicom"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.ImageURL == "" {
		h.writeError(w, "image_url is required", http.StatusBadRequest)
		return
	}

	source := standardize.URLSource(request.ImageURL)
	scan, err := h.processScan(r, source, standardize.Options{DicomHint: request.IsDicom})
	if err != nil {
		h.writeStandardizeError(w, err)
		return
	}
	scan.SourceURL = request.ImageURL
	scan.SourceKind = "url"
	h.scanStore.Set(scan.ID, scan)

	h.writeJSON(w, scan)
}

func (h *Handler) handleFileUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("files")
	if err != nil {
		file, header, err = r.FormFile("file")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, h.uploadLimit))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if int64(len(fileData)) >= h.uploadLimit {
		h.writeError(w, "File too large", http.StatusBadRequest)
		return
	}

	isDicom := r.FormValue("is_dicom") == "true"

	source := standardize.FileSource(header.Filename, header.Header.Get("Content-Type"), fileData)
	scan, err := h.processScan(r, source, standardize.Options{DicomHint: isDicom})
	if err != nil {
		h.writeStandardizeError(w, err)
		return
	}
	scan.Filename = header.Filename
	scan.SourceKind = "file"
	h.scanStore.Set(scan.ID, scan)

	h.writeJSON(w, scan)
}

// processScan standardizes the source and, when an inference backend is
// configured, records its findings and heatmap overlay on the session.
func (h *Handler) processScan(r *http.Request, source standardize.Source, opts standardize.Options) (*models.ScanSession, error) {
	frame, err := h.pipeline.Standardize(r.Context(), source, opts)
	if err != nil {
		return nil, err
	}

	scan := &models.ScanSession{
		ID:           uuid.NewString(),
		Format:       frame.Format.String(),
		FrameDataURL: frame.DataURL(),
		CreatedAt:    time.Now(),
	}

	if h.inference != nil {
		h.attachFindings(r, scan, frame)
	}

	slog.Info("Scan standardized", "scan_id", scan.ID, "format", scan.Format)
	return scan, nil
}

// attachFindings is best-effort: an inference failure leaves the session
// standardized but unannotated.
func (h *Handler) attachFindings(r *http.Request, scan *models.ScanSession, frame *standardize.OutputFrame) {
	result, err := h.inference.Analyze(r.Context(), frame.Data)
	if err != nil {
		slog.Error("Inference request failed", "scan_id", scan.ID, "error", err)
		return
	}
	scan.Prediction = result.Prediction
	scan.Confidence = result.Confidence

	heatmapPNG, err := result.HeatmapPNG()
	if err != nil || heatmapPNG == nil {
		if err != nil {
			slog.Warn("Discarding malformed heatmap", "scan_id", scan.ID, "error", err)
		}
		return
	}

	heatmap, err := png.Decode(bytes.NewReader(heatmapPNG))
	if err != nil {
		slog.Warn("Discarding undecodable heatmap", "scan_id", scan.ID, "error", err)
		return
	}

	overlay := compose.Overlay(frame.Image, heatmap, heatmapOpacity)
	overlayPNG, err := encode.PNG(overlay)
	if err != nil {
		slog.Warn("Failed to encode heatmap overlay", "scan_id", scan.ID, "error", err)
		return
	}
	scan.HeatmapURL = encode.DataURL(encode.MIMEPNG, overlayPNG)
}

func (h *Handler) writeStandardizeError(w http.ResponseWriter, err error) {
	var decodeErr *standardize.DecodeError
	if errors.As(err, &decodeErr) {
		h.writeError(w, "Could not process this image: "+decodeErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	h.writeError(w, "Failed to process image: "+err.Error(), http.StatusInternalServerError)
}
