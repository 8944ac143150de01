package models

import "time"

// ScanSession tracks one uploaded chest X-ray through standardization and
// optional inference.
type ScanSession struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename,omitempty"`
	SourceURL    string    `json:"source_url,omitempty"`
	SourceKind   string    `json:"source_kind"`           // "file" or "url"
	Format       string    `json:"format"`                // "dicom" or "raster"
	FrameDataURL string    `json:"frame_data_url"`        // standardized 540x540 frame
	Prediction   string    `json:"prediction,omitempty"`  // inference result, when available
	Confidence   float64   `json:"confidence,omitempty"`  // inference confidence, 0-1
	HeatmapURL   string    `json:"heatmap_url,omitempty"` // overlay frame as data URL
	CreatedAt    time.Time `json:"created_at"`
}
