package inference

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnalyze(t *testing.T) {
	framePNG := []byte("fake-png-bytes")
	heatmap := base64.StdEncoding.EncodeToString([]byte("fake-heatmap"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/analyze" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Image string `json:"image"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("request body does not decode: %v", err)
		}
		decoded, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil || string(decoded) != string(framePNG) {
			t.Errorf("request image payload mismatch")
		}

		if err := json.NewEncoder(w).Encode(Result{
			Prediction: "pneumonia",
			Confidence: 0.93,
			Heatmap:    heatmap,
		}); err != nil {
			t.Errorf("encode failed: %v", err)
		}
	}))
	defer srv.Close()

	result, err := New(srv.URL).Analyze(context.Background(), framePNG)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Prediction != "pneumonia" {
		t.Errorf("Prediction = %q, want %q", result.Prediction, "pneumonia")
	}
	if result.Confidence != 0.93 {
		t.Errorf("Confidence = %v, want 0.93", result.Confidence)
	}

	heatmapBytes, err := result.HeatmapPNG()
	if err != nil {
		t.Fatalf("HeatmapPNG failed: %v", err)
	}
	if string(heatmapBytes) != "fake-heatmap" {
		t.Errorf("heatmap payload = %q", heatmapBytes)
	}
}

func TestAnalyzeNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Analyze(context.Background(), []byte("x")); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestHeatmapPNGEmpty(t *testing.T) {
	r := &Result{}
	data, err := r.HeatmapPNG()
	if err != nil {
		t.Fatalf("HeatmapPNG failed: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil heatmap for empty payload, got %d bytes", len(data))
	}
}
