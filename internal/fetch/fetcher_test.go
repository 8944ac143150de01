package fetch

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchHTTP(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		if _, err := w.Write(payload); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer srv.Close()

	data, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("fetched %x, want %x", data, payload)
	}
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewFetcher().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	if _, err := NewFetcher().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for empty body")
	}
}

func TestFetchDataURL(t *testing.T) {
	raw := []byte("fake-image-bytes")
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	data, err := NewFetcher().Fetch(context.Background(), dataURL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != string(raw) {
		t.Errorf("decoded %q, want %q", data, raw)
	}
}

func TestFetchMalformedDataURL(t *testing.T) {
	if _, err := NewFetcher().Fetch(context.Background(), "data:image/png;base64"); err == nil {
		t.Fatal("expected error for data URL without payload")
	}
}
