package storage

import (
	"testing"
	"time"

	"github.com/radlens/scanprep/internal/models"
)

func TestScanStoreCRUD(t *testing.T) {
	store := New()

	if _, exists := store.Get("missing"); exists {
		t.Error("empty store should not report sessions")
	}

	scan := &models.ScanSession{
		ID:        "scan-1",
		Filename:  "chest.dcm",
		Format:    "dicom",
		CreatedAt: time.Now(),
	}
	store.Set(scan.ID, scan)

	got, exists := store.Get("scan-1")
	if !exists {
		t.Fatal("stored session not found")
	}
	if got.Filename != "chest.dcm" {
		t.Errorf("Filename = %q, want %q", got.Filename, "chest.dcm")
	}

	all := store.GetAll()
	if len(all) != 1 {
		t.Errorf("GetAll returned %d sessions, want 1", len(all))
	}

	store.Delete("scan-1")
	if _, exists := store.Get("scan-1"); exists {
		t.Error("deleted session still present")
	}
}

func TestGetAllReturnsCopy(t *testing.T) {
	store := New()
	store.Set("scan-1", &models.ScanSession{ID: "scan-1"})

	all := store.GetAll()
	delete(all, "scan-1")

	if _, exists := store.Get("scan-1"); !exists {
		t.Error("mutating the GetAll result must not affect the store")
	}
}
