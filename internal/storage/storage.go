package storage

import (
	"sync"

	"github.com/radlens/scanprep/internal/models"
)

// ScanStore is an in-memory session store. Persistence is a deployment
// concern handled elsewhere; the service only needs per-process history.
type ScanStore struct {
	scans map[string]*models.ScanSession
	mu    sync.RWMutex
}

func New() *ScanStore {
	return &ScanStore{
		scans: make(map[string]*models.ScanSession),
	}
}

func (s *ScanStore) Get(scanID string) (*models.ScanSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scan, exists := s.scans[scanID]
	return scan, exists
}

func (s *ScanStore) Set(scanID string, scan *models.ScanSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans[scanID] = scan
}

func (s *ScanStore) GetAll() map[string]*models.ScanSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.ScanSession, len(s.scans))
	for k, v := range s.scans {
		result[k] = v
	}
	return result
}

func (s *ScanStore) Delete(scanID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scans, scanID)
}
