package standardize

import (
	"fmt"
	"os"
)

// tempSpool hands file-backed DICOM bytes to the decode service through a
// temporary file handle. The handle must be released on every exit path;
// a failed release is logged as a cleanup warning, never surfaced.
type tempSpool struct {
	f    *os.File
	size int64
}

func newTempSpool(data []byte) (*tempSpool, error) {
	f, err := os.CreateTemp("", "scanprep-dicom-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write spool file: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to rewind spool file: %w", err)
	}
	return &tempSpool{f: f, size: int64(len(data))}, nil
}

func (s *tempSpool) Reader() *os.File { return s.f }

func (s *tempSpool) Size() int64 { return s.size }

// Release closes and removes the spool handle.
func (s *tempSpool) Release() error {
	closeErr := s.f.Close()
	removeErr := os.Remove(s.f.Name())
	if closeErr != nil {
		return closeErr
	}
	return removeErr
}
