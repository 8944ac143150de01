package standardize

import "fmt"

// DecodeError means the underlying decoder rejected the input: corrupt
// bytes, an unsupported transfer syntax, or a failed remote fetch. It is
// terminal for the invocation and never retried.
type DecodeError struct {
	Stage string // "dicom", "raster" or "fetch"
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s decode failed: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RenderError means compositing or encoding failed after a successful
// decode. Like DecodeError it is all-or-nothing: no partial frame is
// ever returned alongside it.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
