// Package dicomsvc wraps the DICOM toolkit behind a process-wide decode
// service. The service is lazily initialized exactly once and reused by
// every pipeline invocation.
package dicomsvc

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"sync"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Surface is the result of decoding a DICOM object: a single grayscale
// intensity plane, normalized to 8 bits, in row-major order.
type Surface struct {
	Width  int
	Height int
	Pixels []uint8
}

// Service decodes DICOM byte streams into Surfaces. A single Service is
// shared process-wide; decoding itself holds no mutable service state, so
// concurrent Decode calls are safe once Init has run.
type Service struct {
	initOnce sync.Once

	// streaming consumes pixel frames from the parser's frame channel on a
	// background goroutine. It is disabled by default: frames are collected
	// synchronously from the parsed dataset instead, trading throughput for
	// deterministic behavior across environments.
	streaming bool
}

var defaultService = &Service{}

// Default returns the process-wide decode service.
func Default() *Service {
	return defaultService
}

// Init prepares the service for use. It is idempotent; callers do not need
// to invoke it directly since Decode initializes lazily. An init problem is
// logged and demotes the service to synchronous frame collection rather
// than failing decode attempts outright.
func (s *Service) Init() {
	s.initOnce.Do(func() {
		if err := s.enableStreaming(); err != nil {
			slog.Warn("dicom decode service init degraded, frame streaming disabled", "error", err)
			s.streaming = false
			return
		}
		slog.Debug("dicom decode service initialized", "streaming", s.streaming)
	})
}

// enableStreaming would turn on background frame-channel consumption.
// Streaming is kept off for now: synchronous collection is deterministic
// and the decode latency difference is irrelevant at single-upload volume.
func (s *Service) enableStreaming() error {
	s.streaming = false
	return nil
}

// Decode parses a DICOM byte stream and returns its first pixel frame as a
// grayscale Surface.
func (s *Service) Decode(ctx context.Context, r io.Reader, size int64) (*Surface, error) {
	s.Init()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var frames []*frame.Frame
	if s.streaming {
		frameChan := make(chan *frame.Frame, 1)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for f := range frameChan {
				frames = append(frames, f)
			}
		}()
		if _, err := dicom.Parse(r, size, frameChan); err != nil {
			<-done
			return nil, fmt.Errorf("failed to parse dicom stream: %w", err)
		}
		<-done
	} else {
		ds, err := dicom.Parse(r, size, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dicom stream: %w", err)
		}
		frames, err = datasetFrames(&ds)
		if err != nil {
			return nil, err
		}
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("dicom object contains no pixel frames")
	}

	img, err := frames[0].GetImage()
	if err != nil {
		return nil, fmt.Errorf("failed to render dicom frame: %w", err)
	}

	return SurfaceFromImage(img)
}

func datasetFrames(ds *dicom.Dataset) ([]*frame.Frame, error) {
	el, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("dicom object has no pixel data: %w", err)
	}
	info, ok := el.Value.GetValue().(dicom.PixelDataInfo)
	if !ok {
		return nil, fmt.Errorf("unexpected pixel data value type %T", el.Value.GetValue())
	}
	return info.Frames, nil
}

// SurfaceFromImage flattens a decoded frame into an 8-bit intensity plane.
// Source intensities are normalized over their observed range so that 10,
// 12 and 16 bit acquisitions all land on a comparable display scale.
func SurfaceFromImage(img image.Image) (*Surface, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("decoded frame has invalid dimensions %dx%d", w, h)
	}

	gray := make([]uint16, 0, w*h)
	minV, maxV := uint16(0xffff), uint16(0)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y
			gray = append(gray, v)
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}

	pixels := make([]uint8, len(gray))
	if maxV > minV {
		span := float64(maxV - minV)
		for i, v := range gray {
			pixels[i] = uint8(float64(v-minV) / span * 255)
		}
	}

	return &Surface{Width: w, Height: h, Pixels: pixels}, nil
}
