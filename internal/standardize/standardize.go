// Package standardize turns arbitrary uploaded chest X-ray images (raster
// or DICOM, bytes or URL) into fixed 540x540 letterboxed frames ready for
// preview and inference upload.
package standardize

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/radlens/scanprep/internal/compose"
	"github.com/radlens/scanprep/internal/dicomsvc"
	"github.com/radlens/scanprep/internal/encode"
	"github.com/radlens/scanprep/internal/fetch"
	"github.com/radlens/scanprep/internal/render"
	"github.com/radlens/scanprep/internal/sniff"
)

// Options tune a single Standardize invocation.
type Options struct {
	// DicomHint forces the DICOM path regardless of byte sniffing. Used
	// when the caller has already classified the source itself, and for
	// bare URLs flagged as DICOM.
	DicomHint bool

	// Format selects the output encoding: encode.MIMEPNG (default) or
	// encode.MIMEJPEG. DICOM-originated frames are always PNG.
	Format string

	// JPEGQuality applies when Format is JPEG. Values below the package
	// floor are clamped up.
	JPEGQuality int
}

// OutputFrame is the standardized product: always exactly 540x540.
type OutputFrame struct {
	Width  int
	Height int
	MIME   string
	Data   []byte

	// Format records which decode path produced the frame.
	Format sniff.Format

	// Image is the decoded frame, kept for in-process consumers such as
	// the heatmap overlay. Data is authoritative for transport.
	Image image.Image
}

// DataURL returns the frame as a data URL for inline display.
func (f *OutputFrame) DataURL() string {
	return encode.DataURL(f.MIME, f.Data)
}

// Pipeline standardizes uploads. A single Pipeline is safe for concurrent
// use: every invocation owns its spool handle, canvas and buffers.
type Pipeline struct {
	svc       *dicomsvc.Service
	fetcher   *fetch.Fetcher
	flushWait time.Duration
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithFlushWait overrides the bounded wait for the DICOM renderer flush.
func WithFlushWait(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		if d > 0 {
			p.flushWait = d
		}
	}
}

// WithFetcher overrides the remote fetcher.
func WithFetcher(f *fetch.Fetcher) PipelineOption {
	return func(p *Pipeline) { p.fetcher = f }
}

// NewPipeline builds a pipeline backed by the process-wide decode service.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		svc:       dicomsvc.Default(),
		fetcher:   fetch.NewFetcher(),
		flushWait: render.DefaultFlushWait,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Standardize is the pipeline entry point. On success the frame is always
// exactly 540x540; on failure nothing partial is returned.
func (p *Pipeline) Standardize(ctx context.Context, src Source, opts Options) (*OutputFrame, error) {
	data, err := p.resolveBytes(ctx, src)
	if err != nil {
		return nil, err
	}

	format := sniff.FormatRaster
	if opts.DicomHint {
		format = sniff.FormatDicom
	} else {
		format = sniff.Detect(data)
	}

	var frame image.Image
	if format == sniff.FormatDicom {
		frame, err = p.renderDicom(ctx, data)
	} else {
		frame, err = p.renderRaster(data)
	}
	if err != nil {
		return nil, err
	}

	return p.serialize(frame, format, opts)
}

func (p *Pipeline) resolveBytes(ctx context.Context, src Source) ([]byte, error) {
	switch src.Kind {
	case SourceURL:
		data, err := p.fetcher.Fetch(ctx, src.URL)
		if err != nil {
			return nil, &DecodeError{Stage: "fetch", Err: err}
		}
		return data, nil
	default:
		if len(src.Data) == 0 {
			return nil, &DecodeError{Stage: "fetch", Err: fmt.Errorf("empty file source")}
		}
		return src.Data, nil
	}
}

// renderDicom runs the primary canvas renderer and falls back to direct
// pixel compositing when the renderer never produces a valid buffer.
func (p *Pipeline) renderDicom(ctx context.Context, data []byte) (image.Image, error) {
	spool, err := newTempSpool(data)
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	defer func() {
		if err := spool.Release(); err != nil {
			slog.Warn("failed to release dicom spool handle", "error", err)
		}
	}()

	surface, err := p.svc.Decode(ctx, spool.Reader(), spool.Size())
	if err != nil {
		return nil, &DecodeError{Stage: "dicom", Err: err}
	}

	canvas := render.NewCanvas()
	defer func() {
		if err := canvas.Disable(); err != nil {
			slog.Warn("failed to disable render canvas", "error", err)
		}
	}()

	render.Render(surface, canvas)
	readback, ok := render.ReadBack(canvas, p.flushWait)
	if !ok {
		slog.Warn("dicom renderer produced no valid buffer, using direct pixel fallback",
			"width", surface.Width, "height", surface.Height)
		return render.FallbackCompose(surface), nil
	}

	return compose.Letterbox(readback), nil
}

func (p *Pipeline) renderRaster(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Stage: "raster", Err: err}
	}
	return compose.Letterbox(img), nil
}

func (p *Pipeline) serialize(frame image.Image, format sniff.Format, opts Options) (*OutputFrame, error) {
	mime := encode.MIMEPNG
	if opts.Format == encode.MIMEJPEG && format != sniff.FormatDicom {
		mime = encode.MIMEJPEG
	}

	var (
		data []byte
		err  error
	)
	if mime == encode.MIMEJPEG {
		data, err = encode.JPEG(frame, opts.JPEGQuality)
	} else {
		data, err = encode.PNG(frame)
	}
	if err != nil {
		return nil, &RenderError{Err: err}
	}

	b := frame.Bounds()
	return &OutputFrame{
		Width:  b.Dx(),
		Height: b.Dy(),
		MIME:   mime,
		Data:   data,
		Format: format,
		Image:  frame,
	}, nil
}
