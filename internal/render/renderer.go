// Package render drives the DICOM-path rendering: an off-screen canvas
// primary renderer plus a direct-pixel fallback compositor for renders
// that never produce a valid buffer.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/radlens/scanprep/internal/dicomsvc"
)

// FrameSize is the fixed edge length of the working drawable and of every
// output frame.
const FrameSize = 540

// DefaultFlushWait bounds how long ReadBack waits for the renderer to
// flush. 500ms has been plenty in practice; it is a tunable, not a
// contract.
const DefaultFlushWait = 500 * time.Millisecond

const pollInterval = 10 * time.Millisecond

// Render draws the surface into the canvas at FrameSize x FrameSize,
// scaled to fit and centered on black. Completion is asynchronous; pair
// with ReadBack.
func Render(surface *dicomsvc.Surface, canvas *Canvas) {
	go func() {
		canvas.flush(drawSurface(surface))
	}()
}

// ReadBack polls the canvas until its backing buffer reports nonzero
// dimensions, waiting at most wait. A false return is the designed
// degraded-mode handoff to FallbackCompose, not an error.
func ReadBack(canvas *Canvas, wait time.Duration) (*image.RGBA, bool) {
	deadline := time.Now().Add(wait)
	for {
		if img := canvas.Snapshot(); img != nil {
			b := img.Bounds()
			if b.Dx() > 0 && b.Dy() > 0 {
				return img, true
			}
		}
		if time.Now().After(deadline) {
			return nil, false
		}
		time.Sleep(pollInterval)
	}
}

func drawSurface(s *dicomsvc.Surface) *image.RGBA {
	if s == nil || s.Width <= 0 || s.Height <= 0 || len(s.Pixels) < s.Width*s.Height {
		return nil
	}

	src := image.NewGray(image.Rect(0, 0, s.Width, s.Height))
	copy(src.Pix, s.Pixels[:s.Width*s.Height])

	dst := image.NewRGBA(image.Rect(0, 0, FrameSize, FrameSize))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	fit := fitRect(s.Width, s.Height)
	xdraw.CatmullRom.Scale(dst, fit, src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// fitRect scales (w,h) uniformly into the frame and centers the slack axis.
func fitRect(w, h int) image.Rectangle {
	drawW, drawH := FrameSize, FrameSize
	if w > h {
		drawH = h * FrameSize / w
	} else if h > w {
		drawW = w * FrameSize / h
	}
	x0 := (FrameSize - drawW) / 2
	y0 := (FrameSize - drawH) / 2
	return image.Rect(x0, y0, x0+drawW, y0+drawH)
}
