// Package compose produces the final fixed-size frames: letterboxed
// standardization output and heatmap overlays.
package compose

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/radlens/scanprep/internal/render"
)

// FrameSize mirrors render.FrameSize so callers composing raster sources
// do not need to import the DICOM render path.
const FrameSize = render.FrameSize

// Letterbox scales src uniformly into a FrameSize x FrameSize frame,
// centered along whichever axis has slack, with the remainder opaque
// black. The aspect ratio is always preserved; the scaled dimensions are
// rounded, so centering margins match within a pixel.
func Letterbox(src image.Image) *image.NRGBA {
	frame := imaging.New(FrameSize, FrameSize, color.NRGBA{0, 0, 0, 255})

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return frame
	}

	drawW, drawH := contentSize(w, h)
	scaled := imaging.Resize(src, drawW, drawH, imaging.Lanczos)
	return imaging.PasteCenter(frame, scaled)
}

// contentSize computes the scaled content dimensions for a w x h source.
func contentSize(w, h int) (int, int) {
	aspect := float64(w) / float64(h)
	if aspect > 1 {
		drawH := int(math.Round(FrameSize / aspect))
		if drawH < 1 {
			drawH = 1
		}
		return FrameSize, drawH
	}
	drawW := int(math.Round(FrameSize * aspect))
	if drawW < 1 {
		drawW = 1
	}
	return drawW, FrameSize
}
