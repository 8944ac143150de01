package render

import (
	"image"

	"github.com/radlens/scanprep/internal/dicomsvc"
)

// FallbackCompose maps the decoded intensity plane straight into a
// FrameSize x FrameSize RGBA buffer, bypassing the canvas renderer.
//
// Unlike the primary path, this scales each axis independently: a
// non-square source is stretched, not letterboxed. That asymmetry matches
// the shipped viewer's behavior and is kept until product decides
// otherwise.
func FallbackCompose(s *dicomsvc.Surface) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, FrameSize, FrameSize))

	// Opaque black everywhere first; unmapped pixels stay that way.
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i+3] = 0xff
	}

	if s == nil || s.Width <= 0 || s.Height <= 0 {
		return dst
	}

	for y := 0; y < FrameSize; y++ {
		srcY := y * s.Height / FrameSize
		if srcY >= s.Height {
			continue
		}
		for x := 0; x < FrameSize; x++ {
			srcX := x * s.Width / FrameSize
			if srcX >= s.Width {
				continue
			}
			idx := srcY*s.Width + srcX
			if idx >= len(s.Pixels) {
				continue
			}
			v := s.Pixels[idx]
			o := dst.PixOffset(x, y)
			dst.Pix[o] = v
			dst.Pix[o+1] = v
			dst.Pix[o+2] = v
			dst.Pix[o+3] = 0xff
		}
	}
	return dst
}
