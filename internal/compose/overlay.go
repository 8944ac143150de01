package compose

import (
	"image"

	"github.com/disintegration/imaging"
)

// Overlay blends an AI-generated heatmap over a standardized frame. The
// heatmap is rescaled to cover the base exactly, then alpha-blended at the
// given opacity (0 leaves the base untouched, 1 replaces it).
func Overlay(base image.Image, heatmap image.Image, opacity float64) *image.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}

	b := base.Bounds()
	scaled := imaging.Resize(heatmap, b.Dx(), b.Dy(), imaging.Lanczos)
	return imaging.Overlay(base, scaled, b.Min, opacity)
}
