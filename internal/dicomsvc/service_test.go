package dicomsvc

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"
)

func TestDecodeRejectsGarbage(t *testing.T) {
	data := make([]byte, 256)
	copy(data[128:], "DICM")
	// Valid marker but no meta group or elements behind it.

	_, err := Default().Decode(context.Background(), bytes.NewReader(data), int64(len(data)))
	if err == nil {
		t.Fatal("expected decode error for truncated dicom stream")
	}
}

func TestDecodeHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Default().Decode(ctx, bytes.NewReader(nil), 0)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestInitIsIdempotent(t *testing.T) {
	s := &Service{}
	s.Init()
	first := s.streaming
	s.Init()
	if s.streaming != first {
		t.Errorf("Init changed streaming mode on second call: %v -> %v", first, s.streaming)
	}
}

func TestSurfaceFromImage(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.SetGray16(x, 0, color.Gray16{Y: 0})
		img.SetGray16(x, 1, color.Gray16{Y: 0xffff})
	}

	s, err := SurfaceFromImage(img)
	if err != nil {
		t.Fatalf("SurfaceFromImage failed: %v", err)
	}
	if s.Width != 4 || s.Height != 2 {
		t.Fatalf("unexpected surface dimensions %dx%d", s.Width, s.Height)
	}
	if got := s.Pixels[0]; got != 0 {
		t.Errorf("expected min intensity to map to 0, got %d", got)
	}
	if got := s.Pixels[4]; got != 255 {
		t.Errorf("expected max intensity to map to 255, got %d", got)
	}
}

func TestSurfaceFromImageUniformIntensity(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.SetGray16(x, y, color.Gray16{Y: 0x8000})
		}
	}

	s, err := SurfaceFromImage(img)
	if err != nil {
		t.Fatalf("SurfaceFromImage failed: %v", err)
	}
	for i, p := range s.Pixels {
		if p != 0 {
			t.Fatalf("uniform frame should normalize to zero, pixel %d = %d", i, p)
		}
	}
}
