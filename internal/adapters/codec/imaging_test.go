package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/imagegrid/quadra/internal/domain"
)

// testImage builds a w x h image with one solid color per quadrant.
func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	colors := [4]color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := 0
			if x >= w/2 {
				idx = 1
			}
			if y >= h/2 {
				idx += 2
			}
			img.Set(x, y, colors[idx])
		}
	}
	return img
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := NewImagingCodec()
	src := testImage(8, 6)

	var buf bytes.Buffer
	if err := c.Encode(&buf, src, "png"); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := c.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got.Bounds().Dx() != 8 || got.Bounds().Dy() != 6 {
		t.Errorf("decoded bounds = %v, want 8x6", got.Bounds())
	}
}

func TestDecodeFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "codec-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	c := NewImagingCodec()
	path := filepath.Join(tmpDir, "grid.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := c.Encode(f, testImage(4, 4), "png"); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	_ = f.Close()

	img, err := c.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("decoded bounds = %v, want 4x4", img.Bounds())
	}

	if _, err := c.DecodeFile(filepath.Join(tmpDir, "missing.png")); err == nil {
		t.Error("DecodeFile() should fail for a missing file")
	}
}

func TestCrop(t *testing.T) {
	c := NewImagingCodec()
	src := testImage(8, 8)

	cropped := c.Crop(src, image.Rect(4, 0, 8, 4))

	if cropped.Bounds().Dx() != 4 || cropped.Bounds().Dy() != 4 {
		t.Fatalf("cropped bounds = %v, want 4x4", cropped.Bounds())
	}

	// Top-right quadrant of the test image is green.
	r, g, b, _ := cropped.At(cropped.Bounds().Min.X, cropped.Bounds().Min.Y).RGBA()
	if r != 0 || g != 0xffff || b != 0 {
		t.Errorf("cropped pixel = (%d, %d, %d), want pure green", r, g, b)
	}
}

func TestQuadrantsReassembleLosslessly(t *testing.T) {
	c := NewImagingCodec()
	src := testImage(8, 6)

	rects, err := domain.QuadrantRects(src.Bounds())
	if err != nil {
		t.Fatalf("QuadrantRects() error = %v", err)
	}

	reassembled := image.NewRGBA(src.Bounds())
	for _, rect := range rects {
		var buf bytes.Buffer
		if err := c.Encode(&buf, c.Crop(src, rect), "png"); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		quadrant, err := c.Decode(&buf)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		draw.Draw(reassembled, rect, quadrant, quadrant.Bounds().Min, draw.Src)
	}

	bounds := src.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if got, want := reassembled.RGBAAt(x, y), src.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCanEncode(t *testing.T) {
	c := NewImagingCodec()

	tests := []struct {
		ext  string
		want bool
	}{
		{"png", true},
		{"jpg", true},
		{"jpeg", true},
		{"gif", true},
		{"bmp", true},
		{"tiff", true},
		{"webp", false},
		{"svg", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := c.CanEncode(tt.ext); got != tt.want {
			t.Errorf("CanEncode(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	c := NewImagingCodec()

	var buf bytes.Buffer
	if err := c.Encode(&buf, testImage(2, 2), "webp"); err == nil {
		t.Error("Encode() should fail for webp output")
	}
}
