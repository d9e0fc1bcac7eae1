package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, G: 20, B: 20, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestEncode_DownscalesWideImages(t *testing.T) {
	out, ct, err := NewWebPEncoder().Encode(pngOf(t, 2560, 400))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct != ContentTypeWebP {
		t.Errorf("expected %s, got %s", ContentTypeWebP, ct)
	}

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	if cfg.Width != 1280 || cfg.Height != 200 {
		t.Errorf("expected 1280x200, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestEncode_KeepsSmallImages(t *testing.T) {
	out, _, err := NewWebPEncoder().Encode(pngOf(t, 300, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 300 {
		t.Errorf("expected width 300, got %d", cfg.Width)
	}
}

func TestEncode_RejectsNonImages(t *testing.T) {
	_, _, err := NewWebPEncoder().Encode([]byte("%PDF-1.4 not an image"))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
