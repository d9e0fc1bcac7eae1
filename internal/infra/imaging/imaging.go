package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	DefaultMaxWidth = 1280
	DefaultQuality  = 80

	ContentTypeWebP = "image/webp"
)

var ErrUnsupported = errors.New("unsupported image format")

// WebPEncoder normalizes uploads: downscale to MaxWidth, re-encode as WebP.
type WebPEncoder struct {
	MaxWidth int
	Quality  float32
}

func NewWebPEncoder() *WebPEncoder {
	return &WebPEncoder{MaxWidth: DefaultMaxWidth, Quality: DefaultQuality}
}

func (e *WebPEncoder) Encode(body []byte) ([]byte, string, error) {
	src, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupported
		}
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	img := e.resize(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: e.Quality}); err != nil {
		return nil, "", fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), ContentTypeWebP, nil
}

func (e *WebPEncoder) resize(src image.Image) image.Image {
	b := src.Bounds()
	if e.MaxWidth <= 0 || b.Dx() <= e.MaxWidth {
		return src
	}

	h := b.Dy() * e.MaxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, e.MaxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("webp", "RIFF????WEBPVP8", webp.Decode, webp.DecodeConfig)
}
