// Package codec adapts the imaging library to the ImageCodec port.
package codec

import (
	"image"
	"io"

	"github.com/disintegration/imaging"

	// Registers webp with image.Decode; webp stays decode-only because the
	// imaging library cannot write it.
	_ "golang.org/x/image/webp"
)

// ImagingCodec implements ImageCodec on top of disintegration/imaging.
type ImagingCodec struct{}

// NewImagingCodec creates the codec adapter.
func NewImagingCodec() *ImagingCodec {
	return &ImagingCodec{}
}

// DecodeFile implements ImageCodec.
func (c *ImagingCodec) DecodeFile(path string) (image.Image, error) {
	return imaging.Open(path)
}

// Decode implements ImageCodec.
func (c *ImagingCodec) Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}

// Crop implements ImageCodec.
func (c *ImagingCodec) Crop(img image.Image, region image.Rectangle) image.Image {
	return imaging.Crop(img, region)
}

// Encode implements ImageCodec.
func (c *ImagingCodec) Encode(w io.Writer, img image.Image, formatExt string) error {
	format, err := imaging.FormatFromExtension(formatExt)
	if err != nil {
		return err
	}
	return imaging.Encode(w, img, format)
}

// CanEncode implements ImageCodec.
func (c *ImagingCodec) CanEncode(formatExt string) bool {
	_, err := imaging.FormatFromExtension(formatExt)
	return err == nil
}
