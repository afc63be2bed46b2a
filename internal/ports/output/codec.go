package output

import (
	"image"
	"io"
)

// ImageCodec defines the secondary port for image decode, crop and encode
// operations.
type ImageCodec interface {
	// DecodeFile decodes an image from the local filesystem.
	DecodeFile(path string) (image.Image, error)

	// Decode decodes an image from a stream.
	Decode(r io.Reader) (image.Image, error)

	// Crop extracts the given region as a new image.
	Crop(img image.Image, region image.Rectangle) image.Image

	// Encode writes the image to w in the format named by the extension
	// token, e.g. "png" or "jpg".
	Encode(w io.Writer, img image.Image, formatExt string) error

	// CanEncode reports whether the extension token names a format the
	// codec can write. Formats that are only decodable return false.
	CanEncode(formatExt string) bool
}
