package domain

import "image"

// Quadrant identifies one region of a 2x2 composite grid.
type Quadrant int

// Quadrants in output order. The order is fixed: output index 1 is the
// top-left region, 4 the bottom-right.
const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

// Quadrants lists all quadrants in output order.
var Quadrants = [4]Quadrant{TopLeft, TopRight, BottomLeft, BottomRight}

// Index returns the 1-based index used in output file names.
func (q Quadrant) Index() int {
	return int(q) + 1
}

// String returns a human-readable quadrant name.
func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// QuadrantRects returns the four crop regions of bounds in output order.
// The regions share edges at the integer midpoints, overlap nowhere and
// exactly tile bounds. Both dimensions must be even; odd dimensions return
// ErrOddDimensions and the image is not split.
func QuadrantRects(bounds image.Rectangle) ([4]image.Rectangle, error) {
	w, h := bounds.Dx(), bounds.Dy()
	if w%2 != 0 || h%2 != 0 {
		return [4]image.Rectangle{}, ErrOddDimensions
	}
	halfW, halfH := w/2, h/2
	minX, minY := bounds.Min.X, bounds.Min.Y
	return [4]image.Rectangle{
		image.Rect(minX, minY, minX+halfW, minY+halfH),
		image.Rect(minX+halfW, minY, minX+w, minY+halfH),
		image.Rect(minX, minY+halfH, minX+halfW, minY+h),
		image.Rect(minX+halfW, minY+halfH, minX+w, minY+h),
	}, nil
}
