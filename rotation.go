package monooled

import "fmt"

// Rotation is the screen orientation applied to logical coordinates.
type Rotation uint8

// Supported rotations, clockwise.
const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0°"
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	}
	return fmt.Sprintf("Rotation(%d)", uint8(r))
}

// Size returns the logical dimensions of a w x h panel under r.
func (r Rotation) Size(w, h int) (int, int) {
	if r == Rotate90 || r == Rotate270 {
		return h, w
	}
	return w, h
}

// Map converts logical (x, y) to physical coordinates on a w x h panel.
// Unknown rotations leave the point unchanged.
func (r Rotation) Map(x, y, w, h int) (int, int) {
	switch r {
	case Rotate90:
		x, y = y, x
		x = w - x - 1
	case Rotate180:
		x = w - x - 1
		y = h - y - 1
	case Rotate270:
		x, y = y, x
		y = h - y - 1
	}
	return x, y
}
