package monooled

import "image"

// Region is the bounding box of physical pixels changed since the last
// successful flush. Bounds are inclusive. It only grows until reset.
//
// The zero value has nothing pending.
type Region struct {
	x1, y1  int
	x2, y2  int
	pending bool
}

// Expand grows the region to include (x, y).
func (r *Region) Expand(x, y int) {
	if !r.pending {
		r.x1, r.y1, r.x2, r.y2 = x, y, x, y
		r.pending = true
		return
	}
	r.x1 = min(r.x1, x)
	r.y1 = min(r.y1, y)
	r.x2 = max(r.x2, x)
	r.y2 = max(r.y2, y)
}

// ResetFull marks the whole w x h panel as changed.
func (r *Region) ResetFull(w, h int) {
	r.x1, r.y1 = 0, 0
	r.x2, r.y2 = w-1, h-1
	r.pending = true
}

// ResetEmpty marks the region as having nothing pending.
func (r *Region) ResetEmpty() {
	*r = Region{}
}

// Bounds returns the inclusive bounds. ok is false when nothing is pending.
func (r *Region) Bounds() (x1, y1, x2, y2 int, ok bool) {
	if !r.pending {
		return 0, 0, 0, 0, false
	}
	return r.x1, r.y1, r.x2, r.y2, true
}

// Rect returns the region as a half-open rectangle, empty when nothing is
// pending.
func (r *Region) Rect() image.Rectangle {
	if !r.pending {
		return image.Rectangle{}
	}
	return image.Rect(r.x1, r.y1, r.x2+1, r.y2+1)
}
