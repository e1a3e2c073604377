package image1bit

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// MaxPixBytes caps the size of a single buffer handed out by Alloc.
const MaxPixBytes = 1 << 20

// ErrAlloc is returned by Alloc when the requested buffer cannot be provided.
var ErrAlloc = errors.New("image1bit: cannot allocate buffer")

// Bit is a 1-bit color: true is a lit pixel.
type Bit bool

const (
	Off = Bit(false)
	On  = Bit(true)
)

// RGBA implements color.Color.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit. Anything brighter than half scale
// is lit.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Same luma weights as the grayscale conversion in image/color.
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// VerticalLSB is a 1-bit image where each byte holds 8 vertical pixels,
// least significant bit on top.
type VerticalLSB struct {
	Pix    []byte          // Pixel data (8 vertical pixels per byte)
	Stride int             // Bytes per page, equal to the image width
	Rect   image.Rectangle // Image bounds
}

// Alloc returns a zeroed w x h image anchored at the origin.
//
// It fails with ErrAlloc instead of panicking when the size is not positive or
// the buffer would exceed MaxPixBytes; no partial image is returned.
func Alloc(w, h int) (*VerticalLSB, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrAlloc, "invalid size %dx%d", w, h)
	}
	pages := (h + 7) / 8
	if w > MaxPixBytes/pages {
		return nil, errors.Wrapf(ErrAlloc, "%dx%d needs more than %d bytes", w, h, MaxPixBytes)
	}
	return &VerticalLSB{
		Pix:    make([]byte, w*pages),
		Stride: w,
		Rect:   image.Rect(0, 0, w, h),
	}, nil
}

// NewVerticalLSB creates a new VerticalLSB image with the specified bounds.
// The height is rounded up to a multiple of 8 in the backing buffer.
func NewVerticalLSB(r image.Rectangle) *VerticalLSB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &VerticalLSB{Rect: r}
	}
	return &VerticalLSB{
		Pix:    make([]byte, w*((h+7)/8)),
		Stride: w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *VerticalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *VerticalLSB) Bounds() image.Rectangle {
	return p.Rect
}

// Opaque reports that every pixel is fully opaque.
func (p *VerticalLSB) Opaque() bool {
	return true
}

// At returns the color of the pixel at (x, y).
func (p *VerticalLSB) At(x, y int) color.Color {
	return Bit(p.BitAt(x, y))
}

// BitAt reports whether the pixel at (x, y) is lit. Out of bounds reads
// return false.
func (p *VerticalLSB) BitAt(x, y int) bool {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return false
	}
	offset, mask := p.pixOffset(x, y)
	return p.Pix[offset]&mask != 0
}

// Set sets the color of the pixel at (x, y).
func (p *VerticalLSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, bool(BitModel.Convert(c).(Bit)))
}

// SetBit lights or clears the pixel at (x, y). Out of bounds writes are
// ignored.
func (p *VerticalLSB) SetBit(x, y int, on bool) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if on {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// ToggleBit flips the pixel at (x, y). Out of bounds writes are ignored.
func (p *VerticalLSB) ToggleBit(x, y int) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	p.Pix[offset] ^= mask
}

// Clear turns every pixel off.
func (p *VerticalLSB) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0
	}
}

// Pages returns the number of 8-row bands in the image.
func (p *VerticalLSB) Pages() int {
	return (p.Rect.Dy() + 7) / 8
}

// Page returns the bytes of page between columns x1 and x2, both inclusive and
// relative to Rect.Min.X. The returned slice aliases Pix.
func (p *VerticalLSB) Page(page, x1, x2 int) []byte {
	start := page*p.Stride + x1
	return p.Pix[start : start+x2-x1+1]
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// Memory layout: byte x + (y/8)*stride, bit y%8 with bit 0 on top.
func (p *VerticalLSB) pixOffset(x, y int) (offset int, mask byte) {
	x -= p.Rect.Min.X
	y -= p.Rect.Min.Y
	offset = x + (y/8)*p.Stride
	mask = 1 << uint(y&7)
	return
}
