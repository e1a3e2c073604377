package monooled

import (
	"image"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/flavioheleno/monooled/image1bit"
)

// Addressing opcodes shared by the SSD1306 family.
const (
	setColumnAddr   = 0x21
	setPageAddr     = 0x22
	setPageStart    = 0xB0
	setLowColumn    = 0x00
	setHighColumn   = 0x10
	maxPageStartReg = 0x0F
)

// Flusher transmits the part of buf covered by r to one family of
// controllers. r is in physical coordinates, non-empty and inside buf.
type Flusher interface {
	Flush(f *Framer, buf *image1bit.VerticalLSB, r image.Rectangle) error
}

// FullFrame sends the whole buffer as one data frame regardless of the dirty
// rectangle. Use it with controllers whose RAM window is fixed by the init
// sequence.
type FullFrame struct{}

// Flush implements Flusher.
func (FullFrame) Flush(f *Framer, buf *image1bit.VerticalLSB, _ image.Rectangle) error {
	return f.SendData(buf.Pix)
}

// HorizontalAddressing sets a column/page window and streams the covering
// pages in a single data frame. This is the mode of the SSD1306 and SSD1309
// once the init sequence selects horizontal addressing (0x20, 0x00).
type HorizontalAddressing struct {
	// ColumnOffset is added to every column address, for panels that are
	// narrower than the controller RAM.
	ColumnOffset int
}

// Flush implements Flusher.
func (h HorizontalAddressing) Flush(f *Framer, buf *image1bit.VerticalLSB, r image.Rectangle) error {
	c1, c2, p1, p2 := window(r, h.ColumnOffset)
	if c1 < 0 || c2 > 0xFF || p2 > 0xFF {
		return errors.Wrapf(ErrWindow, "columns %d-%d, pages %d-%d", c1, c2, p1, p2)
	}

	cmds := []byte{
		setColumnAddr, byte(c1), byte(c2),
		setPageAddr, byte(p1), byte(p2),
	}
	if err := f.SendCommands(cmds); err != nil {
		return err
	}

	pages := make([][]byte, 0, p2-p1+1)
	for p := p1; p <= p2; p++ {
		pages = append(pages, buf.Page(p, r.Min.X, r.Max.X-1))
	}
	return f.SendData(lo.Flatten(pages))
}

// PageAddressing writes one page at a time, setting the page and start column
// before each. The SH1106 and SH1107 only support this mode.
type PageAddressing struct {
	// ColumnOffset is added to every column address. The SH1106 maps a
	// 128 column panel into 132 columns of RAM and needs 2.
	ColumnOffset int
}

// Flush implements Flusher.
func (pa PageAddressing) Flush(f *Framer, buf *image1bit.VerticalLSB, r image.Rectangle) error {
	c1, c2, p1, p2 := window(r, pa.ColumnOffset)
	if c1 < 0 || c2 > 0xFF || p2 > maxPageStartReg {
		return errors.Wrapf(ErrWindow, "columns %d-%d, pages %d-%d", c1, c2, p1, p2)
	}

	for p := p1; p <= p2; p++ {
		err := f.SendCommands([]byte{
			setPageStart | byte(p),
			setLowColumn | byte(c1&0x0F),
			setHighColumn | byte(c1>>4),
		})
		if err != nil {
			return err
		}
		if err := f.SendData(buf.Page(p, r.Min.X, r.Max.X-1)); err != nil {
			return err
		}
	}
	return nil
}

// window converts a pixel rectangle to inclusive column and page addresses.
func window(r image.Rectangle, offset int) (c1, c2, p1, p2 int) {
	return r.Min.X + offset, r.Max.X - 1 + offset, r.Min.Y / 8, (r.Max.Y - 1) / 8
}
