// Package monooled drives monochrome OLED panels on an I²C bus.
//
// The driver keeps a 1-bit frame buffer mirroring the controller RAM, applies
// screen rotation, tracks the rectangle changed since the last flush and sends
// only that rectangle.
//
// See the examples for how to use this package.
package monooled

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"

	"github.com/flavioheleno/monooled/image1bit"
)

// Controller commands understood by virtually every monochrome OLED
// controller.
const (
	CmdSetContrast   = 0x81
	CmdNormalDisplay = 0xA6
	CmdInvertDisplay = 0xA7
	CmdDisplayOff    = 0xAE
	CmdDisplayOn     = 0xAF
)

// MaxDim is the largest accepted panel width or height.
const MaxDim = 1<<15 - 1

var (
	// ErrAlloc is returned by Init when the frame buffer cannot be allocated.
	ErrAlloc = image1bit.ErrAlloc
	// ErrBus wraps every failed bus write.
	ErrBus            = errors.New("monooled: bus write failed")
	ErrHalted         = errors.New("monooled: halted")
	ErrNotInitialized = errors.New("monooled: not initialized")
	ErrWindow         = errors.New("monooled: flush window outside controller range")
	ErrInvalidOpts    = errors.New("monooled: invalid options")
)

// PixelValue is the operation applied by SetPixel.
type PixelValue uint8

const (
	Off    PixelValue = iota // Clear the pixel
	On                       // Light the pixel
	Toggle                   // Invert the pixel
)

// Opts is the configuration for the display.
type Opts struct {
	// Panel dimensions in pixels, unrotated.
	W int
	H int

	// I²C address, used by NewI2C only. 0 selects 0x3C.
	Addr uint16

	// Initial rotation, can be changed later with SetRotation.
	Rotation Rotation

	// Optional hardware reset pin, pulsed by Init(true).
	RST gpio.PinIO

	// Controller bring-up commands sent by Init, one command frame per byte.
	InitSequence []byte

	// Flusher transmits the dirty rectangle. nil selects HorizontalAddressing.
	Flusher Flusher

	// Logger receives debug logs of every transfer. nil disables logging.
	Logger *zap.Logger
}

// DefaultOpts is a 128x64 panel at the conventional address.
var DefaultOpts = Opts{
	W:    128,
	H:    64,
	Addr: 0x3C,
}

// Dev is the device handle for a monochrome OLED display.
//
// Dev is not safe for concurrent use.
type Dev struct {
	// Communication
	c      conn.Conn
	framer *Framer
	rst    gpio.PinIO
	log    *zap.Logger

	// Physical panel size
	w, h int

	// Frame buffer, nil until Init
	buf *image1bit.VerticalLSB

	// Change tracking, in physical coordinates
	dirty Region

	rotation Rotation
	initSeq  []byte
	flusher  Flusher

	// State
	halted bool
}

// NewI2C returns a Dev talking to the display at opts.Addr on bus b.
//
// opts can be nil to use DefaultOpts. Init must be called before drawing.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Addr == 0 {
		o.Addr = DefaultOpts.Addr
	}
	return New(&i2c.Dev{Bus: b, Addr: o.Addr}, &o)
}

// New returns a Dev writing frames to c. No bus traffic happens until Init.
//
// opts can be nil to use DefaultOpts.
func New(c conn.Conn, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if c == nil {
		return nil, errors.Wrap(ErrInvalidOpts, "nil connection")
	}
	if opts.W <= 0 || opts.W > MaxDim || opts.H <= 0 || opts.H > MaxDim {
		return nil, errors.Wrapf(ErrInvalidOpts, "size %dx%d", opts.W, opts.H)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	flusher := opts.Flusher
	if flusher == nil {
		flusher = HorizontalAddressing{}
	}

	d := &Dev{
		c:        c,
		rst:      opts.RST,
		w:        opts.W,
		h:        opts.H,
		rotation: opts.Rotation & 3,
		initSeq:  append([]byte(nil), opts.InitSequence...),
		flusher:  flusher,
	}
	d.log = log.With(zap.String("dev", d.String()))
	d.framer = NewFramer(c, d.log)
	return d, nil
}

// Init allocates the frame buffer, optionally pulses the reset pin, clears
// the buffer and sends the init sequence. It must be called before drawing.
//
// When several displays share one reset pin, pass reset only for the first.
// Calling Init again keeps the existing buffer and wakes a halted display.
func (d *Dev) Init(reset bool) error {
	if d.buf == nil {
		buf, err := image1bit.Alloc(d.w, d.h)
		if err != nil {
			return err
		}
		d.buf = buf
	}

	if reset && d.rst != nil {
		if err := d.resetPulse(); err != nil {
			return err
		}
	}

	d.Clear()

	if err := d.framer.SendCommands(d.initSeq); err != nil {
		return fmt.Errorf("monooled: init sequence: %w", err)
	}
	d.halted = false

	d.log.With(zap.Bool("reset", reset), zap.Int("buffer", len(d.buf.Pix))).Debug("initialized")
	return nil
}

// resetPulse drives the reset pin high, low, then high again.
func (d *Dev) resetPulse() error {
	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("monooled: failed to pull RST high: %w", err)
	}
	time.Sleep(time.Millisecond)

	if err := d.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("monooled: failed to pull RST low: %w", err)
	}
	time.Sleep(10 * time.Millisecond)

	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("monooled: failed to pull RST high: %w", err)
	}
	return nil
}

// Clear turns every pixel of the buffer off and marks the whole panel dirty.
// The display itself changes on the next Flush.
func (d *Dev) Clear() {
	if d.buf == nil {
		return
	}
	d.buf.Clear()
	d.dirty.ResetFull(d.w, d.h)
}

// SetPixel applies v to the pixel at logical (x, y).
//
// Coordinates outside the rotated panel are ignored. Only the buffer changes;
// call Flush to update the display.
func (d *Dev) SetPixel(x, y int, v PixelValue) {
	if d.buf == nil || !d.inBounds(x, y) {
		return
	}
	x, y = d.rotation.Map(x, y, d.w, d.h)
	d.dirty.Expand(x, y)

	switch v {
	case On:
		d.buf.SetBit(x, y, true)
	case Off:
		d.buf.SetBit(x, y, false)
	case Toggle:
		d.buf.ToggleBit(x, y)
	}
}

// Pixel reports whether the pixel at logical (x, y) is lit in the buffer.
// Out of bounds pixels read as unlit.
func (d *Dev) Pixel(x, y int) bool {
	if d.buf == nil || !d.inBounds(x, y) {
		return false
	}
	x, y = d.rotation.Map(x, y, d.w, d.h)
	return d.buf.BitAt(x, y)
}

func (d *Dev) inBounds(x, y int) bool {
	w, h := d.rotation.Size(d.w, d.h)
	return x >= 0 && x < w && y >= 0 && y < h
}

// Buffer returns the packed frame buffer, column-major with 8 vertical pixels
// per byte. It is nil before Init. Writes through the slice are not tracked.
func (d *Dev) Buffer() []byte {
	if d.buf == nil {
		return nil
	}
	return d.buf.Pix
}

// Dirty returns the physical rectangle waiting to be flushed. ok is false
// when nothing is pending.
func (d *Dev) Dirty() (r image.Rectangle, ok bool) {
	r = d.dirty.Rect()
	return r, !r.Empty()
}

// Flush sends the dirty rectangle to the display.
//
// On failure the rectangle stays pending, so calling Flush again retries the
// same transfer.
func (d *Dev) Flush() error {
	if d.halted {
		return ErrHalted
	}
	if d.buf == nil {
		return ErrNotInitialized
	}

	r := d.dirty.Rect()
	if r.Empty() {
		return nil
	}

	if err := d.flusher.Flush(d.framer, d.buf, r); err != nil {
		d.log.With(zap.Stringer("rect", r), zap.Error(err)).Warn("flush failed")
		return err
	}
	d.dirty.ResetEmpty()

	d.log.With(zap.Stringer("rect", r)).Debug("flushed")
	return nil
}

// SetContrast sets the display contrast. Most controllers accept 0 to 0x7F
// or 0xFF; the level is sent as is.
func (d *Dev) SetContrast(level byte) error {
	if d.halted {
		return ErrHalted
	}
	return d.framer.SendCommands([]byte{CmdSetContrast, level})
}

// Invert inverts the display colors (black becomes white and vice versa).
// It takes effect immediately and leaves the buffer untouched.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return ErrHalted
	}
	return d.framer.SendCommand(lo.Ternary[byte](invert, CmdInvertDisplay, CmdNormalDisplay))
}

// SetRotation changes how later logical coordinates map onto the panel.
// Pixels already in the buffer are not moved.
func (d *Dev) SetRotation(r Rotation) {
	d.rotation = r & 3
}

// Rotation returns the current rotation.
func (d *Dev) Rotation() Rotation {
	return d.rotation
}

// Halt powers off the display.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	d.log.Debug("halt")
	return d.framer.SendCommand(CmdDisplayOff)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("monooled.Dev{%s, %dx%d}", d.c, d.w, d.h)
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. It is the logical size, swapped when the
// display is rotated by 90° or 270°.
func (d *Dev) Bounds() image.Rectangle {
	w, h := d.rotation.Size(d.w, d.h)
	return image.Rect(0, 0, w, h)
}

// At returns the buffered color at logical (x, y).
func (d *Dev) At(x, y int) color.Color {
	return image1bit.Bit(d.Pixel(x, y))
}

// Set lights the pixel at logical (x, y) when c converts to image1bit.On and
// clears it otherwise. It makes Dev usable as a draw.Image.
func (d *Dev) Set(x, y int, c color.Color) {
	bit := image1bit.BitModel.Convert(c).(image1bit.Bit)
	d.SetPixel(x, y, lo.Ternary(bool(bit), On, Off))
}

// Draw implements display.Drawer.
//
// It renders src into the buffer in logical coordinates and flushes the
// changed rectangle synchronously.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	if d.buf == nil {
		return ErrNotInitialized
	}

	r = r.Intersect(d.Bounds())
	if r.Empty() {
		return nil
	}
	draw.Draw(d, r, src, sp, draw.Src)
	return d.Flush()
}

var _ display.Drawer = &Dev{}
