package transport

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"periph.io/x/conn/v3"
)

// Capture is a conn.Conn that logs every write to a file instead of a bus.
type Capture struct {
	fs   afero.Fs
	path string
	addr uint16
	f    afero.File
}

// NewCapture creates, or truncates, path on fs and returns a Capture posing
// as the device at addr.
func NewCapture(fs afero.Fs, path string, addr uint16) (*Capture, error) {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("create capture failed: %w", err)
	}
	return &Capture{fs: fs, path: path, addr: addr, f: f}, nil
}

// Close closes the capture file.
func (c *Capture) Close() error {
	return c.f.Close()
}

func (c *Capture) String() string {
	return fmt.Sprintf("capture(%s)@0x%02X", c.path, c.addr)
}

// Duplex implements conn.Conn.
func (c *Capture) Duplex() conn.Duplex {
	return conn.Half
}

// Tx implements conn.Conn. Reads are not supported.
func (c *Capture) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errors.New("transport: capture is write-only")
	}
	_, err := c.f.WriteString(formatFrame(c.addr, w))
	return err
}

// Frames reads back the frames captured so far as raw byte slices.
func (c *Capture) Frames() ([][]byte, error) {
	if err := c.f.Sync(); err != nil {
		return nil, err
	}
	bs, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		return nil, err
	}
	return parseFrames(string(bs))
}

func formatFrame(addr uint16, w []byte) string {
	return fmt.Sprintf("%02x: % x\n", addr, w)
}

func parseFrames(s string) ([][]byte, error) {
	var frames [][]byte
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line == "" {
			continue
		}
		_, hex, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errors.Errorf("transport: malformed capture line %q", line)
		}
		frame := []byte{}
		for _, field := range strings.Fields(hex) {
			b, err := strconv.ParseUint(field, 16, 8)
			if err != nil {
				return nil, errors.Wrapf(err, "transport: malformed byte %q", field)
			}
			frame = append(frame, byte(b))
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

var _ conn.Conn = &Capture{}
