package monooled

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"periph.io/x/conn/v3"
)

// Frame prefixes. A control byte of 0x80 announces a single command byte, 0x40
// announces a stream of display RAM bytes. Sending pixel data with the
// command prefix, or the reverse, desynchronises the controller.
const (
	CommandPrefix = 0x80
	DataPrefix    = 0x40
)

// Framer frames command and data bytes for the controller and writes them to
// the bus. It does not retry failed writes.
type Framer struct {
	c   conn.Conn
	log *zap.Logger
}

// NewFramer returns a Framer writing to c. A nil logger discards logs.
func NewFramer(c conn.Conn, log *zap.Logger) *Framer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Framer{c: c, log: log}
}

// SendCommand writes cmd as one command frame: 0x80, cmd.
func (f *Framer) SendCommand(cmd byte) error {
	if err := f.write([]byte{CommandPrefix, cmd}); err != nil {
		return fmt.Errorf("%w: command 0x%02X: %w", ErrBus, cmd, err)
	}
	return nil
}

// SendCommands writes each byte of cmds as its own command frame, in order.
//
// It stops at the first failure. Bytes before the failing one have already
// reached the controller; the error reports how many.
func (f *Framer) SendCommands(cmds []byte) error {
	for i, cmd := range cmds {
		if err := f.SendCommand(cmd); err != nil {
			return errors.Wrapf(err, "command sequence stopped after %d of %d bytes", i, len(cmds))
		}
	}
	return nil
}

// SendData writes data as a single data frame: 0x40 followed by data.
func (f *Framer) SendData(data []byte) error {
	frame := make([]byte, len(data)+1)
	frame[0] = DataPrefix
	copy(frame[1:], data)
	if err := f.write(frame); err != nil {
		return fmt.Errorf("%w: %d data bytes: %w", ErrBus, len(data), err)
	}
	return nil
}

func (f *Framer) write(frame []byte) error {
	start := time.Now()
	if err := f.c.Tx(frame, nil); err != nil {
		f.log.With(zap.Int("size", len(frame)), zap.Error(err)).Debug("transfer failed")
		return err
	}

	ext := ""
	if len(frame) <= 16 {
		ext = fmt.Sprintf("%x", frame)
	}

	f.log.With(
		zap.Int("sent", len(frame)),
		zap.String("cost", time.Since(start).String()),
		zap.String("data", ext),
	).Debug("transfer")

	return nil
}
