package transport

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"periph.io/x/conn/v3"
)

// bridgeWrite starts a write packet.
const bridgeWrite = 'W'

// maxPayload is the largest payload a bridge packet can carry.
const maxPayload = 0xFFFF

var ErrPortNotFound = errors.New("transport: USB port not found")

// Options configures the serial port.
type Options struct {
	BaudRate int
	DTR      bool
	RTS      bool
}

// DefaultOptions suits most CH341 and CP2112 style bridges.
var DefaultOptions = Options{BaudRate: 115200}

// Serial is a conn.Conn writing to the device at Addr through a USB bridge.
type Serial struct {
	name string
	addr uint16
	port serial.Port
}

// NewSerial returns a bridge for the first port whose name contains name.
// The port is opened by Open.
func NewSerial(name string, addr uint16) *Serial {
	return &Serial{name: name, addr: addr}
}

// Ports lists the serial ports of the host.
func (s *Serial) Ports() ([]string, error) {
	return serial.GetPortsList()
}

// Open finds and opens the port.
func (s *Serial) Open(opts *Options) error {
	if opts == nil {
		opts = &DefaultOptions
	}

	ports, err := s.Ports()
	if err != nil {
		return err
	}

	var matched string
	for _, name := range ports {
		if strings.Contains(name, s.name) {
			matched = name
			break
		}
	}
	if matched == "" {
		return errors.Wrap(ErrPortNotFound, s.name)
	}

	port, err := serial.Open(matched, &serial.Mode{BaudRate: opts.BaudRate})
	if err != nil {
		return err
	}

	if err := port.SetDTR(opts.DTR); err != nil {
		_ = port.Close()
		return err
	}

	if err := port.SetRTS(opts.RTS); err != nil {
		_ = port.Close()
		return err
	}

	s.port = port
	return nil
}

// Close closes the port.
func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}

func (s *Serial) String() string {
	return fmt.Sprintf("serial(%s)@0x%02X", s.name, s.addr)
}

// Duplex implements conn.Conn.
func (s *Serial) Duplex() conn.Duplex {
	return conn.Half
}

// Tx implements conn.Conn. Reads are not supported by the bridge.
func (s *Serial) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errors.New("transport: serial bridge is write-only")
	}
	if s.port == nil {
		return errors.New("transport: serial port not open")
	}
	pkt, err := encodePacket(s.addr, w)
	if err != nil {
		return err
	}
	return writeAll(s.port, pkt)
}

// encodePacket frames w for the bridge.
func encodePacket(addr uint16, w []byte) ([]byte, error) {
	if addr > 0x7F {
		return nil, errors.Errorf("transport: invalid 7-bit address 0x%X", addr)
	}
	if len(w) > maxPayload {
		return nil, errors.Errorf("transport: payload of %d bytes exceeds %d", len(w), maxPayload)
	}
	pkt := make([]byte, 4, 4+len(w))
	pkt[0] = bridgeWrite
	pkt[1] = byte(addr)
	binary.LittleEndian.PutUint16(pkt[2:], uint16(len(w)))
	return append(pkt, w...), nil
}

type writer interface {
	Write(p []byte) (int, error)
}

// writeAll loops until p is written; serial ports may accept partial writes.
func writeAll(w writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.New("transport: short write")
		}
		p = p[n:]
	}
	return nil
}

var _ conn.Conn = &Serial{}
