package monooled

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func newRecordFramer() (*Framer, *i2ctest.Record) {
	rec := &i2ctest.Record{}
	return NewFramer(&i2c.Dev{Bus: rec, Addr: 0x3C}, nil), rec
}

func TestFramerSendCommand(t *testing.T) {
	f, rec := newRecordFramer()

	if err := f.SendCommand(0xAE); err != nil {
		t.Fatalf("SendCommand error = %v", err)
	}

	if len(rec.Ops) != 1 {
		t.Fatalf("got %d bus writes, want 1", len(rec.Ops))
	}
	if rec.Ops[0].Addr != 0x3C {
		t.Errorf("Addr = 0x%02X, want 0x3C", rec.Ops[0].Addr)
	}
	if want := []byte{0x80, 0xAE}; !bytes.Equal(rec.Ops[0].W, want) {
		t.Errorf("frame = % X, want % X", rec.Ops[0].W, want)
	}
}

func TestFramerSendData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []byte
	}{
		{"two bytes", []byte{0x11, 0x22}, []byte{0x40, 0x11, 0x22}},
		{"empty", nil, []byte{0x40}},
		{"page", bytes.Repeat([]byte{0xFF}, 128), append([]byte{0x40}, bytes.Repeat([]byte{0xFF}, 128)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, rec := newRecordFramer()
			if err := f.SendData(tt.data); err != nil {
				t.Fatalf("SendData error = %v", err)
			}
			if len(rec.Ops) != 1 {
				t.Fatalf("got %d bus writes, want a single write", len(rec.Ops))
			}
			if !bytes.Equal(rec.Ops[0].W, tt.want) {
				t.Errorf("frame = % X, want % X", rec.Ops[0].W, tt.want)
			}
		})
	}
}

func TestFramerSendDataDoesNotAliasInput(t *testing.T) {
	f, rec := newRecordFramer()
	data := []byte{0x01, 0x02}
	if err := f.SendData(data); err != nil {
		t.Fatalf("SendData error = %v", err)
	}
	if data[0] != 0x01 || data[1] != 0x02 {
		t.Errorf("SendData modified its input: % X", data)
	}
	if len(rec.Ops[0].W) != 3 {
		t.Errorf("frame length = %d, want 3", len(rec.Ops[0].W))
	}
}

func TestFramerSendCommands(t *testing.T) {
	f, rec := newRecordFramer()

	if err := f.SendCommands([]byte{0xA8, 0x3F, 0xAF}); err != nil {
		t.Fatalf("SendCommands error = %v", err)
	}

	want := [][]byte{{0x80, 0xA8}, {0x80, 0x3F}, {0x80, 0xAF}}
	if len(rec.Ops) != len(want) {
		t.Fatalf("got %d bus writes, want %d", len(rec.Ops), len(want))
	}
	for i := range want {
		if !bytes.Equal(rec.Ops[i].W, want[i]) {
			t.Errorf("write %d = % X, want % X", i, rec.Ops[i].W, want[i])
		}
	}
}

func TestFramerSendCommandsStopsAtFirstError(t *testing.T) {
	c := &fakeConn{failAt: map[int]bool{1: true}}
	f := NewFramer(c, nil)

	err := f.SendCommands([]byte{0x81, 0x7F, 0xAF})
	if err == nil {
		t.Fatal("SendCommands should fail")
	}
	if !errors.Is(err, ErrBus) {
		t.Errorf("error %v does not wrap ErrBus", err)
	}
	if !errors.Is(err, errTransport) {
		t.Errorf("error %v does not wrap the transport error", err)
	}
	if !strings.Contains(err.Error(), "after 1 of 3 bytes") {
		t.Errorf("error %q does not report progress", err)
	}
	if c.calls != 2 {
		t.Errorf("bus saw %d writes, want 2", c.calls)
	}
	if len(c.writes) != 1 || !bytes.Equal(c.writes[0], []byte{0x80, 0x81}) {
		t.Errorf("delivered frames = % X, want only [80 81]", c.writes)
	}
}

func TestFramerErrorsWrapBus(t *testing.T) {
	c := &fakeConn{failAt: map[int]bool{0: true, 1: true}}
	f := NewFramer(c, nil)

	if err := f.SendCommand(0xAF); !errors.Is(err, ErrBus) {
		t.Errorf("SendCommand error = %v, want ErrBus", err)
	}
	if err := f.SendData([]byte{0x00}); !errors.Is(err, ErrBus) {
		t.Errorf("SendData error = %v, want ErrBus", err)
	}
}
