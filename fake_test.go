package monooled

import (
	"errors"

	"periph.io/x/conn/v3"
)

var errTransport = errors.New("nack")

// fakeConn records every write and fails the ones listed in failAt, counted
// from zero across the whole life of the fake.
type fakeConn struct {
	writes [][]byte
	calls  int
	failAt map[int]bool
}

func (f *fakeConn) String() string {
	return "fake"
}

func (f *fakeConn) Duplex() conn.Duplex {
	return conn.Half
}

func (f *fakeConn) Tx(w, r []byte) error {
	n := f.calls
	f.calls++
	if f.failAt[n] {
		return errTransport
	}
	f.writes = append(f.writes, append([]byte(nil), w...))
	return nil
}

func (f *fakeConn) reset() {
	f.writes = nil
}

// newTestDev returns an initialized w x h Dev with a full-frame flusher and an
// empty dirty region.
func newTestDev(w, h int) (*Dev, *fakeConn) {
	c := &fakeConn{}
	d, err := New(c, &Opts{W: w, H: h, Flusher: FullFrame{}})
	if err != nil {
		panic(err)
	}
	if err := d.Init(false); err != nil {
		panic(err)
	}
	d.dirty.ResetEmpty()
	c.reset()
	return d, c
}
