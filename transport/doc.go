// Package transport provides conn.Conn implementations for driving a display
// without a native I²C bus.
//
// Serial talks to a USB serial to I²C bridge. Every Tx becomes one bridge
// packet:
//
//	[0x57 'W'][ADDR:1][LEN:2][PAYLOAD:LEN]
//	- ADDR: 7-bit I²C address of the display
//	- LEN: payload length (uint16, little-endian)
//
// Capture appends every Tx as one text line to a file on an afero.Fs, which
// makes dry runs and golden tests possible:
//
//	3c: 80 ae
//	3c: 40 ff ff 00 ...
package transport
