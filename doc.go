// Package monooled controls monochrome OLED displays over I²C.
//
// It targets the family of 1-bit controllers that share the SSD1306 command
// set (SSD1306, SSD1309, SH1106 and clones). The driver keeps a frame buffer
// in the controller's native layout and implements the display.Drawer
// interface from periph.io.
//
// # Display Characteristics
//
// - 1 bit per pixel, lit or unlit
// - Any panel size up to 32767×32767, typically 128×64 or 128×32
// - Software rotation in 90° steps
// - Partial updates of the changed rectangle only
// - Adjustable contrast (0-255)
// - Display inversion
//
// # Hardware Connection
//
// Connect the display to your system via I²C:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I²C Clock (SCL)
//	SDA         → I²C Data (SDA)
//	RES         → Optional: GPIO for hardware reset
//
// Most modules answer at address 0x3C, some at 0x3D.
//
// # Basic Usage
//
// Example of creating and using the display:
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/host/v3"
//		"github.com/flavioheleno/monooled"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open I²C bus
//		bus, _ := i2creg.Open("")
//
//		// Create device
//		dev, _ := monooled.NewI2C(bus, &monooled.Opts{
//			W:            128,
//			H:            64,
//			InitSequence: myInitSequence,
//		})
//		defer dev.Halt()
//
//		// Allocate the buffer and bring the controller up
//		dev.Init(false)
//
//		// Draw a diagonal line
//		for i := 0; i < 64; i++ {
//			dev.SetPixel(i, i, monooled.On)
//		}
//
//		// Send the changed rectangle
//		dev.Flush()
//	}
//
// The init sequence is controller specific and sent verbatim by Init, one
// command per byte. The demo in examples/monooled_demo carries one for SSD1306
// panels.
//
// # Using Hardware Reset Pin (Optional)
//
// If your display has a reset (RST) pin connected to a GPIO, provide it in the
// Opts struct and call Init(true):
//
//	rstPin := gpioreg.ByName("GPIO4")
//
//	dev, _ := monooled.NewI2C(bus, &monooled.Opts{
//		W:   128,
//		H:   64,
//		RST: rstPin,
//	})
//	dev.Init(true)
//
// Init(true) drives RST high for 1ms, low for 10ms, then high again. When
// several displays share one reset line, pass true only for the first one.
//
// # Rotation
//
// Coordinates given to SetPixel, Pixel and Draw are logical. With Rotate90 or
// Rotate270 the logical width and height are swapped:
//
//	dev.SetRotation(monooled.Rotate90)
//	b := dev.Bounds() // 64×128 on a 128×64 panel
//
// Changing the rotation only affects later drawing, pixels already in the
// buffer stay where they are.
//
// # Partial Updates
//
// Every pixel written grows a bounding rectangle in panel coordinates. Flush
// sends only that rectangle and then forgets it. If the transfer fails, the
// rectangle stays pending and the next Flush retries it.
//
// How the rectangle reaches the controller is chosen with Opts.Flusher:
//
//	monooled.HorizontalAddressing{} // SSD1306 column and page window (default)
//	monooled.PageAddressing{ColumnOffset: 2} // SH1106, one page at a time
//	monooled.FullFrame{} // whole buffer, no addressing commands
//
// # Other Transports
//
// New accepts any conn.Conn. The transport package provides a USB serial
// bridge and a capture file that records every frame for inspection without
// hardware.
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a display.Drawer.
package monooled
