// Package image1bit provides a 1-bit monochrome image format for page-addressed
// OLED display controllers.
//
// Pixels are stored in vertical bytes: each byte covers 8 rows of one column,
// and bands of 8 rows ("pages") are laid out one after another. The least
// significant bit is the topmost row of the band.
//
// Memory layout example for a 4x8 image:
//
//	Column: 0    1    2    3
//	Byte:   0    1    2    3
//	Bit 0:  row 0 of each column
//	Bit 7:  row 7 of each column
//
// A 4x16 image adds a second page, so pixel (2, 9) lives in byte 2 + 1*4 = 6,
// bit 9 mod 8 = 1.
//
// This package provides:
//
// - Bit: a color type that is either lit or dark
// - BitModel: a color model converting standard Go colors to Bit
// - VerticalLSB: an image.Image and draw.Image backed by the packed buffer
//
// Example usage:
//
//	img, err := image1bit.Alloc(128, 64)
//	if err != nil {
//		return err
//	}
//	img.SetBit(10, 20, true)
//	println(img.BitAt(10, 20)) // Output: true
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package image1bit
