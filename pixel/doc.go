// Package pixel provides the color types and wire encodings used by MIPI DCS
// TFT controllers.
//
// Two interface pixel formats are supported:
//
//	RGB565: 16 bits per pixel, sent as 2 bytes, big-endian
//	        byte 0: R4 R3 R2 R1 R0 G5 G4 G3
//	        byte 1: G2 G1 G0 B4 B3 B2 B1 B0
//
//	RGB666: 18 bits per pixel, sent as 3 bytes, one per channel
//	        each byte: C5 C4 C3 C2 C1 C0 0 0
//
// Pixels are encoded one at a time into a caller provided buffer so that an
// arbitrarily long stream never needs more than one pixel worth of memory.
//
// Example usage:
//
//	var buf [pixel.MaxWidth]byte
//	n := pixel.Encode(buf[:], pixel.RGB565{R: 31, G: 0, B: 0})
//	// buf[:n] == []byte{0xF8, 0x00}
//
//	// Stream the pixels of an image, row by row.
//	for c := range pixel.FromImage[pixel.RGB666](img, img.Bounds(), image.Point{}) {
//		...
//	}
package pixel
