package pixel

import (
	"image"
	"image/color"
	"iter"
)

// MaxWidth is the largest number of bytes a single encoded pixel occupies.
const MaxWidth = 3

// RGB565 is a 16-bit color with 5 bits of red, 6 bits of green and 5 bits of
// blue. Only the low bits of each field are significant.
type RGB565 struct {
	R, G, B uint8
}

// RGBA converts the color to 16-bit per channel RGBA.
// Each channel is widened by bit replication so full scale maps to 0xFFFF.
func (c RGB565) RGBA() (r, g, b, a uint32) {
	r = expand(c.R&0x1F, 5)
	g = expand(c.G&0x3F, 6)
	b = expand(c.B&0x1F, 5)
	return r, g, b, 0xFFFF
}

// Raw returns the packed 16-bit value as sent on the wire.
func (c RGB565) Raw() uint16 {
	return uint16(c.R&0x1F)<<11 | uint16(c.G&0x3F)<<5 | uint16(c.B&0x1F)
}

// RGB666 is an 18-bit color with 6 bits per channel.
type RGB666 struct {
	R, G, B uint8
}

// RGBA converts the color to 16-bit per channel RGBA.
func (c RGB666) RGBA() (r, g, b, a uint32) {
	r = expand(c.R&0x3F, 6)
	g = expand(c.G&0x3F, 6)
	b = expand(c.B&0x3F, 6)
	return r, g, b, 0xFFFF
}

// expand widens an n-bit channel to 16 bits.
func expand(v uint8, n uint) uint32 {
	// Replicate into 8 bits first, then to 16.
	v8 := uint32(v)<<(8-n) | uint32(v)>>(2*n-8)
	return v8 * 0x101
}

func toRGB565(c color.Color) color.Color {
	if p, ok := c.(RGB565); ok {
		return p
	}
	r, g, b, _ := c.RGBA()
	return RGB565{R: uint8(r >> 11), G: uint8(g >> 10), B: uint8(b >> 11)}
}

func toRGB666(c color.Color) color.Color {
	if p, ok := c.(RGB666); ok {
		return p
	}
	r, g, b, _ := c.RGBA()
	return RGB666{R: uint8(r >> 10), G: uint8(g >> 10), B: uint8(b >> 10)}
}

// RGB565Model converts colors to RGB565.
var RGB565Model = color.ModelFunc(toRGB565)

// RGB666Model converts colors to RGB666.
var RGB666Model = color.ModelFunc(toRGB666)

// Color is the set of pixel types a controller can be driven with.
type Color interface {
	color.Color
	RGB565 | RGB666
}

// Width returns the number of bytes one pixel of type C occupies on the wire.
func Width[C Color]() int {
	var z C
	switch any(z).(type) {
	case RGB565:
		return 2
	default:
		return 3
	}
}

// Bits returns the number of significant bits per pixel of type C.
func Bits[C Color]() int {
	var z C
	switch any(z).(type) {
	case RGB565:
		return 16
	default:
		return 18
	}
}

// ModelOf returns the color.Model converting to C.
func ModelOf[C Color]() color.Model {
	var z C
	switch any(z).(type) {
	case RGB565:
		return RGB565Model
	default:
		return RGB666Model
	}
}

// Convert converts any color to C.
func Convert[C Color](c color.Color) C {
	if p, ok := c.(C); ok {
		return p
	}
	return ModelOf[C]().Convert(c).(C)
}

// Encode writes the wire encoding of c into buf and returns the number of
// bytes written. buf must be at least MaxWidth bytes long.
func Encode[C Color](buf []byte, c C) int {
	switch p := any(c).(type) {
	case RGB565:
		v := p.Raw()
		buf[0] = byte(v >> 8)
		buf[1] = byte(v)
		return 2
	case RGB666:
		buf[0] = (p.R & 0x3F) << 2
		buf[1] = (p.G & 0x3F) << 2
		buf[2] = (p.B & 0x3F) << 2
		return 3
	}
	return 0
}

// Decode565 returns the color encoded in the first two bytes of b.
func Decode565(b []byte) RGB565 {
	v := uint16(b[0])<<8 | uint16(b[1])
	return RGB565{R: uint8(v >> 11), G: uint8(v>>5) & 0x3F, B: uint8(v) & 0x1F}
}

// Decode666 returns the color encoded in the first three bytes of b.
// The two least significant bits of each byte are ignored.
func Decode666(b []byte) RGB666 {
	return RGB666{R: b[0] >> 2, G: b[1] >> 2, B: b[2] >> 2}
}

// FromImage returns the pixels of src covering r, in row-major order, converted
// to C. sp is the point of src aligned with r.Min, as in image/draw.
//
// Points outside the bounds of src yield the zero color.
func FromImage[C Color](src image.Image, r image.Rectangle, sp image.Point) iter.Seq[C] {
	return func(yield func(C) bool) {
		dx := sp.X - r.Min.X
		dy := sp.Y - r.Min.Y
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if !yield(Convert[C](src.At(x+dx, y+dy))) {
					return
				}
			}
		}
	}
}

// Repeat returns a stream of n copies of c.
func Repeat[C Color](c C, n int) iter.Seq[C] {
	return func(yield func(C) bool) {
		for range n {
			if !yield(c) {
				return
			}
		}
	}
}
