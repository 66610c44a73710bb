package dcs

import "encoding/binary"

// Opcode is a command that takes no parameters.
type Opcode byte

// Parameterless commands.
const (
	Nop                 Opcode = 0x00
	SoftReset           Opcode = 0x01
	EnterSleepMode      Opcode = 0x10
	ExitSleepMode       Opcode = 0x11
	EnterPartialMode    Opcode = 0x12
	EnterNormalMode     Opcode = 0x13
	SetDisplayOff       Opcode = 0x28
	SetDisplayOn        Opcode = 0x29
	WriteMemoryStart    Opcode = 0x2C
	ExitIdleMode        Opcode = 0x38
	EnterIdleMode       Opcode = 0x39
	WriteMemoryContinue Opcode = 0x3C
)

// Instruction implements Command.
func (o Opcode) Instruction() byte { return byte(o) }

// Fill implements Command.
func (Opcode) Fill([]byte) int { return 0 }

// String returns the command name.
func (o Opcode) String() string { return Name(byte(o)) }

// SetInvertMode turns display inversion on (INVON) or off (INVOFF).
type SetInvertMode bool

// Instruction implements Command.
func (m SetInvertMode) Instruction() byte {
	if m {
		return 0x21
	}
	return 0x20
}

// Fill implements Command.
func (SetInvertMode) Fill([]byte) int { return 0 }

// SetColumnAddress sets the inclusive column range of the memory window
// (CASET).
type SetColumnAddress struct {
	Start, End uint16
}

// Instruction implements Command.
func (SetColumnAddress) Instruction() byte { return 0x2A }

// Fill implements Command.
func (c SetColumnAddress) Fill(buf []byte) int {
	return fillRange(buf, c.Start, c.End)
}

// SetPageAddress sets the inclusive row range of the memory window (RASET,
// also called PASET).
type SetPageAddress struct {
	Start, End uint16
}

// Instruction implements Command.
func (SetPageAddress) Instruction() byte { return 0x2B }

// Fill implements Command.
func (c SetPageAddress) Fill(buf []byte) int {
	return fillRange(buf, c.Start, c.End)
}

// SetPartialRows sets the inclusive row range shown in partial mode (PTLAR).
type SetPartialRows struct {
	Start, End uint16
}

// Instruction implements Command.
func (SetPartialRows) Instruction() byte { return 0x30 }

// Fill implements Command.
func (c SetPartialRows) Fill(buf []byte) int {
	return fillRange(buf, c.Start, c.End)
}

func fillRange(buf []byte, start, end uint16) int {
	binary.BigEndian.PutUint16(buf[0:], start)
	binary.BigEndian.PutUint16(buf[2:], end)
	return 4
}

// SetScrollArea defines the vertical scrolling area (VSCRDEF).
//
// The three heights must add up to the number of rows of the frame memory.
type SetScrollArea struct {
	TopFixed    uint16
	Scroll      uint16
	BottomFixed uint16
}

// Instruction implements Command.
func (SetScrollArea) Instruction() byte { return 0x33 }

// Fill implements Command.
func (a SetScrollArea) Fill(buf []byte) int {
	binary.BigEndian.PutUint16(buf[0:], a.TopFixed)
	binary.BigEndian.PutUint16(buf[2:], a.Scroll)
	binary.BigEndian.PutUint16(buf[4:], a.BottomFixed)
	return 6
}

// SetScrollStart sets the frame memory row shown first in the scrolling area
// (VSCRSADD).
type SetScrollStart uint16

// Instruction implements Command.
func (SetScrollStart) Instruction() byte { return 0x37 }

// Fill implements Command.
func (s SetScrollStart) Fill(buf []byte) int {
	binary.BigEndian.PutUint16(buf, uint16(s))
	return 2
}

// TearingEffect selects the output of the TE line.
type TearingEffect byte

// Tearing effect modes.
const (
	// TearingOff disables the TE output (TEOFF).
	TearingOff TearingEffect = iota
	// TearingVertical signals vertical blanking only.
	TearingVertical
	// TearingHorizontalAndVertical signals both horizontal and vertical
	// blanking.
	TearingHorizontalAndVertical
)

// SetTearingEffect configures the TE line (TEON / TEOFF).
type SetTearingEffect TearingEffect

// Instruction implements Command.
func (t SetTearingEffect) Instruction() byte {
	if TearingEffect(t) == TearingOff {
		return 0x34
	}
	return 0x35
}

// Fill implements Command.
func (t SetTearingEffect) Fill(buf []byte) int {
	switch TearingEffect(t) {
	case TearingVertical:
		buf[0] = 0
	case TearingHorizontalAndVertical:
		buf[0] = 1
	default:
		return 0
	}
	return 1
}

// SetTearScanline sets the row at which the TE line is asserted (STE).
type SetTearScanline uint16

// Instruction implements Command.
func (SetTearScanline) Instruction() byte { return 0x44 }

// Fill implements Command.
func (s SetTearScanline) Fill(buf []byte) int {
	binary.BigEndian.PutUint16(buf, uint16(s))
	return 2
}

// BitsPerPixel is the 3-bit pixel format code used in COLMOD.
type BitsPerPixel byte

// Pixel format codes.
const (
	Bpp3  BitsPerPixel = 0b001
	Bpp8  BitsPerPixel = 0b010
	Bpp12 BitsPerPixel = 0b011
	Bpp16 BitsPerPixel = 0b101
	Bpp18 BitsPerPixel = 0b110
	Bpp24 BitsPerPixel = 0b111
)

// BitsPerPixelFor returns the code for a depth in bits. ok is false for
// depths the command set has no code for.
func BitsPerPixelFor(bits int) (bpp BitsPerPixel, ok bool) {
	switch bits {
	case 3:
		return Bpp3, true
	case 8:
		return Bpp8, true
	case 12:
		return Bpp12, true
	case 16:
		return Bpp16, true
	case 18:
		return Bpp18, true
	case 24:
		return Bpp24, true
	}
	return 0, false
}

// PixelFormat is the interface pixel format of the RGB (DPI) and MCU (DBI)
// interfaces.
type PixelFormat struct {
	DPI BitsPerPixel
	DBI BitsPerPixel
}

// PixelFormatAll returns a format using bpp for both interfaces.
func PixelFormatAll(bpp BitsPerPixel) PixelFormat {
	return PixelFormat{DPI: bpp, DBI: bpp}
}

// Byte returns the COLMOD register value.
func (f PixelFormat) Byte() byte {
	return byte(f.DPI&0x7)<<4 | byte(f.DBI&0x7)
}

// SetPixelFormat sets the interface pixel format (COLMOD).
type SetPixelFormat PixelFormat

// Instruction implements Command.
func (SetPixelFormat) Instruction() byte { return 0x3A }

// Fill implements Command.
func (f SetPixelFormat) Fill(buf []byte) int {
	buf[0] = PixelFormat(f).Byte()
	return 1
}

var (
	_ Command = Nop
	_ Command = SetInvertMode(false)
	_ Command = SetColumnAddress{}
	_ Command = SetPageAddress{}
	_ Command = SetPartialRows{}
	_ Command = SetScrollArea{}
	_ Command = SetScrollStart(0)
	_ Command = SetTearingEffect(TearingOff)
	_ Command = SetTearScanline(0)
	_ Command = SetPixelFormat{}
	_ Command = SetAddressMode(0)
)
