package dcs

import (
	"fmt"
	"strings"
)

// SetAddressMode is the memory data access control register (MADCTL). It
// controls scan direction, row/column exchange and color order of the frame
// memory.
type SetAddressMode byte

// Address mode bits.
const (
	_                      SetAddressMode = 1 << iota // D0: reserved
	_                                                 // D1: reserved
	HorizontalRefreshOrder                            // D2: MH, right to left
	BGR                                               // D3: BGR color order
	VerticalRefreshOrder                              // D4: ML, bottom to top
	RowColumnExchange                                 // D5: MV
	ColumnAddressOrder                                // D6: MX
	RowAddressOrder                                   // D7: MY
)

// orientationMask covers the bits that define the memory orientation.
const orientationMask = RowAddressOrder | ColumnAddressOrder | RowColumnExchange

// Instruction implements Command.
func (SetAddressMode) Instruction() byte { return 0x36 }

// Fill implements Command.
func (m SetAddressMode) Fill(buf []byte) int {
	buf[0] = byte(m)
	return 1
}

// Has reports whether all bits of f are set.
func (m SetAddressMode) Has(f SetAddressMode) bool {
	return m&f == f
}

// With returns m with the bits of f set or cleared.
func (m SetAddressMode) With(f SetAddressMode, on bool) SetAddressMode {
	if on {
		return m | f
	}
	return m &^ f
}

// WithOrientation replaces the MY, MX and MV bits of m by those of o.
func (m SetAddressMode) WithOrientation(o SetAddressMode) SetAddressMode {
	return m&^orientationMask | o&orientationMask
}

// Orientation returns the MY, MX and MV bits of m.
func (m SetAddressMode) Orientation() SetAddressMode {
	return m & orientationMask
}

// String returns the value and the names of the bits that are set.
func (m SetAddressMode) String() string {
	var flags []string
	for _, f := range []struct {
		bit  SetAddressMode
		name string
	}{
		{RowAddressOrder, "MY"},
		{ColumnAddressOrder, "MX"},
		{RowColumnExchange, "MV"},
		{VerticalRefreshOrder, "ML"},
		{BGR, "BGR"},
		{HorizontalRefreshOrder, "MH"},
	} {
		if m.Has(f.bit) {
			flags = append(flags, f.name)
		}
	}
	return fmt.Sprintf("0x%02X[%s]", byte(m), strings.Join(flags, "|"))
}
