package mipidsi

import (
	"errors"
	"fmt"

	"periph.io/x/devices/v3/mipidsi/dcs"
)

// Size is a width and height in pixels.
type Size struct {
	W, H int
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.W == 0 && s.H == 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// Rotation is a clockwise rotation of the panel in 90° steps.
type Rotation byte

// Possible rotations.
const (
	Deg0 Rotation = iota
	Deg90
	Deg180
	Deg270
)

// Orientation is the direction the image is drawn in, relative to the
// controller's native scan direction.
type Orientation struct {
	Rotation Rotation
	// Mirrored flips the image horizontally after rotation.
	Mirrored bool
}

// Common orientations.
var (
	Portrait          = Orientation{Rotation: Deg0}
	Landscape         = Orientation{Rotation: Deg90}
	PortraitInverted  = Orientation{Rotation: Deg180}
	LandscapeInverted = Orientation{Rotation: Deg270}
)

// IsLandscape reports whether rows and columns are exchanged.
func (o Orientation) IsLandscape() bool {
	return o.Rotation == Deg90 || o.Rotation == Deg270
}

// addressMode returns the MY, MX and MV bits for o.
func (o Orientation) addressMode() dcs.SetAddressMode {
	const (
		my = dcs.RowAddressOrder
		mx = dcs.ColumnAddressOrder
		mv = dcs.RowColumnExchange
	)
	switch o.Rotation {
	case Deg90:
		if o.Mirrored {
			return mv | mx
		}
		return mv
	case Deg180:
		if o.Mirrored {
			return my
		}
		return my | mx
	case Deg270:
		if o.Mirrored {
			return my | mv
		}
		return my | mx | mv
	default:
		if o.Mirrored {
			return mx
		}
		return 0
	}
}

func (o Orientation) String() string {
	s := fmt.Sprintf("%d°", int(o.Rotation)*90)
	if o.Mirrored {
		s += " mirrored"
	}
	return s
}

// ColorOrder is the order of the color channels of the panel.
type ColorOrder byte

// Color orders.
const (
	RGB ColorOrder = iota
	BGR
)

// RefreshOrder selects the direction the panel is refreshed from memory. It
// does not affect where pixels land, only the scan direction.
type RefreshOrder struct {
	BottomToTop bool
	RightToLeft bool
}

// ModelOptions describes the geometry and the default memory access mode of a
// panel.
type ModelOptions struct {
	ColorOrder   ColorOrder
	Orientation  Orientation
	InvertColors bool
	RefreshOrder RefreshOrder
	// DisplaySize is the visible area in the controller's native
	// orientation.
	DisplaySize Size
	// FramebufferSize is the size of the controller's frame memory.
	FramebufferSize Size
	// WindowOffset returns where the visible area starts in frame memory. It
	// may depend on the orientation. nil means no offset.
	WindowOffset func(opts *ModelOptions) (x, y int)
}

// WithSizes returns default options for a panel of the given sizes.
func WithSizes(display, framebuffer Size) ModelOptions {
	return ModelOptions{DisplaySize: display, FramebufferSize: framebuffer}
}

// AddressMode returns the MADCTL value the options require.
func (o *ModelOptions) AddressMode() dcs.SetAddressMode {
	var m dcs.SetAddressMode
	m = m.WithOrientation(o.Orientation.addressMode())
	m = m.With(dcs.BGR, o.ColorOrder == BGR)
	m = m.With(dcs.VerticalRefreshOrder, o.RefreshOrder.BottomToTop)
	m = m.With(dcs.HorizontalRefreshOrder, o.RefreshOrder.RightToLeft)
	return m
}

// OrientedSize returns the visible size as seen by the application, with
// width and height exchanged in landscape orientations.
func (o *ModelOptions) OrientedSize() Size {
	if o.Orientation.IsLandscape() {
		return Size{W: o.DisplaySize.H, H: o.DisplaySize.W}
	}
	return o.DisplaySize
}

func (o *ModelOptions) offset() (x, y int) {
	if o.WindowOffset == nil {
		return 0, 0
	}
	return o.WindowOffset(o)
}

// validate checks the sizes fit the 16-bit DCS address space.
func (o *ModelOptions) validate() error {
	for _, s := range []Size{o.DisplaySize, o.FramebufferSize} {
		if s.W <= 0 || s.H <= 0 || s.W > 0xFFFF || s.H > 0xFFFF {
			return fmt.Errorf("mipidsi: invalid size %s", s)
		}
	}
	if o.DisplaySize.W > o.FramebufferSize.W || o.DisplaySize.H > o.FramebufferSize.H {
		return errors.New("mipidsi: display size larger than framebuffer")
	}
	if o.Orientation.Rotation > Deg270 {
		return fmt.Errorf("mipidsi: invalid rotation %d", o.Orientation.Rotation)
	}
	return nil
}
