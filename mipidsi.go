package mipidsi

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"iter"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/mipidsi/dbi"
	"periph.io/x/devices/v3/mipidsi/dcs"
	"periph.io/x/devices/v3/mipidsi/pixel"
	"tinygo.org/x/drivers"
)

// Opts is the configuration of a display. Zero fields keep the model
// defaults.
type Opts struct {
	// Orientation of the image relative to the native scan direction.
	Orientation Orientation
	// ColorOrder of the panel, most ILI934x modules are BGR.
	ColorOrder ColorOrder
	// InvertColors is needed by IPS panels.
	InvertColors bool
	RefreshOrder RefreshOrder

	// Panel geometry overrides
	DisplaySize     Size
	FramebufferSize Size
	WindowOffset    func(opts *ModelOptions) (x, y int)

	// RST is the optional hardware reset pin. nil or gpio.INVALID selects a
	// soft reset.
	RST gpio.PinOut
	// Delay used for controller timings (default: SystemDelay)
	Delay Delay
}

// apply overrides the model defaults in mo with the non-zero fields of o.
func (o *Opts) apply(mo *ModelOptions) {
	if o.Orientation != (Orientation{}) {
		mo.Orientation = o.Orientation
	}
	if o.ColorOrder != RGB {
		mo.ColorOrder = o.ColorOrder
	}
	if o.RefreshOrder != (RefreshOrder{}) {
		mo.RefreshOrder = o.RefreshOrder
	}
	mo.InvertColors = mo.InvertColors || o.InvertColors
	if !o.DisplaySize.IsZero() {
		mo.DisplaySize = o.DisplaySize
	}
	if !o.FramebufferSize.IsZero() {
		mo.FramebufferSize = o.FramebufferSize
	}
	if o.WindowOffset != nil {
		mo.WindowOffset = o.WindowOffset
	}
}

// Dev is the handle of a display driven by the model M with pixels of type C.
//
// Dev is not safe for concurrent use.
type Dev[C pixel.Color, M Model[C]] struct {
	dcs   *dcs.DCS
	model M
	delay Delay
	rst   gpio.PinOut
	opts  ModelOptions

	// madctl is the address mode last sent to the controller.
	madctl dcs.SetAddressMode
	rect   image.Rectangle

	// err is the first SetPixel failure, returned by Display.
	err    error
	halted bool
}

var errHalted = errors.New("mipidsi: halted")

// New resets and initializes the display connected to iface.
//
// opts can be nil to use the model defaults.
func New[C pixel.Color, M Model[C]](iface dbi.Interface, model M, opts *Opts) (*Dev[C, M], error) {
	if iface == nil {
		return nil, errors.New("mipidsi: display interface is required")
	}
	if opts == nil {
		opts = &Opts{}
	}
	mo := model.DefaultOptions()
	opts.apply(&mo)
	if err := mo.validate(); err != nil {
		return nil, err
	}
	d := &Dev[C, M]{
		dcs:   dcs.New(iface),
		model: model,
		delay: opts.Delay,
		rst:   opts.RST,
		opts:  mo,
	}
	if d.delay == nil {
		d.delay = SystemDelay
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewILI9341RGB565 returns an ILI9341 using 16 bits per pixel. It requires a
// parallel interface such as dbi.Parallel8.
func NewILI9341RGB565(iface dbi.Interface, opts *Opts) (*Dev[pixel.RGB565, ILI9341RGB565], error) {
	return New[pixel.RGB565](iface, ILI9341RGB565{}, opts)
}

// NewILI9341RGB666 returns an ILI9341 using 18 bits per pixel.
func NewILI9341RGB666(iface dbi.Interface, opts *Opts) (*Dev[pixel.RGB666, ILI9341RGB666], error) {
	return New[pixel.RGB666](iface, ILI9341RGB666{}, opts)
}

// NewILI9342CRGB565 returns an ILI9342C using 16 bits per pixel. It requires a
// parallel interface.
func NewILI9342CRGB565(iface dbi.Interface, opts *Opts) (*Dev[pixel.RGB565, ILI9342CRGB565], error) {
	return New[pixel.RGB565](iface, ILI9342CRGB565{}, opts)
}

// NewILI9342CRGB666 returns an ILI9342C using 18 bits per pixel.
func NewILI9342CRGB666(iface dbi.Interface, opts *Opts) (*Dev[pixel.RGB666, ILI9342CRGB666], error) {
	return New[pixel.RGB666](iface, ILI9342CRGB666{}, opts)
}

// NewSPI returns an ILI9341 connected via SPI, using 18 bits per pixel.
//
// The SPI port is configured for 10MHz, Mode0, 8-bit transfers. dc must be
// an output.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev[pixel.RGB666, ILI9341RGB666], error) {
	iface, err := dbi.NewSPI(p, dc, dbi.DefaultSPIFrequency)
	if err != nil {
		return nil, err
	}
	return NewILI9341RGB666(iface, opts)
}

// Init resets the controller and runs the bring-up sequence again, then
// restores the address mode. It clears the halted state.
//
// On failure the controller is in an unknown state and Init may be retried.
func (d *Dev[C, M]) Init() error {
	d.halted = false
	d.err = nil
	madctl, err := d.model.Init(d.dcs, d.delay, &d.opts, d.rst)
	if err != nil {
		return err
	}
	if err := d.dcs.WriteCommand(madctl); err != nil {
		return &InitError{Op: dcs.Name(madctl.Instruction()), Err: err}
	}
	d.madctl = madctl
	d.updateBounds()
	return nil
}

func (d *Dev[C, M]) String() string {
	return fmt.Sprintf("mipidsi.Dev{%v, %s}", d.model, d.opts.OrientedSize())
}

// ColorModel implements display.Drawer.
func (d *Dev[C, M]) ColorModel() color.Model {
	return pixel.ModelOf[C]()
}

// Bounds implements display.Drawer. It follows the orientation.
func (d *Dev[C, M]) Bounds() image.Rectangle {
	return d.rect
}

// Options returns the options in effect.
func (d *Dev[C, M]) Options() ModelOptions {
	return d.opts
}

// AddressMode returns the address mode last sent to the controller.
func (d *Dev[C, M]) AddressMode() dcs.SetAddressMode {
	return d.madctl
}

// DCS returns the command writer, for commands this package does not wrap.
func (d *Dev[C, M]) DCS() *dcs.DCS {
	return d.dcs
}

// SetPixels sets the memory window to r and streams colors into it in row
// major order. r must lie within Bounds.
//
// The number of colors is not checked. Fewer colors leave the rest of the
// window untouched, extra colors wrap around inside the window.
func (d *Dev[C, M]) SetPixels(r image.Rectangle, colors iter.Seq[C]) error {
	if d.halted {
		return errHalted
	}
	if r.Empty() {
		return nil
	}
	if !r.In(d.rect) {
		return fmt.Errorf("mipidsi: window %v outside of %v", r, d.rect)
	}
	if err := d.setAddressWindow(r); err != nil {
		return err
	}
	return d.model.WritePixels(d.dcs, colors)
}

// Fill sets every pixel of r to c.
func (d *Dev[C, M]) Fill(r image.Rectangle, c color.Color) error {
	r = r.Intersect(d.rect)
	return d.SetPixels(r, pixel.Repeat(pixel.Convert[C](c), r.Dx()*r.Dy()))
}

// Clear fills the display with black.
func (d *Dev[C, M]) Clear() error {
	return d.Fill(d.rect, color.Black)
}

// Draw implements display.Drawer.
//
// It draws src at sp onto the area r of the display, clipped to Bounds. The
// pixels are converted and streamed; nothing is buffered.
func (d *Dev[C, M]) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}
	area := r.Intersect(d.rect)
	if area.Empty() {
		return nil
	}
	sp = sp.Add(area.Min.Sub(r.Min))
	return d.SetPixels(area, pixel.FromImage[C](src, area, sp))
}

// Size implements drivers.Displayer.
func (d *Dev[C, M]) Size() (x, y int16) {
	return int16(d.rect.Dx()), int16(d.rect.Dy())
}

// SetPixel implements drivers.Displayer. The write is immediate; a failure is
// kept and returned by the next Display call.
func (d *Dev[C, M]) SetPixel(x, y int16, c color.RGBA) {
	if d.err != nil {
		return
	}
	p := image.Pt(int(x), int(y))
	if !p.In(d.rect) {
		return
	}
	px := pixel.Convert[C](c)
	d.err = d.SetPixels(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))}, func(yield func(C) bool) {
		yield(px)
	})
}

// Display implements drivers.Displayer. Pixels are written as they are set so
// it only reports the first SetPixel failure since the last call.
func (d *Dev[C, M]) Display() error {
	err := d.err
	d.err = nil
	return err
}

// Orientation returns the current orientation.
func (d *Dev[C, M]) Orientation() Orientation {
	return d.opts.Orientation
}

// SetOrientation changes the memory access direction. The frame memory is not
// redrawn; Bounds changes for landscape orientations.
func (d *Dev[C, M]) SetOrientation(o Orientation) error {
	if d.halted {
		return errHalted
	}
	if o.Rotation > Deg270 {
		return fmt.Errorf("mipidsi: invalid rotation %d", o.Rotation)
	}
	madctl := d.madctl.WithOrientation(o.addressMode())
	if err := d.write("set address mode", madctl); err != nil {
		return err
	}
	d.madctl = madctl
	d.opts.Orientation = o
	d.updateBounds()
	return nil
}

// Rotation returns the orientation as a drivers.Rotation.
func (d *Dev[C, M]) Rotation() drivers.Rotation {
	o := d.opts.Orientation
	r := drivers.Rotation(o.Rotation)
	if o.Mirrored {
		// Mirrored rotations follow the four plain ones.
		r += 4
	}
	return r
}

// SetRotation sets the orientation from a drivers.Rotation.
func (d *Dev[C, M]) SetRotation(r drivers.Rotation) error {
	return d.SetOrientation(Orientation{Rotation: Rotation(r % 4), Mirrored: r >= 4})
}

// SetInvertColors enables or disables color inversion.
func (d *Dev[C, M]) SetInvertColors(on bool) error {
	if d.halted {
		return errHalted
	}
	if err := d.write("set invert mode", dcs.SetInvertMode(on)); err != nil {
		return err
	}
	d.opts.InvertColors = on
	return nil
}

// SetVerticalScrollRegion defines the fixed areas at the top and bottom of the
// frame memory, in native rows. The rows in between scroll.
func (d *Dev[C, M]) SetVerticalScrollRegion(topFixed, bottomFixed int) error {
	if d.halted {
		return errHalted
	}
	rows := d.opts.FramebufferSize.H
	if topFixed < 0 || bottomFixed < 0 || topFixed+bottomFixed > rows {
		return fmt.Errorf("mipidsi: scroll region %d+%d exceeds %d rows", topFixed, bottomFixed, rows)
	}
	return d.write("set scroll area", dcs.SetScrollArea{
		TopFixed:    uint16(topFixed),
		Scroll:      uint16(rows - topFixed - bottomFixed),
		BottomFixed: uint16(bottomFixed),
	})
}

// SetVerticalScrollOffset sets the frame memory row shown first in the
// scrolling area.
func (d *Dev[C, M]) SetVerticalScrollOffset(offset int) error {
	if d.halted {
		return errHalted
	}
	if offset < 0 || offset >= d.opts.FramebufferSize.H {
		return fmt.Errorf("mipidsi: scroll offset %d out of range", offset)
	}
	return d.write("set scroll start", dcs.SetScrollStart(offset))
}

// SetTearingEffect configures the TE output line.
func (d *Dev[C, M]) SetTearingEffect(t dcs.TearingEffect) error {
	if d.halted {
		return errHalted
	}
	return d.write("set tearing effect", dcs.SetTearingEffect(t))
}

// Sleep puts the controller in sleep mode. Frame memory is retained.
func (d *Dev[C, M]) Sleep() error {
	if d.halted {
		return errHalted
	}
	if err := d.write("enter sleep mode", dcs.EnterSleepMode); err != nil {
		return err
	}
	d.delay.Sleep(120 * time.Millisecond)
	return nil
}

// Wake leaves sleep mode.
func (d *Dev[C, M]) Wake() error {
	if d.halted {
		return errHalted
	}
	if err := d.write("exit sleep mode", dcs.ExitSleepMode); err != nil {
		return err
	}
	d.delay.Sleep(120 * time.Millisecond)
	return nil
}

// Halt turns the display off. Further calls fail until Init is called.
func (d *Dev[C, M]) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	return d.write("set display off", dcs.SetDisplayOff)
}

func (d *Dev[C, M]) write(op string, cmd dcs.Command) error {
	if err := d.dcs.WriteCommand(cmd); err != nil {
		return &Error{Op: op, Pixel: -1, Err: err}
	}
	return nil
}

// setAddressWindow sets the column and page range to r, shifted by the window
// offset. Ends are inclusive.
func (d *Dev[C, M]) setAddressWindow(r image.Rectangle) error {
	ox, oy := d.opts.offset()
	if err := d.write("set column address", dcs.SetColumnAddress{
		Start: uint16(r.Min.X + ox),
		End:   uint16(r.Max.X - 1 + ox),
	}); err != nil {
		return err
	}
	return d.write("set page address", dcs.SetPageAddress{
		Start: uint16(r.Min.Y + oy),
		End:   uint16(r.Max.Y - 1 + oy),
	})
}

func (d *Dev[C, M]) updateBounds() {
	s := d.opts.OrientedSize()
	d.rect = image.Rect(0, 0, s.W, s.H)
}

var (
	_ display.Drawer    = &Dev[pixel.RGB666, ILI9341RGB666]{}
	_ drivers.Displayer = &Dev[pixel.RGB565, ILI9342CRGB565]{}
)
