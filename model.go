package mipidsi

import (
	"iter"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/mipidsi/dcs"
	"periph.io/x/devices/v3/mipidsi/pixel"
)

// Model is a display controller driven with the pixel type C.
//
// Implementations are stateless values, one type per controller and pixel
// format. A Model is used from a single goroutine.
type Model[C pixel.Color] interface {
	// Init resets the controller and brings it to a drawable state.
	//
	// When rst is nil or gpio.INVALID a soft reset command replaces the
	// hardware reset pulse. Every other command is the same on both paths.
	//
	// It returns the address mode matching opts, which the caller must send
	// and keep. Any failure is returned as *InitError and leaves the
	// controller in an unknown state.
	Init(d *dcs.DCS, delay Delay, opts *ModelOptions, rst gpio.PinOut) (dcs.SetAddressMode, error)
	// WritePixels streams colors into the current memory window, in order.
	//
	// The window is set by the caller; the number of colors is not checked
	// against it. The first failure stops the stream and is returned as
	// *Error.
	WritePixels(d *dcs.DCS, colors iter.Seq[C]) error
	// DefaultOptions returns the datasheet geometry of the controller.
	DefaultOptions() ModelOptions
}

// Delay blocks the caller for a controller mandated time.
type Delay interface {
	Sleep(d time.Duration)
}

type systemDelay struct{}

func (systemDelay) Sleep(d time.Duration) {
	time.Sleep(d)
}

// SystemDelay is a Delay backed by time.Sleep.
var SystemDelay Delay = systemDelay{}

// ResetTiming is the shape of the hardware reset pulse.
type ResetTiming struct {
	// Pulse is how long RESX is held low.
	Pulse time.Duration
	// Settle is the time to wait after either reset before the next command.
	Settle time.Duration
}

// hasResetPin reports whether rst can be driven.
func hasResetPin(rst gpio.PinOut) bool {
	return rst != nil && rst != gpio.INVALID
}

// reset performs a hardware reset when rst is usable and a soft reset
// otherwise, then waits t.Settle.
func reset(d *dcs.DCS, delay Delay, rst gpio.PinOut, t ResetTiming) error {
	if hasResetPin(rst) {
		if err := rst.Out(gpio.Low); err != nil {
			return &InitError{Op: "reset pin low", Err: err}
		}
		delay.Sleep(t.Pulse)
		if err := rst.Out(gpio.High); err != nil {
			return &InitError{Op: "reset pin high", Err: err}
		}
	} else if err := d.WriteCommand(dcs.SoftReset); err != nil {
		return &InitError{Op: "soft reset", Err: err}
	}
	delay.Sleep(t.Settle)
	return nil
}

// step is one command of a bring-up sequence and the time to wait after it.
type step struct {
	cmd  dcs.Command
	wait time.Duration
}

// runSteps sends steps in order and stops at the first failure.
func runSteps(d *dcs.DCS, delay Delay, steps []step) error {
	for _, s := range steps {
		if err := d.WriteCommand(s.cmd); err != nil {
			return &InitError{Op: dcs.Name(s.cmd.Instruction()), Err: err}
		}
		if s.wait > 0 {
			delay.Sleep(s.wait)
		}
	}
	return nil
}

// writePixels issues a memory write and sends each color as one data write.
// Nothing is sent for an empty stream.
func writePixels[C pixel.Color](d *dcs.DCS, colors iter.Seq[C]) error {
	var buf [pixel.MaxWidth]byte
	i := 0
	for c := range colors {
		if i == 0 {
			if err := d.WriteCommand(dcs.WriteMemoryStart); err != nil {
				return &Error{Op: "write memory start", Pixel: -1, Err: err}
			}
		}
		n := pixel.Encode(buf[:], c)
		if err := d.WriteData(buf[:n]); err != nil {
			return &Error{Op: "write pixels", Pixel: i, Err: err}
		}
		i++
	}
	return nil
}
