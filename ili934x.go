package mipidsi

import (
	"time"

	"periph.io/x/devices/v3/mipidsi/dcs"
	"periph.io/x/devices/v3/mipidsi/pixel"
)

// ili934xReset is the reset timing of the ILI934x family.
var ili934xReset = ResetTiming{Pulse: 10 * time.Microsecond, Settle: 120 * time.Millisecond}

// ili934xInversionControl is the manufacturer INVCTR register. A zero
// parameter selects line inversion in all modes.
type ili934xInversionControl byte

func (ili934xInversionControl) Instruction() byte { return 0xB4 }

func (c ili934xInversionControl) Fill(buf []byte) int {
	buf[0] = byte(c)
	return 1
}

// initILI934x is the bring-up shared by the ILI934x controllers, run after
// reset. It leaves the controller awake in normal mode with the display on,
// using the pixel format of C.
func initILI934x[C pixel.Color](d *dcs.DCS, delay Delay, opts *ModelOptions) (dcs.SetAddressMode, error) {
	bpp, _ := dcs.BitsPerPixelFor(pixel.Bits[C]())
	err := runSteps(d, delay, []step{
		// Sleep out needs 5ms before the next command.
		{cmd: dcs.ExitSleepMode, wait: 5 * time.Millisecond},
		{cmd: ili934xInversionControl(0x00)},
		{cmd: dcs.SetInvertMode(opts.InvertColors)},
		{cmd: dcs.SetPixelFormat(dcs.PixelFormatAll(bpp))},
		{cmd: dcs.EnterNormalMode},
		{cmd: dcs.SetDisplayOn, wait: 120 * time.Millisecond},
	})
	if err != nil {
		return 0, err
	}
	return opts.AddressMode(), nil
}
