package dbi

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Parallel8 is an 8080-style 8-bit parallel transport bit-banged over GPIOs.
//
// Each byte is placed on D0..D7 and latched by the controller on the rising
// edge of WRX. D/CX is low for the command byte and high for parameters and
// data. CSX is optional; when given it is held low for the duration of each
// command or data write.
type Parallel8 struct {
	data [8]gpio.PinOut
	wr   gpio.PinOut
	dc   gpio.PinOut
	cs   gpio.PinOut

	// Byte currently on the bus, valid when primed is set.
	last   byte
	primed bool
}

// Parallel8Pins lists the GPIOs of an 8-bit parallel bus.
type Parallel8Pins struct {
	// D0 is the least significant data line.
	Data [8]gpio.PinOut
	WR   gpio.PinOut
	DC   gpio.PinOut
	// CS is optional, leave nil when chip select is tied low.
	CS gpio.PinOut
}

// NewParallel8 returns a transport driving the given pins. WR and CS are left
// high (inactive).
func NewParallel8(pins *Parallel8Pins) (*Parallel8, error) {
	for i, p := range pins.Data {
		if p == nil || p == gpio.INVALID {
			return nil, fmt.Errorf("dbi: data pin D%d is required", i)
		}
	}
	if pins.WR == nil || pins.WR == gpio.INVALID {
		return nil, errors.New("dbi: WR pin is required")
	}
	if pins.DC == nil || pins.DC == gpio.INVALID {
		return nil, errors.New("dbi: DC pin is required")
	}
	p := &Parallel8{data: pins.Data, wr: pins.WR, dc: pins.DC}
	if pins.CS != gpio.INVALID {
		p.cs = pins.CS
	}
	if err := p.out(p.wr, gpio.High, "WR"); err != nil {
		return nil, err
	}
	if p.cs != nil {
		if err := p.out(p.cs, gpio.High, "CS"); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// WriteCommand implements Interface.
func (p *Parallel8) WriteCommand(cmd byte, params []byte) error {
	if err := p.selectChip(); err != nil {
		return err
	}
	if err := p.out(p.dc, gpio.Low, "DC"); err != nil {
		return err
	}
	if err := p.writeByte(cmd); err != nil {
		return err
	}
	if len(params) > 0 {
		if err := p.out(p.dc, gpio.High, "DC"); err != nil {
			return err
		}
		for _, b := range params {
			if err := p.writeByte(b); err != nil {
				return err
			}
		}
	}
	return p.deselectChip()
}

// WriteData implements Interface.
func (p *Parallel8) WriteData(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := p.selectChip(); err != nil {
		return err
	}
	if err := p.out(p.dc, gpio.High, "DC"); err != nil {
		return err
	}
	for _, b := range data {
		if err := p.writeByte(b); err != nil {
			return err
		}
	}
	return p.deselectChip()
}

// String returns a description of the bus.
func (p *Parallel8) String() string {
	return fmt.Sprintf("dbi.Parallel8{D0: %s, WR: %s, DC: %s}", p.data[0], p.wr, p.dc)
}

// writeByte puts b on the data lines and strobes WR.
// Only lines whose level differs from the previous byte are driven.
func (p *Parallel8) writeByte(b byte) error {
	for i, pin := range p.data {
		mask := byte(1) << i
		if p.primed && (p.last^b)&mask == 0 {
			continue
		}
		if err := pin.Out(gpio.Level(b&mask != 0)); err != nil {
			p.primed = false
			return fmt.Errorf("dbi: failed to drive D%d: %w", i, err)
		}
	}
	p.last = b
	p.primed = true
	if err := p.out(p.wr, gpio.Low, "WR"); err != nil {
		return err
	}
	return p.out(p.wr, gpio.High, "WR")
}

func (p *Parallel8) selectChip() error {
	if p.cs == nil {
		return nil
	}
	return p.out(p.cs, gpio.Low, "CS")
}

func (p *Parallel8) deselectChip() error {
	if p.cs == nil {
		return nil
	}
	return p.out(p.cs, gpio.High, "CS")
}

func (p *Parallel8) out(pin gpio.PinOut, l gpio.Level, name string) error {
	if err := pin.Out(l); err != nil {
		return fmt.Errorf("dbi: failed to drive %s %s: %w", name, l, err)
	}
	return nil
}

var _ Interface = &Parallel8{}
