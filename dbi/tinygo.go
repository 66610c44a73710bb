package dbi

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
)

// OutputPin is a digital output as exposed by TinyGo's machine.Pin.
type OutputPin interface {
	High()
	Low()
}

// TinyGoSPI is the 4-line serial transport on a TinyGo SPI bus. The bus must
// already be configured by the caller.
type TinyGoSPI struct {
	bus drivers.SPI
	dc  OutputPin
	cs  OutputPin
}

// NewTinyGoSPI returns a transport writing to bus. cs may be nil when chip
// select is handled by the bus or tied low.
func NewTinyGoSPI(bus drivers.SPI, dc, cs OutputPin) (*TinyGoSPI, error) {
	if bus == nil {
		return nil, errors.New("dbi: SPI bus is required")
	}
	if dc == nil {
		return nil, errors.New("dbi: a data/command pin is required for 4-line SPI")
	}
	t := &TinyGoSPI{bus: bus, dc: dc, cs: cs}
	if t.cs != nil {
		t.cs.High()
	}
	return t, nil
}

// WriteCommand implements Interface.
func (t *TinyGoSPI) WriteCommand(cmd byte, params []byte) error {
	t.selectChip()
	defer t.deselectChip()
	t.dc.Low()
	if err := t.bus.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("dbi: SPI write failed: %w", err)
	}
	if len(params) == 0 {
		return nil
	}
	t.dc.High()
	if err := t.bus.Tx(params, nil); err != nil {
		return fmt.Errorf("dbi: SPI write failed: %w", err)
	}
	return nil
}

// WriteData implements Interface.
func (t *TinyGoSPI) WriteData(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	t.selectChip()
	defer t.deselectChip()
	t.dc.High()
	if err := t.bus.Tx(data, nil); err != nil {
		return fmt.Errorf("dbi: SPI write failed: %w", err)
	}
	return nil
}

func (t *TinyGoSPI) selectChip() {
	if t.cs != nil {
		t.cs.Low()
	}
}

func (t *TinyGoSPI) deselectChip() {
	if t.cs != nil {
		t.cs.High()
	}
}

var _ Interface = &TinyGoSPI{}
