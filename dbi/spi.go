package dbi

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// DefaultSPIFrequency is used by NewSPI when no frequency is given.
//
// The ILI934x family accepts writes up to 10MHz per datasheet, most panels
// run fine well above that.
const DefaultSPIFrequency = 10 * physic.MegaHertz

// SPI is a 4-line serial transport: the D/CX line is a separate GPIO, low for
// the command byte and high for parameters and data.
type SPI struct {
	c         conn.Conn
	dc        gpio.PinOut
	maxTxSize int

	// Last level written to dc, valid when dcKnown is set.
	dcLevel gpio.Level
	dcKnown bool
}

// NewSPI connects to p and returns a transport using dc as the data/command
// line.
//
// The port is configured in Mode0, 8 bits per word. f is the clock
// frequency, 0 selects DefaultSPIFrequency.
func NewSPI(p spi.Port, dc gpio.PinOut, f physic.Frequency) (*SPI, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("dbi: a data/command pin is required for 4-line SPI")
	}
	if f == 0 {
		f = DefaultSPIFrequency
	}
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("dbi: failed to connect SPI: %w", err)
	}
	return newSPI(c, dc), nil
}

func newSPI(c conn.Conn, dc gpio.PinOut) *SPI {
	// Get the maxTxSize from the conn if it implements the conn.Limits
	// interface, otherwise use 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize <= 0 {
		maxTxSize = 4096
	}
	return &SPI{c: c, dc: dc, maxTxSize: maxTxSize}
}

// WriteCommand implements Interface.
func (s *SPI) WriteCommand(cmd byte, params []byte) error {
	if err := s.setDC(gpio.Low); err != nil {
		return err
	}
	if err := s.tx([]byte{cmd}); err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	return s.WriteData(params)
}

// WriteData implements Interface.
func (s *SPI) WriteData(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := s.setDC(gpio.High); err != nil {
		return err
	}
	for len(data) > 0 {
		n := min(len(data), s.maxTxSize)
		if err := s.tx(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// String returns a description of the underlying connection.
func (s *SPI) String() string {
	return fmt.Sprintf("dbi.SPI{%s, DC: %s}", s.c, s.dc)
}

func (s *SPI) setDC(l gpio.Level) error {
	if s.dcKnown && s.dcLevel == l {
		return nil
	}
	if err := s.dc.Out(l); err != nil {
		s.dcKnown = false
		return fmt.Errorf("dbi: failed to drive DC %s: %w", l, err)
	}
	s.dcLevel = l
	s.dcKnown = true
	return nil
}

func (s *SPI) tx(w []byte) error {
	if err := s.c.Tx(w, nil); err != nil {
		return fmt.Errorf("dbi: SPI write failed: %w", err)
	}
	return nil
}

var _ Interface = &SPI{}
