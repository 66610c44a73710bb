package dbi

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"
)

// tx is one transaction as seen by the controller: the bytes and the level of
// the D/CX line while they were clocked.
type tx struct {
	DC gpio.Level
	W  []byte
}

// traceConn records every Tx along with the DC level at that moment.
type traceConn struct {
	dc     *gpiotest.Pin
	ops    []tx
	max    int
	failAt int // 1-based Tx number that fails, 0 never fails
	err    error
}

func (c *traceConn) String() string { return "traceConn" }

func (c *traceConn) Duplex() conn.Duplex { return conn.Half }

func (c *traceConn) MaxTxSize() int { return c.max }

func (c *traceConn) Tx(w, r []byte) error {
	if c.failAt != 0 && len(c.ops)+1 == c.failAt {
		return c.err
	}
	c.ops = append(c.ops, tx{DC: c.dc.Read(), W: append([]byte(nil), w...)})
	return nil
}

// countingPin counts the number of times Out is called.
type countingPin struct {
	gpiotest.Pin
	n   int
	err error
}

func (p *countingPin) Out(l gpio.Level) error {
	p.n++
	if p.err != nil {
		return p.err
	}
	return p.Pin.Out(l)
}

func TestNewSPI(t *testing.T) {
	tests := []struct {
		name    string
		dc      gpio.PinOut
		wantErr bool
	}{
		{"nil dc", nil, true},
		{"invalid dc", gpio.INVALID, true},
		{"valid dc", &gpiotest.Pin{N: "DC"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSPI(&spitest.Record{}, tt.dc, 0)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSPI() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSPIRecord(t *testing.T) {
	record := &spitest.Record{}
	s, err := NewSPI(record, &gpiotest.Pin{N: "DC"}, 0)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.WriteCommand(0x2A, []byte{0x00, 0x00, 0x00, 0xEF}); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteCommand(0x2C, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteData([]byte{0xF8, 0x00}); err != nil {
		t.Fatal(err)
	}

	want := []conntest.IO{
		{W: []byte{0x2A}},
		{W: []byte{0x00, 0x00, 0x00, 0xEF}},
		{W: []byte{0x2C}},
		{W: []byte{0xF8, 0x00}},
	}
	if len(record.Ops) != len(want) {
		t.Fatalf("recorded %d transactions, want %d", len(record.Ops), len(want))
	}
	for i := range want {
		if diff := cmp.Diff(record.Ops[i].W, want[i].W); diff != "" {
			t.Errorf("Tx %d difference (-got +want):\n%s", i, diff)
		}
	}
}

func TestSPIDataCommandLine(t *testing.T) {
	dc := &gpiotest.Pin{N: "DC"}
	c := &traceConn{dc: dc}
	s := newSPI(c, dc)

	if err := s.WriteCommand(0x11, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteCommand(0x3A, []byte{0x66}); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteData([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteData(nil); err != nil {
		t.Fatal(err)
	}

	want := []tx{
		{DC: gpio.Low, W: []byte{0x11}},
		{DC: gpio.Low, W: []byte{0x3A}},
		{DC: gpio.High, W: []byte{0x66}},
		{DC: gpio.High, W: []byte{1, 2, 3}},
	}
	if diff := cmp.Diff(c.ops, want); diff != "" {
		t.Errorf("transactions difference (-got +want):\n%s", diff)
	}
}

func TestSPIChunking(t *testing.T) {
	dc := &gpiotest.Pin{N: "DC"}
	c := &traceConn{dc: dc, max: 4}
	s := newSPI(c, dc)

	if err := s.WriteData([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}); err != nil {
		t.Fatal(err)
	}

	want := []tx{
		{DC: gpio.High, W: []byte{0, 1, 2, 3}},
		{DC: gpio.High, W: []byte{4, 5, 6, 7}},
		{DC: gpio.High, W: []byte{8, 9}},
	}
	if diff := cmp.Diff(c.ops, want); diff != "" {
		t.Errorf("transactions difference (-got +want):\n%s", diff)
	}
}

func TestSPIDefaultMaxTxSize(t *testing.T) {
	dc := &gpiotest.Pin{N: "DC"}
	if s := newSPI(&traceConn{dc: dc}, dc); s.maxTxSize != 4096 {
		t.Errorf("maxTxSize = %d, want 4096", s.maxTxSize)
	}
	if s := newSPI(&traceConn{dc: dc, max: 64}, dc); s.maxTxSize != 64 {
		t.Errorf("maxTxSize = %d, want 64", s.maxTxSize)
	}
}

func TestSPIDCCached(t *testing.T) {
	dc := &countingPin{Pin: gpiotest.Pin{N: "DC"}}
	s := newSPI(&traceConn{dc: &dc.Pin}, dc)

	for i := 0; i < 10; i++ {
		if err := s.WriteData([]byte{byte(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if dc.n != 1 {
		t.Errorf("DC driven %d times for a run of data writes, want 1", dc.n)
	}

	if err := s.WriteCommand(0x2C, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteData([]byte{0}); err != nil {
		t.Fatal(err)
	}
	if dc.n != 3 {
		t.Errorf("DC driven %d times, want 3", dc.n)
	}
}

func TestSPIErrors(t *testing.T) {
	errBus := errors.New("bus fault")
	errPin := errors.New("pin fault")

	t.Run("tx", func(t *testing.T) {
		dc := &gpiotest.Pin{N: "DC"}
		s := newSPI(&traceConn{dc: dc, failAt: 2, err: errBus}, dc)
		err := s.WriteCommand(0x36, []byte{0x48})
		if !errors.Is(err, errBus) {
			t.Errorf("WriteCommand() error = %v, want %v", err, errBus)
		}
	})

	t.Run("dc", func(t *testing.T) {
		dc := &countingPin{Pin: gpiotest.Pin{N: "DC"}, err: errPin}
		c := &traceConn{dc: &dc.Pin}
		s := newSPI(c, dc)
		err := s.WriteData([]byte{1})
		if !errors.Is(err, errPin) {
			t.Errorf("WriteData() error = %v, want %v", err, errPin)
		}
		if len(c.ops) != 0 {
			t.Errorf("%d bytes sent after DC failure", len(c.ops))
		}
		// A failed DC write is retried on the next call.
		dc.err = nil
		if err := s.WriteData([]byte{1}); err != nil {
			t.Fatal(err)
		}
		if dc.n != 2 {
			t.Errorf("DC driven %d times, want 2", dc.n)
		}
	})
}
