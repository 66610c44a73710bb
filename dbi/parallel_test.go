package dbi

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// latch is a byte as seen by the controller on a rising WR edge.
type latch struct {
	DC gpio.Level
	CS gpio.Level
	B  byte
}

// strobePin calls onRise on every low to high transition.
type strobePin struct {
	gpiotest.Pin
	onRise func()
}

func (p *strobePin) Out(l gpio.Level) error {
	prev := p.Pin.Read()
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	if prev == gpio.Low && l == gpio.High {
		p.onRise()
	}
	return nil
}

// failPin fails every Out call.
type failPin struct {
	gpiotest.Pin
	err error
}

func (p *failPin) Out(gpio.Level) error {
	return p.err
}

type fakeParallelBus struct {
	data    [8]*countingPin
	wr      *strobePin
	dc, cs  *gpiotest.Pin
	latched []latch
}

func newFakeParallelBus() *fakeParallelBus {
	b := &fakeParallelBus{
		dc: &gpiotest.Pin{N: "DC"},
		cs: &gpiotest.Pin{N: "CS"},
	}
	for i := range b.data {
		b.data[i] = &countingPin{Pin: gpiotest.Pin{N: "D"}}
	}
	b.wr = &strobePin{Pin: gpiotest.Pin{N: "WR", L: gpio.High}}
	b.wr.onRise = func() {
		var v byte
		for i, p := range b.data {
			if p.Read() == gpio.High {
				v |= 1 << i
			}
		}
		b.latched = append(b.latched, latch{DC: b.dc.Read(), CS: b.cs.Read(), B: v})
	}
	return b
}

func (b *fakeParallelBus) pins() *Parallel8Pins {
	p := &Parallel8Pins{WR: b.wr, DC: b.dc, CS: b.cs}
	for i := range b.data {
		p.Data[i] = b.data[i]
	}
	return p
}

func TestNewParallel8(t *testing.T) {
	b := newFakeParallelBus()

	t.Run("valid", func(t *testing.T) {
		if _, err := NewParallel8(b.pins()); err != nil {
			t.Fatal(err)
		}
		if b.cs.Read() != gpio.High {
			t.Error("CS not left inactive")
		}
		if len(b.latched) != 0 {
			t.Errorf("%d bytes latched by constructor", len(b.latched))
		}
	})

	t.Run("missing data pin", func(t *testing.T) {
		pins := b.pins()
		pins.Data[3] = nil
		if _, err := NewParallel8(pins); err == nil {
			t.Error("expected error for missing D3")
		}
	})

	t.Run("missing dc", func(t *testing.T) {
		pins := b.pins()
		pins.DC = gpio.INVALID
		if _, err := NewParallel8(pins); err == nil {
			t.Error("expected error for missing DC")
		}
	})

	t.Run("optional cs", func(t *testing.T) {
		pins := b.pins()
		pins.CS = nil
		p, err := NewParallel8(pins)
		if err != nil {
			t.Fatal(err)
		}
		if p.cs != nil {
			t.Error("cs should be nil")
		}
	})
}

func TestParallel8Write(t *testing.T) {
	b := newFakeParallelBus()
	p, err := NewParallel8(b.pins())
	if err != nil {
		t.Fatal(err)
	}

	if err := p.WriteCommand(0x3A, []byte{0x55}); err != nil {
		t.Fatal(err)
	}
	if err := p.WriteCommand(0x2C, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.WriteData([]byte{0xF8, 0x00, 0xA5}); err != nil {
		t.Fatal(err)
	}

	want := []latch{
		{DC: gpio.Low, CS: gpio.Low, B: 0x3A},
		{DC: gpio.High, CS: gpio.Low, B: 0x55},
		{DC: gpio.Low, CS: gpio.Low, B: 0x2C},
		{DC: gpio.High, CS: gpio.Low, B: 0xF8},
		{DC: gpio.High, CS: gpio.Low, B: 0x00},
		{DC: gpio.High, CS: gpio.Low, B: 0xA5},
	}
	if diff := cmp.Diff(b.latched, want); diff != "" {
		t.Errorf("latched bytes difference (-got +want):\n%s", diff)
	}
	if b.cs.Read() != gpio.High {
		t.Error("CS left active after write")
	}
}

func TestParallel8SkipsUnchangedLines(t *testing.T) {
	b := newFakeParallelBus()
	p, err := NewParallel8(b.pins())
	if err != nil {
		t.Fatal(err)
	}

	if err := p.WriteData([]byte{0x0F, 0x0F, 0x0E}); err != nil {
		t.Fatal(err)
	}
	// First byte drives all 8 lines, the repeat drives none, 0x0E changes D0.
	if got := b.data[0].n; got != 2 {
		t.Errorf("D0 driven %d times, want 2", got)
	}
	if got := b.data[7].n; got != 1 {
		t.Errorf("D7 driven %d times, want 1", got)
	}
	if len(b.latched) != 3 {
		t.Errorf("latched %d bytes, want 3", len(b.latched))
	}
}

func TestParallel8Errors(t *testing.T) {
	errPin := errors.New("pin fault")
	b := newFakeParallelBus()
	pins := b.pins()
	p, err := NewParallel8(pins)
	if err != nil {
		t.Fatal(err)
	}
	p.data[5] = &failPin{Pin: gpiotest.Pin{N: "D5"}, err: errPin}

	if err := p.WriteData([]byte{0xFF}); !errors.Is(err, errPin) {
		t.Errorf("WriteData() error = %v, want %v", err, errPin)
	}
	if len(b.latched) != 0 {
		t.Errorf("%d bytes latched after a failed data line", len(b.latched))
	}
}
