// Package dcs encodes the MIPI Display Command Set.
//
// Each command is a small value implementing Command: it knows its opcode and
// how to serialize its parameters. DCS writes commands to a dbi.Interface.
package dcs

import (
	"fmt"

	"periph.io/x/devices/v3/mipidsi/dbi"
)

// Command is a DCS instruction with its parameters.
type Command interface {
	// Instruction returns the command opcode.
	Instruction() byte
	// Fill writes the parameter bytes into buf and returns how many were
	// written. buf is at least MaxParams bytes long.
	Fill(buf []byte) int
}

// MaxParams is the largest number of parameter bytes a command in this
// package produces.
const MaxParams = 16

// DCS writes commands and data to a display interface.
type DCS struct {
	di  dbi.Interface
	buf [MaxParams]byte
}

// New returns a DCS writing to di.
func New(di dbi.Interface) *DCS {
	return &DCS{di: di}
}

// WriteCommand sends cmd and its parameters.
func (d *DCS) WriteCommand(cmd Command) error {
	n := cmd.Fill(d.buf[:])
	return d.WriteRaw(cmd.Instruction(), d.buf[:n])
}

// WriteRaw sends an instruction with arbitrary parameters. It is meant for
// manufacturer specific registers that are not part of the command set.
func (d *DCS) WriteRaw(instr byte, params []byte) error {
	return d.di.WriteCommand(instr, params)
}

// WriteData sends raw data bytes, e.g. pixels after WriteMemoryStart.
func (d *DCS) WriteData(data []byte) error {
	return d.di.WriteData(data)
}

// Interface returns the underlying display interface.
func (d *DCS) Interface() dbi.Interface {
	return d.di
}

// Name returns a short human readable name for an instruction, used in error
// messages.
func Name(instr byte) string {
	if s, ok := names[instr]; ok {
		return s
	}
	return fmt.Sprintf("0x%02X", instr)
}

var names = map[byte]string{
	0x00: "nop",
	0x01: "soft reset",
	0x10: "enter sleep mode",
	0x11: "exit sleep mode",
	0x12: "enter partial mode",
	0x13: "enter normal mode",
	0x20: "exit invert mode",
	0x21: "enter invert mode",
	0x28: "set display off",
	0x29: "set display on",
	0x2A: "set column address",
	0x2B: "set page address",
	0x2C: "write memory start",
	0x30: "set partial rows",
	0x33: "set scroll area",
	0x34: "set tear off",
	0x35: "set tear on",
	0x36: "set address mode",
	0x37: "set scroll start",
	0x38: "exit idle mode",
	0x39: "enter idle mode",
	0x3A: "set pixel format",
	0x3C: "write memory continue",
	0x44: "set tear scanline",
}
