package mipidsi

import (
	"iter"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/mipidsi/dcs"
	"periph.io/x/devices/v3/mipidsi/pixel"
)

// ILI9341RGB565 is an ILI9341 240x320 controller with 16 bits per pixel.
//
// The ILI9341 only accepts RGB565 over a parallel bus. Over SPI use
// ILI9341RGB666.
type ILI9341RGB565 struct{}

// Init implements Model.
func (ILI9341RGB565) Init(d *dcs.DCS, delay Delay, opts *ModelOptions, rst gpio.PinOut) (dcs.SetAddressMode, error) {
	if err := reset(d, delay, rst, ili934xReset); err != nil {
		return 0, err
	}
	return initILI934x[pixel.RGB565](d, delay, opts)
}

// WritePixels implements Model.
func (ILI9341RGB565) WritePixels(d *dcs.DCS, colors iter.Seq[pixel.RGB565]) error {
	return writePixels(d, colors)
}

// DefaultOptions implements Model.
func (ILI9341RGB565) DefaultOptions() ModelOptions {
	return ili9341Options()
}

func (ILI9341RGB565) String() string {
	return "ILI9341RGB565"
}

// ILI9341RGB666 is an ILI9341 240x320 controller with 18 bits per pixel, sent
// as three bytes.
type ILI9341RGB666 struct{}

// Init implements Model.
func (ILI9341RGB666) Init(d *dcs.DCS, delay Delay, opts *ModelOptions, rst gpio.PinOut) (dcs.SetAddressMode, error) {
	if err := reset(d, delay, rst, ili934xReset); err != nil {
		return 0, err
	}
	return initILI934x[pixel.RGB666](d, delay, opts)
}

// WritePixels implements Model.
func (ILI9341RGB666) WritePixels(d *dcs.DCS, colors iter.Seq[pixel.RGB666]) error {
	return writePixels(d, colors)
}

// DefaultOptions implements Model.
func (ILI9341RGB666) DefaultOptions() ModelOptions {
	return ili9341Options()
}

func (ILI9341RGB666) String() string {
	return "ILI9341RGB666"
}

func ili9341Options() ModelOptions {
	return WithSizes(Size{W: 240, H: 320}, Size{W: 240, H: 320})
}

var (
	_ Model[pixel.RGB565] = ILI9341RGB565{}
	_ Model[pixel.RGB666] = ILI9341RGB666{}
)
