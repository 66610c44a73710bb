package mipidsi

import (
	"iter"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/mipidsi/dcs"
	"periph.io/x/devices/v3/mipidsi/pixel"
)

// ILI9342CRGB565 is an ILI9342C 320x240 controller with 16 bits per pixel.
//
// Like the ILI9341, RGB565 is only accepted over a parallel bus.
type ILI9342CRGB565 struct{}

// Init implements Model.
func (ILI9342CRGB565) Init(d *dcs.DCS, delay Delay, opts *ModelOptions, rst gpio.PinOut) (dcs.SetAddressMode, error) {
	if err := reset(d, delay, rst, ili934xReset); err != nil {
		return 0, err
	}
	return initILI934x[pixel.RGB565](d, delay, opts)
}

// WritePixels implements Model.
func (ILI9342CRGB565) WritePixels(d *dcs.DCS, colors iter.Seq[pixel.RGB565]) error {
	return writePixels(d, colors)
}

// DefaultOptions implements Model.
func (ILI9342CRGB565) DefaultOptions() ModelOptions {
	return ili9342cOptions()
}

func (ILI9342CRGB565) String() string {
	return "ILI9342CRGB565"
}

// ILI9342CRGB666 is an ILI9342C 320x240 controller with 18 bits per pixel.
type ILI9342CRGB666 struct{}

// Init implements Model.
func (ILI9342CRGB666) Init(d *dcs.DCS, delay Delay, opts *ModelOptions, rst gpio.PinOut) (dcs.SetAddressMode, error) {
	if err := reset(d, delay, rst, ili934xReset); err != nil {
		return 0, err
	}
	return initILI934x[pixel.RGB666](d, delay, opts)
}

// WritePixels implements Model.
func (ILI9342CRGB666) WritePixels(d *dcs.DCS, colors iter.Seq[pixel.RGB666]) error {
	return writePixels(d, colors)
}

// DefaultOptions implements Model.
func (ILI9342CRGB666) DefaultOptions() ModelOptions {
	return ili9342cOptions()
}

func (ILI9342CRGB666) String() string {
	return "ILI9342CRGB666"
}

// ili9342cOptions is landscape native: 320 columns by 240 rows.
func ili9342cOptions() ModelOptions {
	return WithSizes(Size{W: 320, H: 240}, Size{W: 320, H: 240})
}

var (
	_ Model[pixel.RGB565] = ILI9342CRGB565{}
	_ Model[pixel.RGB666] = ILI9342CRGB666{}
)
