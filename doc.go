// Package mipidsi controls TFT-LCD panels driven by a MIPI DCS compatible
// controller.
//
// A controller is described by a Model: how it is reset and brought up, and
// how pixels are streamed to its frame memory. Models are provided for the
// ILI9341 and ILI9342C, each with 16-bit (RGB565) and 18-bit (RGB666) pixels.
// Dev wraps a Model and implements the display.Drawer interface from
// periph.io and the drivers.Displayer interface from TinyGo.
//
// # Hardware Connection
//
// Connect the display via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCK         → SPI Clock (SCLK)
//	SDI/MOSI    → SPI Data (MOSI)
//	D/C         → GPIO (any available pin)
//	CS          → SPI Chip Select
//	RESET       → Optional: GPIO for hardware reset
//	LED         → 3.3V or a PWM pin for the backlight
//
// Over SPI the ILI934x controllers only accept 18-bit pixels; use the RGB666
// models. RGB565 requires a parallel bus such as dbi.Parallel8.
//
// # Basic Usage
//
//	if _, err := host.Init(); err != nil {
//		log.Fatal(err)
//	}
//	p, err := spireg.Open("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	dev, err := mipidsi.NewSPI(p, gpioreg.ByName("GPIO25"), &mipidsi.Opts{
//		ColorOrder: mipidsi.BGR,
//		RST:        gpioreg.ByName("GPIO24"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Halt()
//
//	img := image.NewRGBA(dev.Bounds())
//	// ... draw into img ...
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// Other controllers or buses are combined through New:
//
//	bus, err := dbi.NewParallel8(&dbi.Parallel8Pins{...})
//	dev, err := mipidsi.New[pixel.RGB565](bus, mipidsi.ILI9342CRGB565{}, nil)
//
// # Reset
//
// When Opts.RST is set the controller is reset by pulling the pin low for
// 10µs. Without a reset pin the soft reset command is sent instead. Both paths
// wait 120ms before the bring-up sequence, which is identical for both.
//
// # Drawing
//
// Draw converts and streams pixels as it reads them from the source image,
// without a frame buffer. SetPixels takes any iter.Seq of pixels for callers
// generating colors on the fly:
//
//	r := image.Rect(0, 0, 10, 10)
//	dev.SetPixels(r, pixel.Repeat(pixel.RGB666{R: 0x3F}, 100))
//
// # Datasheets
//
// https://cdn-shop.adafruit.com/datasheets/ILI9341.pdf
//
// https://www.waveshare.com/w/upload/5/51/ILI9342C-ILITEK.pdf
package mipidsi
