// Package dbi implements the MIPI Display Bus Interface transports used to
// talk to DCS display controllers.
//
// A transport only knows how to send a command byte followed by parameter
// bytes, and how to send a run of raw data bytes. It does not buffer, retry or
// interpret anything it sends.
//
// Three transports are provided:
//
//   - SPI: type C, 4-line serial (SCL, SDA, CS and a data/command GPIO).
//   - Parallel8: type B, 8080-style 8-bit parallel bus driven through GPIOs.
//   - TinyGoSPI: type C on a TinyGo drivers.SPI bus.
package dbi

// Interface is a write-only command/data channel to a display controller.
type Interface interface {
	// WriteCommand sends the command byte cmd, followed by params as
	// parameter bytes.
	WriteCommand(cmd byte, params []byte) error
	// WriteData sends data as raw data bytes, e.g. pixel data after a
	// memory write command.
	WriteData(data []byte) error
}
