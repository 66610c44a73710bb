package mipidsi

import "fmt"

// InitError is returned when resetting or bringing up the controller fails.
//
// The controller is left in an unknown state; the only recovery is to run the
// initialization again from the start.
type InitError struct {
	// Op names the step that failed, e.g. "reset pin low" or "exit sleep
	// mode".
	Op string
	// Err is the error of the reset pin or the display interface.
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("mipidsi: init: %s: %v", e.Op, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Error is returned when a command or pixel write fails after initialization.
//
// Bytes sent before the failure are not retracted: when streaming pixels the
// addressed window must be assumed partially written.
type Error struct {
	Op string
	// Pixel is the index in the stream of the pixel whose write failed, or -1
	// when the failure is not a pixel write.
	Pixel int
	Err   error
}

func (e *Error) Error() string {
	if e.Pixel >= 0 {
		return fmt.Sprintf("mipidsi: %s: pixel %d: %v", e.Op, e.Pixel, e.Err)
	}
	return fmt.Sprintf("mipidsi: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
