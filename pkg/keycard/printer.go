// Package keycard talks to the keycard printing hardware. The front desk
// runs a small print server next to the encoder; in dev mode a mock
// printer stands in for it.
package keycard

import "errors"

// ErrPrinterUnavailable is returned when the print server cannot be reached
// or rejects the job
var ErrPrinterUnavailable = errors.New("keycard printer unavailable")

// Printer defines the interface for producing keycards
type Printer interface {
	// PrintKeycard encodes and prints a keycard for the given room
	PrintKeycard(roomNumber int) error

	// Name returns the name of the printer implementation
	Name() string
}
