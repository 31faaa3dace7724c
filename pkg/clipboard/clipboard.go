// Package clipboard copies export text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when the host has no usable clipboard.
var ErrUnavailable = errors.New("clipboard unavailable")

// System writes to the desktop clipboard.
type System struct{}

// NewSystem returns the system clipboard.
func NewSystem() *System {
	return &System{}
}

// WriteAll replaces the clipboard contents with text.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
