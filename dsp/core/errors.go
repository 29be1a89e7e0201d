package core

import (
	"errors"
	"fmt"
)

// ErrConfiguration is wrapped by every error reported from a constructor or
// parameter setter. Processing calls never return it.
var ErrConfiguration = errors.New("configuration error")

// Errorf formats a message and wraps it with ErrConfiguration.
func Errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
