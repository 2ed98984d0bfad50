package types

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMalformedInput       = errors.New("malformed input")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrIO                   = errors.New("io error")
)

func MalformedInputf(format string, args ...any) error {
	return kindf(ErrMalformedInput, format, args...)
}

func InvalidConfigurationf(format string, args ...any) error {
	return kindf(ErrInvalidConfiguration, format, args...)
}

// IOError marks err as an I/O failure while keeping it matchable with errors.Is.
func IOError(err error, format string, args ...any) error {
	return errors.WithStack(fmt.Errorf("%w: %s: %w", ErrIO, fmt.Sprintf(format, args...), err))
}

func kindf(kind error, format string, args ...any) error {
	return errors.WithStack(fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)))
}
