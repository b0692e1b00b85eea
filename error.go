package lazy

import (
	"errors"
	"fmt"

	"github.com/dacapoday/lazy/compare"
)

var (
	ErrInvalidArgument = compare.ErrInvalidArgument
	ErrInvalidState    = errors.New("invalid state")
	ErrIncomparable    = compare.ErrIncomparable
	ErrOutOfRange      = errors.New("out of range")
)

var (
	ErrNoElements   = fmt.Errorf("%w: sequence contains no elements", ErrInvalidState)
	ErrMoreThanOne  = fmt.Errorf("%w: sequence contains more than one matching element", ErrInvalidState)
	ErrInvalidCast  = fmt.Errorf("%w: invalid cast", ErrInvalidState)
	ErrDuplicateKey = fmt.Errorf("%w: duplicate key", ErrInvalidState)
)

// ArgumentError reports a missing or unusable argument detected while a
// pipeline is composed. Operators panic with it before any enumeration.
type ArgumentError struct {
	Op     string
	Arg    string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("lazy.%s: %s: %s %s", e.Op, ErrInvalidArgument, e.Arg, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func mustArg(op, arg string, ok bool) {
	if !ok {
		panic(&ArgumentError{Op: op, Arg: arg, Reason: "is nil"})
	}
}

func mustCount(op, arg string, n int) {
	if n < 0 {
		panic(&ArgumentError{Op: op, Arg: arg, Reason: fmt.Sprintf("is negative (%d)", n)})
	}
}
