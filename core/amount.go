package core

import (
	"errors"
	"fmt"
	"math"
)

// Amount is a non-negative fixed-point quantity of currency measured in
// nano-units, the base quantum of the ledger. It is a newtype over uint64:
// callers are never allowed to perform raw arithmetic on it, only the
// checked Sum/Sub below.
type Amount uint64

// ZERO is the additive identity.
const ZERO Amount = 0

// semToNano is the number of nano-units in one SEM (NANO_SEM per SEM).
const semToNano = 1_000_000_000

// NanoSem returns an Amount representing n nano-units.
func NanoSem(n uint64) Amount { return Amount(n) }

// Sem returns an Amount representing n whole SEM (n * 10^9 nano-units).
// It panics on overflow, since callers pass compile-time/config constants,
// never untrusted input, through this constructor.
func Sem(n uint64) Amount {
	if n != 0 && n > math.MaxUint64/semToNano {
		panic("core: Sem(n) overflows Amount")
	}
	return Amount(n * semToNano)
}

// ErrArithmeticOverflow and ErrArithmeticUnderflow indicate the executor
// itself misordered its balance checks and must never occur once a
// caller respects the guard sequence in TransactionExecutor.Execute.
// They are not transaction failures.
var (
	ErrArithmeticOverflow  = errors.New("core: arithmetic overflow")
	ErrArithmeticUnderflow = errors.New("core: arithmetic underflow")
)

// Sum returns a+b, or ErrArithmeticOverflow if the true sum would exceed
// the representable range of Amount.
func Sum(a, b Amount) (Amount, error) {
	if a > math.MaxUint64-b {
		return 0, fmt.Errorf("%w: %d + %d", ErrArithmeticOverflow, a, b)
	}
	return a + b, nil
}

// Sub returns a-b, or ErrArithmeticUnderflow if b > a.
func Sub(a, b Amount) (Amount, error) {
	if b > a {
		return 0, fmt.Errorf("%w: %d - %d", ErrArithmeticUnderflow, a, b)
	}
	return a - b, nil
}

// MustSum is Sum, panicking on overflow. It is used where an overflow can
// only mean an executor bug (e.g. adding a vote amount to a vote edge or a
// delegate's tally).
func MustSum(a, b Amount) Amount {
	v, err := Sum(a, b)
	if err != nil {
		panic(err)
	}
	return v
}

// Less reports whether a is strictly less than b.
func (a Amount) Less(b Amount) bool { return a < b }

// String renders the amount as a bare integer count of nano-units.
func (a Amount) String() string { return fmt.Sprintf("%d", uint64(a)) }
