package compliance

import (
	"math"

	"github.com/matzehuels/svgbudget/pkg/errors"
)

// Budget is a byte ceiling for a serialized document.
type Budget struct {
	MaxBytes int `json:"max_bytes"`
}

// BudgetFromKB converts a kilobyte ceiling (fractional allowed) into a
// Budget of floor(kb*1024) bytes.
func BudgetFromKB(kb float64) (Budget, error) {
	if err := errors.ValidateBudget(kb); err != nil {
		return Budget{}, err
	}
	return Budget{MaxBytes: int(math.Floor(kb * 1024))}, nil
}

// KB returns the ceiling in kilobytes.
func (b Budget) KB() float64 { return float64(b.MaxBytes) / 1024 }

// Measurement is the outcome of checking text against a budget.
type Measurement struct {
	Compliant bool
	Bytes     int
}

// SizeKB returns the measured size in kilobytes.
func (m Measurement) SizeKB() float64 { return float64(m.Bytes) / 1024 }

// Measure checks the UTF-8 length of text against the budget. Go strings are
// the exact bytes that get written, so no encoding step is needed.
func (b Budget) Measure(text string) Measurement {
	n := len(text)
	return Measurement{Compliant: n <= b.MaxBytes, Bytes: n}
}
