package domain

import (
	"math"
	"strconv"
	"strings"
)

// Amount is a quantity that is either a finite non-zero number or explicitly
// not applicable. "No cost data" and "genuinely zero value" are different
// business facts, so sums must skip the marker instead of coercing it to 0.
// The zero Amount is not applicable.
type Amount struct {
	value float64
	valid bool
}

// Num wraps a plain number as a valid Amount, keeping zero as zero.
func Num(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return Amount{value: v, valid: true}
}

// Valued applies the valuation policy: zero and non-finite results collapse
// to the not-applicable marker.
func Valued(v float64) Amount {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return Amount{value: v, valid: true}
}

// NA returns the not-applicable marker.
func NA() Amount {
	return Amount{}
}

// Valid reports whether the Amount carries a number.
func (a Amount) Valid() bool {
	return a.valid
}

// Value returns the carried number, 0 for the marker. Callers that must not
// treat the marker as zero should check Valid first or use Float.
func (a Amount) Value() float64 {
	return a.value
}

// Float returns the number and whether it is applicable.
func (a Amount) Float() (float64, bool) {
	return a.value, a.valid
}

// Cell renders the Amount for a sheet cell, substituting naLabel for the
// marker (e.g. "NULL" in value columns, "No Sales" in DOH columns).
func (a Amount) Cell(naLabel string) string {
	if !a.valid {
		return naLabel
	}
	return FormatCell(a.value)
}

// ParseAmount reads a sheet cell back into an Amount. Any non-numeric text
// (including the sentinel labels) is the marker.
func ParseAmount(cell string) Amount {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return Amount{}
	}
	return Valued(v)
}

// FormatCell is the canonical numeric cell encoding.
func FormatCell(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
