package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValued(t *testing.T) {
	tests := []struct {
		name      string
		input     float64
		wantValid bool
		wantValue float64
	}{
		{name: "positive value", input: 42.5, wantValid: true, wantValue: 42.5},
		{name: "negative value", input: -10, wantValid: true, wantValue: -10},
		{name: "zero collapses to marker", input: 0, wantValid: false},
		{name: "NaN collapses to marker", input: math.NaN(), wantValid: false},
		{name: "Inf collapses to marker", input: math.Inf(1), wantValid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Valued(tt.input)
			assert.Equal(t, tt.wantValid, a.Valid())
			if tt.wantValid {
				v, ok := a.Float()
				assert.True(t, ok)
				assert.Equal(t, tt.wantValue, v)
			}
		})
	}
}

func TestNumKeepsZero(t *testing.T) {
	a := Num(0)
	assert.True(t, a.Valid())
	assert.Equal(t, 0.0, a.Value())
}

func TestCell(t *testing.T) {
	assert.Equal(t, "NULL", NA().Cell("NULL"))
	assert.Equal(t, "No Sales", NA().Cell("No Sales"))
	assert.Equal(t, "12.5", Num(12.5).Cell("NULL"))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		cell      string
		wantValid bool
		wantValue float64
	}{
		{cell: "150.25", wantValid: true, wantValue: 150.25},
		{cell: " 7 ", wantValid: true, wantValue: 7},
		{cell: "NULL", wantValid: false},
		{cell: "No Sales", wantValid: false},
		{cell: "", wantValid: false},
		{cell: "0", wantValid: false},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			a := ParseAmount(tt.cell)
			assert.Equal(t, tt.wantValid, a.Valid())
			if tt.wantValid {
				assert.Equal(t, tt.wantValue, a.Value())
			}
		})
	}
}

func TestCellRoundTrip(t *testing.T) {
	original := Num(1234.56)
	parsed := ParseAmount(original.Cell("NULL"))
	assert.True(t, parsed.Valid())
	assert.Equal(t, original.Value(), parsed.Value())

	assert.False(t, ParseAmount(NA().Cell("NULL")).Valid())
}
