package okr

import (
	"errors"
	"testing"
)

func TestRollup(t *testing.T) {
	tests := []struct {
		name     string
		children []float64
		want     float64
		ok       bool
	}{
		{"two children", []float64{100, 50}, 75, true},
		{"single child", []float64{40}, 40, true},
		{"all zero", []float64{0, 0, 0}, 0, true},
		{"rounds to two decimals", []float64{100, 0, 0}, 33.33, true},
		{"rounds up", []float64{100, 100, 0}, 66.67, true},
		{"no children", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Rollup(tt.children)
			if ok != tt.ok {
				t.Fatalf("Rollup() ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Rollup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateProgress(t *testing.T) {
	for _, v := range []float64{0, 50, 100, 99.99} {
		if err := ValidateProgress(v); err != nil {
			t.Errorf("ValidateProgress(%v) failed: %v", v, err)
		}
	}
	for _, v := range []float64{-0.01, 100.01, 200} {
		err := ValidateProgress(v)
		if !errors.Is(err, ErrInvalidProgressRange) {
			t.Errorf("ValidateProgress(%v) = %v, want ErrInvalidProgressRange", v, err)
		}
	}
}

func TestRoundProgress(t *testing.T) {
	if got := RoundProgress(100.0 / 3.0); got != 33.33 {
		t.Errorf("RoundProgress(100/3) = %v, want 33.33", got)
	}
	if got := RoundProgress(75.0); got != 75.0 {
		t.Errorf("RoundProgress(75.0) = %v, want 75.0", got)
	}
}
