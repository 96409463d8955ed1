package rutas

import (
	"testing"
	"time"
)

func TestRound(t *testing.T) {
	tests := []struct {
		num      float64
		decimals []int
		want     float64
	}{
		{3.14159, nil, 3.14},
		{3.14159, []int{4}, 3.1416},
		{3.14159, []int{0}, 3},
		{0.125, nil, 0.13},
		{-0.125, nil, -0.13},
		{100, nil, 100},
	}

	for _, tt := range tests {
		got := round(tt.num, tt.decimals...)
		if got != tt.want {
			t.Errorf("round(%v, %v) = %v, se esperaba %v", tt.num, tt.decimals, got, tt.want)
		}
	}
}

func TestAhoraStrFormato(t *testing.T) {
	s := ahoraStr()
	if _, err := time.Parse(formatoFecha, s); err != nil {
		t.Errorf("ahoraStr() = %q no cumple el formato %q: %v", s, formatoFecha, err)
	}
}
