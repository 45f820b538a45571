package movement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeightedAverageCost(t *testing.T) {
	tests := []struct {
		name    string
		stock   int
		current string
		qty     int
		cost    string
		want    string
	}{
		{"sin stock previo toma el costo de entrada", 0, "0", 10, "8", "8"},
		{"mezcla ponderada", 10, "8", 10, "12", "10"},
		{"entrada pequeña pesa poco", 30, "10", 10, "14", "11"},
		{"stock resultante cero", 0, "5", 0, "9", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedAverageCost(tt.stock, decimal.RequireFromString(tt.current), tt.qty, decimal.RequireFromString(tt.cost))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}
