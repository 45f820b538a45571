package movement

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado de un insumo tras una entrada de stock:
//
//	((stock * costo actual) + (cantidad * costo entrada)) / (stock + cantidad)
//
// Con stock resultante cero devuelve cero.
func WeightedAverageCost(stock int, current decimal.Decimal, qty int, unitCost decimal.Decimal) decimal.Decimal {
	total := stock + qty
	if total <= 0 {
		return decimal.Zero
	}
	s := decimal.NewFromInt(int64(stock))
	q := decimal.NewFromInt(int64(qty))
	return s.Mul(current).Add(q.Mul(unitCost)).Div(decimal.NewFromInt(int64(total)))
}
