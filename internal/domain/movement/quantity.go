package movement

import (
	"fmt"

	"github.com/jhoicas/activos-api/internal/domain"
)

// ResolveQuantity aplica la regla de cantidad de una transición.
// requested es la cantidad pedida (0 = no indicada), available el stock actual del insumo y
// ceiling la cantidad trasladada (solo para QuantityReceipt).
// Devuelve la cantidad efectiva y el delta a aplicar al stock (0 para activos únicos).
func ResolveQuantity(rule QuantityRule, requested *int, available, ceiling int) (qty int, delta int, err error) {
	switch rule {
	case QuantityForcedOne:
		return 1, 0, nil
	case QuantityDebit:
		q := 0
		if requested != nil {
			q = *requested
		}
		if q < 1 || q > available {
			return 0, 0, fmt.Errorf("%w: solicitado %d, disponible %d", domain.ErrInsufficientStock, q, available)
		}
		return q, -q, nil
	case QuantityCredit:
		if requested == nil || *requested < 1 {
			return 0, 0, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
		}
		return *requested, *requested, nil
	case QuantityReceipt:
		q := ceiling
		if requested != nil {
			q = *requested
		}
		if q < 0 || q > ceiling {
			return 0, 0, fmt.Errorf("%w: recibido %d, trasladado %d", domain.ErrInvalidInput, q, ceiling)
		}
		return q, q, nil
	}
	return 0, 0, fmt.Errorf("%w: regla de cantidad desconocida", domain.ErrInvalidInput)
}
