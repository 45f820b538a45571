package entity

import "time"

// Tipos de tienda.
const (
	StoreKindWarehouse = "warehouse" // bodega central
	StoreKindRetail    = "retail"    // tienda
)

// Store ubicación de origen/destino de los movimientos.
type Store struct {
	ID        string
	Code      string
	Name      string
	Address   string
	Kind      string
	CreatedAt time.Time
}
