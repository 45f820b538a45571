package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetKind distingue activos serializados de insumos contados por stock.
type AssetKind string

const (
	AssetKindUnique     AssetKind = "unique"     // hardware serializado, no divisible
	AssetKindConsumable AssetKind = "consumable" // insumo contado por cantidad
)

// Valid indica si el tipo de activo es conocido.
func (k AssetKind) Valid() bool {
	return k == AssetKindUnique || k == AssetKindConsumable
}

// AssetStatus estado de un activo único. Los insumos no tienen estado.
type AssetStatus string

const (
	StatusNone        AssetStatus = ""
	StatusAvailable   AssetStatus = "available"
	StatusInUse       AssetStatus = "in_use"
	StatusInTransit   AssetStatus = "in_transit"
	StatusMaintenance AssetStatus = "maintenance"
	StatusDiscarded   AssetStatus = "discarded"
)

// Valid indica si el estado pertenece al conjunto cerrado de estados de un activo único.
func (s AssetStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusInUse, StatusInTransit, StatusMaintenance, StatusDiscarded:
		return true
	}
	return false
}

// Asset representa un activo del inventario de TI.
// Para Unique solo Status es mutable; para Consumable solo StockQuantity.
// La ubicación actual no se guarda aquí: se deriva del ledger de movimientos.
type Asset struct {
	ID            string
	Kind          AssetKind
	Name          string
	Category      string
	SerialNumber  *string // único si existe
	Tag           *string // etiqueta patrimonial, única si existe
	Status        AssetStatus
	StockQuantity int
	MinStock      int
	UnitValue     decimal.Decimal
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsUnique indica si el activo es serializado.
func (a *Asset) IsUnique() bool { return a.Kind == AssetKindUnique }

// IsConsumable indica si el activo es un insumo.
func (a *Asset) IsConsumable() bool { return a.Kind == AssetKindConsumable }

// LowStock indica si un insumo está por debajo de su stock mínimo.
func (a *Asset) LowStock() bool {
	return a.IsConsumable() && a.StockQuantity < a.MinStock
}

// Value devuelve la valorización simple del activo: cantidad * valor unitario para insumos,
// valor unitario para activos únicos no dados de baja.
func (a *Asset) Value() decimal.Decimal {
	if !a.Active {
		return decimal.Zero
	}
	if a.IsConsumable() {
		return a.UnitValue.Mul(decimal.NewFromInt(int64(a.StockQuantity)))
	}
	if a.Status == StatusDiscarded {
		return decimal.Zero
	}
	return a.UnitValue
}
