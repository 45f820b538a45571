package entity

import (
	"fmt"
	"time"
)

// MovementType tipo cerrado de movimiento del ledger.
type MovementType string

const (
	MovementTypeEntry        MovementType = "entry"         // reingreso (check-in)
	MovementTypeExit         MovementType = "exit"          // salida a un tercero (check-out)
	MovementTypeTransfer     MovementType = "transfer"      // envío a otra tienda, queda pendiente
	MovementTypeReceipt      MovementType = "receipt"       // recepción que cierra un traslado
	MovementTypeMaintenance  MovementType = "maintenance"   // envío a mantenimiento
	MovementTypeDisposal     MovementType = "disposal"      // baja
	MovementTypeStatusChange MovementType = "status_change" // cambio administrativo de estado
	MovementTypeStockEntry   MovementType = "stock_entry"   // ingreso de stock de insumos
)

var movementTypes = map[MovementType]struct{}{
	MovementTypeEntry:        {},
	MovementTypeExit:         {},
	MovementTypeTransfer:     {},
	MovementTypeReceipt:      {},
	MovementTypeMaintenance:  {},
	MovementTypeDisposal:     {},
	MovementTypeStatusChange: {},
	MovementTypeStockEntry:   {},
}

// ParseMovementType convierte un string en MovementType. Falla con tipos desconocidos.
func ParseMovementType(s string) (MovementType, error) {
	t := MovementType(s)
	if _, ok := movementTypes[t]; !ok {
		return "", fmt.Errorf("tipo de movimiento desconocido: %q", s)
	}
	return t, nil
}

// Divergence discrepancia registrada al recibir un traslado. Es dato, nunca bloquea.
type Divergence struct {
	Type        string // damaged, missing, wrong_item, ...
	Description string
}

// MovementEntry registro inmutable del ledger. Se crea una sola vez por transición de estado,
// en la misma transacción que la mutación del activo.
type MovementEntry struct {
	ID                 string
	AssetID            string
	Type               MovementType
	Quantity           int
	OriginStoreID      *string
	DestinationStoreID *string
	ActorTechnician    string
	CounterpartyName   string
	Timestamp          time.Time
	Notes              string
	ResolvesEntryID    *string // solo Receipt: traslado que cierra
	Divergence         *Divergence
}

// StoreID devuelve la tienda a la que está ligado el movimiento: destino, si no origen.
// Vacío para movimientos globales sin tienda.
func (m *MovementEntry) StoreID() string {
	if m.DestinationStoreID != nil && *m.DestinationStoreID != "" {
		return *m.DestinationStoreID
	}
	if m.OriginStoreID != nil && *m.OriginStoreID != "" {
		return *m.OriginStoreID
	}
	return ""
}
