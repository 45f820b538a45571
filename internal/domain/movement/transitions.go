// Package movement contiene la tabla de transiciones que gobierna todo cambio de estado o de
// stock de un activo. Los casos de uso la consultan una sola vez por operación.
package movement

import (
	"fmt"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// Operation operación solicitada sobre un activo.
type Operation string

const (
	OpTransfer     Operation = "transfer"
	OpReceipt      Operation = "receipt"
	OpCheckOut     Operation = "check_out"
	OpCheckIn      Operation = "check_in"
	OpMaintenance  Operation = "maintenance"
	OpDisposal     Operation = "disposal"
	OpStatusChange Operation = "status_change"
	OpStockEntry   Operation = "stock_entry"
)

// QuantityRule regla de cantidad aplicada por la transición.
type QuantityRule int

const (
	// QuantityForcedOne: activo único, la cantidad siempre es 1 (no divisible).
	QuantityForcedOne QuantityRule = iota
	// QuantityDebit: 1 <= q <= stock actual; resta del stock.
	QuantityDebit
	// QuantityCredit: q >= 1; suma al stock.
	QuantityCredit
	// QuantityReceipt: 0 <= q <= cantidad trasladada; suma al stock.
	QuantityReceipt
)

// Transition resultado de consultar la tabla.
type Transition struct {
	Next         entity.AssetStatus // StatusNone para insumos
	Quantity     QuantityRule
	MovementType entity.MovementType
	// TargetFromInput: el estado destino lo indica el administrador (OpStatusChange).
	TargetFromInput bool
}

type key struct {
	kind   entity.AssetKind
	status entity.AssetStatus
	op     Operation
}

var table = map[key]Transition{
	// Activos únicos: el traslado es una bandera de estado exclusiva.
	{entity.AssetKindUnique, entity.StatusAvailable, OpTransfer}:    {Next: entity.StatusInTransit, Quantity: QuantityForcedOne, MovementType: entity.MovementTypeTransfer},
	{entity.AssetKindUnique, entity.StatusInTransit, OpReceipt}:     {Next: entity.StatusAvailable, Quantity: QuantityForcedOne, MovementType: entity.MovementTypeReceipt},
	{entity.AssetKindUnique, entity.StatusAvailable, OpCheckOut}:    {Next: entity.StatusInUse, Quantity: QuantityForcedOne, MovementType: entity.MovementTypeExit},
	{entity.AssetKindUnique, entity.StatusInUse, OpCheckIn}:         {Next: entity.StatusAvailable, Quantity: QuantityForcedOne, MovementType: entity.MovementTypeEntry},
	{entity.AssetKindUnique, entity.StatusMaintenance, OpCheckIn}:   {Next: entity.StatusAvailable, Quantity: QuantityForcedOne, MovementType: entity.MovementTypeEntry},
	{entity.AssetKindUnique, entity.StatusAvailable, OpMaintenance}: {Next: entity.StatusMaintenance, Quantity: QuantityForcedOne, MovementType: entity.MovementTypeMaintenance},
	{entity.AssetKindUnique, entity.StatusInUse, OpMaintenance}:     {Next: entity.StatusMaintenance, Quantity: QuantityForcedOne, MovementType: entity.MovementTypeMaintenance},
	{entity.AssetKindUnique, entity.StatusAvailable, OpDisposal}:    {Next: entity.StatusDiscarded, Quantity: QuantityForcedOne, MovementType: entity.MovementTypeDisposal},
	{entity.AssetKindUnique, entity.StatusInUse, OpDisposal}:        {Next: entity.StatusDiscarded, Quantity: QuantityForcedOne, MovementType: entity.MovementTypeDisposal},
	{entity.AssetKindUnique, entity.StatusMaintenance, OpDisposal}:  {Next: entity.StatusDiscarded, Quantity: QuantityForcedOne, MovementType: entity.MovementTypeDisposal},

	// Insumos: el traslado es un débito de cantidad, divisible y no exclusivo.
	{entity.AssetKindConsumable, entity.StatusNone, OpTransfer}:   {Quantity: QuantityDebit, MovementType: entity.MovementTypeTransfer},
	{entity.AssetKindConsumable, entity.StatusNone, OpReceipt}:    {Quantity: QuantityReceipt, MovementType: entity.MovementTypeReceipt},
	{entity.AssetKindConsumable, entity.StatusNone, OpCheckOut}:   {Quantity: QuantityDebit, MovementType: entity.MovementTypeExit},
	{entity.AssetKindConsumable, entity.StatusNone, OpDisposal}:   {Quantity: QuantityDebit, MovementType: entity.MovementTypeDisposal},
	{entity.AssetKindConsumable, entity.StatusNone, OpStockEntry}: {Quantity: QuantityCredit, MovementType: entity.MovementTypeStockEntry},
}

// Lookup devuelve la transición para (tipo de activo, estado actual, operación).
// Sin entrada en la tabla la operación no está permitida: ErrInvalidStateTransition.
func Lookup(kind entity.AssetKind, current entity.AssetStatus, op Operation) (Transition, error) {
	if kind == entity.AssetKindConsumable {
		current = entity.StatusNone
	}
	if op == OpStatusChange {
		if kind != entity.AssetKindUnique || current == entity.StatusInTransit {
			return Transition{}, invalid(kind, current, op)
		}
		return Transition{Quantity: QuantityForcedOne, MovementType: entity.MovementTypeStatusChange, TargetFromInput: true}, nil
	}
	t, ok := table[key{kind, current, op}]
	if !ok {
		return Transition{}, invalid(kind, current, op)
	}
	return t, nil
}

// ValidStatusTarget indica si un administrador puede fijar el estado directamente.
// in_transit solo se alcanza con un traslado y solo se abandona con una recepción.
func ValidStatusTarget(target entity.AssetStatus) bool {
	return target.Valid() && target != entity.StatusInTransit
}

func invalid(kind entity.AssetKind, current entity.AssetStatus, op Operation) error {
	return fmt.Errorf("%w: %s en estado %q no admite %s", domain.ErrInvalidStateTransition, kind, current, op)
}
