package custody

import (
	"time"

	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// Tipos de custodio.
const (
	HolderTechnician   = "technician"
	HolderStore        = "store"
	HolderCounterparty = "counterparty"
	HolderMaintenance  = "maintenance"
)

// Segment tramo de la cadena de custodia. Until nil = custodio actual.
type Segment struct {
	HolderKind string
	Holder     string
	StoreID    string
	EntryID    string
	Since      time.Time
	Until      *time.Time
}

// Chain reconstruye la cadena de custodia en orden cronológico.
// Transfer: el técnico lleva el activo. Receipt/Entry: la tienda. Exit: el tercero.
// Maintenance: el proveedor o el técnico. Disposal cierra la cadena.
func Chain(entries []*entity.MovementEntry) []Segment {
	sorted := SortDesc(entries)
	out := make([]Segment, 0, len(sorted))
	closeLast := func(at time.Time) {
		if n := len(out); n > 0 && out[n-1].Until == nil {
			t := at
			out[n-1].Until = &t
		}
	}
	lastStore := ""
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		seg := Segment{EntryID: e.ID, Since: e.Timestamp, StoreID: e.StoreID()}
		switch e.Type {
		case entity.MovementTypeTransfer:
			seg.HolderKind = HolderTechnician
			seg.Holder = e.ActorTechnician
		case entity.MovementTypeReceipt, entity.MovementTypeEntry:
			seg.HolderKind = HolderStore
			if seg.StoreID == "" {
				seg.StoreID = lastStore
			}
			seg.Holder = seg.StoreID
		case entity.MovementTypeExit:
			seg.HolderKind = HolderCounterparty
			seg.Holder = e.CounterpartyName
		case entity.MovementTypeMaintenance:
			seg.HolderKind = HolderMaintenance
			seg.Holder = e.CounterpartyName
			if seg.Holder == "" {
				seg.Holder = e.ActorTechnician
			}
		case entity.MovementTypeDisposal:
			closeLast(e.Timestamp)
			continue
		default:
			continue
		}
		if seg.HolderKind == HolderStore {
			lastStore = seg.StoreID
		}
		closeLast(e.Timestamp)
		out = append(out, seg)
	}
	return out
}
