package custody

import (
	"time"

	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// Location ubicación actual derivada del último Transfer/Receipt del activo.
type Location struct {
	Known     bool
	StoreID   string
	InTransit bool
	Since     time.Time
	EntryID   string
}

// CurrentLocation busca el Transfer o Receipt más reciente. Un Transfer sin recepción
// posterior deja el activo en tránsito hacia su destino.
func CurrentLocation(entries []*entity.MovementEntry) Location {
	for _, e := range SortDesc(entries) {
		if e.Type != entity.MovementTypeTransfer && e.Type != entity.MovementTypeReceipt {
			continue
		}
		loc := Location{Known: true, Since: e.Timestamp, EntryID: e.ID}
		if e.DestinationStoreID != nil {
			loc.StoreID = *e.DestinationStoreID
		}
		loc.InTransit = e.Type == entity.MovementTypeTransfer
		return loc
	}
	return Location{}
}

// Pending devuelve los Transfer sin un Receipt que los resuelva, del más antiguo al más reciente.
func Pending(entries []*entity.MovementEntry) []*entity.MovementEntry {
	resolved := make(map[string]struct{})
	for _, e := range entries {
		if e != nil && e.Type == entity.MovementTypeReceipt && e.ResolvesEntryID != nil {
			resolved[*e.ResolvesEntryID] = struct{}{}
		}
	}
	sorted := SortDesc(entries)
	out := make([]*entity.MovementEntry, 0)
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		if e.Type != entity.MovementTypeTransfer {
			continue
		}
		if _, ok := resolved[e.ID]; ok {
			continue
		}
		out = append(out, e)
	}
	return out
}
