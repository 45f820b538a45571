// Package custody deriva vistas de lectura (permanencia por ubicación, ubicación actual,
// cadena de custodia, traslados pendientes) a partir del ledger de movimientos.
// Todas las funciones son puras: no consultan la base ni modifican las entradas.
package custody

import (
	"sort"
	"time"

	"github.com/jhoicas/activos-api/internal/domain/entity"
)

const day = 24 * time.Hour

// DwellEntry movimiento con los días que el activo permaneció en esa situación.
type DwellEntry struct {
	Entry          *entity.MovementEntry
	DaysInLocation int
}

// SortDesc devuelve una copia de las entradas ordenadas de la más reciente a la más antigua.
// La clave es total: timestamp desc, luego las entradas que resuelven otra (Receipt) y por
// último ID desc. Así un Receipt queda antes que su Transfer aunque compartan instante y el
// resultado no depende del orden de entrada.
func SortDesc(entries []*entity.MovementEntry) []*entity.MovementEntry {
	out := make([]*entity.MovementEntry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		if ra, rb := a.ResolvesEntryID != nil, b.ResolvesEntryID != nil; ra != rb {
			return ra
		}
		return a.ID > b.ID
	})
	return out
}

// ForStore filtra las entradas ligadas a la tienda (destino, si no origen).
// Las entradas sin tienda quedan fuera de cualquier vista por tienda.
func ForStore(entries []*entity.MovementEntry, storeID string) []*entity.MovementEntry {
	out := make([]*entity.MovementEntry, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		if sid := e.StoreID(); sid != "" && sid == storeID {
			out = append(out, e)
		}
	}
	return out
}

// ArrivalDate devuelve el timestamp más antiguo del par (activo, tienda).
func ArrivalDate(entries []*entity.MovementEntry, storeID string) (time.Time, bool) {
	var first time.Time
	found := false
	for _, e := range ForStore(entries, storeID) {
		if !found || e.Timestamp.Before(first) {
			first = e.Timestamp
			found = true
		}
	}
	return first, found
}

// Dwell calcula los días de permanencia de cada entrada, ordenadas de forma descendente:
// diferencia en días completos contra la siguiente entrada más antigua; la más antigua
// se compara contra now.
func Dwell(entries []*entity.MovementEntry, now time.Time) []DwellEntry {
	sorted := SortDesc(entries)
	out := make([]DwellEntry, len(sorted))
	for i, e := range sorted {
		var diff time.Duration
		if i+1 < len(sorted) {
			diff = e.Timestamp.Sub(sorted[i+1].Timestamp)
		} else {
			diff = now.Sub(e.Timestamp)
		}
		out[i] = DwellEntry{Entry: e, DaysInLocation: wholeDays(diff)}
	}
	return out
}

func wholeDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / day)
}
