package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/custody"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// MovementRepository ledger en memoria: solo se agrega.
type MovementRepository struct {
	b *binding
}

var _ repository.MovementRepository = (*MovementRepository)(nil)

// Append agrega el asiento. Un segundo Receipt para el mismo Transfer falla con ErrAlreadyResolved,
// igual que el índice único de resolves_entry_id en Postgres.
func (r *MovementRepository) Append(_ context.Context, entry *entity.MovementEntry) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.assets[entry.AssetID]; !ok {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, entry.AssetID)
		}
		for i := range st.movements {
			if st.movements[i].ID == entry.ID {
				return fmt.Errorf("%w: movimiento %s", domain.ErrDuplicate, entry.ID)
			}
		}
		if entry.ResolvesEntryID != nil {
			if _, ok := st.resolutions[*entry.ResolvesEntryID]; ok {
				return fmt.Errorf("%w: traslado %s", domain.ErrAlreadyResolved, *entry.ResolvesEntryID)
			}
			st.resolutions[*entry.ResolvesEntryID] = entry.ID
		}
		st.movements = append(st.movements, *entry)
		return nil
	})
}

func (r *MovementRepository) GetByID(_ context.Context, id string) (*entity.MovementEntry, error) {
	var out *entity.MovementEntry
	err := r.b.read(func(st *state) error {
		out = find(st, id)
		return nil
	})
	return out, err
}

func (r *MovementRepository) GetForUpdate(ctx context.Context, id string) (*entity.MovementEntry, error) {
	return r.GetByID(ctx, id)
}

func (r *MovementRepository) FindResolution(_ context.Context, transferID string) (*entity.MovementEntry, error) {
	var out *entity.MovementEntry
	err := r.b.read(func(st *state) error {
		if id, ok := st.resolutions[transferID]; ok {
			out = find(st, id)
		}
		return nil
	})
	return out, err
}

func (r *MovementRepository) ListByAsset(_ context.Context, assetID string) ([]*entity.MovementEntry, error) {
	var out []*entity.MovementEntry
	err := r.b.read(func(st *state) error {
		out = byAsset(st, assetID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return custody.SortDesc(out), nil
}

func (r *MovementRepository) ListPending(_ context.Context, f repository.PendingFilter) ([]*entity.MovementEntry, error) {
	var all []*entity.MovementEntry
	err := r.b.read(func(st *state) error {
		if f.AssetID != "" {
			all = byAsset(st, f.AssetID)
			return nil
		}
		all = make([]*entity.MovementEntry, 0, len(st.movements))
		for i := range st.movements {
			e := st.movements[i]
			all = append(all, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	pending := custody.Pending(all)
	if f.DestinationStoreID == "" {
		return pending, nil
	}
	out := make([]*entity.MovementEntry, 0, len(pending))
	for _, p := range pending {
		if p.DestinationStoreID != nil && *p.DestinationStoreID == f.DestinationStoreID {
			out = append(out, p)
		}
	}
	return out, nil
}

func find(st *state, id string) *entity.MovementEntry {
	for i := range st.movements {
		if st.movements[i].ID == id {
			e := st.movements[i]
			return &e
		}
	}
	return nil
}

func byAsset(st *state, assetID string) []*entity.MovementEntry {
	out := make([]*entity.MovementEntry, 0)
	for i := range st.movements {
		if st.movements[i].AssetID == assetID {
			e := st.movements[i]
			out = append(out, &e)
		}
	}
	return out
}
