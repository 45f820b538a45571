package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// AssetRepository implementación en memoria del registro de activos.
type AssetRepository struct {
	b *binding
}

var _ repository.AssetRepository = (*AssetRepository)(nil)

func (r *AssetRepository) Create(_ context.Context, asset *entity.Asset) error {
	return r.b.write(func(st *state) error {
		if _, ok := st.assets[asset.ID]; ok {
			return fmt.Errorf("%w: activo %s", domain.ErrDuplicate, asset.ID)
		}
		for _, a := range st.assets {
			if sameIdentifier(a.SerialNumber, asset.SerialNumber) || sameIdentifier(a.Tag, asset.Tag) {
				return fmt.Errorf("%w: número de serie o etiqueta ya registrado", domain.ErrDuplicate)
			}
		}
		st.assets[asset.ID] = *asset
		return nil
	})
}

func (r *AssetRepository) GetByID(_ context.Context, id string) (*entity.Asset, error) {
	var out *entity.Asset
	err := r.b.read(func(st *state) error {
		if a, ok := st.assets[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: la transacción en memoria ya es exclusiva.
func (r *AssetRepository) GetForUpdate(ctx context.Context, id string) (*entity.Asset, error) {
	return r.GetByID(ctx, id)
}

func (r *AssetRepository) GetByIdentifier(_ context.Context, code string) (*entity.Asset, error) {
	var out *entity.Asset
	err := r.b.read(func(st *state) error {
		for _, a := range st.assets {
			if (a.SerialNumber != nil && *a.SerialNumber == code) || (a.Tag != nil && *a.Tag == code) {
				a := a
				out = &a
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *AssetRepository) List(_ context.Context, f repository.AssetFilter) ([]*entity.Asset, error) {
	var out []*entity.Asset
	err := r.b.read(func(st *state) error {
		for _, a := range st.assets {
			if f.Kind != "" && a.Kind != f.Kind {
				continue
			}
			if f.Status != "" && a.Status != f.Status {
				continue
			}
			if f.OnlyActive && !a.Active {
				continue
			}
			if f.LowStock && !a.LowStock() {
				continue
			}
			a := a
			out = append(out, &a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return paginate(out, f.Limit, f.Offset), nil
}

func (r *AssetRepository) UpdateStatus(_ context.Context, id string, status entity.AssetStatus) error {
	return r.b.write(func(st *state) error {
		a, ok := st.assets[id]
		if !ok {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
		}
		a.Status = status
		a.UpdatedAt = time.Now()
		st.assets[id] = a
		return nil
	})
}

func (r *AssetRepository) AdjustStock(_ context.Context, id string, delta int) error {
	return r.b.write(func(st *state) error {
		a, ok := st.assets[id]
		if !ok {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
		}
		if a.StockQuantity+delta < 0 {
			return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, a.StockQuantity, -delta)
		}
		a.StockQuantity += delta
		a.UpdatedAt = time.Now()
		st.assets[id] = a
		return nil
	})
}

func (r *AssetRepository) UpdateUnitValue(_ context.Context, id string, value decimal.Decimal) error {
	return r.b.write(func(st *state) error {
		a, ok := st.assets[id]
		if !ok {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
		}
		a.UnitValue = value
		a.UpdatedAt = time.Now()
		st.assets[id] = a
		return nil
	})
}

func (r *AssetRepository) Deactivate(_ context.Context, id string) error {
	return r.b.write(func(st *state) error {
		a, ok := st.assets[id]
		if !ok {
			return fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
		}
		if a.Status == entity.StatusInTransit {
			return fmt.Errorf("%w: el activo está en tránsito", domain.ErrInvalidStateTransition)
		}
		a.Active = false
		a.UpdatedAt = time.Now()
		st.assets[id] = a
		return nil
	})
}

func sameIdentifier(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	if offset > 0 {
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
