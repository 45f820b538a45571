package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// StoreRepository tiendas en memoria.
type StoreRepository struct {
	b *binding
}

var _ repository.StoreRepository = (*StoreRepository)(nil)

func (r *StoreRepository) Create(_ context.Context, store *entity.Store) error {
	return r.b.write(func(st *state) error {
		for _, s := range st.stores {
			if s.ID == store.ID || s.Code == store.Code {
				return fmt.Errorf("%w: tienda %s", domain.ErrDuplicate, store.Code)
			}
		}
		st.stores[store.ID] = *store
		return nil
	})
}

func (r *StoreRepository) GetByID(_ context.Context, id string) (*entity.Store, error) {
	var out *entity.Store
	err := r.b.read(func(st *state) error {
		if s, ok := st.stores[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *StoreRepository) List(_ context.Context, limit, offset int) ([]*entity.Store, error) {
	var out []*entity.Store
	err := r.b.read(func(st *state) error {
		for _, s := range st.stores {
			s := s
			out = append(out, &s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return paginate(out, limit, offset), nil
}
