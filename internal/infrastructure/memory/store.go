// Package memory implementa los repositorios y el TxRunner en memoria.
// Cada transacción trabaja sobre una copia del estado y la publica solo si fn termina sin error,
// de modo que un fallo en cualquier paso no deja mutaciones parciales.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

type state struct {
	assets    map[string]entity.Asset
	stores    map[string]entity.Store
	movements []entity.MovementEntry
	// resolutions: id del Transfer -> id del Receipt que lo cierra.
	resolutions map[string]string
}

func newState() *state {
	return &state{
		assets:      map[string]entity.Asset{},
		stores:      map[string]entity.Store{},
		movements:   []entity.MovementEntry{},
		resolutions: map[string]string{},
	}
}

// clone copia el estado. Los asientos del ledger son inmutables, así que basta copiar el slice.
func (s *state) clone() *state {
	c := &state{
		assets:      make(map[string]entity.Asset, len(s.assets)),
		stores:      make(map[string]entity.Store, len(s.stores)),
		movements:   make([]entity.MovementEntry, len(s.movements), len(s.movements)+1),
		resolutions: make(map[string]string, len(s.resolutions)),
	}
	for k, v := range s.assets {
		c.assets[k] = v
	}
	for k, v := range s.stores {
		c.stores[k] = v
	}
	copy(c.movements, s.movements)
	for k, v := range s.resolutions {
		c.resolutions[k] = v
	}
	return c
}

// Store base de datos en memoria. Las transacciones se serializan con un único mutex.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	assetRepo repository.AssetRepository,
	movRepo repository.MovementRepository,
	storeRepo repository.StoreRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.state.clone()
	b := &binding{tx: tx}
	if err := fn(&AssetRepository{b: b}, &MovementRepository{b: b}, &StoreRepository{b: b}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// Assets repositorio de activos fuera de transacción (cada llamada es atómica por sí misma).
func (s *Store) Assets() *AssetRepository { return &AssetRepository{b: &binding{db: s}} }

// Movements repositorio del ledger fuera de transacción.
func (s *Store) Movements() *MovementRepository { return &MovementRepository{b: &binding{db: s}} }

// Stores repositorio de tiendas fuera de transacción.
func (s *Store) Stores() *StoreRepository { return &StoreRepository{b: &binding{db: s}} }

// binding ata un repositorio al estado de una transacción o, si tx es nil, al almacén con su mutex.
type binding struct {
	db *Store
	tx *state
}

func (b *binding) read(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.db.mu.Lock()
	defer b.db.mu.Unlock()
	return fn(b.db.state)
}

// write fuera de transacción aplica fn sobre una copia y la publica solo si no hay error.
func (b *binding) write(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.db.mu.Lock()
	defer b.db.mu.Unlock()
	next := b.db.state.clone()
	if err := fn(next); err != nil {
		return err
	}
	b.db.state = next
	return nil
}
