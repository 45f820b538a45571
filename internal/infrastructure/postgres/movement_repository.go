package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// constraint del índice único parcial sobre resolves_entry_id (ver migraciones).
const resolvesUniqueConstraint = "movement_entries_resolves_entry_id_key"

// MovementRepo ledger de movimientos sobre PostgreSQL. Solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, asset_id, type, quantity, origin_store_id, destination_store_id,
	actor_technician, counterparty_name, occurred_at, notes, resolves_entry_id,
	divergence_type, divergence_description`

// Append inserta el asiento. Un segundo Receipt del mismo traslado viola el índice único: ErrAlreadyResolved.
func (r *MovementRepo) Append(ctx context.Context, e *entity.MovementEntry) error {
	var divType, divDesc *string
	if e.Divergence != nil {
		divType = &e.Divergence.Type
		divDesc = &e.Divergence.Description
	}
	query := `
		INSERT INTO movement_entries (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.AssetID, string(e.Type), e.Quantity, e.OriginStoreID, e.DestinationStoreID,
		e.ActorTechnician, e.CounterpartyName, e.Timestamp, e.Notes, e.ResolvesEntryID,
		divType, divDesc,
	)
	if err != nil {
		code, constraint := pgCode(err)
		switch {
		case code == codeUniqueViolation && constraint == resolvesUniqueConstraint:
			return fmt.Errorf("%w: traslado %s", domain.ErrAlreadyResolved, deref(e.ResolvesEntryID))
		case code == codeUniqueViolation:
			return fmt.Errorf("%w: movimiento %s", domain.ErrDuplicate, e.ID)
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: activo o tienda del movimiento", domain.ErrNotFound)
		}
		return fmt.Errorf("insert movement entry: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.MovementEntry, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM movement_entries WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del traslado para serializar recepciones concurrentes.
func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.MovementEntry, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM movement_entries WHERE id = $1 FOR UPDATE`, id)
}

// FindResolution devuelve el Receipt que resuelve el traslado, o nil.
func (r *MovementRepo) FindResolution(ctx context.Context, transferID string) (*entity.MovementEntry, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM movement_entries WHERE resolves_entry_id = $1`, transferID)
}

// ListByAsset lista los movimientos del activo, del más reciente al más antiguo.
func (r *MovementRepo) ListByAsset(ctx context.Context, assetID string) ([]*entity.MovementEntry, error) {
	return r.list(ctx, `
		SELECT `+movementColumns+` FROM movement_entries
		WHERE asset_id = $1
		ORDER BY occurred_at DESC, (resolves_entry_id IS NOT NULL) DESC, id DESC`, assetID)
}

// ListPending lista traslados sin recepción, del más antiguo al más reciente.
func (r *MovementRepo) ListPending(ctx context.Context, f repository.PendingFilter) ([]*entity.MovementEntry, error) {
	query := `
		SELECT ` + movementColumns + ` FROM movement_entries t
		WHERE t.type = 'transfer'
		  AND NOT EXISTS (SELECT 1 FROM movement_entries r WHERE r.resolves_entry_id = t.id)`
	args := []any{}
	if f.DestinationStoreID != "" {
		args = append(args, f.DestinationStoreID)
		query += fmt.Sprintf(" AND t.destination_store_id = $%d", len(args))
	}
	if f.AssetID != "" {
		args = append(args, f.AssetID)
		query += fmt.Sprintf(" AND t.asset_id = $%d", len(args))
	}
	query += " ORDER BY t.occurred_at ASC, t.id ASC"
	return r.list(ctx, query, args...)
}

func (r *MovementRepo) getOne(ctx context.Context, query string, args ...any) (*entity.MovementEntry, error) {
	e, err := scanMovement(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement entry: %w", err)
	}
	return e, nil
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MovementEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movement entries: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.MovementEntry, 0)
	for rows.Next() {
		e, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.MovementEntry, error) {
	var (
		e               entity.MovementEntry
		typ             string
		divType, divDes *string
	)
	err := row.Scan(
		&e.ID, &e.AssetID, &typ, &e.Quantity, &e.OriginStoreID, &e.DestinationStoreID,
		&e.ActorTechnician, &e.CounterpartyName, &e.Timestamp, &e.Notes, &e.ResolvesEntryID,
		&divType, &divDes,
	)
	if err != nil {
		return nil, err
	}
	mt, err := entity.ParseMovementType(typ)
	if err != nil {
		return nil, err
	}
	e.Type = mt
	if divType != nil || divDes != nil {
		e.Divergence = &entity.Divergence{Type: deref(divType), Description: deref(divDes)}
	}
	return &e, nil
}
