package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

// AssetRepo implementación de AssetRepository sobre PostgreSQL (usable con pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

const assetColumns = `id, kind, name, category, serial_number, tag, status, stock_quantity, min_stock,
	unit_value, active, created_at, updated_at`

// Create persiste un activo. Serie o etiqueta repetida: ErrDuplicate.
func (r *AssetRepo) Create(ctx context.Context, a *entity.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		a.ID, string(a.Kind), a.Name, a.Category, a.SerialNumber, a.Tag, string(a.Status),
		a.StockQuantity, a.MinStock, a.UnitValue, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de serie o etiqueta ya registrado", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por ID.
func (r *AssetRepo) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	return r.getOne(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
}

// GetForUpdate obtiene el activo y bloquea la fila (SELECT FOR UPDATE).
func (r *AssetRepo) GetForUpdate(ctx context.Context, id string) (*entity.Asset, error) {
	return r.getOne(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR UPDATE`, id)
}

// GetByIdentifier busca por número de serie o etiqueta.
func (r *AssetRepo) GetByIdentifier(ctx context.Context, code string) (*entity.Asset, error) {
	return r.getOne(ctx, `
		SELECT `+assetColumns+` FROM assets
		WHERE serial_number = $1 OR tag = $1
		ORDER BY active DESC, created_at DESC
		LIMIT 1`, code)
}

// List lista activos con filtros, ordenados por nombre.
func (r *AssetRepo) List(ctx context.Context, f repository.AssetFilter) ([]*entity.Asset, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Kind != "" {
		add("kind = $%d", string(f.Kind))
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.OnlyActive {
		where = append(where, "active")
	}
	if f.LowStock {
		where = append(where, "kind = 'consumable' AND stock_quantity < min_stock")
	}

	query := `SELECT ` + assetColumns + ` FROM assets`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name, id"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// UpdateStatus fija el estado de un activo único.
func (r *AssetRepo) UpdateStatus(ctx context.Context, id string, status entity.AssetStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE assets SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update asset status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
	}
	return nil
}

// AdjustStock suma delta al stock solo si el resultado no queda negativo.
// El CHECK (stock_quantity >= 0) de la tabla es la última barrera antes del commit.
func (r *AssetRepo) AdjustStock(ctx context.Context, id string, delta int) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE assets SET stock_quantity = stock_quantity + $2, updated_at = now()
		WHERE id = $1 AND stock_quantity + $2 >= 0`, id, delta)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: activo %s", domain.ErrInsufficientStock, id)
		}
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
	}
	return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, a.StockQuantity, -delta)
}

// UpdateUnitValue fija el valor unitario del activo.
func (r *AssetRepo) UpdateUnitValue(ctx context.Context, id string, value decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE assets SET unit_value = $2, updated_at = now() WHERE id = $1`, id, value)
	if err != nil {
		return fmt.Errorf("update unit value: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
	}
	return nil
}

// Deactivate marca el activo como inactivo (baja lógica). La condición de estado va en el
// mismo UPDATE para que un traslado concurrente no deje un activo inactivo en tránsito.
func (r *AssetRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE assets SET active = false, updated_at = now()
		WHERE id = $1 AND status <> $2`, id, string(entity.StatusInTransit))
	if err != nil {
		return fmt.Errorf("deactivate asset: %w", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
	}
	return fmt.Errorf("%w: el activo está en tránsito", domain.ErrInvalidStateTransition)
}

func (r *AssetRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Asset, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var (
		a      entity.Asset
		kind   string
		status string
	)
	err := row.Scan(
		&a.ID, &kind, &a.Name, &a.Category, &a.SerialNumber, &a.Tag, &status,
		&a.StockQuantity, &a.MinStock, &a.UnitValue, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Kind = entity.AssetKind(kind)
	a.Status = entity.AssetStatus(status)
	return &a, nil
}
