package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
	"github.com/jhoicas/activos-api/pkg/barcode"
)

// AssetUseCase casos de uso del registro de activos (administración).
// Estado y stock no se editan aquí: solo cambian mediante movimientos.
type AssetUseCase struct {
	repo repository.AssetRepository
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(repo repository.AssetRepository) *AssetUseCase {
	return &AssetUseCase{repo: repo}
}

// Create registra un activo. Único: requiere número de serie o etiqueta, nace available y sin stock.
// Insumo: sin serie, sin estado, con stock inicial.
func (uc *AssetUseCase) Create(ctx context.Context, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	kind := entity.AssetKind(in.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: tipo de activo %q", domain.ErrInvalidInput, in.Kind)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if in.UnitValue.IsNegative() {
		return nil, fmt.Errorf("%w: unit_value no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.StockQuantity < 0 || in.MinStock < 0 {
		return nil, fmt.Errorf("%w: las cantidades no pueden ser negativas", domain.ErrInvalidInput)
	}

	now := time.Now()
	asset := &entity.Asset{
		ID:           uuid.New().String(),
		Kind:         kind,
		Name:         strings.TrimSpace(in.Name),
		Category:     strings.TrimSpace(in.Category),
		SerialNumber: barcode.NormalizePtr(&in.SerialNumber),
		Tag:          barcode.NormalizePtr(&in.Tag),
		UnitValue:    in.UnitValue,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch kind {
	case entity.AssetKindUnique:
		if asset.SerialNumber == nil && asset.Tag == nil {
			return nil, fmt.Errorf("%w: un activo único requiere número de serie o etiqueta", domain.ErrInvalidInput)
		}
		if in.StockQuantity != 0 {
			return nil, fmt.Errorf("%w: un activo único no maneja stock", domain.ErrInvalidInput)
		}
		asset.Status = entity.StatusAvailable
	case entity.AssetKindConsumable:
		if asset.SerialNumber != nil {
			return nil, fmt.Errorf("%w: un insumo no lleva número de serie", domain.ErrInvalidInput)
		}
		asset.StockQuantity = in.StockQuantity
		asset.MinStock = in.MinStock
	}

	if err := uc.repo.Create(ctx, asset); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// GetByID obtiene un activo por ID.
func (uc *AssetUseCase) GetByID(ctx context.Context, id string) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, nil
	}
	return toAssetResponse(asset), nil
}

// GetByBarcode busca por número de serie o etiqueta (normalizados antes de buscar).
func (uc *AssetUseCase) GetByBarcode(ctx context.Context, code string) (*dto.AssetResponse, error) {
	normalized := barcode.Normalize(code)
	if normalized == "" {
		return nil, fmt.Errorf("%w: código vacío", domain.ErrInvalidInput)
	}
	asset, err := uc.repo.GetByIdentifier(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, nil
	}
	return toAssetResponse(asset), nil
}

// List lista activos con filtros. Por defecto solo activos vigentes.
func (uc *AssetUseCase) List(ctx context.Context, q dto.AssetListQuery) (*dto.AssetListResponse, error) {
	q.DefaultPage()
	list, err := uc.repo.List(ctx, repository.AssetFilter{
		Kind:       entity.AssetKind(q.Kind),
		Status:     entity.AssetStatus(q.Status),
		OnlyActive: !q.IncludeInactive,
		LowStock:   q.LowStock,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAssetResponse(a))
	}
	return &dto.AssetListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Count: len(items)},
	}, nil
}

// Deactivate retira el activo del registro. Sus movimientos permanecen en el ledger.
func (uc *AssetUseCase) Deactivate(ctx context.Context, id string) error {
	asset, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if asset == nil {
		return fmt.Errorf("%w: activo %s", domain.ErrNotFound, id)
	}
	if asset.Status == entity.StatusInTransit {
		return fmt.Errorf("%w: el activo está en tránsito", domain.ErrInvalidStateTransition)
	}
	return uc.repo.Deactivate(ctx, id)
}

// Valuation suma el valor de los activos vigentes.
func (uc *AssetUseCase) Valuation(ctx context.Context) (*dto.ValuationResponse, error) {
	list, err := uc.repo.List(ctx, repository.AssetFilter{OnlyActive: true})
	if err != nil {
		return nil, err
	}
	out := &dto.ValuationResponse{
		Total:           decimal.Zero,
		UniqueTotal:     decimal.Zero,
		ConsumableTotal: decimal.Zero,
	}
	for _, a := range list {
		v := a.Value()
		if a.IsConsumable() {
			out.ConsumableTotal = out.ConsumableTotal.Add(v)
		} else {
			out.UniqueTotal = out.UniqueTotal.Add(v)
		}
		out.Total = out.Total.Add(v)
		out.AssetCount++
	}
	return out, nil
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	if a == nil {
		return nil
	}
	return &dto.AssetResponse{
		ID:            a.ID,
		Kind:          string(a.Kind),
		Name:          a.Name,
		Category:      a.Category,
		SerialNumber:  a.SerialNumber,
		Tag:           a.Tag,
		Status:        string(a.Status),
		StockQuantity: a.StockQuantity,
		MinStock:      a.MinStock,
		LowStock:      a.LowStock(),
		UnitValue:     a.UnitValue,
		Active:        a.Active,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
