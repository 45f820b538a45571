package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/custody"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
	"github.com/jhoicas/activos-api/pkg/barcode"
)

// HistoryUseCase consultas de solo lectura sobre el ledger: historial con permanencia,
// ubicación actual, cadena de custodia y traslados pendientes.
type HistoryUseCase struct {
	assetRepo repository.AssetRepository
	movRepo   repository.MovementRepository
	storeRepo repository.StoreRepository
	now       func() time.Time
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(
	assetRepo repository.AssetRepository,
	movRepo repository.MovementRepository,
	storeRepo repository.StoreRepository,
) *HistoryUseCase {
	return &HistoryUseCase{assetRepo: assetRepo, movRepo: movRepo, storeRepo: storeRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *HistoryUseCase) WithClock(now func() time.Time) *HistoryUseCase {
	uc.now = now
	return uc
}

// AssetHistory devuelve los movimientos del activo del más reciente al más antiguo con los días
// de permanencia. Con storeID solo entran los movimientos ligados a esa tienda y se informa
// la fecha de llegada.
func (uc *HistoryUseCase) AssetHistory(ctx context.Context, assetID, storeID string) (*dto.AssetHistoryResponse, error) {
	entries, err := uc.entries(ctx, assetID)
	if err != nil {
		return nil, err
	}
	out := &dto.AssetHistoryResponse{
		AssetID:  assetID,
		StoreID:  storeID,
		Location: toLocationResponse(assetID, custody.CurrentLocation(entries)),
	}
	view := entries
	if storeID != "" {
		view = custody.ForStore(entries, storeID)
		if arrival, ok := custody.ArrivalDate(entries, storeID); ok {
			out.ArrivalDate = &arrival
		}
	}
	dwell := custody.Dwell(view, uc.now())
	out.Entries = make([]dto.HistoryEntryResponse, 0, len(dwell))
	for _, d := range dwell {
		out.Entries = append(out.Entries, dto.HistoryEntryResponse{
			MovementResponse: ToMovementResponse(d.Entry),
			DaysInLocation:   d.DaysInLocation,
		})
	}
	return out, nil
}

// Location ubicación actual del activo según el último Transfer/Receipt.
func (uc *HistoryUseCase) Location(ctx context.Context, assetID string) (*dto.LocationResponse, error) {
	entries, err := uc.entries(ctx, assetID)
	if err != nil {
		return nil, err
	}
	loc := toLocationResponse(assetID, custody.CurrentLocation(entries))
	return &loc, nil
}

// Custody cadena de custodia en orden cronológico.
func (uc *HistoryUseCase) Custody(ctx context.Context, assetID string) (*dto.CustodyResponse, error) {
	entries, err := uc.entries(ctx, assetID)
	if err != nil {
		return nil, err
	}
	chain := custody.Chain(entries)
	out := &dto.CustodyResponse{AssetID: assetID, Segments: make([]dto.CustodySegmentResponse, 0, len(chain))}
	for _, s := range chain {
		out.Segments = append(out.Segments, dto.CustodySegmentResponse{
			HolderKind: s.HolderKind,
			Holder:     s.Holder,
			StoreID:    s.StoreID,
			EntryID:    s.EntryID,
			Since:      s.Since,
			Until:      s.Until,
		})
	}
	return out, nil
}

// PendingByStore traslados en camino hacia la tienda, del más antiguo al más reciente.
func (uc *HistoryUseCase) PendingByStore(ctx context.Context, storeID string) (*dto.PendingTransferListResponse, error) {
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, storeID)
	}
	pending, err := uc.movRepo.ListPending(ctx, repository.PendingFilter{DestinationStoreID: storeID})
	if err != nil {
		return nil, err
	}
	return uc.toPendingList(ctx, pending, nil)
}

// PendingByBarcode traslados pendientes del activo con ese número de serie o etiqueta.
// Es la consulta que hace la tienda al escanear lo que llega.
func (uc *HistoryUseCase) PendingByBarcode(ctx context.Context, code string) (*dto.PendingTransferListResponse, error) {
	normalized := barcode.Normalize(code)
	if normalized == "" {
		return nil, fmt.Errorf("%w: código vacío", domain.ErrInvalidInput)
	}
	asset, err := uc.assetRepo.GetByIdentifier(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: código %s", domain.ErrNotFound, normalized)
	}
	pending, err := uc.movRepo.ListPending(ctx, repository.PendingFilter{AssetID: asset.ID})
	if err != nil {
		return nil, err
	}
	return uc.toPendingList(ctx, pending, asset)
}

func (uc *HistoryUseCase) entries(ctx context.Context, assetID string) ([]*entity.MovementEntry, error) {
	asset, err := uc.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: activo %s", domain.ErrNotFound, assetID)
	}
	return uc.movRepo.ListByAsset(ctx, assetID)
}

func (uc *HistoryUseCase) toPendingList(ctx context.Context, pending []*entity.MovementEntry, known *entity.Asset) (*dto.PendingTransferListResponse, error) {
	now := uc.now()
	assets := map[string]*entity.Asset{}
	if known != nil {
		assets[known.ID] = known
	}
	out := &dto.PendingTransferListResponse{Items: make([]dto.PendingTransferResponse, 0, len(pending))}
	for _, p := range pending {
		asset, ok := assets[p.AssetID]
		if !ok {
			a, err := uc.assetRepo.GetByID(ctx, p.AssetID)
			if err != nil {
				return nil, err
			}
			asset = a
			assets[p.AssetID] = a
		}
		item := dto.PendingTransferResponse{
			Transfer:    ToMovementResponse(p),
			DaysPending: int(now.Sub(p.Timestamp) / (24 * time.Hour)),
		}
		if asset != nil {
			item.AssetName = asset.Name
			item.AssetKind = string(asset.Kind)
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}
