package inventory

import (
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain/custody"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// ToMovementResponse convierte un asiento del ledger a su salida HTTP.
func ToMovementResponse(e *entity.MovementEntry) dto.MovementResponse {
	out := dto.MovementResponse{
		ID:                 e.ID,
		AssetID:            e.AssetID,
		Type:               string(e.Type),
		Quantity:           e.Quantity,
		OriginStoreID:      e.OriginStoreID,
		DestinationStoreID: e.DestinationStoreID,
		Technician:         e.ActorTechnician,
		Counterparty:       e.CounterpartyName,
		Timestamp:          e.Timestamp,
		Notes:              e.Notes,
		ResolvesEntryID:    e.ResolvesEntryID,
	}
	if e.Divergence != nil {
		out.Divergence = &dto.DivergenceResponse{Type: e.Divergence.Type, Description: e.Divergence.Description}
	}
	return out
}

func toLocationResponse(assetID string, loc custody.Location) dto.LocationResponse {
	out := dto.LocationResponse{
		AssetID:   assetID,
		Known:     loc.Known,
		StoreID:   loc.StoreID,
		InTransit: loc.InTransit,
		EntryID:   loc.EntryID,
	}
	if loc.Known {
		since := loc.Since
		out.Since = &since
	}
	return out
}
