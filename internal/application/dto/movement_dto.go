package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest body para POST /api/movements/transfer.
// Technician es opcional: por defecto el usuario del token.
type TransferRequest struct {
	AssetID            string `json:"asset_id" validate:"required"`
	DestinationStoreID string `json:"destination_store_id" validate:"required"`
	OriginStoreID      string `json:"origin_store_id"`
	Quantity           int    `json:"quantity"`
	Technician         string `json:"technician"`
	Counterparty       string `json:"counterparty"`
	Notes              string `json:"notes" validate:"max=1000"`
}

// ConfirmReceiptRequest body para POST /api/movements/confirm-receipt.
type ConfirmReceiptRequest struct {
	TransferID            string `json:"transfer_id" validate:"required"`
	AssetID               string `json:"asset_id" validate:"required"`
	ReceivedQuantity      *int   `json:"received_quantity" validate:"omitempty,min=0"`
	HasDivergence         bool   `json:"has_divergence"`
	DivergenceType        string `json:"divergence_type" validate:"max=100"`
	DivergenceDescription string `json:"divergence_description" validate:"max=1000"`
	Technician            string `json:"technician"`
	Notes                 string `json:"notes" validate:"max=1000"`
}

// DirectMovementRequest body para check-out, check-in, mantenimiento, baja y entrada de stock.
// UnitCost solo aplica a stock-entry.
type DirectMovementRequest struct {
	AssetID      string          `json:"asset_id" validate:"required"`
	StoreID      string          `json:"store_id"`
	Quantity     int             `json:"quantity" validate:"min=0"`
	Technician   string          `json:"technician"`
	Counterparty string          `json:"counterparty"`
	Notes        string          `json:"notes" validate:"max=1000"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// ChangeStatusRequest body para PATCH /api/assets/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available in_use maintenance discarded"`
	Notes  string `json:"notes" validate:"max=1000"`
}

// DivergenceResponse divergencia registrada en una recepción.
type DivergenceResponse struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// MovementResponse salida de un asiento del ledger.
type MovementResponse struct {
	ID                 string              `json:"id"`
	AssetID            string              `json:"asset_id"`
	Type               string              `json:"type"`
	Quantity           int                 `json:"quantity"`
	OriginStoreID      *string             `json:"origin_store_id,omitempty"`
	DestinationStoreID *string             `json:"destination_store_id,omitempty"`
	Technician         string              `json:"technician,omitempty"`
	Counterparty       string              `json:"counterparty,omitempty"`
	Timestamp          time.Time           `json:"timestamp"`
	Notes              string              `json:"notes,omitempty"`
	ResolvesEntryID    *string             `json:"resolves_entry_id,omitempty"`
	Divergence         *DivergenceResponse `json:"divergence,omitempty"`
}
