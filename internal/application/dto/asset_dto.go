package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssetRequest entrada para registrar un activo.
// Los activos únicos requieren número de serie o etiqueta; los insumos, stock inicial.
type CreateAssetRequest struct {
	Kind          string          `json:"kind" validate:"required,oneof=unique consumable"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Category      string          `json:"category" validate:"max=100"`
	SerialNumber  string          `json:"serial_number" validate:"max=100"`
	Tag           string          `json:"tag" validate:"max=100"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	MinStock      int             `json:"min_stock" validate:"min=0"`
	UnitValue     decimal.Decimal `json:"unit_value"`
}

// AssetListQuery filtros de GET /api/assets.
type AssetListQuery struct {
	Kind            string `query:"kind" validate:"omitempty,oneof=unique consumable"`
	Status          string `query:"status" validate:"omitempty,oneof=available in_use in_transit maintenance discarded"`
	IncludeInactive bool   `query:"include_inactive"`
	LowStock        bool   `query:"low_stock"`
	PageRequest
}

// AssetResponse salida de un activo.
type AssetResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	SerialNumber  *string         `json:"serial_number,omitempty"`
	Tag           *string         `json:"tag,omitempty"`
	Status        string          `json:"status,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	LowStock      bool            `json:"low_stock"`
	UnitValue     decimal.Decimal `json:"unit_value"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AssetListResponse lista paginada de activos.
type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ValuationResponse valorización simple del inventario activo.
type ValuationResponse struct {
	Total           decimal.Decimal `json:"total"`
	UniqueTotal     decimal.Decimal `json:"unique_total"`
	ConsumableTotal decimal.Decimal `json:"consumable_total"`
	AssetCount      int             `json:"asset_count"`
}
