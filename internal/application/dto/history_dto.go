package dto

import "time"

// HistoryEntryResponse movimiento con los días que el activo permaneció tras él.
type HistoryEntryResponse struct {
	MovementResponse
	DaysInLocation int `json:"days_in_location"`
}

// LocationResponse ubicación actual derivada del ledger.
type LocationResponse struct {
	AssetID   string     `json:"asset_id"`
	Known     bool       `json:"known"`
	StoreID   string     `json:"store_id,omitempty"`
	InTransit bool       `json:"in_transit"`
	Since     *time.Time `json:"since,omitempty"`
	EntryID   string     `json:"entry_id,omitempty"`
}

// AssetHistoryResponse historial de un activo, opcionalmente acotado a una tienda.
type AssetHistoryResponse struct {
	AssetID     string                 `json:"asset_id"`
	StoreID     string                 `json:"store_id,omitempty"`
	ArrivalDate *time.Time             `json:"arrival_date,omitempty"`
	Location    LocationResponse       `json:"location"`
	Entries     []HistoryEntryResponse `json:"entries"`
}

// CustodySegmentResponse tramo de la cadena de custodia.
type CustodySegmentResponse struct {
	HolderKind string     `json:"holder_kind"`
	Holder     string     `json:"holder"`
	StoreID    string     `json:"store_id,omitempty"`
	EntryID    string     `json:"entry_id"`
	Since      time.Time  `json:"since"`
	Until      *time.Time `json:"until,omitempty"`
}

// CustodyResponse cadena de custodia de un activo.
type CustodyResponse struct {
	AssetID  string                   `json:"asset_id"`
	Segments []CustodySegmentResponse `json:"segments"`
}

// PendingTransferResponse traslado sin recepción, con el activo para mostrar en la tienda destino.
type PendingTransferResponse struct {
	Transfer    MovementResponse `json:"transfer"`
	AssetName   string           `json:"asset_name"`
	AssetKind   string           `json:"asset_kind"`
	DaysPending int              `json:"days_pending"`
}

// PendingTransferListResponse traslados pendientes.
type PendingTransferListResponse struct {
	Items []PendingTransferResponse `json:"items"`
}
