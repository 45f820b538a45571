package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/inventory"
	"github.com/jhoicas/activos-api/internal/application/usecase"
	"github.com/jhoicas/activos-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/activos-api/internal/interfaces/http"
	"github.com/jhoicas/activos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: API completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type apiHarness struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) *apiHarness {
	t.Helper()
	db := memory.NewStore()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AssetUC:   usecase.NewAssetUseCase(db.Assets()),
		StoreUC:   usecase.NewStoreUseCase(db.Stores()),
		Transfer:  inventory.NewTransferUseCase(db, nil),
		Receipt:   inventory.NewReceiptUseCase(db, nil),
		Direct:    inventory.NewAssetMovementUseCase(db, nil),
		History:   inventory.NewHistoryUseCase(db.Assets(), db.Movements(), db.Stores()),
		JWTSecret: testJWTSecret,
		JWTIssuer: testIssuer,
		Logger:    logger.Nop(),
	})
	return &apiHarness{t: t, app: app}
}

// do envía la petición con el rol indicado y decodifica la respuesta en out (si no es nil).
func (h *apiHarness) do(method, path, role string, body any, out any) int {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(h.t, role))
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(h.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (h *apiHarness) createStore(code string) string {
	h.t.Helper()
	var out dto.StoreResponse
	status := h.do(http.MethodPost, "/api/stores", "admin", dto.CreateStoreRequest{Code: code, Name: "Tienda " + code}, &out)
	require.Equal(h.t, http.StatusCreated, status)
	return out.ID
}

func (h *apiHarness) createAsset(req dto.CreateAssetRequest) dto.AssetResponse {
	h.t.Helper()
	var out dto.AssetResponse
	status := h.do(http.MethodPost, "/api/assets", "admin", req, &out)
	require.Equal(h.t, http.StatusCreated, status)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: traslado y recepción de un activo único de punta a punta.
func TestAPI_TrasladoYRecepcionActivoUnico(t *testing.T) {
	api := newAPI(t)
	s5 := api.createStore("s5")
	a1 := api.createAsset(dto.CreateAssetRequest{Kind: "unique", Name: "Notebook", SerialNumber: "sn-a1"})
	assert.Equal(t, "SN-A1", *a1.SerialNumber)

	var transfer dto.MovementResponse
	status := api.do(http.MethodPost, "/api/movements/transfer", "tecnico",
		dto.TransferRequest{AssetID: a1.ID, DestinationStoreID: s5}, &transfer)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "transfer", transfer.Type)
	assert.Equal(t, testUserName, transfer.Technician)

	var asset dto.AssetResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/assets/"+a1.ID, "tecnico", nil, &asset))
	assert.Equal(t, "in_transit", asset.Status)

	var pending dto.PendingTransferListResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/stores/"+s5+"/pending-transfers", "tecnico", nil, &pending))
	require.Len(t, pending.Items, 1)
	assert.Equal(t, transfer.ID, pending.Items[0].Transfer.ID)

	var receipt dto.MovementResponse
	status = api.do(http.MethodPost, "/api/movements/confirm-receipt", "tecnico",
		dto.ConfirmReceiptRequest{TransferID: transfer.ID, AssetID: a1.ID}, &receipt)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, receipt.ResolvesEntryID)
	assert.Equal(t, transfer.ID, *receipt.ResolvesEntryID)

	// Segunda confirmación del mismo traslado
	var errBody dto.ErrorResponse
	status = api.do(http.MethodPost, "/api/movements/confirm-receipt", "tecnico",
		dto.ConfirmReceiptRequest{TransferID: transfer.ID, AssetID: a1.ID}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_RESOLVED", errBody.Code)

	var loc dto.LocationResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/assets/"+a1.ID+"/location", "tecnico", nil, &loc))
	assert.True(t, loc.Known)
	assert.False(t, loc.InTransit)
	assert.Equal(t, s5, loc.StoreID)
}

// Caso 2: insumo sin stock suficiente → 409 INSUFFICIENT_STOCK.
func TestAPI_TrasladoInsumoSinStock(t *testing.T) {
	api := newAPI(t)
	s5 := api.createStore("S5")
	c1 := api.createAsset(dto.CreateAssetRequest{Kind: "consumable", Name: "Cable HDMI", StockQuantity: 10, MinStock: 5})

	var errBody dto.ErrorResponse
	status := api.do(http.MethodPost, "/api/movements/transfer", "bodeguero",
		dto.TransferRequest{AssetID: c1.ID, DestinationStoreID: s5, Quantity: 12}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	var asset dto.AssetResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/assets/"+c1.ID, "bodeguero", nil, &asset))
	assert.Equal(t, 10, asset.StockQuantity)
}

// Caso 3: errores de entrada y recursos inexistentes.
func TestAPI_ErroresDeEntrada(t *testing.T) {
	api := newAPI(t)
	s5 := api.createStore("S5")

	var errBody dto.ErrorResponse
	status := api.do(http.MethodPost, "/api/movements/transfer", "tecnico", dto.TransferRequest{DestinationStoreID: s5}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)

	status = api.do(http.MethodPost, "/api/movements/transfer", "tecnico",
		dto.TransferRequest{AssetID: "no-existe", DestinationStoreID: s5}, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errBody.Code)

	status = api.do(http.MethodGet, "/api/assets/no-existe", "tecnico", nil, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
}

// Caso 4: el técnico no puede registrar activos ni hacer movimientos de bodega.
func TestAPI_PermisosPorRol(t *testing.T) {
	api := newAPI(t)
	c1 := api.createAsset(dto.CreateAssetRequest{Kind: "consumable", Name: "Cable HDMI", StockQuantity: 10})

	status := api.do(http.MethodPost, "/api/assets", "tecnico",
		dto.CreateAssetRequest{Kind: "unique", Name: "Notebook", Tag: "T-1"}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = api.do(http.MethodPost, "/api/movements/stock-entry", "tecnico",
		dto.DirectMovementRequest{AssetID: c1.ID, Quantity: 5}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = api.do(http.MethodGet, "/api/assets/valuation", "bodeguero", nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var entry dto.MovementResponse
	status = api.do(http.MethodPost, "/api/movements/stock-entry", "bodeguero",
		dto.DirectMovementRequest{AssetID: c1.ID, Quantity: 5}, &entry)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 5, entry.Quantity)
}

// Caso 5: cambio de estado inválido hacia in_transit → 400.
func TestAPI_CambioDeEstado(t *testing.T) {
	api := newAPI(t)
	a1 := api.createAsset(dto.CreateAssetRequest{Kind: "unique", Name: "Notebook", Tag: "t-9"})

	status := api.do(http.MethodPatch, "/api/assets/"+a1.ID+"/status", "admin", dto.ChangeStatusRequest{Status: "in_transit"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var entry dto.MovementResponse
	status = api.do(http.MethodPatch, "/api/assets/"+a1.ID+"/status", "admin", dto.ChangeStatusRequest{Status: "maintenance"}, &entry)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "status_change", entry.Type)

	var found dto.AssetResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/assets/barcode/T-9", "tecnico", nil, &found))
	assert.Equal(t, "maintenance", found.Status)
}
