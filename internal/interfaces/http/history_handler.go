package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-api/internal/application/inventory"
	"github.com/jhoicas/activos-api/pkg/logger"
)

// HistoryHandler consultas sobre el ledger (protegido).
type HistoryHandler struct {
	uc  *inventory.HistoryUseCase
	log *logger.Logger
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *inventory.HistoryUseCase, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{uc: uc, log: log}
}

// AssetHistory godoc
// @Summary      Historial de movimientos con días de permanencia
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID del activo"
// @Param        store_id  query  string  false  "acotar a una tienda (incluye fecha de llegada)"
// @Success      200  {object}  dto.AssetHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/history [get]
func (h *HistoryHandler) AssetHistory(c *fiber.Ctx) error {
	out, err := h.uc.AssetHistory(c.Context(), c.Params("id"), c.Query("store_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Custody godoc
// @Summary      Cadena de custodia
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del activo"
// @Success      200  {object}  dto.CustodyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/custody [get]
func (h *HistoryHandler) Custody(c *fiber.Ctx) error {
	out, err := h.uc.Custody(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Location godoc
// @Summary      Ubicación actual derivada del ledger
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del activo"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/location [get]
func (h *HistoryHandler) Location(c *fiber.Ctx) error {
	out, err := h.uc.Location(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PendingByStore godoc
// @Summary      Traslados pendientes de recepción en una tienda
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la tienda destino"
// @Success      200  {object}  dto.PendingTransferListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/pending-transfers [get]
func (h *HistoryHandler) PendingByStore(c *fiber.Ctx) error {
	out, err := h.uc.PendingByStore(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PendingByBarcode godoc
// @Summary      Traslados pendientes de un activo escaneado
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        barcode  query     string  true  "número de serie o etiqueta"
// @Success      200      {object}  dto.PendingTransferListResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/pending-transfers [get]
func (h *HistoryHandler) PendingByBarcode(c *fiber.Ctx) error {
	out, err := h.uc.PendingByBarcode(c.Context(), c.Query("barcode"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
