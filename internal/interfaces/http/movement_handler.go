package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/inventory"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/pkg/logger"
)

// MovementHandler traslados, recepciones y movimientos directos (protegido).
// El técnico por defecto es el portador del token.
type MovementHandler struct {
	transfers *inventory.TransferUseCase
	receipts  *inventory.ReceiptUseCase
	direct    *inventory.AssetMovementUseCase
	log       *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(
	transfers *inventory.TransferUseCase,
	receipts *inventory.ReceiptUseCase,
	direct *inventory.AssetMovementUseCase,
	log *logger.Logger,
) *MovementHandler {
	return &MovementHandler{transfers: transfers, receipts: receipts, direct: direct, log: log}
}

// Transfer godoc
// @Summary      Trasladar activo a una tienda
// @Description  Activo único: available -> in_transit. Insumo: descuenta quantity del stock.
// @Description  El traslado queda pendiente hasta confirm-receipt.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "asset_id, destination_store_id, quantity (insumos)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/transfer [post]
func (h *MovementHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, h.log, err)
	}
	entry, err := h.transfers.Transfer(c.Context(), inventory.TransferInput{
		AssetID:            in.AssetID,
		DestinationStoreID: in.DestinationStoreID,
		OriginStoreID:      in.OriginStoreID,
		Quantity:           in.Quantity,
		Technician:         actor(c, in.Technician),
		Counterparty:       in.Counterparty,
		Notes:              in.Notes,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().Str("entry_id", entry.ID).Str("asset_id", entry.AssetID).Int("quantity", entry.Quantity).Msg("traslado registrado")
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResponse(entry))
}

// ConfirmReceipt godoc
// @Summary      Confirmar recepción de un traslado
// @Description  Cierra el traslado una sola vez. La divergencia se registra pero no bloquea.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmReceiptRequest  true  "transfer_id, asset_id, received_quantity, divergencia"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/confirm-receipt [post]
func (h *MovementHandler) ConfirmReceipt(c *fiber.Ctx) error {
	var in dto.ConfirmReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, h.log, err)
	}
	entry, err := h.receipts.ConfirmReceipt(c.Context(), inventory.ReceiptInput{
		TransferEntryID:       in.TransferID,
		AssetID:               in.AssetID,
		ReceivedQuantity:      in.ReceivedQuantity,
		HasDivergence:         in.HasDivergence,
		DivergenceType:        in.DivergenceType,
		DivergenceDescription: in.DivergenceDescription,
		Technician:            actor(c, in.Technician),
		Notes:                 in.Notes,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	if entry.Divergence != nil {
		h.log.Warn().Str("entry_id", entry.ID).Str("transfer_id", in.TransferID).
			Str("divergence_type", entry.Divergence.Type).Msg("recepción con divergencia")
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResponse(entry))
}

// CheckOut godoc
// @Summary      Entregar activo a un tercero
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DirectMovementRequest  true  "asset_id, counterparty, quantity (insumos)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/check-out [post]
func (h *MovementHandler) CheckOut(c *fiber.Ctx) error {
	return h.directMovement(c, h.direct.CheckOut)
}

// CheckIn godoc
// @Summary      Reingresar activo único
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DirectMovementRequest  true  "asset_id, store_id"
// @Success      201   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/check-in [post]
func (h *MovementHandler) CheckIn(c *fiber.Ctx) error {
	return h.directMovement(c, h.direct.CheckIn)
}

// Maintenance godoc
// @Summary      Enviar activo a mantenimiento
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DirectMovementRequest  true  "asset_id, counterparty (proveedor)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/maintenance [post]
func (h *MovementHandler) Maintenance(c *fiber.Ctx) error {
	return h.directMovement(c, h.direct.SendToMaintenance)
}

// Disposal godoc
// @Summary      Dar de baja física
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DirectMovementRequest  true  "asset_id, quantity (insumos)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/disposal [post]
func (h *MovementHandler) Disposal(c *fiber.Ctx) error {
	return h.directMovement(c, h.direct.Dispose)
}

// StockEntry godoc
// @Summary      Ingresar stock de un insumo
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DirectMovementRequest  true  "asset_id, quantity, unit_cost (opcional)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements/stock-entry [post]
func (h *MovementHandler) StockEntry(c *fiber.Ctx) error {
	return h.directMovement(c, h.direct.StockEntry)
}

// ChangeStatus godoc
// @Summary      Cambio administrativo de estado
// @Description  No puede fijar ni abandonar in_transit.
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del activo"
// @Param        body  body  dto.ChangeStatusRequest  true  "status"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/status [patch]
func (h *MovementHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, h.log, err)
	}
	entry, err := h.direct.ChangeStatus(c.Context(), inventory.DirectMovementInput{
		AssetID:    c.Params("id"),
		Technician: actor(c, ""),
		Notes:      in.Notes,
	}, entity.AssetStatus(in.Status))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResponse(entry))
}

type directFunc func(ctx context.Context, in inventory.DirectMovementInput) (*entity.MovementEntry, error)

func (h *MovementHandler) directMovement(c *fiber.Ctx, fn directFunc) error {
	var in dto.DirectMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, h.log, err)
	}
	entry, err := fn(c.Context(), inventory.DirectMovementInput{
		AssetID:      in.AssetID,
		StoreID:      in.StoreID,
		Quantity:     in.Quantity,
		Technician:   actor(c, in.Technician),
		Counterparty: in.Counterparty,
		Notes:        in.Notes,
		UnitCost:     in.UnitCost,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResponse(entry))
}
