package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-api/internal/application/inventory"
	"github.com/jhoicas/activos-api/internal/application/usecase"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AssetUC   *usecase.AssetUseCase
	StoreUC   *usecase.StoreUseCase
	Transfer  *inventory.TransferUseCase
	Receipt   *inventory.ReceiptUseCase
	Direct    *inventory.AssetMovementUseCase
	History   *inventory.HistoryUseCase
	JWTSecret string
	JWTIssuer string
	Logger    *logger.Logger
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	adminOnly := RequireRole(entity.RoleAdmin)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	field := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleTechnician)

	// Assets. Las rutas fijas van antes de /:id.
	assetHandler := NewAssetHandler(deps.AssetUC, log)
	historyHandler := NewHistoryHandler(deps.History, log)
	movementHandler := NewMovementHandler(deps.Transfer, deps.Receipt, deps.Direct, log)
	assets := api.Group("/assets")
	assets.Post("/", adminOnly, assetHandler.Create)
	assets.Get("/", field, assetHandler.List)
	assets.Get("/valuation", adminOnly, assetHandler.Valuation)
	assets.Get("/barcode/:code", field, assetHandler.GetByBarcode)
	assets.Get("/:id", field, assetHandler.GetByID)
	assets.Delete("/:id", adminOnly, assetHandler.Deactivate)
	assets.Patch("/:id/status", adminOnly, movementHandler.ChangeStatus)
	assets.Get("/:id/history", field, historyHandler.AssetHistory)
	assets.Get("/:id/custody", field, historyHandler.Custody)
	assets.Get("/:id/location", field, historyHandler.Location)

	// Stores
	storeHandler := NewStoreHandler(deps.StoreUC, log)
	stores := api.Group("/stores")
	stores.Post("/", adminOnly, storeHandler.Create)
	stores.Get("/", field, storeHandler.List)
	stores.Get("/:id", field, storeHandler.GetByID)
	stores.Get("/:id/pending-transfers", field, historyHandler.PendingByStore)

	api.Get("/pending-transfers", field, historyHandler.PendingByBarcode)

	// Movements
	movements := api.Group("/movements")
	movements.Post("/transfer", field, movementHandler.Transfer)
	movements.Post("/confirm-receipt", field, movementHandler.ConfirmReceipt)
	movements.Post("/check-out", warehouse, movementHandler.CheckOut)
	movements.Post("/check-in", warehouse, movementHandler.CheckIn)
	movements.Post("/maintenance", warehouse, movementHandler.Maintenance)
	movements.Post("/disposal", warehouse, movementHandler.Disposal)
	movements.Post("/stock-entry", warehouse, movementHandler.StockEntry)
}
