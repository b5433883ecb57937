package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/transfer"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	MaterialUC    *usecase.MaterialUseCase
	CategoryUC    *usecase.CategoryUseCase
	LocationUC    *usecase.LocationUseCase
	StockUC       *usecase.StockUseCase
	TransferUC    *transfer.UseCase
	PurchaseUC    *usecase.PurchaseUseCase
	InventoryUC   *usecase.InventoryUseCase
	ConsumptionUC *usecase.ConsumptionUseCase
	ReportUC      *usecase.ReportUseCase
	PDF           usecase.FormExporter
	Spreadsheet   usecase.SpreadsheetExporter
	JWTSecret     string
}

// Router registra las rutas de la API.
//
// Escritura de catálogos y stock: admin y bodeguero. Formularios 2 y 5:
// además contador. Lectura: cualquier usuario autenticado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	writer := RequireRole(entity.RoleBodeguero)
	accountant := RequireRole(entity.RoleBodeguero, entity.RoleContador)

	// Materials (protegido)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", writer, materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Get("/:id/detail", materialHandler.Detail)
	materials.Put("/:id", writer, materialHandler.Update)
	materials.Post("/:id/retire", writer, materialHandler.Retire)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", writer, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", writer, categoryHandler.Update)
	categories.Delete("/:id", writer, categoryHandler.Delete)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", writer, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", writer, locationHandler.Update)
	locations.Delete("/:id", writer, locationHandler.Delete)

	// Stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/increase", writer, stockHandler.Increase)
	stockGroup.Post("/decrease", writer, stockHandler.Decrease)
	stockGroup.Get("/location/:location_id", stockHandler.ListByLocation)
	stockGroup.Get("/movements/material/:material_id", stockHandler.MovementsByMaterial)
	stockGroup.Get("/movements/location/:location_id", stockHandler.MovementsByLocation)
	stockGroup.Get("/:material_id/:location_id", stockHandler.Balance)
	stockGroup.Delete("/:material_id/:location_id", writer, stockHandler.DeleteBalance)

	// Transfers (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", writer, transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/pending", transferHandler.Pending)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/confirm", writer, transferHandler.Confirm)
	transfers.Post("/:id/cancel", writer, transferHandler.Cancel)
	transfers.Delete("/:id", writer, transferHandler.Delete)

	// Purchases (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", writer, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Put("/:id", writer, purchaseHandler.Update)
	purchases.Post("/:id/add-to-stock", writer, purchaseHandler.AddToStock)
	purchases.Delete("/:id", writer, purchaseHandler.Delete)

	// Inventario físico anual / formulario 2 (protegido)
	inventoryGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.PDF, deps.Spreadsheet)
	inventoryGroup.Post("/", accountant, inventoryHandler.Create)
	inventoryGroup.Get("/", inventoryHandler.List)
	inventoryGroup.Get("/form2", inventoryHandler.Form2)
	inventoryGroup.Get("/form2/pdf", inventoryHandler.Form2PDF)
	inventoryGroup.Get("/form2/excel", inventoryHandler.Form2Excel)
	inventoryGroup.Get("/:id", inventoryHandler.GetByID)
	inventoryGroup.Put("/:id", accountant, inventoryHandler.Update)
	inventoryGroup.Post("/:id/approve", accountant, inventoryHandler.Approve)
	inventoryGroup.Post("/:id/apply-to-stock", accountant, inventoryHandler.ApplyToStock)
	inventoryGroup.Delete("/:id", accountant, inventoryHandler.Delete)

	// Consumo y bajas / formulario 5 (protegido)
	consumptionGroup := protected.Group("/consumption")
	consumptionHandler := NewConsumptionHandler(deps.ConsumptionUC, deps.PDF, deps.Spreadsheet)
	consumptionGroup.Post("/", accountant, consumptionHandler.Create)
	consumptionGroup.Get("/", consumptionHandler.List)
	consumptionGroup.Get("/form5", consumptionHandler.Form5)
	consumptionGroup.Get("/form5/pdf", consumptionHandler.Form5PDF)
	consumptionGroup.Get("/form5/excel", consumptionHandler.Form5Excel)
	consumptionGroup.Get("/:id", consumptionHandler.GetByID)
	consumptionGroup.Post("/:id/decide", accountant, consumptionHandler.Decide)
	consumptionGroup.Post("/:id/dispose", accountant, consumptionHandler.Dispose)
	consumptionGroup.Post("/:id/deduct", accountant, consumptionHandler.DeductFromStock)
	consumptionGroup.Delete("/:id", accountant, consumptionHandler.Delete)

	// Reports (protegido, solo lectura)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDF, deps.Spreadsheet)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/expiring", reportHandler.Expiring)
	reports.Get("/location/:id", reportHandler.LocationSummary)
	reports.Get("/purchases", reportHandler.YearlyPurchases)
	reports.Get("/purchases/excel", reportHandler.YearlyPurchasesExcel)
	reports.Get("/purchases/pdf", reportHandler.YearlyPurchasesPDF)
	reports.Get("/dashboard", reportHandler.Dashboard)
	protected.Get("/dashboard", reportHandler.Dashboard)
}
