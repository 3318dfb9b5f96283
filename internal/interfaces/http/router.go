package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-pos/internal/application/auth"
	"github.com/jhoicas/warehouse-pos/internal/application/inventory"
	"github.com/jhoicas/warehouse-pos/internal/application/sales"
	"github.com/jhoicas/warehouse-pos/internal/application/usecase"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	SectionSvc  *usecase.SectionService
	ActivityUC  *usecase.ActivityUseCase
	StockUC     *usecase.StockUseCase
	IncomingUC  *inventory.IncomingUseCase
	MovementUC  *inventory.MovementUseCase
	CheckoutUC  *sales.CheckoutUseCase
	OrdersUC    *sales.OrdersUseCase
	ReportUC    *sales.ReportUseCase
	JWTSecret   string
	Blocklist   auth.TokenBlocklist
	Location    *time.Location
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	eh := errorHandler{log: deps.Log}
	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC, eh)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	var revoked revocationChecker
	if deps.Blocklist != nil {
		revoked = deps.Blocklist
	}
	guards := []fiber.Handler{AuthMiddleware(deps.JWTSecret, revoked)}
	if deps.AuthUC != nil {
		guards = append(guards, RequireActiveUser(deps.AuthUC))
	}
	protected := api.Group("/", guards...)
	protected.Post("/auth/logout", authHandler.Logout)

	categoryHandler := NewCategoryHandler(deps.CategoryUC, eh)
	categories := protected.Group("/categories", RequireSection(entity.SectionCategories))
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)

	productHandler := NewProductHandler(deps.ProductUC, eh)
	products := protected.Group("/products", RequireSection(entity.SectionProducts))
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, eh)
	warehouses := protected.Group("/warehouses", RequireSection(entity.SectionWarehouses))
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)

	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.SectionSvc, deps.ActivityUC, eh)
	employees := protected.Group("/employees", RequireSection(entity.SectionEmployees))
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Put("/:id", employeeHandler.Update)
	protected.Get("/sections", RequireSection(entity.SectionEmployees), employeeHandler.Sections)
	protected.Get("/logs", RequireSection(entity.SectionLogs), employeeHandler.Logs)

	invHandler := NewInventoryHandler(deps.StockUC, deps.IncomingUC, deps.MovementUC, deps.Location, eh)
	protected.Get("/stocks", RequireSection(entity.SectionStocks), invHandler.ListStocks)

	incoming := protected.Group("/incoming", RequireSection(entity.SectionIncoming))
	incoming.Get("/", invHandler.ListIncoming)
	incoming.Post("/", invHandler.CreateIncoming)
	incoming.Post("/batch", invHandler.CreateIncomingBatch)
	incoming.Put("/:id", invHandler.UpdateIncoming)
	incoming.Delete("/:id", invHandler.DeleteIncoming)

	movements := protected.Group("/movements", RequireSection(entity.SectionMovements))
	movements.Get("/", invHandler.ListMovements)
	movements.Post("/", invHandler.CreateMovement)
	movements.Put("/:id", invHandler.UpdateMovement)
	movements.Delete("/:id", invHandler.DeleteMovement)

	salesHandler := NewSalesHandler(deps.CheckoutUC, deps.OrdersUC, deps.ReportUC, deps.Location, eh)
	protected.Get("/pos", RequireSection(entity.SectionSales), salesHandler.Catalog)
	sale := protected.Group("/sales", RequireSection(entity.SectionSales))
	sale.Post("/", salesHandler.Checkout)
	sale.Put("/:id", salesHandler.UpdateSale)
	sale.Get("/:id/receipt", salesHandler.Receipt)

	orders := protected.Group("/orders", RequireSection(entity.SectionOrders))
	orders.Get("/", salesHandler.ListOrders)
	orders.Get("/:id", salesHandler.GetOrder)

	protected.Get("/reports/sales", RequireSection(entity.SectionReports), salesHandler.SalesReport)
}
