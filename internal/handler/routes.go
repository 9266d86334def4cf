package handler

import (
	"stockflow-api/internal/middleware"
	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/internal/service"
	"stockflow-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// Router owns every HTTP handler and the auth collaborators they sit behind.
type Router struct {
	signer *jwt.Signer
	users  repository.UserRepository

	Session      *SessionHandler
	Inventory    *InventoryHandler
	Transactions *TransactionHandler
	Dashboard    *DashboardHandler
	Sync         *SyncHandler
	System       *SystemHandler
	Users        *UserHandler
	Roles        *RoleHandler
}

// NewRouter builds services and handlers around deps.
func NewRouter(deps service.Dependencies, signer *jwt.Signer) *Router {
	invService := service.NewInventoryService(deps)
	txService := service.NewTransactionService(deps)
	userService := service.NewUserService(deps, signer)

	return &Router{
		signer:       signer,
		users:        deps.Users,
		Session:      NewSessionHandler(userService),
		Inventory:    NewInventoryHandler(invService, txService),
		Transactions: NewTransactionHandler(txService),
		Dashboard:    NewDashboardHandler(service.NewDashboardService(deps)),
		Sync:         NewSyncHandler(service.NewSyncService(deps)),
		System:       NewSystemHandler(service.NewSystemService(deps)),
		Users:        NewUserHandler(userService),
		Roles:        NewRoleHandler(service.NewRoleService(deps)),
	}
}

// Register mounts the API under api (usually /api/v1).
func (r *Router) Register(api fiber.Router) {
	// ============ PUBLIC ROUTES ============
	api.Post("/session", middleware.OptionalAuth(r.signer, r.users), r.Session.SwitchUser)
	api.Get("/session/users", r.Users.GetUsers)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(r.signer, r.users))
	require := middleware.RequirePermission

	protected.Get("/session", r.Session.GetSession)

	// Dashboard & reports
	protected.Get("/dashboard/stats", require(model.CapViewDashboard), r.Dashboard.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", require(model.CapViewDashboard), r.Dashboard.GetStockMovement)
	protected.Get("/reports/stock", require(model.CapViewReports), r.Dashboard.GetStockReport)

	// Products
	protected.Get("/products", require(model.CapViewInventory), r.Inventory.GetProducts)
	protected.Put("/products/bulk", require(model.CapEditProduct), r.Inventory.BulkUpdate)
	protected.Get("/products/:id", require(model.CapViewInventory), r.Inventory.GetProduct)
	protected.Get("/products/:id/history", require(model.CapViewInventory), r.Inventory.GetProductHistory)
	protected.Post("/products", require(model.CapAddProduct), r.Inventory.CreateProduct)
	protected.Put("/products/:id", require(model.CapEditProduct), r.Inventory.UpdateProduct)
	protected.Delete("/products/:id", require(model.CapDeleteProduct), r.Inventory.DeleteProduct)

	// Transactions; the batch direction decides the capability inside the service
	protected.Post("/transactions/batch", middleware.RequireAnyPermission(model.CapInwardStock, model.CapOutwardStock), r.Transactions.CreateBatch)
	protected.Get("/transactions", require(model.CapViewReports), r.Transactions.GetTransactions)
	protected.Get("/transactions/:id", require(model.CapViewReports), r.Transactions.GetTransaction)
	protected.Put("/transactions/:id", require(model.CapViewReports), r.Transactions.UpdateTransaction)
	protected.Delete("/transactions/:id", require(model.CapDeleteTransaction), r.Transactions.DeleteTransaction)

	// Sync & AI
	protected.Post("/sync/import", require(model.CapImportExport), r.Sync.ImportProducts)
	protected.Get("/sync/export", require(model.CapImportExport), r.Sync.ExportProducts)
	protected.Post("/ai/smart-update", middleware.RequireAnyPermission(model.CapAddProduct, model.CapEditProduct), r.Sync.SmartUpdate)

	// System
	protected.Get("/system/theme", r.System.GetTheme)
	settings := protected.Group("", require(model.CapManageSettings))
	settings.Put("/system/theme", r.System.UpdateTheme)
	settings.Get("/system/backup", r.System.Backup)
	settings.Post("/system/restore", r.System.Restore)
	settings.Post("/system/reset", r.System.Reset)
	settings.Get("/system/logs", r.System.GetLogs)
	settings.Get("/system/logs/export", r.System.ExportLogs)

	// Users, roles & designations
	settings.Get("/users", r.Users.GetUsers)
	settings.Get("/users/:id", r.Users.GetUser)
	settings.Post("/users", r.Users.CreateUser)
	settings.Put("/users/:id", r.Users.UpdateUser)
	settings.Delete("/users/:id", r.Users.DeleteUser)

	settings.Get("/roles", r.Roles.GetRoles)
	settings.Get("/roles/:id", r.Roles.GetRole)
	settings.Post("/roles", r.Roles.CreateRole)
	settings.Put("/roles/:id", r.Roles.UpdateRole)
	settings.Delete("/roles/:id", r.Roles.DeleteRole)

	settings.Get("/designations", r.Roles.GetDesignations)
	settings.Post("/designations", r.Roles.AddDesignation)
	settings.Put("/designations/:name", r.Roles.RenameDesignation)
	settings.Delete("/designations/:name", r.Roles.DeleteDesignation)
}
