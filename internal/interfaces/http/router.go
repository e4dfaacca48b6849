package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockflow-api/internal/application/analytics"
	"github.com/jhoicas/stockflow-api/internal/application/auth"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/report"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	ProductUC        *usecase.ProductUseCase
	SettingsUC       *usecase.SettingsUseCase
	MailUC           *usecase.MailUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQueries  *inventory.MovementQueryUseCase
	ReportUC         *report.ReportUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	JWTSecret        string
	Log              *logger.Logger
}

const (
	roleAdmin      = entity.RoleAdmin
	roleMarketing  = entity.RoleMarketing
	roleTechnician = entity.RoleTechnician
)

// Router registra las rutas de la API.
//
// Acceso por rol:
//   - dashboard y lectura de stock: todos
//   - movimientos: admin, marketing
//   - escritura de productos: admin, technician
//   - partners y proyectos: admin, marketing
//   - resto de Parámetros: admin
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	allRoles := RequireRole(roleAdmin, roleMarketing, roleTechnician)

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/setup", authHandler.Setup)
	authGroup.Get("/check-admin", authHandler.CheckAdmin)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	protected.Get("/dashboard", allRoles, dashboardHandler.GetSummary)

	// Productos y stock
	productHandler := NewProductHandler(deps.ProductUC, deps.ReportUC, deps.Log)
	productWrite := RequireRole(roleAdmin, roleTechnician)
	products := protected.Group("/products")
	products.Get("/form-data", productWrite, productHandler.FormData)
	products.Get("/", allRoles, productHandler.List)
	products.Get("/:id", allRoles, productHandler.GetByID)
	products.Post("/", productWrite, productHandler.Create)
	products.Put("/:id", productWrite, productHandler.Update)
	products.Delete("/:id", productWrite, productHandler.Delete)
	protected.Get("/stock/export", allRoles, productHandler.ExportStock)

	// Movimientos
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementQueries, deps.ReportUC, deps.Log)
	movements := protected.Group("/movements", RequireRole(roleAdmin, roleMarketing))
	movements.Get("/form-data", movementHandler.FormData)
	movements.Get("/export", movementHandler.Export)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Register)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Get("/:id/document", movementHandler.Document)
	movements.Get("/:id/pdf", movementHandler.Voucher)

	// Parámetros: mail antes de /:endpoint
	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.MailUC, deps.Log)
	settings := protected.Group("/settings")
	adminOnly := RequireRole(roleAdmin)
	settings.Get("/", adminOnly, settingsHandler.Overview)
	settings.Get("/mail", adminOnly, settingsHandler.GetMail)
	settings.Post("/mail", adminOnly, settingsHandler.SaveMail)
	settings.Post("/mail/test", adminOnly, settingsHandler.TestMail)
	settings.Get("/:endpoint", RequireSettingsRole(), settingsHandler.List)
	settings.Post("/:endpoint", RequireSettingsRole(), settingsHandler.Create)
	settings.Delete("/:endpoint/:id", RequireSettingsRole(), settingsHandler.Delete)
}
