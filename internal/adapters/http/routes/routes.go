package routes

import (
	"astrafin-backoffice/internal/adapters/http/handlers"
	"astrafin-backoffice/internal/adapters/http/middleware"
	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/adapters/persistence/repositories"
	"astrafin-backoffice/internal/config"
	"astrafin-backoffice/internal/core/domain"
	"astrafin-backoffice/internal/core/services"
	"astrafin-backoffice/internal/core/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	eventRepo := repositories.NewEventRepository(db)

	clientFileRepo := repositories.NewValidatableRepository[models.ClientFile, *models.ClientFile](db)
	expenseRepo := repositories.NewValidatableRepository[models.Expense, *models.Expense](db)
	leaveRepo := repositories.NewValidatableRepository[models.Leave, *models.Leave](db)
	salaryRepo := repositories.NewValidatableRepository[models.Salary, *models.Salary](db)
	advanceRepo := repositories.NewValidatableRepository[models.SalaryAdvance, *models.SalaryAdvance](db)

	// Workflow engine (one instance shared by every validatable resource)
	engine := workflow.NewEngine(policyFromConfig(cfg))

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	notifyService := services.NewNotificationService()
	dashboardService := services.NewDashboardService(db, eventRepo)

	clientFileService := services.NewClientFileService(clientFileRepo)
	expenseService := services.NewExpenseService(expenseRepo)
	leaveService := services.NewLeaveService(leaveRepo)
	salaryService := services.NewSalaryService(salaryRepo)
	advanceService := services.NewSalaryAdvanceService(advanceRepo)

	clientFileValidation := services.NewValidationService(clientFileRepo, eventRepo, engine, notifyService)
	expenseValidation := services.NewValidationService(expenseRepo, eventRepo, engine, notifyService)
	leaveValidation := services.NewValidationService(leaveRepo, eventRepo, engine, notifyService)
	salaryValidation := services.NewValidationService(salaryRepo, eventRepo, engine, notifyService)
	advanceValidation := services.NewValidationService(advanceRepo, eventRepo, engine, notifyService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	clientFileHandler := handlers.NewClientFileHandler(clientFileService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	salaryHandler := handlers.NewSalaryHandler(salaryService)
	advanceHandler := handlers.NewSalaryAdvanceHandler(advanceService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, stricter rate limit)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	userRoutes.Get("/", userHandler.List)
	userRoutes.Post("/", userHandler.Create)
	userRoutes.Get("/:id", userHandler.Get)
	userRoutes.Patch("/:id/role", middleware.SuperAdminOnly(), userHandler.SetRole)
	userRoutes.Patch("/:id/active", userHandler.SetActive)

	// Dashboard routes (validators)
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Use(middleware.ValidatorOnly())
	dashboardRoutes.Get("/", dashboardHandler.Overview)

	// Client file routes (onboarding questionnaire + approval workflow)
	clientFileRoutes := apiV1.Group("/client-files")
	clientFileRoutes.Use(middleware.AuthMiddleware(cfg))
	clientFileRoutes.Get("/", clientFileHandler.List)
	clientFileRoutes.Post("/", clientFileHandler.Create)
	clientFileRoutes.Get("/:id", clientFileHandler.Get)
	clientFileRoutes.Get("/:id/progress", clientFileHandler.GetProgress)
	clientFileRoutes.Patch("/:id", clientFileHandler.Update)
	clientFileRoutes.Delete("/:id", clientFileHandler.Delete)
	setupValidationRoutes(clientFileRoutes, clientFileValidation)

	// Expense routes
	expenseRoutes := apiV1.Group("/expenses")
	expenseRoutes.Use(middleware.AuthMiddleware(cfg))
	expenseRoutes.Get("/", expenseHandler.List)
	expenseRoutes.Post("/", expenseHandler.Create)
	expenseRoutes.Get("/:id", expenseHandler.Get)
	expenseRoutes.Patch("/:id", expenseHandler.Update)
	expenseRoutes.Delete("/:id", expenseHandler.Delete)
	setupValidationRoutes(expenseRoutes, expenseValidation)

	// Leave routes
	leaveRoutes := apiV1.Group("/leaves")
	leaveRoutes.Use(middleware.AuthMiddleware(cfg))
	leaveRoutes.Get("/", leaveHandler.List)
	leaveRoutes.Post("/", leaveHandler.Create)
	leaveRoutes.Get("/:id", leaveHandler.Get)
	leaveRoutes.Patch("/:id", leaveHandler.Update)
	leaveRoutes.Delete("/:id", leaveHandler.Delete)
	setupValidationRoutes(leaveRoutes, leaveValidation)

	// Salary routes
	salaryRoutes := apiV1.Group("/salaries")
	salaryRoutes.Use(middleware.AuthMiddleware(cfg))
	salaryRoutes.Get("/", salaryHandler.List)
	salaryRoutes.Post("/", salaryHandler.Create)
	salaryRoutes.Get("/:id", salaryHandler.Get)
	salaryRoutes.Patch("/:id", salaryHandler.Update)
	salaryRoutes.Delete("/:id", salaryHandler.Delete)
	setupValidationRoutes(salaryRoutes, salaryValidation)

	// Salary advance routes
	advanceRoutes := apiV1.Group("/salary-advances")
	advanceRoutes.Use(middleware.AuthMiddleware(cfg))
	advanceRoutes.Get("/", advanceHandler.List)
	advanceRoutes.Post("/", advanceHandler.Create)
	advanceRoutes.Get("/:id", advanceHandler.Get)
	advanceRoutes.Patch("/:id", advanceHandler.Update)
	advanceRoutes.Delete("/:id", advanceHandler.Delete)
	setupValidationRoutes(advanceRoutes, advanceValidation)
}

// setupValidationRoutes mounts the shared approval workflow surface on one
// resource group. Role checks live in the workflow engine, not in route
// middleware, so every authenticated user reaches these endpoints.
func setupValidationRoutes[T any, PT models.ValidatablePtr[T]](router fiber.Router, service *services.ValidationService[T, PT]) {
	handler := handlers.NewValidationHandler(service)

	router.Patch("/:id/validate-admin", handler.ValidateAsAdmin)
	router.Patch("/:id/validate-superadmin", handler.ValidateAsSuperAdmin)
	router.Patch("/:id/reject", handler.Reject)
	router.Patch("/:id/status", handler.UpdateStatus)
	router.Get("/:id/history", handler.GetHistory)
}

// policyFromConfig builds the workflow policy from environment toggles
func policyFromConfig(cfg *config.Config) workflow.Policy {
	policy := workflow.DefaultPolicy()
	policy.AllowSelfValidation = cfg.Workflow.AllowSelfValidation
	policy.AllowSameValidator = cfg.Workflow.AllowSameValidator

	editRoles := make(map[domain.Resource][]domain.Role, len(domain.Resources))
	for _, resource := range domain.Resources {
		editRoles[resource] = nil
	}
	for _, name := range cfg.Workflow.RHResources {
		resource := domain.Resource(name)
		if _, ok := editRoles[resource]; ok {
			editRoles[resource] = append(editRoles[resource], domain.RoleRH)
		}
	}
	policy.EditRoles = editRoles

	return policy
}
