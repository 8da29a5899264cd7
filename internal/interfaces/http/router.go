package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/application/usecase"
	"github.com/jhoicas/staffdir/internal/domain/repository"
	"github.com/jhoicas/staffdir/pkg/config"
	"github.com/jhoicas/staffdir/pkg/logger"
)

const healthTimeout = 2 * time.Second

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC       *usecase.UserUseCase
	CompanyUC    *usecase.CompanyUseCase
	EmploymentUC *usecase.EmploymentUseCase
	Store        repository.Store
}

// NewServer construye la app Fiber con el ErrorHandler, los middlewares comunes y las rutas.
func NewServer(cfg *config.Config, log *logger.Logger, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: ErrorHandler,
		BodyLimit:    cfg.HTTP.BodyLimit(),
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(RequestLogger(log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigin}))
	app.Use(Tracing(cfg.Tracing.ServiceName))

	// Avatares: /storage/users/{id}/{archivo}
	app.Static("/storage", cfg.Storage.Root)

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Store))

	api := app.Group("/api/v1")

	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.EmploymentUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Get("/:id/company", userHandler.Company)
	users.Put("/:id/company", userHandler.Employ)
	users.Delete("/:id/company", userHandler.Dismiss)
	users.Get("/:id/collegues", userHandler.Colleagues)
	users.Get("/:id/colleagues", userHandler.Colleagues)

	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.EmploymentUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Patch("/:id", companyHandler.Update)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	companies.Get("/:id/users", companyHandler.Users)
}

// healthHandler godoc
// @Summary      Estado del servicio y del backend de datos
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /health [get]
func healthHandler(store repository.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "degraded", Store: "down"})
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Store: "up"})
	}
}
