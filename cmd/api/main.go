package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/staffdir/internal/application/ports"
	"github.com/jhoicas/staffdir/internal/application/usecase"
	"github.com/jhoicas/staffdir/internal/infrastructure/datastore"
	"github.com/jhoicas/staffdir/internal/infrastructure/events"
	"github.com/jhoicas/staffdir/internal/infrastructure/storage"
	"github.com/jhoicas/staffdir/internal/infrastructure/tracing"
	httpRouter "github.com/jhoicas/staffdir/internal/interfaces/http"
	"github.com/jhoicas/staffdir/pkg/config"
	"github.com/jhoicas/staffdir/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.Tracing.CollectorHost != "" {
		tp, err := tracing.InitTracing(ctx, cfg.Tracing.CollectorHost, cfg.Tracing.ServiceName)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar tracing")
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("apagado del tracer")
			}
		}()
	}

	store, err := datastore.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al backend de datos")
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("cierre del backend de datos")
		}
	}()

	var publisher ports.EventPublisher = events.LogPublisher{}
	if cfg.Kafka.Enabled() {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kp.Close()
		publisher = kp
	}

	avatars := storage.NewLocalAvatarStore(cfg.Storage.Root, cfg.Storage.AvatarMaxBytes())

	userUC := usecase.NewUserUseCase(store.Users(), avatars, publisher)
	companyUC := usecase.NewCompanyUseCase(store.Companies(), publisher)
	employmentUC := usecase.NewEmploymentUseCase(store.Users(), store.Companies(), store.Employments(), publisher)

	app := httpRouter.NewServer(cfg, log, httpRouter.RouterDeps{
		UserUC:       userUC,
		CompanyUC:    companyUC,
		EmploymentUC: employmentUC,
		Store:        store,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Staffdir API",
		}))
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
