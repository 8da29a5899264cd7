// seed puebla el backend configurado (STORE_DRIVER) con empresas, usuarios con avatar y empleos.
//
// Uso: go run ./cmd/seed [--companies 3] [--min-users 3] [--max-users 5] [--password 123456] [--reset]
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"

	"github.com/jhoicas/staffdir/internal/application/dto"
	"github.com/jhoicas/staffdir/internal/application/ports"
	"github.com/jhoicas/staffdir/internal/application/usecase"
	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
	"github.com/jhoicas/staffdir/internal/infrastructure/datastore"
	"github.com/jhoicas/staffdir/internal/infrastructure/events"
	"github.com/jhoicas/staffdir/internal/infrastructure/storage"
	"github.com/jhoicas/staffdir/pkg/config"
	"github.com/jhoicas/staffdir/pkg/logger"
)

const (
	avatarSize    = 64
	emailAttempts = 5
)

type options struct {
	companies int
	minUsers  int
	maxUsers  int
	password  string
	reset     bool
	seed      int64
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Poblar el backend con datos de prueba",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.minUsers < 1 || opts.maxUsers < opts.minUsers {
				return fmt.Errorf("rango de usuarios inválido: %d..%d", opts.minUsers, opts.maxUsers)
			}
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.companies, "companies", 3, "Número de empresas")
	cmd.Flags().IntVar(&opts.minUsers, "min-users", 3, "Mínimo de usuarios por empresa")
	cmd.Flags().IntVar(&opts.maxUsers, "max-users", 5, "Máximo de usuarios por empresa")
	cmd.Flags().StringVar(&opts.password, "password", "123456", "Contraseña de todos los usuarios")
	cmd.Flags().BoolVar(&opts.reset, "reset", true, "Borrar datos y avatares antes de sembrar")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Semilla de gofakeit (0 = aleatoria)")
	return cmd
}

func run(ctx context.Context, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})
	ctx = log.WithContext(ctx, map[string]any{"store": cfg.Store.Driver})

	store, err := datastore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	avatars := storage.NewLocalAvatarStore(cfg.Storage.Root, cfg.Storage.AvatarMaxBytes())
	if opts.reset {
		if err := store.Reset(ctx); err != nil {
			return err
		}
		if err := avatars.Purge(ctx); err != nil {
			return err
		}
		log.Info().Msg("datos y avatares eliminados")
	}

	publisher := events.LogPublisher{}
	users := usecase.NewUserUseCase(store.Users(), avatars, publisher)
	companies := usecase.NewCompanyUseCase(store.Companies(), publisher)
	employments := usecase.NewEmploymentUseCase(store.Users(), store.Companies(), store.Employments(), publisher)

	faker := gofakeit.New(opts.seed)
	total := 0
	for i := 0; i < opts.companies; i++ {
		founded := faker.DateRange(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), time.Now().UTC())
		company, err := companies.Create(ctx, dto.CreateCompanyRequest{
			Name:  faker.Company(),
			Since: founded.Format(entity.DateLayout),
		})
		if err != nil {
			return fmt.Errorf("crear empresa: %w", err)
		}

		n := faker.Number(opts.minUsers, opts.maxUsers)
		for j := 0; j < n; j++ {
			user, err := createUser(ctx, users, faker, opts.password)
			if err != nil {
				return err
			}
			hired := faker.DateRange(founded, time.Now().UTC())
			if _, err := employments.Employ(ctx, user.ID, dto.EmployRequest{
				CompanyID: company.ID,
				Since:     hired.Format(entity.DateLayout),
				Position:  faker.JobTitle(),
			}); err != nil {
				return fmt.Errorf("asignar empresa: %w", err)
			}
			total++
		}
		log.Info().Str("company", company.Name).Int("users", n).Msg("empresa sembrada")
	}

	log.Info().Int("companies", opts.companies).Int("users", total).Msg("seed completado")
	return nil
}

// createUser reintenta con otro email si el generado ya existe.
func createUser(ctx context.Context, users *usecase.UserUseCase, faker *gofakeit.Faker, password string) (*dto.UserResponse, error) {
	for attempt := 0; attempt < emailAttempts; attempt++ {
		avatar, err := avatarPNG(faker)
		if err != nil {
			return nil, err
		}
		user, err := users.Create(ctx, dto.CreateUserRequest{
			Name:                 faker.Name(),
			Email:                faker.Email(),
			Password:             password,
			PasswordConfirmation: password,
		}, avatar)
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("crear usuario: %w", err)
		}
		return user, nil
	}
	return nil, fmt.Errorf("crear usuario: %w", domain.ErrEmailAlreadyExists)
}

// avatarPNG genera una imagen de color sólido.
func avatarPNG(faker *gofakeit.Faker) (*ports.Upload, error) {
	img := image.NewRGBA(image.Rect(0, 0, avatarSize, avatarSize))
	fill := color.RGBA{R: faker.Uint8(), G: faker.Uint8(), B: faker.Uint8(), A: 255}
	for y := 0; y < avatarSize; y++ {
		for x := 0; x < avatarSize; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("generar avatar: %w", err)
	}
	return ports.NewUploadFromBytes("avatar.png", buf.Bytes()), nil
}
