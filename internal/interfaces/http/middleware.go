package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/staffdir/pkg/logger"
)

// RequestLogger asigna un request_id, guarda un sublogger en el contexto de la petición y registra
// una línea por petición. Los errores de la cadena se resuelven aquí con el ErrorHandler de la app
// para que el status registrado sea el definitivo.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(fiber.HeaderXRequestID, requestID)

		ctx := log.WithContext(c.UserContext(), map[string]any{"request_id": requestID})
		c.SetUserContext(ctx)

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		zerolog.Ctx(ctx).Info().
			Str("method", c.Method()).
			Str("endpoint", c.Path()).
			Int("status", c.Response().StatusCode()).
			Int64("latency", time.Since(start).Milliseconds()).
			Msg("petición procesada")
		return nil
	}
}

// Tracing abre un span por petición con el TracerProvider global (no-op si no se inicializó).
func Tracing(serviceName string) fiber.Handler {
	tracer := otel.Tracer(serviceName)
	return func(c *fiber.Ctx) error {
		ctx, span := tracer.Start(c.UserContext(), fmt.Sprintf("[%s] %s", c.Method(), c.Path()),
			trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		c.SetUserContext(ctx)

		err := c.Next()
		span.SetAttributes(attribute.Int("http.status_code", c.Response().StatusCode()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}
