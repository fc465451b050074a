package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/arca/internal/arca"
	"github.com/i474232898/arca/internal/hydration"
	"github.com/i474232898/arca/internal/store"
	"github.com/i474232898/arca/internal/support"
	"github.com/i474232898/arca/internal/user"
)

const appName = "arca"

// Options configure NewApp.
type Options struct {
	// AccessLog enables per-request logging.
	AccessLog bool
	// Gatherer backs /metrics; nil uses the default Prometheus registry.
	Gatherer prometheus.Gatherer
}

// NewApp builds the Fiber app with middleware, health, metrics and API routes.
func NewApp(service *arca.Service, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	RegisterRoutes(app, service)
	return app
}

// ErrorHandler maps service errors to HTTP status codes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	body := fiber.Map{
		"error":   true,
		"message": err.Error(),
	}

	var fiberErr *fiber.Error
	var validationErrs support.ValidationErrors
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.As(err, &validationErrs):
		code = fiber.StatusBadRequest
		body["fields"] = []support.FieldError(validationErrs)
	case errors.Is(err, store.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, arca.ErrRestricted):
		code = fiber.StatusForbidden
	case errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrInvalidPhone),
		errors.Is(err, hydration.ErrInvalidWeight),
		errors.Is(err, support.ErrCapacityRange),
		errors.Is(err, support.ErrCapacityNotNumber):
		code = fiber.StatusBadRequest
	}

	if code >= fiber.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error("request failed")
		body["message"] = "internal error"
	}
	return c.Status(code).JSON(body)
}
