package server

import (
	"errors"

	"productapi/internal/docs"
	"productapi/internal/handlers"
	"productapi/internal/metrics"
	"productapi/internal/middleware"
	"productapi/internal/repositories"
	"productapi/internal/services"
	"productapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// ProductsPath is where the product routes are mounted.
const ProductsPath = "/api/products"

// Options are the collaborators of the HTTP application.
type Options struct {
	Store       repositories.ProductStore
	Publisher   services.EventPublisher
	Logger      *logrus.Logger
	FrontendURL string
}

// NewApp wires middleware, the product routes, health, docs and metrics.
func NewApp(opts Options) (*fiber.App, error) {
	validator, err := validation.New()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "productapi",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(opts.Logger),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${respHeader:X-Request-ID}\n",
		Output: opts.Logger.Writer(),
	}))
	for _, h := range middleware.CORS(opts.FrontendURL) {
		app.Use(h)
	}
	app.Use(metrics.Middleware())

	productService := services.NewProductService(opts.Store, opts.Publisher, opts.Logger)
	productHandler := handlers.NewProductHandler(productService, validator, opts.Logger)
	productHandler.RegisterRoutes(app.Group("/api"))

	handlers.NewHealthHandler(opts.Store).RegisterRoutes(app)
	handlers.NewDocsHandler(docs.Products(ProductsPath)).RegisterRoutes(app)
	app.Get("/metrics", metrics.Handler())

	return app, nil
}

// errorHandler renders fiber errors as {"error": message}; anything else is a
// generic 500.
func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.WithError(err).WithField("request_id", middleware.GetRequestID(c)).Error("unhandled error")
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
		})
	}
}
