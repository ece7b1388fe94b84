package handlers

import (
	"errors"

	"productapi/internal/middleware"
	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/services"
	"productapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// DeletedMessage is the literal returned in place of a deleted product.
const DeletedMessage = "Producto Eliminado"

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service   *services.ProductService
	validator *validation.Validator
	log       logrus.FieldLogger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validator *validation.Validator, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validator: validator,
		log:       log,
	}
}

// RegisterRoutes registers the product routes. Every route taking input runs
// its rule chains, then the error check, then the handler.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	v := h.validator
	productRoutes := router.Group("/products")

	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id",
		v.Check(validation.ProductID),
		validation.HandleInputErrors,
		h.HandleGetProductByID,
	)
	productRoutes.Post("/",
		v.Check(validation.ProductName, validation.ProductPrice),
		validation.HandleInputErrors,
		h.HandleCreateProduct,
	)
	productRoutes.Put("/:id",
		v.Check(validation.ProductID, validation.ProductName, validation.ProductPrice, validation.ProductAvailability),
		validation.HandleInputErrors,
		h.HandleUpdateProduct,
	)
	productRoutes.Patch("/:id",
		v.Check(validation.ProductID),
		validation.HandleInputErrors,
		h.HandleToggleAvailability,
	)
	productRoutes.Delete("/:id",
		v.Check(validation.ProductID),
		validation.HandleInputErrors,
		h.HandleDeleteProduct,
	)
}

// HandleGetProducts lists every product, most expensive first.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return h.respondError(c, "list products", err)
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id := productID(c)
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, "get product", err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	product, err := h.service.CreateProduct(c.UserContext(), productFields(c))
	if err != nil {
		return h.respondError(c, "create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleUpdateProduct replaces name, price and availability.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := productID(c)
	product, err := h.service.UpdateProduct(c.UserContext(), id, productFields(c))
	if err != nil {
		return h.respondError(c, "update product", err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleToggleAvailability flips the availability of a product.
func (h *ProductHandler) HandleToggleAvailability(c *fiber.Ctx) error {
	id := productID(c)
	product, err := h.service.ToggleAvailability(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, "toggle availability", err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := productID(c)
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return h.respondError(c, "delete product", err)
	}
	return c.JSON(fiber.Map{"data": DeletedMessage})
}

func (h *ProductHandler) respondError(c *fiber.Ctx, op string, err error) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}
	if errors.Is(err, repositories.ErrInvalidProduct) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	entry := h.log.WithFields(logrus.Fields{
		"op":         op,
		"request_id": middleware.GetRequestID(c),
	}).WithError(err)
	var storeErr *repositories.StoreError
	if errors.As(err, &storeErr) {
		entry = entry.WithField("kind", storeErr.Kind)
	}
	entry.Error("product store failure")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

// productID reads the already validated :id parameter.
func productID(c *fiber.Ctx) int64 {
	id, _ := validation.AsInt(c.Params("id"))
	return id
}

// productFields maps the already validated body onto ProductFields.
func productFields(c *fiber.Ctx) models.ProductFields {
	body := validation.BodyOf(c)
	name, _ := body["name"].(string)
	price, _ := validation.AsFloat(body["price"])
	fields := models.ProductFields{Name: name, Price: price}
	if raw, ok := body["availability"]; ok {
		if available, ok := validation.AsBool(raw); ok {
			fields.Availability = &available
		}
	}
	return fields
}
