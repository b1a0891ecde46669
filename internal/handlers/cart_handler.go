package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"gemshop/internal/services"
)

// CartHandler handles HTTP requests for shopping carts. Carts are keyed by a
// customer_id query parameter; customers shop without an account.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleViewCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:itemId", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:itemId", h.HandleRemoveItem)
	cartRoutes.Post("/checkout", h.HandleCheckout)
}

func customerIDFromQuery(c *fiber.Ctx) (uint, error) {
	id := c.QueryInt("customer_id")
	if id < 1 {
		return 0, errors.New("a positive customer_id query parameter is required")
	}
	return uint(id), nil
}

// HandleViewCart returns the customer's open cart with totals.
func (h *CartHandler) HandleViewCart(c *fiber.Ctx) error {
	customerID, err := customerIDFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	view, err := h.service.ViewCart(customerID)
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	return c.JSON(view)
}

// HandleAddItem adds a product to the customer's open cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	customerID, err := customerIDFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req struct {
		ProductID uint `json:"product_id" validate:"required"`
		Quantity  int  `json:"quantity" validate:"required,min=1"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	view, err := h.service.AddItem(customerID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err, "Could not add item to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleUpdateItem sets a cart line's quantity; zero removes the line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	customerID, err := customerIDFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	view, err := h.service.UpdateItem(customerID, itemID, req.Quantity)
	if err != nil {
		return respondError(c, err, "Could not update cart item")
	}
	return c.JSON(view)
}

// HandleRemoveItem deletes a line from the customer's open cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	customerID, err := customerIDFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if _, err := h.service.RemoveItem(customerID, itemID); err != nil {
		return respondError(c, err, "Could not remove cart item")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCheckout converts the customer's open cart into an order.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	customerID, err := customerIDFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	order, err := h.service.Checkout(customerID, req)
	if err != nil {
		return respondError(c, err, "Could not check out cart")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}
