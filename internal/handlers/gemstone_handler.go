package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"gemshop/internal/models"
	"gemshop/internal/services"
)

// GemstoneHandler handles HTTP requests for loose gemstones.
type GemstoneHandler struct {
	service  *services.GemstoneService
	validate *validator.Validate
}

// NewGemstoneHandler creates a new GemstoneHandler.
func NewGemstoneHandler(service *services.GemstoneService) *GemstoneHandler {
	return &GemstoneHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public gemstone routes.
func (h *GemstoneHandler) RegisterRoutes(router fiber.Router) {
	gemstoneRoutes := router.Group("/gemstones")
	gemstoneRoutes.Get("/ping", h.HandlePing)
	gemstoneRoutes.Get("/", h.HandleListGemstones)
	gemstoneRoutes.Get("/:id", h.HandleGetGemstone)
}

// RegisterAdminRoutes registers the gemstone management routes.
func (h *GemstoneHandler) RegisterAdminRoutes(router fiber.Router) {
	gemstoneRoutes := router.Group("/gemstones")
	gemstoneRoutes.Post("/", h.HandleCreateGemstone)
	gemstoneRoutes.Put("/:id", h.HandleUpdateGemstone)
	gemstoneRoutes.Delete("/:id", h.HandleDeleteGemstone)
}

// HandlePing is a liveness check for the gemstone sub-API.
func (h *GemstoneHandler) HandlePing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "pong"})
}

// HandleListGemstones retrieves all gemstones.
func (h *GemstoneHandler) HandleListGemstones(c *fiber.Ctx) error {
	gemstones, err := h.service.ListGemstones()
	if err != nil {
		return respondError(c, err, "Could not retrieve gemstones")
	}
	return c.JSON(gemstones)
}

// HandleGetGemstone retrieves a single gemstone by its ID.
func (h *GemstoneHandler) HandleGetGemstone(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	gemstone, err := h.service.GetGemstone(id)
	if err != nil {
		return respondError(c, err, "Could not retrieve gemstone")
	}
	return c.JSON(gemstone)
}

// HandleCreateGemstone creates a new gemstone.
func (h *GemstoneHandler) HandleCreateGemstone(c *fiber.Ctx) error {
	var gemstone models.Gemstone
	if err := c.BodyParser(&gemstone); err != nil {
		log.Printf("Error parsing gemstone request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(gemstone); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateGemstone(&gemstone); err != nil {
		return respondError(c, err, "Could not create gemstone")
	}
	return c.Status(fiber.StatusCreated).JSON(gemstone)
}

// HandleUpdateGemstone updates an existing gemstone.
func (h *GemstoneHandler) HandleUpdateGemstone(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var gemstone models.Gemstone
	if err := c.BodyParser(&gemstone); err != nil {
		log.Printf("Error parsing gemstone request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	gemstone.GemstoneID = id

	if err := h.service.UpdateGemstone(&gemstone); err != nil {
		return respondError(c, err, "Could not update gemstone")
	}
	return c.JSON(gemstone)
}

// HandleDeleteGemstone deletes a gemstone by its ID.
func (h *GemstoneHandler) HandleDeleteGemstone(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.DeleteGemstone(id); err != nil {
		return respondError(c, err, "Could not delete gemstone")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
