package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"gemshop/internal/models"
	"gemshop/internal/services"
)

// GoldRateHandler handles HTTP requests for the daily gold rate.
type GoldRateHandler struct {
	service *services.GoldRateService
}

// NewGoldRateHandler creates a new GoldRateHandler.
func NewGoldRateHandler(service *services.GoldRateService) *GoldRateHandler {
	return &GoldRateHandler{service: service}
}

// RegisterRoutes registers the public gold-rate routes.
func (h *GoldRateHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/gold-rates/latest", h.HandleLatestRate)
}

// RegisterAdminRoutes registers the gold-rate management routes.
func (h *GoldRateHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/gold-rates", h.HandleRecordRate)
}

// HandleLatestRate returns the most recent recorded gold rate.
func (h *GoldRateHandler) HandleLatestRate(c *fiber.Ctx) error {
	rate, err := h.service.LatestRate()
	if err != nil {
		return respondError(c, err, "Could not retrieve gold rate")
	}
	return c.JSON(rate)
}

// HandleRecordRate appends a new gold-rate record.
func (h *GoldRateHandler) HandleRecordRate(c *fiber.Ctx) error {
	var rate models.GoldRate
	if err := c.BodyParser(&rate); err != nil {
		log.Printf("Error parsing gold-rate request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.RecordRate(&rate); err != nil {
		return respondError(c, err, "Could not record gold rate")
	}
	return c.Status(fiber.StatusCreated).JSON(rate)
}
