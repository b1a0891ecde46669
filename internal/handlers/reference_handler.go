package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"gemshop/internal/models"
	"gemshop/internal/services"
)

// ReferenceHandler handles HTTP requests for catalog reference data:
// materials and attributes.
type ReferenceHandler struct {
	service *services.CatalogService
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(service *services.CatalogService) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// RegisterRoutes registers the public reference-data routes.
func (h *ReferenceHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/materials", h.HandleListMaterials)
	router.Get("/attributes", h.HandleListAttributes)
}

// RegisterAdminRoutes registers the reference-data management routes.
func (h *ReferenceHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/materials", h.HandleCreateMaterial)
	router.Put("/materials/:id", h.HandleUpdateMaterial)
	router.Post("/attributes", h.HandleCreateAttribute)
}

// HandleListMaterials retrieves all materials.
func (h *ReferenceHandler) HandleListMaterials(c *fiber.Ctx) error {
	materials, err := h.service.ListMaterials()
	if err != nil {
		return respondError(c, err, "Could not retrieve materials")
	}
	return c.JSON(materials)
}

// HandleCreateMaterial registers a new material.
func (h *ReferenceHandler) HandleCreateMaterial(c *fiber.Ctx) error {
	var material models.Material
	if err := c.BodyParser(&material); err != nil {
		log.Printf("Error parsing material request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateMaterial(&material); err != nil {
		return respondError(c, err, "Could not create material")
	}
	return c.Status(fiber.StatusCreated).JSON(material)
}

// HandleUpdateMaterial updates a material, typically its current rate.
func (h *ReferenceHandler) HandleUpdateMaterial(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var material models.Material
	if err := c.BodyParser(&material); err != nil {
		log.Printf("Error parsing material request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	material.MaterialID = id

	if err := h.service.UpdateMaterial(&material); err != nil {
		return respondError(c, err, "Could not update material")
	}
	return c.JSON(material)
}

// HandleListAttributes retrieves all attributes with their values.
func (h *ReferenceHandler) HandleListAttributes(c *fiber.Ctx) error {
	attributes, err := h.service.ListAttributes()
	if err != nil {
		return respondError(c, err, "Could not retrieve attributes")
	}
	return c.JSON(attributes)
}

// HandleCreateAttribute registers a new attribute and its values.
func (h *ReferenceHandler) HandleCreateAttribute(c *fiber.Ctx) error {
	var attribute models.Attribute
	if err := c.BodyParser(&attribute); err != nil {
		log.Printf("Error parsing attribute request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateAttribute(&attribute); err != nil {
		return respondError(c, err, "Could not create attribute")
	}
	return c.Status(fiber.StatusCreated).JSON(attribute)
}
