package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"gemshop/internal/services"
)

// maxSlipSize caps payment-slip uploads at 5 MiB.
const maxSlipSize = 5 << 20

var allowedSlipTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// OrderHandler handles HTTP requests for orders and payment slips.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the customer-facing order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
	orderRoutes.Post("/:id/slip", h.HandleUploadSlip)
	orderRoutes.Get("/:id/slip", h.HandleDownloadSlip)
	orderRoutes.Delete("/:id/slip", h.HandleDeleteSlip)
}

// RegisterAdminRoutes registers the back-office order routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Patch("/:id/status", h.HandleUpdateStatuses)
}

// HandleListOrders retrieves all orders, optionally filtered by ?status=.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.Query("status"))
	if err != nil {
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrder retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	order, err := h.service.GetOrder(id)
	if err != nil {
		return respondError(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

// HandleCreateOrder places a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req services.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
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

	order, err := h.service.CreateOrder(req)
	if err != nil {
		return respondError(c, err, "Could not create order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleCancelOrder cancels an order and restores its stock.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	order, err := h.service.CancelOrder(id)
	if err != nil {
		return respondError(c, err, "Could not cancel order")
	}
	return c.JSON(order)
}

// HandleUploadSlip attaches a payment-slip file to an order. Expects a
// multipart form with the file under the "slip" field.
func (h *OrderHandler) HandleUploadSlip(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	fileHeader, err := c.FormFile("slip")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A 'slip' file field is required",
			"error":   err.Error(),
		})
	}
	if fileHeader.Size > maxSlipSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"message": "Slip file exceeds the 5 MiB limit",
		})
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedSlipTypes[contentType] {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
			"message": "Slip must be a JPEG, PNG, or PDF file",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded slip: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read uploaded file",
		})
	}
	defer file.Close()

	slip, err := h.service.UploadSlip(id, services.SlipUpload{
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		return respondError(c, err, "Could not upload slip")
	}
	return c.Status(fiber.StatusCreated).JSON(slip)
}

// HandleDownloadSlip streams the stored slip file back to the caller.
func (h *OrderHandler) HandleDownloadSlip(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	slip, rc, err := h.service.OpenSlipFile(id)
	if err != nil {
		return respondError(c, err, "Could not retrieve slip")
	}

	c.Set(fiber.HeaderContentType, slip.FileType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", slip.FileName))
	return c.SendStream(rc)
}

// HandleDeleteSlip removes the order's slip and reverts it to pending.
func (h *OrderHandler) HandleDeleteSlip(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.DeleteSlip(id); err != nil {
		return respondError(c, err, "Could not delete slip")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUpdateStatuses updates the order and/or payment status of an order.
func (h *OrderHandler) HandleUpdateStatuses(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var updateData struct {
		OrderStatus   string `json:"order_status"`
		PaymentStatus string `json:"payment_status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if updateData.OrderStatus == "" && updateData.PaymentStatus == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "At least one of order_status or payment_status is required",
		})
	}

	order, err := h.service.UpdateStatuses(id, updateData.OrderStatus, updateData.PaymentStatus)
	if err != nil {
		return respondError(c, err, "Could not update order status")
	}
	return c.JSON(order)
}
