package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"gemshop/internal/models"
	"gemshop/internal/repositories"
	"gemshop/internal/storage"
	"gemshop/pkg/rabbitmq"
)

// OrderEventPublisher publishes order lifecycle events. Satisfied by
// *rabbitmq.Client; a nil publisher disables publishing.
type OrderEventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// CreateOrderRequest is the input to CreateOrder.
type CreateOrderRequest struct {
	CustomerName    string                   `json:"customer_name" validate:"required,min=2,max=200"`
	CustomerEmail   string                   `json:"customer_email" validate:"required,email"`
	CustomerAddress string                   `json:"customer_address" validate:"required"`
	TelephoneNumber string                   `json:"telephone_number" validate:"required,max=30"`
	Items           []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderItemRequest is one requested order line.
type CreateOrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// SlipUpload carries an uploaded payment-slip file into the order engine.
type SlipUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// OrderService drives the order lifecycle: creation with all-or-nothing stock
// reservation, the payment-slip workflow, status transitions, and
// cancellation with restock.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	slipRepo    repositories.SlipRepository
	pricing     *PricingService
	files       storage.FileStorage
	mq          OrderEventPublisher

	// goldInOrderPricing selects the unit-price snapshot: the plain base
	// price, or the pricing engine's full computed price including markup
	// and gold surcharge.
	goldInOrderPricing bool
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	slipRepo repositories.SlipRepository,
	pricing *PricingService,
	files storage.FileStorage,
	mq OrderEventPublisher,
	goldInOrderPricing bool,
) *OrderService {
	return &OrderService{
		orderRepo:          orderRepo,
		productRepo:        productRepo,
		slipRepo:           slipRepo,
		pricing:            pricing,
		files:              files,
		mq:                 mq,
		goldInOrderPricing: goldInOrderPricing,
	}
}

// ListOrders retrieves all orders, optionally filtered by order status.
func (s *OrderService) ListOrders(statusStr string) ([]models.Order, error) {
	var filter *models.OrderStatus
	if statusStr != "" {
		status, ok := models.ParseOrderStatus(statusStr)
		if !ok {
			return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidStatus, statusStr)
		}
		filter = &status
	}
	return s.orderRepo.GetAll(filter)
}

// GetOrder retrieves a single order aggregate by its ID.
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrOrderNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

// CreateOrder validates the request, reserves stock for every line
// all-or-nothing, snapshots unit prices, and persists the order aggregate
// with pending order and payment statuses.
func (s *OrderService) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrInvalidRequest)
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1 for product %d", ErrInvalidRequest, item.ProductID)
		}
	}

	// Resolve every product and pre-check stock before touching anything, so
	// an order doomed by its last line never mutates the first.
	products := make([]*models.Product, len(req.Items))
	for i, item := range req.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
			}
			return nil, fmt.Errorf("failed to resolve product %d: %w", item.ProductID, err)
		}
		if product.StockQuantity < item.Quantity {
			return nil, fmt.Errorf("%w: product %s (requested %d, available %d)",
				ErrInsufficientStock, product.ProductName, item.Quantity, product.StockQuantity)
		}
		products[i] = product
	}

	// The gold rate is fetched once per order, not once per line.
	var goldRate *models.GoldRate
	if s.goldInOrderPricing {
		for _, product := range products {
			if needsGoldRate(product) {
				rate, err := s.pricing.LatestGoldRate()
				if err != nil {
					return nil, err
				}
				goldRate = rate
				break
			}
		}
	}

	// Reserve stock per line with conditional decrements. The pre-check
	// above can go stale under concurrency; if a decrement loses that race,
	// every earlier reservation is rolled back before reporting failure.
	reserved := make([]CreateOrderItemRequest, 0, len(req.Items))
	for i, item := range req.Items {
		if err := s.productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
			s.releaseStock(reserved)
			switch {
			case errors.Is(err, repositories.ErrStockConflict):
				return nil, fmt.Errorf("%w: product %s (requested %d)",
					ErrInsufficientStock, products[i].ProductName, item.Quantity)
			case errors.Is(err, repositories.ErrNotFound):
				return nil, fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
			default:
				return nil, fmt.Errorf("failed to reserve stock for product %d: %w", item.ProductID, err)
			}
		}
		reserved = append(reserved, item)
	}

	totalAmount := decimal.Zero
	orderItems := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		unitPrice := products[i].BasePrice
		if s.goldInOrderPricing {
			unitPrice = PriceWithRate(products[i], goldRate)
		}
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		orderItems[i] = models.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: lineTotal,
		}
		totalAmount = totalAmount.Add(lineTotal)
	}

	order := &models.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		TelephoneNumber: req.TelephoneNumber,
		TotalAmount:     totalAmount,
		OrderStatus:     models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		Items:           orderItems,
	}

	if err := s.orderRepo.Create(order); err != nil {
		s.releaseStock(reserved)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishEvent(rabbitmq.RouteOrderCreated, map[string]interface{}{
		"order_id":       order.OrderID,
		"customer_email": order.CustomerEmail,
		"order_status":   order.OrderStatus,
		"total_amount":   order.TotalAmount,
	})

	return order, nil
}

// releaseStock undoes reservations made earlier in the same request.
func (s *OrderService) releaseStock(reserved []CreateOrderItemRequest) {
	for _, item := range reserved {
		if err := s.productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
			log.Printf("Warning: failed to release %d units of product %d: %v",
				item.Quantity, item.ProductID, err)
		}
	}
}

// UploadSlip stores a payment-slip file for the order, replacing any previous
// slip (file and record), and moves the order to processing. Uploading twice
// in a row leaves only the last file on disk.
func (s *OrderService) UploadSlip(orderID uint, upload SlipUpload) (*models.Slip, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	relPath, err := s.files.Store(fmt.Sprintf("orders/%d", orderID), upload.FileName, upload.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store slip file: %w", err)
	}

	// Remove the previous slip, if any.
	existing, err := s.slipRepo.GetByOrderID(orderID)
	switch {
	case err == nil:
		if existing.FilePath != "" {
			if delErr := s.files.Delete(existing.FilePath); delErr != nil {
				log.Printf("Warning: failed to delete old slip file %s: %v", existing.FilePath, delErr)
			}
		}
		if err := s.slipRepo.Delete(existing.SlipID); err != nil {
			return nil, fmt.Errorf("failed to delete previous slip: %w", err)
		}
	case errors.Is(err, repositories.ErrNotFound):
		// First upload for this order.
	default:
		return nil, err
	}

	slip := &models.Slip{
		OrderID:       orderID,
		FileName:      upload.FileName,
		FilePath:      relPath,
		FileType:      upload.ContentType,
		FileSize:      upload.Size,
		UploadedAt:    time.Now(),
		PaymentStatus: models.PaymentStatusPending,
	}
	if err := s.slipRepo.Create(slip); err != nil {
		return nil, fmt.Errorf("failed to create slip: %w", err)
	}

	order.Slip = slip
	order.OrderStatus = models.OrderStatusProcessing
	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", orderID, err)
	}

	return slip, nil
}

// GetSlip returns the slip record attached to an order.
func (s *OrderService) GetSlip(orderID uint) (*models.Slip, error) {
	if _, err := s.GetOrder(orderID); err != nil {
		return nil, err
	}
	slip, err := s.slipRepo.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrSlipNotFound, orderID)
		}
		return nil, err
	}
	return slip, nil
}

// OpenSlipFile returns the slip record plus a reader over its stored file.
// The caller closes the reader.
func (s *OrderService) OpenSlipFile(orderID uint) (*models.Slip, io.ReadCloser, error) {
	slip, err := s.GetSlip(orderID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.files.Open(slip.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, nil, fmt.Errorf("%w: file for order %d", ErrSlipNotFound, orderID)
		}
		return nil, nil, err
	}
	return slip, rc, nil
}

// DeleteSlip removes the order's slip file and record and reverts the order
// to pending.
func (s *OrderService) DeleteSlip(orderID uint) error {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return err
	}
	slip, err := s.slipRepo.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: order %d", ErrSlipNotFound, orderID)
		}
		return err
	}

	if slip.FilePath != "" {
		if err := s.files.Delete(slip.FilePath); err != nil {
			log.Printf("Warning: failed to delete slip file %s: %v", slip.FilePath, err)
		}
	}
	if err := s.slipRepo.Delete(slip.SlipID); err != nil {
		return fmt.Errorf("failed to delete slip: %w", err)
	}

	order.Slip = nil
	order.OrderStatus = models.OrderStatusPending
	if err := s.orderRepo.Update(order); err != nil {
		return fmt.Errorf("failed to update order %d: %w", orderID, err)
	}
	return nil
}

// UpdateStatuses applies optional order and payment status changes. Empty
// strings leave the corresponding field unchanged. Both values are validated
// before anything is mutated. When the payment status becomes verified and a
// slip is on file, the slip is marked verified as a side effect.
func (s *OrderService) UpdateStatuses(orderID uint, orderStatusStr, paymentStatusStr string) (*models.Order, error) {
	var (
		orderStatus   models.OrderStatus
		paymentStatus models.PaymentStatus
		ok            bool
	)
	if orderStatusStr != "" {
		if orderStatus, ok = models.ParseOrderStatus(orderStatusStr); !ok {
			return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidStatus, orderStatusStr)
		}
	}
	if paymentStatusStr != "" {
		if paymentStatus, ok = models.ParsePaymentStatus(paymentStatusStr); !ok {
			return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidStatus, paymentStatusStr)
		}
	}

	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if orderStatusStr != "" {
		order.OrderStatus = orderStatus
	}
	if paymentStatusStr != "" {
		order.PaymentStatus = paymentStatus

		if paymentStatus == models.PaymentStatusVerified {
			slip, err := s.slipRepo.GetByOrderID(orderID)
			switch {
			case err == nil:
				if !slip.Verified {
					slip.MarkVerified(paymentStatus, time.Now())
					if err := s.slipRepo.Update(slip); err != nil {
						return nil, fmt.Errorf("failed to mark slip verified: %w", err)
					}
				}
				order.Slip = slip
			case errors.Is(err, repositories.ErrNotFound):
				// Payment verified without a slip on file; nothing to mark.
			default:
				return nil, err
			}
		}
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", orderID, err)
	}

	s.publishEvent(rabbitmq.RouteOrderStatusUpdated, map[string]interface{}{
		"order_id":       order.OrderID,
		"order_status":   order.OrderStatus,
		"payment_status": order.PaymentStatus,
	})

	return order, nil
}

// CancelOrder cancels an order that is not yet verified or paid, restoring
// exactly the quantities its items reserved.
func (s *OrderService) CancelOrder(orderID uint) (*models.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	switch order.OrderStatus {
	case models.OrderStatusVerified, models.OrderStatusPaid:
		return nil, fmt.Errorf("%w: cannot cancel %s order %d", ErrIllegalTransition, order.OrderStatus, orderID)
	case models.OrderStatusCancelled:
		// Cancelling twice would restore stock twice.
		return nil, fmt.Errorf("%w: order %d is already cancelled", ErrIllegalTransition, orderID)
	}

	for _, item := range order.Items {
		if err := s.productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				// The product was deleted after the order was placed; there is
				// no stock row left to restore.
				log.Printf("Warning: product %d gone, skipping restock of %d units", item.ProductID, item.Quantity)
				continue
			}
			return nil, fmt.Errorf("failed to restore stock for product %d: %w", item.ProductID, err)
		}
	}

	order.OrderStatus = models.OrderStatusCancelled
	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", orderID, err)
	}

	s.publishEvent(rabbitmq.RouteOrderCancelled, map[string]interface{}{
		"order_id":     order.OrderID,
		"order_status": order.OrderStatus,
	})

	return order, nil
}

// publishEvent sends an order event best-effort; a broker outage must never
// fail the order operation itself.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mq == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mq.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
