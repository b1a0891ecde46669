package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gemshop/internal/models"
	"gemshop/internal/repositories"
	"gemshop/internal/services"
	"gemshop/internal/storage"
)

type orderFixture struct {
	products *repositories.MockProductRepository
	orders   *repositories.MockOrderRepository
	slips    *repositories.MockSlipRepository
	rates    *repositories.MockGoldRateRepository
	files    *storage.MockFileStorage
	service  *services.OrderService
}

func newOrderFixture(goldInOrders bool) *orderFixture {
	f := &orderFixture{
		products: repositories.NewMockProductRepository(),
		orders:   repositories.NewMockOrderRepository(),
		slips:    repositories.NewMockSlipRepository(),
		rates:    repositories.NewMockGoldRateRepository(),
		files:    storage.NewMockFileStorage(),
	}
	pricing := services.NewPricingService(f.products, f.rates)
	f.service = services.NewOrderService(f.orders, f.products, f.slips, pricing, f.files, nil, goldInOrders)
	return f
}

func (f *orderFixture) seedProduct(t *testing.T, name, basePrice string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ProductName:   name,
		SKU:           strings.ToUpper(name),
		BasePrice:     decimal.RequireFromString(basePrice),
		StockQuantity: stock,
		IsActive:      true,
	}
	assert.NoError(t, f.products.Create(product))
	return product
}

func (f *orderFixture) stockOf(t *testing.T, id uint) int {
	t.Helper()
	product, err := f.products.GetByID(id)
	assert.NoError(t, err)
	return product.StockQuantity
}

func orderRequest(items ...services.CreateOrderItemRequest) services.CreateOrderRequest {
	return services.CreateOrderRequest{
		CustomerName:    "Priya Sharma",
		CustomerEmail:   "priya@example.com",
		CustomerAddress: "12 Temple Road, Colombo",
		TelephoneNumber: "0771234567",
		Items:           items,
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	f := newOrderFixture(false)
	ring := f.seedProduct(t, "ring", "150.00", 5)

	order, err := f.service.CreateOrder(orderRequest(
		services.CreateOrderItemRequest{ProductID: ring.ProductID, Quantity: 3},
	))

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("450.00")))
	assert.Equal(t, 2, f.stockOf(t, ring.ProductID))
}

func TestOrderService_CreateOrder_InsufficientStock(t *testing.T) {
	f := newOrderFixture(false)
	ring := f.seedProduct(t, "ring", "150.00", 5)

	_, err := f.service.CreateOrder(orderRequest(
		services.CreateOrderItemRequest{ProductID: ring.ProductID, Quantity: 10},
	))

	assert.ErrorIs(t, err, services.ErrInsufficientStock)
	assert.Equal(t, 5, f.stockOf(t, ring.ProductID))
}

func TestOrderService_CreateOrder_InvalidRequest(t *testing.T) {
	f := newOrderFixture(false)
	ring := f.seedProduct(t, "ring", "150.00", 5)

	_, err := f.service.CreateOrder(orderRequest())
	assert.ErrorIs(t, err, services.ErrInvalidRequest)

	_, err = f.service.CreateOrder(orderRequest(
		services.CreateOrderItemRequest{ProductID: ring.ProductID, Quantity: 0},
	))
	assert.ErrorIs(t, err, services.ErrInvalidRequest)
	assert.Equal(t, 5, f.stockOf(t, ring.ProductID))
}

func TestOrderService_CreateOrder_UnknownProduct(t *testing.T) {
	f := newOrderFixture(false)

	_, err := f.service.CreateOrder(orderRequest(
		services.CreateOrderItemRequest{ProductID: 99, Quantity: 1},
	))
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

// racingProductRepository lets another buyer grab stock between the order
// engine's pre-check and its reservation, forcing the rollback path.
type racingProductRepository struct {
	*repositories.MockProductRepository
	stealFrom uint
	stealQty  int
	stolen    bool
}

func (r *racingProductRepository) DecrementStock(id uint, quantity int) error {
	if id == r.stealFrom && !r.stolen {
		r.stolen = true
		if err := r.MockProductRepository.DecrementStock(id, r.stealQty); err != nil {
			return err
		}
	}
	return r.MockProductRepository.DecrementStock(id, quantity)
}

func TestOrderService_CreateOrder_RollsBackEarlierLines(t *testing.T) {
	f := newOrderFixture(false)
	ring := f.seedProduct(t, "ring", "150.00", 5)
	chain := f.seedProduct(t, "chain", "300.00", 4)

	racing := &racingProductRepository{
		MockProductRepository: f.products,
		stealFrom:             chain.ProductID,
		stealQty:              3,
	}
	pricing := services.NewPricingService(racing, f.rates)
	service := services.NewOrderService(f.orders, racing, f.slips, pricing, f.files, nil, false)

	_, err := service.CreateOrder(orderRequest(
		services.CreateOrderItemRequest{ProductID: ring.ProductID, Quantity: 2},
		services.CreateOrderItemRequest{ProductID: chain.ProductID, Quantity: 4},
	))

	assert.ErrorIs(t, err, services.ErrInsufficientStock)
	// The ring reservation must be released; the chain keeps only the
	// competing buyer's decrement.
	assert.Equal(t, 5, f.stockOf(t, ring.ProductID))
	assert.Equal(t, 1, f.stockOf(t, chain.ProductID))

	orders, err := f.orders.GetAll(nil)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_CreateOrder_GoldPricing(t *testing.T) {
	goldRing := func(f *orderFixture, t *testing.T) *models.Product {
		product := f.seedProduct(t, "gold-ring", "1000.00", 5)
		product.MarkupPercentage = decimal.RequireFromString("10")
		product.IsGold = true
		product.GoldWeightGrams = decimal.RequireFromString("2.5")
		assert.NoError(t, f.products.Update(product))
		return product
	}

	t.Run("base price snapshot by default", func(t *testing.T) {
		f := newOrderFixture(false)
		product := goldRing(f, t)

		order, err := f.service.CreateOrder(orderRequest(
			services.CreateOrderItemRequest{ProductID: product.ProductID, Quantity: 1},
		))
		assert.NoError(t, err)
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("1000.00")))
	})

	t.Run("computed price when enabled", func(t *testing.T) {
		f := newOrderFixture(true)
		product := goldRing(f, t)
		assert.NoError(t, f.rates.Create(&models.GoldRate{
			RatePerGram: decimal.RequireFromString("200.00"),
			RateDate:    time.Now(),
		}))

		order, err := f.service.CreateOrder(orderRequest(
			services.CreateOrderItemRequest{ProductID: product.ProductID, Quantity: 1},
		))
		assert.NoError(t, err)
		// 1000 + 1000*10% + 2.5*200
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("1600.00")),
			"got %s", order.TotalAmount)
	})

	t.Run("fails without a recorded rate", func(t *testing.T) {
		f := newOrderFixture(true)
		product := goldRing(f, t)

		_, err := f.service.CreateOrder(orderRequest(
			services.CreateOrderItemRequest{ProductID: product.ProductID, Quantity: 1},
		))
		assert.ErrorIs(t, err, services.ErrRateUnavailable)
		assert.Equal(t, 5, f.stockOf(t, product.ProductID))
	})
}

func placeOrder(t *testing.T, f *orderFixture, productID uint, quantity int) *models.Order {
	t.Helper()
	order, err := f.service.CreateOrder(orderRequest(
		services.CreateOrderItemRequest{ProductID: productID, Quantity: quantity},
	))
	assert.NoError(t, err)
	return order
}

func slipUpload(name string) services.SlipUpload {
	return services.SlipUpload{
		FileName:    name,
		ContentType: "image/png",
		Size:        4,
		Content:     strings.NewReader("data"),
	}
}

func TestOrderService_UploadSlip(t *testing.T) {
	f := newOrderFixture(false)
	ring := f.seedProduct(t, "ring", "150.00", 5)
	order := placeOrder(t, f, ring.ProductID, 1)

	slip, err := f.service.UploadSlip(order.OrderID, slipUpload("slip.png"))
	assert.NoError(t, err)
	assert.Equal(t, order.OrderID, slip.OrderID)
	assert.False(t, slip.Verified)
	assert.True(t, f.files.Has(slip.FilePath))

	updated, err := f.service.GetOrder(order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.OrderStatus)

	// A second upload replaces the first file and record.
	replacement, err := f.service.UploadSlip(order.OrderID, slipUpload("slip2.png"))
	assert.NoError(t, err)
	assert.NotEqual(t, slip.FilePath, replacement.FilePath)
	assert.Equal(t, 1, f.files.Count())
	assert.False(t, f.files.Has(slip.FilePath))
}

func TestOrderService_UploadSlip_OrderNotFound(t *testing.T) {
	f := newOrderFixture(false)

	_, err := f.service.UploadSlip(42, slipUpload("slip.png"))
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
	assert.Equal(t, 0, f.files.Count())
}

func TestOrderService_DeleteSlip(t *testing.T) {
	f := newOrderFixture(false)
	ring := f.seedProduct(t, "ring", "150.00", 5)
	order := placeOrder(t, f, ring.ProductID, 1)

	_, err := f.service.UploadSlip(order.OrderID, slipUpload("slip.png"))
	assert.NoError(t, err)

	assert.NoError(t, f.service.DeleteSlip(order.OrderID))
	assert.Equal(t, 0, f.files.Count())

	updated, err := f.service.GetOrder(order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, updated.OrderStatus)

	_, err = f.service.GetSlip(order.OrderID)
	assert.ErrorIs(t, err, services.ErrSlipNotFound)

	assert.ErrorIs(t, f.service.DeleteSlip(order.OrderID), services.ErrSlipNotFound)
}

func TestOrderService_UpdateStatuses(t *testing.T) {
	f := newOrderFixture(false)
	ring := f.seedProduct(t, "ring", "150.00", 5)
	order := placeOrder(t, f, ring.ProductID, 1)

	_, err := f.service.UploadSlip(order.OrderID, slipUpload("slip.png"))
	assert.NoError(t, err)

	updated, err := f.service.UpdateStatuses(order.OrderID, "verified", "verified")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusVerified, updated.OrderStatus)
	assert.Equal(t, models.PaymentStatusVerified, updated.PaymentStatus)

	slip, err := f.service.GetSlip(order.OrderID)
	assert.NoError(t, err)
	assert.True(t, slip.Verified)
	assert.NotNil(t, slip.VerifiedAt)
	assert.Equal(t, models.PaymentStatusVerified, slip.PaymentStatus)
}

func TestOrderService_UpdateStatuses_PartialUpdate(t *testing.T) {
	f := newOrderFixture(false)
	ring := f.seedProduct(t, "ring", "150.00", 5)
	order := placeOrder(t, f, ring.ProductID, 1)

	updated, err := f.service.UpdateStatuses(order.OrderID, "processing", "")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.OrderStatus)
	assert.Equal(t, models.PaymentStatusPending, updated.PaymentStatus)
}

func TestOrderService_UpdateStatuses_InvalidStatus(t *testing.T) {
	f := newOrderFixture(false)
	ring := f.seedProduct(t, "ring", "150.00", 5)
	order := placeOrder(t, f, ring.ProductID, 1)

	_, err := f.service.UpdateStatuses(order.OrderID, "shipped", "")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)

	// A valid order status paired with an invalid payment status must not
	// apply either change.
	_, err = f.service.UpdateStatuses(order.OrderID, "verified", "bogus")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)

	unchanged, err := f.service.GetOrder(order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, unchanged.OrderStatus)
	assert.Equal(t, models.PaymentStatusPending, unchanged.PaymentStatus)
}

func TestOrderService_CancelOrder(t *testing.T) {
	f := newOrderFixture(false)
	ring := f.seedProduct(t, "ring", "150.00", 5)
	chain := f.seedProduct(t, "chain", "300.00", 4)

	order, err := f.service.CreateOrder(orderRequest(
		services.CreateOrderItemRequest{ProductID: ring.ProductID, Quantity: 3},
		services.CreateOrderItemRequest{ProductID: chain.ProductID, Quantity: 2},
	))
	assert.NoError(t, err)
	assert.Equal(t, 2, f.stockOf(t, ring.ProductID))
	assert.Equal(t, 2, f.stockOf(t, chain.ProductID))

	cancelled, err := f.service.CancelOrder(order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.OrderStatus)
	assert.Equal(t, 5, f.stockOf(t, ring.ProductID))
	assert.Equal(t, 4, f.stockOf(t, chain.ProductID))

	// Cancelling again must not restock again.
	_, err = f.service.CancelOrder(order.OrderID)
	assert.ErrorIs(t, err, services.ErrIllegalTransition)
	assert.Equal(t, 5, f.stockOf(t, ring.ProductID))
}

func TestOrderService_CancelOrder_VerifiedOrPaid(t *testing.T) {
	for _, status := range []string{"verified", "paid"} {
		f := newOrderFixture(false)
		ring := f.seedProduct(t, "ring", "150.00", 5)
		order := placeOrder(t, f, ring.ProductID, 2)

		_, err := f.service.UpdateStatuses(order.OrderID, status, "")
		assert.NoError(t, err)

		_, err = f.service.CancelOrder(order.OrderID)
		assert.ErrorIs(t, err, services.ErrIllegalTransition)
		assert.Equal(t, 3, f.stockOf(t, ring.ProductID))
	}
}

func TestOrderService_ListOrders(t *testing.T) {
	f := newOrderFixture(false)
	ring := f.seedProduct(t, "ring", "150.00", 10)
	placeOrder(t, f, ring.ProductID, 1)
	order := placeOrder(t, f, ring.ProductID, 1)
	_, err := f.service.UpdateStatuses(order.OrderID, "processing", "")
	assert.NoError(t, err)

	all, err := f.service.ListOrders("")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := f.service.ListOrders("pending")
	assert.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = f.service.ListOrders("shipped")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)
}
