package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"gemshop/internal/models"
	"gemshop/internal/repositories"
)

// CartLineView is a cart line with its computed total.
type CartLineView struct {
	CartItemID uint            `json:"cart_item_id"`
	ProductID  uint            `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// CartView is the cart as presented to the customer.
type CartView struct {
	CartID   uint            `json:"cart_id"`
	Status   string          `json:"status"`
	Items    []CartLineView  `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CheckoutRequest carries the customer details needed to turn a cart into an
// order.
type CheckoutRequest struct {
	CustomerName    string `json:"customer_name" validate:"required,min=2,max=200"`
	CustomerEmail   string `json:"customer_email" validate:"required,email"`
	CustomerAddress string `json:"customer_address" validate:"required"`
	TelephoneNumber string `json:"telephone_number" validate:"required,max=30"`
}

// CartService manages a customer's open cart and hands it to the order
// engine at checkout.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	orders      *OrderService
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, orders *OrderService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orders:      orders,
	}
}

// openCart returns the customer's open cart, creating one if needed.
func (s *CartService) openCart(customerID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOpenByCustomer(customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	cart = &models.Cart{
		CustomerID: customerID,
		Status:     models.CartStatusOpen,
	}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

// ViewCart returns the customer's open cart with line and subtotal amounts.
// A customer who has never added anything sees an empty cart, not an error.
func (s *CartService) ViewCart(customerID uint) (*CartView, error) {
	cart, err := s.openCart(customerID)
	if err != nil {
		return nil, err
	}
	return buildCartView(cart), nil
}

// AddItem puts a product into the customer's open cart, snapshotting the
// product's base price. Adding a product already in the cart merges the
// quantities.
func (s *CartService) AddItem(customerID, productID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidRequest)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrProductNotFound, productID)
		}
		return nil, err
	}

	cart, err := s.openCart(customerID)
	if err != nil {
		return nil, err
	}

	var line *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			line = &cart.Items[i]
			break
		}
	}

	if line != nil {
		line.Quantity += quantity
	} else {
		line = &models.CartItem{
			CartID:    cart.CartID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.BasePrice,
		}
	}
	if err := s.cartRepo.SaveItem(line); err != nil {
		return nil, fmt.Errorf("failed to save cart item: %w", err)
	}

	return s.ViewCart(customerID)
}

// UpdateItem sets a cart line's quantity. Quantity zero removes the line.
func (s *CartService) UpdateItem(customerID, itemID uint, quantity int) (*CartView, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidRequest)
	}

	cart, err := s.openCart(customerID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItemByID(itemID)
	if err != nil || item.CartID != cart.CartID {
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: item %d", ErrCartItemNotFound, itemID)
	}

	if quantity == 0 {
		if err := s.cartRepo.DeleteItem(itemID); err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
	} else {
		item.Quantity = quantity
		if err := s.cartRepo.SaveItem(item); err != nil {
			return nil, fmt.Errorf("failed to save cart item: %w", err)
		}
	}

	return s.ViewCart(customerID)
}

// RemoveItem deletes a line from the customer's open cart.
func (s *CartService) RemoveItem(customerID, itemID uint) (*CartView, error) {
	return s.UpdateItem(customerID, itemID, 0)
}

// Checkout converts the customer's open cart into an order via the order
// engine and marks the cart checked out. Stock is reserved by the order
// engine, so an unavailable item fails the whole checkout and leaves the
// cart open.
func (s *CartService) Checkout(customerID uint, req CheckoutRequest) (*models.Order, error) {
	cart, err := s.openCart(customerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidRequest)
	}

	orderReq := CreateOrderRequest{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		TelephoneNumber: req.TelephoneNumber,
		Items:           make([]CreateOrderItemRequest, len(cart.Items)),
	}
	for i, item := range cart.Items {
		orderReq.Items[i] = CreateOrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	order, err := s.orders.CreateOrder(orderReq)
	if err != nil {
		return nil, err
	}

	cart.Status = models.CartStatusCheckedOut
	if err := s.cartRepo.Update(cart); err != nil {
		return nil, fmt.Errorf("failed to close cart %d: %w", cart.CartID, err)
	}

	return order, nil
}

func buildCartView(cart *models.Cart) *CartView {
	view := &CartView{
		CartID:   cart.CartID,
		Status:   cart.Status,
		Items:    make([]CartLineView, len(cart.Items)),
		Subtotal: decimal.Zero,
	}
	for i, item := range cart.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items[i] = CartLineView{
			CartItemID: item.CartItemID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			LineTotal:  lineTotal,
		}
		view.Subtotal = view.Subtotal.Add(lineTotal)
	}
	return view
}
