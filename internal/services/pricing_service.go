package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"gemshop/internal/models"
	"gemshop/internal/repositories"
)

var hundred = decimal.NewFromInt(100)

// PricingService computes sale prices: base price plus markup, plus a gold
// surcharge (gold weight x latest rate per gram) for gold items.
type PricingService struct {
	productRepo  repositories.ProductRepository
	goldRateRepo repositories.GoldRateRepository
}

// NewPricingService creates a new PricingService.
func NewPricingService(productRepo repositories.ProductRepository, goldRateRepo repositories.GoldRateRepository) *PricingService {
	return &PricingService{
		productRepo:  productRepo,
		goldRateRepo: goldRateRepo,
	}
}

// ComputePrice resolves the product and returns its current sale price.
// Each call re-fetches the latest gold rate; callers pricing many gold items
// at once should fetch the rate once and use PriceWithRate per item.
func (s *PricingService) ComputePrice(productID uint) (decimal.Decimal, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return decimal.Decimal{}, ErrProductNotFound
		}
		return decimal.Decimal{}, fmt.Errorf("failed to resolve product %d: %w", productID, err)
	}

	var rate *models.GoldRate
	if needsGoldRate(product) {
		rate, err = s.goldRateRepo.Latest()
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return decimal.Decimal{}, ErrRateUnavailable
			}
			return decimal.Decimal{}, fmt.Errorf("failed to fetch gold rate: %w", err)
		}
	}

	return PriceWithRate(product, rate), nil
}

// LatestGoldRate exposes the current rate for callers that batch-price items.
func (s *PricingService) LatestGoldRate() (*models.GoldRate, error) {
	rate, err := s.goldRateRepo.Latest()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRateUnavailable
		}
		return nil, fmt.Errorf("failed to fetch gold rate: %w", err)
	}
	return rate, nil
}

// PriceWithRate computes the sale price from an already-resolved product and
// gold rate. rate may be nil for non-gold products.
func PriceWithRate(product *models.Product, rate *models.GoldRate) decimal.Decimal {
	base := product.BasePrice
	price := base
	if !product.MarkupPercentage.IsZero() {
		price = price.Add(base.Mul(product.MarkupPercentage).Div(hundred))
	}
	if needsGoldRate(product) && rate != nil {
		price = price.Add(product.GoldWeightGrams.Mul(rate.RatePerGram))
	}
	return price
}

func needsGoldRate(product *models.Product) bool {
	return product.IsGold && product.GoldWeightGrams.IsPositive()
}
