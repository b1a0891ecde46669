package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gemshop/internal/models"
)

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"pending", "processing", "verified", "paid", "cancelled"} {
		status, ok := models.ParseOrderStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, models.OrderStatus(valid), status)
	}

	for _, invalid := range []string{"", "shipped", "PENDING", "done"} {
		_, ok := models.ParseOrderStatus(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestParsePaymentStatus(t *testing.T) {
	for _, valid := range []string{"pending", "verified", "refunded", "failed"} {
		status, ok := models.ParsePaymentStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, models.PaymentStatus(valid), status)
	}

	for _, invalid := range []string{"", "paid", "Verified"} {
		_, ok := models.ParsePaymentStatus(invalid)
		assert.False(t, ok, invalid)
	}
}
