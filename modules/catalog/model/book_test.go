package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"libreria/modules/catalog/model"
)

func TestNewBook(t *testing.T) {
	book := model.NewBook(258027, "El Gran Libro", decimal.RequireFromString("15.99"), 5)

	assert.Equal(t, int64(258027), book.ExternalID)
	assert.Equal(t, "El Gran Libro", book.Title)
	assert.Equal(t, 5, book.StockQuantity)
	assert.Equal(t, 5, book.AvailableQuantity, "new stock starts fully available")
}

func TestSetStock(t *testing.T) {
	tests := []struct {
		name          string
		stock         int
		available     int
		newStock      int
		wantAvailable int
	}{
		{"raising stock raises availability", 10, 5, 15, 10},
		{"lowering stock lowers availability", 10, 5, 7, 2},
		{"availability never goes negative", 10, 2, 5, 0},
		{"availability never exceeds stock", 10, 10, 3, 3},
		{"unchanged stock leaves availability alone", 10, 4, 10, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := &model.Book{StockQuantity: tt.stock, AvailableQuantity: tt.available}
			book.SetStock(tt.newStock)
			assert.Equal(t, tt.newStock, book.StockQuantity)
			assert.Equal(t, tt.wantAvailable, book.AvailableQuantity)
		})
	}
}
