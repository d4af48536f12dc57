package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book is the local copy of a catalog entry. ExternalID is the business
// key assigned by the upstream catalog; reservations reference it, not ID.
type Book struct {
	ID                int64           `db:"id"`
	ExternalID        int64           `db:"external_id"`
	Title             string          `db:"title"`
	Price             decimal.Decimal `db:"price"`
	AvailableQuantity int             `db:"available_quantity"`
	StockQuantity     int             `db:"stock_quantity"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

func NewBook(externalID int64, title string, price decimal.Decimal, stockQuantity int) *Book {
	return &Book{
		ExternalID:        externalID,
		Title:             title,
		Price:             price,
		AvailableQuantity: stockQuantity,
		StockQuantity:     stockQuantity,
	}
}

// SetStock moves stock_quantity to the given value and shifts
// available_quantity by the same delta, clamped to [0, stock].
func (b *Book) SetStock(stockQuantity int) {
	delta := stockQuantity - b.StockQuantity
	b.StockQuantity = stockQuantity

	available := b.AvailableQuantity + delta
	if available < 0 {
		available = 0
	}
	if available > stockQuantity {
		available = stockQuantity
	}
	b.AvailableQuantity = available
}
