package dto

import (
	"github.com/shopspring/decimal"

	"libreria/modules/catalog/model"
)

type BookResponse struct {
	ExternalID        int64           `json:"external_id"`
	Title             string          `json:"title"`
	Price             decimal.Decimal `json:"price"`
	AvailableQuantity int             `json:"available_quantity"`
	StockQuantity     int             `json:"stock_quantity"`
}

func NewBookResponse(b *model.Book) *BookResponse {
	return &BookResponse{
		ExternalID:        b.ExternalID,
		Title:             b.Title,
		Price:             b.Price,
		AvailableQuantity: b.AvailableQuantity,
		StockQuantity:     b.StockQuantity,
	}
}

func NewBookResponses(books []model.Book) []*BookResponse {
	resp := make([]*BookResponse, 0, len(books))
	for i := range books {
		resp = append(resp, NewBookResponse(&books[i]))
	}
	return resp
}
