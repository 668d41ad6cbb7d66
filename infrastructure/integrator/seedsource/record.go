package seedsource

import (
	"strconv"

	"github.com/vfg2006/transaction-report-api/internal/domain"
)

// Record é o formato de cada item do dataset remoto
type Record struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Sold        bool    `json:"sold"`
	DateOfSale  string  `json:"dateOfSale"`
}

// ToDomain converte o registro; o id remoto é mantido como texto
func (r Record) ToDomain() *domain.Transaction {
	var id string
	if r.ID != 0 {
		id = strconv.FormatInt(r.ID, 10)
	}

	return &domain.Transaction{
		ID:          id,
		Title:       r.Title,
		Price:       r.Price,
		Description: r.Description,
		Category:    r.Category,
		Sold:        r.Sold,
		DateOfSale:  r.DateOfSale,
	}
}
