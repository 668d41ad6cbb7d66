// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"math"
	"strconv"
	"strings"
)

// Transaction representa uma venda de produto importada do dataset de seed
type Transaction struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Sold        bool    `json:"sold"`
	DateOfSale  string  `json:"dateOfSale"` // Formato YYYY-MM-DDTHH:mm:ss..., armazenado como texto
}

// TransactionFilter reúne os parâmetros da listagem paginada
type TransactionFilter struct {
	Month   string
	Search  string
	Page    int
	PerPage int
}

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Limit retorna o número máximo de registros da página
func (f TransactionFilter) Limit() int {
	return f.PerPage
}

// Offset retorna quantos registros pular antes da página solicitada
func (f TransactionFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

// OffsetFits informa se (Page-1)*PerPage cabe em um int sem estourar
func (f TransactionFilter) OffsetFits() bool {
	if f.Page < 1 || f.PerPage < 1 {
		return false
	}
	return f.Page-1 <= math.MaxInt/f.PerPage
}

// SearchPrice interpreta o termo de busca como preço. O segundo retorno é false
// quando o termo não é um número finito ("inf" e "nan" contam como texto),
// caso em que a comparação por preço nunca casa.
func SearchPrice(search string) (float64, bool) {
	trimmed := strings.TrimSpace(search)
	if trimmed == "" {
		return 0, false
	}

	price, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(price, 0) || math.IsNaN(price) {
		return 0, false
	}

	return price, true
}

// MatchesSearch aplica a disjunção título / descrição / preço da listagem
func (t *Transaction) MatchesSearch(search string) bool {
	if search == "" {
		return true
	}

	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) {
		return true
	}

	price, ok := SearchPrice(search)
	return ok && t.Price == price
}

// InMonth informa se a venda pertence ao mês (token -MM- contido na data)
func (t *Transaction) InMonth(month string) bool {
	return strings.Contains(t.DateOfSale, MonthToken(month))
}
