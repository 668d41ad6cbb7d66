// Package memory implementa os repositórios em memória, usados com STORE_DRIVER=memory e nos testes
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/transaction-report-api/infrastructure/repository"
	"github.com/vfg2006/transaction-report-api/internal/domain"
	"github.com/vfg2006/transaction-report-api/pkg/utils"
)

var _ repository.TransactionRepository = (*TransactionRepository)(nil)

const maxPrealloc = 64

// TransactionRepository guarda as vendas em um slice na ordem de inserção
type TransactionRepository struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

func (r *TransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	offset := filter.Offset()
	limit := filter.Limit()

	result := make([]*domain.Transaction, 0, min(limit, maxPrealloc))
	skipped := 0
	for i := range r.transactions {
		t := r.transactions[i]
		if !t.InMonth(filter.Month) || !t.MatchesSearch(filter.Search) {
			continue
		}

		if skipped < offset {
			skipped++
			continue
		}

		if len(result) == limit {
			break
		}

		result = append(result, &t)
	}

	return result, nil
}

func (r *TransactionRepository) GetStatistics(ctx context.Context, month string) (*domain.Statistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats domain.Statistics
	total := decimal.Zero
	for i := range r.transactions {
		t := &r.transactions[i]
		if !t.InMonth(month) {
			continue
		}

		if t.Sold {
			total = total.Add(decimal.NewFromFloat(t.Price))
			stats.SoldItems++
		} else {
			stats.NotSoldItems++
		}
	}

	stats.TotalSales = utils.RoundMoney(total)

	return &stats, nil
}

func (r *TransactionRepository) CountByPriceBucket(ctx context.Context, month string, bucket domain.PriceBucket) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for i := range r.transactions {
		t := &r.transactions[i]
		if t.InMonth(month) && bucket.Contains(t.Price) {
			count++
		}
	}

	return count, nil
}

func (r *TransactionRepository) CountByCategory(ctx context.Context, month string) ([]domain.CategoryCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	counts := make(map[string]int64)
	for i := range r.transactions {
		t := &r.transactions[i]
		if t.InMonth(month) {
			counts[t.Category]++
		}
	}
	r.mu.RUnlock()

	categories := make([]domain.CategoryCount, 0, len(counts))
	for category, count := range counts {
		categories = append(categories, domain.CategoryCount{Category: category, Count: count})
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})

	return categories, nil
}

func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.transactions)), nil
}

// ReplaceAll monta o novo conjunto fora do lock e troca o slice de uma vez
func (r *TransactionRepository) ReplaceAll(ctx context.Context, transactions []*domain.Transaction) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	next := make([]domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t == nil {
			continue
		}

		if t.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				return 0, fmt.Errorf("erro ao gerar id: %w", err)
			}
			t.ID = id
		}

		stored := *t
		// mesma precisão da coluna NUMERIC(12,2) do Postgres
		stored.Price = utils.RoundMoney(decimal.NewFromFloat(t.Price))
		next = append(next, stored)
	}

	r.mu.Lock()
	r.transactions = next
	r.mu.Unlock()

	return len(next), nil
}
