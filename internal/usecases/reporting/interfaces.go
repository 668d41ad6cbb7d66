package reporting

import (
	"context"

	"github.com/vfg2006/transaction-report-api/internal/domain"
)

// ListParams são os parâmetros crus da listagem, como chegam na query string.
// Campos vazios assumem os valores padrão (exceto Month, que é obrigatório).
type ListParams struct {
	Month   string
	Search  string
	Page    string
	PerPage string
}

// Reporter expõe as consultas sobre as vendas de um mês
type Reporter interface {
	// ListTransactions devolve uma página de vendas filtradas por mês e busca
	ListTransactions(ctx context.Context, params ListParams) ([]*domain.Transaction, error)

	// GetStatistics soma as vendas do mês e conta itens vendidos e não vendidos
	GetStatistics(ctx context.Context, month string) (*domain.Statistics, error)

	// GetBarChart conta as vendas do mês por faixa de preço
	GetBarChart(ctx context.Context, month string) ([]domain.BarChartEntry, error)

	// GetPieChart conta as vendas do mês por categoria
	GetPieChart(ctx context.Context, month string) ([]domain.CategoryCount, error)

	// GetCombined executa os três relatórios acima em paralelo
	GetCombined(ctx context.Context, month string) (*domain.CombinedReport, error)
}
