package reporting

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vfg2006/transaction-report-api/infrastructure/repository"
	"github.com/vfg2006/transaction-report-api/internal/domain"
	"github.com/vfg2006/transaction-report-api/pkg/apiErrors"
	"github.com/vfg2006/transaction-report-api/pkg/log"
	"golang.org/x/sync/errgroup"
)

var _ Reporter = (*Service)(nil)

type Service struct {
	transactionRepository repository.TransactionRepository
}

func NewService(transactionRepository repository.TransactionRepository) *Service {
	return &Service{
		transactionRepository: transactionRepository,
	}
}

func (s *Service) ListTransactions(ctx context.Context, params ListParams) ([]*domain.Transaction, error) {
	filter, err := parseListParams(params)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepository.List(ctx, filter)
	if err != nil {
		return nil, storeError(ctx, err, "Falha ao listar transações")
	}

	return transactions, nil
}

func (s *Service) GetStatistics(ctx context.Context, month string) (*domain.Statistics, error) {
	normalized, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	return s.statistics(ctx, normalized)
}

func (s *Service) GetBarChart(ctx context.Context, month string) ([]domain.BarChartEntry, error) {
	normalized, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	return s.barChart(ctx, normalized)
}

func (s *Service) GetPieChart(ctx context.Context, month string) ([]domain.CategoryCount, error) {
	normalized, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	return s.pieChart(ctx, normalized)
}

// GetCombined não isola as três consultas: um seed concorrente pode gerar um trio inconsistente
func (s *Service) GetCombined(ctx context.Context, month string) (*domain.CombinedReport, error) {
	normalized, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	report := &domain.CombinedReport{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.statistics(gctx, normalized)
		report.Statistics = stats
		return err
	})

	g.Go(func() error {
		entries, err := s.barChart(gctx, normalized)
		report.BarChart = entries
		return err
	})

	g.Go(func() error {
		categories, err := s.pieChart(gctx, normalized)
		report.PieChart = categories
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *Service) statistics(ctx context.Context, month string) (*domain.Statistics, error) {
	stats, err := s.transactionRepository.GetStatistics(ctx, month)
	if err != nil {
		return nil, storeError(ctx, err, "Falha ao calcular estatísticas")
	}

	return stats, nil
}

// barChart dispara uma contagem por faixa e remonta o resultado na ordem das faixas
func (s *Service) barChart(ctx context.Context, month string) ([]domain.BarChartEntry, error) {
	entries := make([]domain.BarChartEntry, len(domain.PriceBuckets))
	g, gctx := errgroup.WithContext(ctx)

	for i, bucket := range domain.PriceBuckets {
		g.Go(func() error {
			count, err := s.transactionRepository.CountByPriceBucket(gctx, month, bucket)
			if err != nil {
				return storeError(ctx, err, fmt.Sprintf("Falha ao contar a faixa %s", bucket.Range))
			}

			entries[i] = domain.BarChartEntry{Range: bucket.Range, Count: count}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *Service) pieChart(ctx context.Context, month string) ([]domain.CategoryCount, error) {
	categories, err := s.transactionRepository.CountByCategory(ctx, month)
	if err != nil {
		return nil, storeError(ctx, err, "Falha ao agrupar por categoria")
	}

	if categories == nil {
		categories = []domain.CategoryCount{}
	}

	return categories, nil
}

func parseMonth(raw string) (string, error) {
	if raw == "" {
		return "", NewReportError(ErrInvalidParameter, apiErrors.ErrMissingRequiredData, "Parâmetro month é obrigatório")
	}

	month, ok := domain.NormalizeMonth(raw)
	if !ok {
		return "", NewReportError(ErrInvalidParameter, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("Parâmetro month inválido: %q (use 01 a 12)", raw))
	}

	return month, nil
}

func parseListParams(params ListParams) (domain.TransactionFilter, error) {
	month, err := parseMonth(params.Month)
	if err != nil {
		return domain.TransactionFilter{}, err
	}

	page, err := parsePositiveInt("page", params.Page, domain.DefaultPage)
	if err != nil {
		return domain.TransactionFilter{}, err
	}

	perPage, err := parsePositiveInt("perPage", params.PerPage, domain.DefaultPerPage)
	if err != nil {
		return domain.TransactionFilter{}, err
	}

	if perPage > domain.MaxPerPage {
		return domain.TransactionFilter{}, NewReportError(ErrInvalidParameter, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("Parâmetro perPage inválido: %d (máximo %d)", perPage, domain.MaxPerPage))
	}

	filter := domain.TransactionFilter{
		Month:   month,
		Search:  params.Search,
		Page:    page,
		PerPage: perPage,
	}

	if !filter.OffsetFits() {
		return domain.TransactionFilter{}, NewReportError(ErrInvalidParameter, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("Parâmetro page inválido: %d (fora do intervalo)", page))
	}

	return filter, nil
}

func parsePositiveInt(name, raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, NewReportError(ErrInvalidParameter, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("Parâmetro %s inválido: %q (inteiro maior que zero)", name, raw))
	}

	return value, nil
}

func storeError(ctx context.Context, err error, details string) error {
	log.ForContext(ctx).WithError(err).Error("reporting: " + details)
	return NewReportError(ErrStoreUnavailable, apiErrors.ErrDatabaseOperation, details)
}
