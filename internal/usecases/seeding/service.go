package seeding

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/transaction-report-api/infrastructure/integrator/seedsource"
	"github.com/vfg2006/transaction-report-api/infrastructure/repository"
	"github.com/vfg2006/transaction-report-api/pkg/apiErrors"
	"github.com/vfg2006/transaction-report-api/pkg/log"
)

const InitializedMessage = "Database initialized with seed data"

type Seeder interface {
	// Seed busca o dataset remoto e substitui todas as vendas da base
	Seed(ctx context.Context) (int, error)
	// SeedIfEmpty executa Seed apenas quando a base ainda não tem vendas
	SeedIfEmpty(ctx context.Context) (int, error)
}

type Service struct {
	source                seedsource.Client
	transactionRepository repository.TransactionRepository
}

func NewService(source seedsource.Client, transactionRepository repository.TransactionRepository) *Service {
	return &Service{
		source:                source,
		transactionRepository: transactionRepository,
	}
}

// Seed não tenta novamente; se a busca falhar a base fica como estava
func (s *Service) Seed(ctx context.Context) (int, error) {
	logger := log.ForContext(ctx)

	transactions, err := s.source.FetchTransactions(ctx)
	if err != nil {
		logger.WithError(err).Error("seeding: failed to fetch dataset")
		return 0, NewSeedError(ErrUpstreamFetch, apiErrors.ErrExternalService, "Falha ao buscar o dataset de vendas")
	}

	inserted, err := s.transactionRepository.ReplaceAll(ctx, transactions)
	if err != nil {
		logger.WithError(errors.Wrap(err, "replace all")).Error("seeding: failed to store dataset")
		return 0, NewSeedError(ErrStoreUnavailable, apiErrors.ErrDatabaseOperation, "Falha ao gravar o dataset de vendas")
	}

	logger.WithField("count", inserted).Info("seeding: dataset stored")

	return inserted, nil
}

func (s *Service) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.transactionRepository.Count(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("seeding: failed to count transactions")
		return 0, NewSeedError(ErrStoreUnavailable, apiErrors.ErrDatabaseOperation, "Falha ao contar transações")
	}

	if count > 0 {
		log.ForContext(ctx).WithField("count", count).Info("seeding: store already populated, skipping")
		return 0, nil
	}

	return s.Seed(ctx)
}
