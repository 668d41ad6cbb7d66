package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/transaction-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/transaction-report-api/infrastructure/integrator/seedsource"
	"github.com/vfg2006/transaction-report-api/infrastructure/repository"
	"github.com/vfg2006/transaction-report-api/infrastructure/repository/memory"
	"github.com/vfg2006/transaction-report-api/internal/api"
	"github.com/vfg2006/transaction-report-api/internal/config"
	"github.com/vfg2006/transaction-report-api/internal/scheduler"
	"github.com/vfg2006/transaction-report-api/internal/usecases/reporting"
	"github.com/vfg2006/transaction-report-api/internal/usecases/seeding"
	"github.com/vfg2006/transaction-report-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel, os.Stdout)
	logrus.Infof("main: log level set to %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transactionRepo, closeStore := transactionStore(ctx, cfg.Database)
	defer closeStore()

	seedClient := seedsource.NewClient(cfg.Seed)

	reporter := reporting.NewService(transactionRepo)
	seeder := seeding.NewService(seedClient, transactionRepo)

	seedSyncService := scheduler.NewSeedSyncService(seeder, cfg)
	if err := seedSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("main: failed to start seed sync scheduler")
	}

	if cfg.Seed.OnStartup {
		if _, err := seeder.SeedIfEmpty(ctx); err != nil {
			logrus.WithError(err).Warn("main: startup seed failed, continuing with current data")
		}
	}

	server, err := api.New(cfg, reporter, seeder, seedSyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// transactionStore escolhe o repositório conforme STORE_DRIVER
func transactionStore(ctx context.Context, dbConfig config.Database) (repository.TransactionRepository, func()) {
	if dbConfig.StoreDriver == config.StoreDriverMemory {
		logrus.Warn("main: using in-memory store, data is lost on restart")
		return memory.NewTransactionRepository(), func() {}
	}

	conn := pgconn(ctx, dbConfig)

	if err := postgres.RunMigrations(dbConfig.DSN); err != nil {
		_ = conn.Close()
		logrus.WithError(err).Fatal("main: failed to run migrations")
	}

	return repository.NewTransactionRepository(conn), func() {
		if err := conn.Close(); err != nil {
			logrus.WithError(err).Warn("main: error closing PostgreSQL connection")
		}
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("main: failed to connect to PostgreSQL")
	}

	logrus.Info("main: PostgreSQL connection established")
	return conn
}
