package handler

import (
	"net/http"

	"github.com/vfg2006/transaction-report-api/internal/api/handler/router"
	"github.com/vfg2006/transaction-report-api/internal/usecases/reporting"
	"github.com/vfg2006/transaction-report-api/internal/usecases/seeding"
	"github.com/vfg2006/transaction-report-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Transactions(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/api/transactions",
			Method:  http.MethodGet,
			Handler: ListTransactions(service),
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/api/statistics",
			Method:  http.MethodGet,
			Handler: GetStatistics(service),
		},
		{
			Path:    "/api/bar-chart",
			Method:  http.MethodGet,
			Handler: GetBarChart(service),
		},
		{
			Path:    "/api/pie-chart",
			Method:  http.MethodGet,
			Handler: GetPieChart(service),
		},
		{
			Path:    "/api/combined",
			Method:  http.MethodGet,
			Handler: GetCombined(service),
		},
	}
}

// Seed expõe a carga e o job de sincronização; as respostas mudam a cada execução e não vão para cache
func Seed(seeder seeding.Seeder, job SeedJob) []router.Route {
	noCache := []func(http.Handler) http.Handler{middleware.NoCache()}

	return []router.Route{
		{
			Path:        "/api/init",
			Method:      http.MethodGet,
			Handler:     InitDatabase(seeder),
			Middlewares: noCache,
		},
		{
			Path:        "/api/seed/run",
			Method:      http.MethodPost,
			Handler:     RunSeedJob(job),
			Middlewares: noCache,
		},
		{
			Path:        "/api/seed/status",
			Method:      http.MethodGet,
			Handler:     GetSeedStatus(job),
			Middlewares: noCache,
		},
	}
}
