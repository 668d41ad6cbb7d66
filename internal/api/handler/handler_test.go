package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	seedmocks "github.com/vfg2006/transaction-report-api/infrastructure/integrator/seedsource/mocks"
	"github.com/vfg2006/transaction-report-api/infrastructure/repository/memory"
	"github.com/vfg2006/transaction-report-api/infrastructure/repository/mocks"
	"github.com/vfg2006/transaction-report-api/internal/api/handler/router"
	"github.com/vfg2006/transaction-report-api/internal/domain"
	"github.com/vfg2006/transaction-report-api/internal/usecases/reporting"
	"github.com/vfg2006/transaction-report-api/internal/usecases/seeding"
	"github.com/vfg2006/transaction-report-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type fakeSeedJob struct {
	triggered int
}

func (f *fakeSeedJob) TriggerManualSync() {
	f.triggered++
}

func (f *fakeSeedJob) GetStatus() map[string]any {
	return map[string]any{"sync_enabled": false, "sync_running": false}
}

func newTestRouter(t *testing.T, source *seedmocks.MockClient, job SeedJob) (router.Router, *memory.TransactionRepository) {
	t.Helper()

	repo := memory.NewTransactionRepository()
	_, err := repo.ReplaceAll(context.Background(), []*domain.Transaction{
		{ID: "1", Title: "Backpack", Description: "Perfect pack", Price: 50, Category: "A", Sold: true, DateOfSale: "2023-03-01T10:00:00"},
		{ID: "2", Title: "Jacket", Description: "Outerwear", Price: 150, Category: "B", Sold: false, DateOfSale: "2023-03-05T10:00:00"},
		{ID: "3", Title: "Ring", Description: "Gold", Price: 950, Category: "B", Sold: true, DateOfSale: "2023-04-05T10:00:00"},
	})
	require.NoError(t, err)

	reporter := reporting.NewService(repo)
	seeder := seeding.NewService(source, repo)

	rt := router.New(
		router.WithJSONFallbacks(),
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Transactions(reporter)...),
		router.WithRoutes(Reports(reporter)...),
		router.WithRoutes(Seed(seeder, job)...),
	)

	return rt, repo
}

func doRequest(rt http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	rt, _ := newTestRouter(t, seedmocks.NewMockClient(ctrl), &fakeSeedJob{})

	t.Run("filtra pelo mês", func(t *testing.T) {
		rec := doRequest(rt, http.MethodGet, "/api/transactions?month=03")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var transactions []domain.Transaction
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &transactions))
		require.Len(t, transactions, 2)
		assert.Equal(t, "Backpack", transactions[0].Title)
		assert.Equal(t, "2023-03-01T10:00:00", transactions[0].DateOfSale)
	})

	t.Run("busca e paginação", func(t *testing.T) {
		rec := doRequest(rt, http.MethodGet, "/api/transactions?month=3&search=jacket&page=1&perPage=1")
		require.Equal(t, http.StatusOK, rec.Code)

		var transactions []domain.Transaction
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &transactions))
		require.Len(t, transactions, 1)
		assert.Equal(t, "2", transactions[0].ID)
	})

	t.Run("página vazia é uma lista, não null", func(t *testing.T) {
		rec := doRequest(rt, http.MethodGet, "/api/transactions?month=03&page=9")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("parâmetros inválidos", func(t *testing.T) {
		for _, target := range []string{
			"/api/transactions?month=13",
			"/api/transactions?month=03&page=0",
			"/api/transactions?month=03&perPage=ten",
			"/api/transactions?month=03&perPage=101",
			"/api/transactions?month=03&perPage=999999999999999",
			"/api/transactions?month=03&perPage=9223372036854775807",
			"/api/transactions?month=03&page=922337203685477582&perPage=10",
		} {
			rec := doRequest(rt, http.MethodGet, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
			assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec).Code, target)
		}
	})

	t.Run("mês ausente", func(t *testing.T) {
		rec := doRequest(rt, http.MethodGet, "/api/transactions")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeAPIError(t, rec).Code)
	})

	t.Run("perPage máximo", func(t *testing.T) {
		rec := doRequest(rt, http.MethodGet, "/api/transactions?month=03&perPage=100")
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestReports(t *testing.T) {
	ctrl := gomock.NewController(t)
	rt, _ := newTestRouter(t, seedmocks.NewMockClient(ctrl), &fakeSeedJob{})

	t.Run("statistics", func(t *testing.T) {
		rec := doRequest(rt, http.MethodGet, "/api/statistics?month=03")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"totalSales":50,"soldItems":1,"notSoldItems":1}`, rec.Body.String())
	})

	t.Run("statistics de mês vazio", func(t *testing.T) {
		rec := doRequest(rt, http.MethodGet, "/api/statistics?month=12")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"totalSales":0,"soldItems":0,"notSoldItems":0}`, rec.Body.String())
	})

	t.Run("bar chart", func(t *testing.T) {
		rec := doRequest(rt, http.MethodGet, "/api/bar-chart?month=03")
		require.Equal(t, http.StatusOK, rec.Code)

		var entries []domain.BarChartEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		require.Len(t, entries, 10)
		assert.Equal(t, domain.BarChartEntry{Range: "0-100", Count: 1}, entries[0])
		assert.Equal(t, domain.BarChartEntry{Range: "101-200", Count: 1}, entries[1])
		assert.Equal(t, domain.BarChartEntry{Range: "901+", Count: 0}, entries[9])
	})

	t.Run("pie chart", func(t *testing.T) {
		rec := doRequest(rt, http.MethodGet, "/api/pie-chart?month=03")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"category":"A","count":1},{"category":"B","count":1}]`, rec.Body.String())
	})

	t.Run("combined", func(t *testing.T) {
		rec := doRequest(rt, http.MethodGet, "/api/combined?month=04")
		require.Equal(t, http.StatusOK, rec.Code)

		var report domain.CombinedReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, &domain.Statistics{TotalSales: 950, SoldItems: 1}, report.Statistics)
		require.Len(t, report.BarChart, 10)
		assert.Equal(t, int64(1), report.BarChart[9].Count)
		assert.Equal(t, []domain.CategoryCount{{Category: "B", Count: 1}}, report.PieChart)
	})

	t.Run("mês obrigatório em todos os relatórios", func(t *testing.T) {
		for _, path := range []string{"/api/statistics", "/api/bar-chart", "/api/pie-chart", "/api/combined"} {
			rec := doRequest(rt, http.MethodGet, path+"?month=abc")
			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		}
	})
}

func TestReports_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockTransactionRepository(ctrl)
	mockRepo.EXPECT().
		GetStatistics(gomock.Any(), "03").
		Return(nil, errors.New("connection reset"))

	rt := router.New(router.WithRoutes(Reports(reporting.NewService(mockRepo))...))

	rec := doRequest(rt, http.MethodGet, "/api/statistics?month=03")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeAPIError(t, rec)
	assert.Equal(t, apiErrors.ErrDatabaseOperation, body.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestInitDatabase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := seedmocks.NewMockClient(ctrl)
	rt, repo := newTestRouter(t, source, &fakeSeedJob{})

	t.Run("substitui a base", func(t *testing.T) {
		source.EXPECT().
			FetchTransactions(gomock.Any()).
			Return([]*domain.Transaction{{Title: "new", DateOfSale: "2022-01-01"}}, nil)

		rec := doRequest(rt, http.MethodGet, "/api/init")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Database initialized with seed data"}`, rec.Body.String())

		count, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("falha no upstream responde 502", func(t *testing.T) {
		source.EXPECT().
			FetchTransactions(gomock.Any()).
			Return(nil, errors.New("no such host"))

		rec := doRequest(rt, http.MethodGet, "/api/init")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, apiErrors.ErrExternalService, decodeAPIError(t, rec).Code)

		count, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestSeedJobRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := &fakeSeedJob{}
	rt, _ := newTestRouter(t, seedmocks.NewMockClient(ctrl), job)

	rec := doRequest(rt, http.MethodPost, "/api/seed/run")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, job.triggered)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = doRequest(rt, http.MethodGet, "/api/seed/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"sync_enabled":false,"sync_running":false}`, rec.Body.String())
}

func TestHealthcheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	rt, _ := newTestRouter(t, seedmocks.NewMockClient(ctrl), &fakeSeedJob{})

	rec := doRequest(rt, http.MethodGet, "/healthcheck")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestWriteServiceError_Unknown(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrInternalServer, decodeAPIError(t, rec).Code)
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrInternalServer, decodeAPIError(t, rec).Code)
}
