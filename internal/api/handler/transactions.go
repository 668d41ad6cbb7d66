package handler

import (
	"net/http"

	"github.com/vfg2006/transaction-report-api/internal/usecases/reporting"
)

// ListTransactions lista as vendas do mês com busca e paginação
func ListTransactions(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		params := reporting.ListParams{
			Month:   query.Get("month"),
			Search:  query.Get("search"),
			Page:    query.Get("page"),
			PerPage: query.Get("perPage"),
		}

		transactions, err := service.ListTransactions(r.Context(), params)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, transactions)
	}
}
