package handler

import (
	"net/http"

	"github.com/vfg2006/transaction-report-api/internal/usecases/reporting"
)

func GetStatistics(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.GetStatistics(r.Context(), r.URL.Query().Get("month"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, stats)
	}
}

// GetBarChart retorna a contagem por faixa de preço, sempre com as 10 faixas
func GetBarChart(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := service.GetBarChart(r.Context(), r.URL.Query().Get("month"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, entries)
	}
}

func GetPieChart(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := service.GetPieChart(r.Context(), r.URL.Query().Get("month"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, categories)
	}
}

// GetCombined junta estatísticas, gráfico de barras e gráfico de pizza do mês
func GetCombined(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.GetCombined(r.Context(), r.URL.Query().Get("month"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}
