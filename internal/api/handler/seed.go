package handler

import (
	"net/http"

	"github.com/vfg2006/transaction-report-api/internal/usecases/seeding"
	"github.com/vfg2006/transaction-report-api/pkg/log"
)

// SeedJob é a recarga agendada do dataset
type SeedJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// InitDatabase busca o dataset e substitui todas as vendas da base
func InitDatabase(seeder seeding.Seeder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := seeder.Seed(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithField("count", count).Info("http: database initialized")

		writeJSON(w, r, http.StatusOK, map[string]any{
			"message": seeding.InitializedMessage,
		})
	}
}

// RunSeedJob dispara a recarga em segundo plano e responde imediatamente
func RunSeedJob(job SeedJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job.TriggerManualSync()

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Recarga do dataset iniciada",
		})
	}
}

func GetSeedStatus(job SeedJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, job.GetStatus())
	}
}
