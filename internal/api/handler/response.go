package handler

import (
	"bytes"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/transaction-report-api/internal/usecases/reporting"
	"github.com/vfg2006/transaction-report-api/internal/usecases/seeding"
	"github.com/vfg2006/transaction-report-api/pkg/apiErrors"
	"github.com/vfg2006/transaction-report-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON serializa a resposta inteira antes de escrever o status,
// assim uma falha de encode ainda pode virar um erro padronizado
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("http: failed to encode response")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("http: failed to write response")
	}
}

// writeServiceError traduz os erros dos casos de uso para o formato da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		reportErr *reporting.ReportError
		seedErr   *seeding.SeedError
	)

	switch {
	case errors.As(err, &reportErr):
		apiErrors.WriteError(w, reportErr.Code, reportErr.Err.Error(), detailsOrNil(reportErr.Details))
	case errors.As(err, &seedErr):
		apiErrors.WriteError(w, seedErr.Code, seedErr.Err.Error(), detailsOrNil(seedErr.Details))
	default:
		log.ForContext(r.Context()).WithError(err).Error("http: unexpected error")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
	}
}

func detailsOrNil(details string) any {
	if details == "" {
		return nil
	}
	return details
}
