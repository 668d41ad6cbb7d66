package seeding

import (
	"errors"
	"fmt"
)

var (
	// Erros de serviços externos
	ErrUpstreamFetch = errors.New("error fetching seed dataset")

	// Erros de banco de dados
	ErrStoreUnavailable = errors.New("transaction store unavailable")
)

// SeedError é um erro com contexto adicional para a carga do dataset
type SeedError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *SeedError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SeedError) Unwrap() error {
	return e.Err
}

// NewSeedError cria um novo SeedError
func NewSeedError(err error, code string, details string) *SeedError {
	return &SeedError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
