package reporting

import (
	"errors"
	"fmt"
)

// Erros específicos para os relatórios de vendas
var (
	// Erros de validação
	ErrInvalidParameter = errors.New("invalid parameter")

	// Erros de banco de dados
	ErrStoreUnavailable = errors.New("transaction store unavailable")
)

// ReportError é um erro com contexto adicional para os relatórios
type ReportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError cria um novo ReportError
func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
