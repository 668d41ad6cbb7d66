package domain

import (
	"fmt"
	"strconv"
)

// NormalizeMonth valida o mês recebido ("1".."12" ou "01".."12") e devolve
// sempre no formato de dois dígitos
func NormalizeMonth(raw string) (string, bool) {
	if len(raw) == 0 || len(raw) > 2 {
		return "", false
	}

	month, err := strconv.Atoi(raw)
	if err != nil || month < 1 || month > 12 {
		return "", false
	}

	return fmt.Sprintf("%02d", month), true
}

// MonthToken monta o trecho -MM- procurado dentro de dateOfSale
func MonthToken(month string) string {
	return "-" + month + "-"
}
