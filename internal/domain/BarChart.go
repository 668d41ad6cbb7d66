package domain

import "math"

// PriceBucket é uma faixa de preço do gráfico de barras.
// Min é inclusivo apenas na primeira faixa; Max é sempre inclusivo e vale +Inf na última.
type PriceBucket struct {
	Range        string
	Min          float64
	Max          float64
	MinInclusive bool
}

// BarChartEntry é a contagem de vendas de uma faixa
type BarChartEntry struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

// PriceBuckets lista as faixas na ordem em que devem ser devolvidas
var PriceBuckets = []PriceBucket{
	{Range: "0-100", Min: 0, Max: 100, MinInclusive: true},
	{Range: "101-200", Min: 100, Max: 200},
	{Range: "201-300", Min: 200, Max: 300},
	{Range: "301-400", Min: 300, Max: 400},
	{Range: "401-500", Min: 400, Max: 500},
	{Range: "501-600", Min: 500, Max: 600},
	{Range: "601-700", Min: 600, Max: 700},
	{Range: "701-800", Min: 700, Max: 800},
	{Range: "801-900", Min: 800, Max: 900},
	{Range: "901+", Min: 900, Max: math.Inf(1)},
}

// Bounded informa se a faixa tem limite superior
func (b PriceBucket) Bounded() bool {
	return !math.IsInf(b.Max, 1)
}

// Contains informa se o preço cai dentro da faixa
func (b PriceBucket) Contains(price float64) bool {
	if b.MinInclusive {
		if price < b.Min {
			return false
		}
	} else if price <= b.Min {
		return false
	}

	return !b.Bounded() || price <= b.Max
}
