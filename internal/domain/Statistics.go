package domain

// Statistics resume as vendas de um mês
type Statistics struct {
	TotalSales   float64 `json:"totalSales"`
	SoldItems    int64   `json:"soldItems"`
	NotSoldItems int64   `json:"notSoldItems"`
}

// CategoryCount é uma fatia do gráfico de pizza
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// CombinedReport junta os três relatórios de um mês
type CombinedReport struct {
	Statistics *Statistics     `json:"statistics"`
	BarChart   []BarChartEntry `json:"barChart"`
	PieChart   []CategoryCount `json:"pieChart"`
}
