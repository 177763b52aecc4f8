package domain

import "fmt"

// Dimension é o eixo de agrupamento das agregações do dashboard
type Dimension string

const (
	DimensionMonth    Dimension = "month"
	DimensionQuarter  Dimension = "quarter"
	DimensionCategory Dimension = "category"
	DimensionProduct  Dimension = "product"
	DimensionLocation Dimension = "location"
)

// ParseDimension interpreta o parâmetro de dimensão da API
func ParseDimension(s string) (Dimension, error) {
	switch s {
	case string(DimensionMonth):
		return DimensionMonth, nil
	case string(DimensionQuarter):
		return DimensionQuarter, nil
	case string(DimensionCategory):
		return DimensionCategory, nil
	case string(DimensionProduct):
		return DimensionProduct, nil
	case string(DimensionLocation):
		return DimensionLocation, nil
	}

	return "", fmt.Errorf("dimensão de agrupamento desconhecida: %q", s)
}

// IsTimeBased indica se os rótulos do grupo derivam da data de pagamento
func (d Dimension) IsTimeBased() bool {
	return d == DimensionMonth || d == DimensionQuarter
}

// Metric identifica uma métrica derivada selecionável no dashboard
type Metric string

const (
	MetricRevenue             Metric = "revenue"
	MetricNetRevenue          Metric = "net_revenue"
	MetricTransactions        Metric = "transactions"
	MetricUniqueMembers       Metric = "unique_members"
	MetricUnits               Metric = "units"
	MetricATV                 Metric = "atv"
	MetricAUV                 Metric = "auv"
	MetricASV                 Metric = "asv"
	MetricUnitsPerTransaction Metric = "units_per_transaction"
)

// ParseMetric interpreta o parâmetro de métrica da API
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricRevenue, MetricNetRevenue, MetricTransactions, MetricUniqueMembers,
		MetricUnits, MetricATV, MetricAUV, MetricASV, MetricUnitsPerTransaction:
		return Metric(s), nil
	}

	return "", fmt.Errorf("métrica desconhecida: %q", s)
}

// Summable indica se a métrica admite um total por soma simples.
// Razões (ATV/AUV/ASV, unidades por transação) nunca são somadas.
func (m Metric) Summable() bool {
	switch m {
	case MetricRevenue, MetricNetRevenue, MetricTransactions, MetricUnits:
		return true
	}
	return false
}

// GroupMetrics reúne todas as métricas derivadas de um grupo de vendas
type GroupMetrics struct {
	Revenue                 float64 `json:"revenue"`
	NetRevenue              float64 `json:"net_revenue"`
	Transactions            int     `json:"transactions"`
	UniqueMembers           int     `json:"unique_members"`
	Units                   int     `json:"units"`
	AverageTransactionValue float64 `json:"average_transaction_value"`
	AverageUnitValue        float64 `json:"average_unit_value"`
	AverageSaleValue        float64 `json:"average_sale_value"`
	UnitsPerTransaction     string  `json:"units_per_transaction"`
}

// TableRow é uma linha rotulada da tabela do dashboard, com as vendas
// originais anexadas para permitir drill-down no frontend.
type TableRow struct {
	Label   string       `json:"label"`
	Metrics GroupMetrics `json:"metrics"`
	Sales   []Sale       `json:"sales,omitempty"`
}

// TableTotals é a linha de total geral. Métricas de razão não são agregáveis
// e aparecem como null para o frontend exibir o marcador de indisponível.
type TableTotals struct {
	Revenue                 float64  `json:"revenue"`
	NetRevenue              float64  `json:"net_revenue"`
	Transactions            int      `json:"transactions"`
	UniqueMembers           int      `json:"unique_members"`
	Units                   int      `json:"units"`
	AverageTransactionValue *float64 `json:"average_transaction_value"`
	AverageUnitValue        *float64 `json:"average_unit_value"`
	AverageSaleValue        *float64 `json:"average_sale_value"`
	UnitsPerTransaction     *string  `json:"units_per_transaction"`
}

// TableResponse é a resposta tabular do dashboard
type TableResponse struct {
	TimeRange TimeRange   `json:"time_range"`
	Dimension Dimension   `json:"dimension"`
	Rows      []TableRow  `json:"rows"`
	Totals    TableTotals `json:"totals"`
	Empty     bool        `json:"empty"`
}

// SeriesPoint é um ponto rotulado de uma série temporal ou categórica,
// carregando as vendas que o compõem.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Sales []Sale  `json:"sales,omitempty"`
}

// SeriesResponse é a resposta de gráfico do dashboard
type SeriesResponse struct {
	TimeRange TimeRange     `json:"time_range"`
	Dimension Dimension     `json:"dimension"`
	Metric    Metric        `json:"metric"`
	Points    []SeriesPoint `json:"points"`
	Empty     bool          `json:"empty"`
}

// SummaryResponse reúne os indicadores de cabeçalho do dashboard
type SummaryResponse struct {
	TimeRange TimeRange    `json:"time_range"`
	Metrics   GroupMetrics `json:"metrics"`
	Empty     bool         `json:"empty"`
}

// AvailablePeriods lista os rótulos de meses e trimestres presentes no dataset
type AvailablePeriods struct {
	Months   []string `json:"months"`
	Quarters []string `json:"quarters"`
}
