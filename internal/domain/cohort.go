package domain

import "fmt"

// LocationCohort agrega as séries mensais do funil de conversão de uma unidade.
// Todas as séries são paralelas e indexadas pelos rótulos de Months.
type LocationCohort struct {
	Location           string    `json:"location"`
	Months             []string  `json:"months"`
	NewMembers         []int     `json:"new_members"`
	Retained           []int     `json:"retained"`
	Converted          []int     `json:"converted"`
	LifetimeValue      []float64 `json:"lifetime_value"`       // soma de LTV por mês
	ConversionSpanDays []float64 `json:"conversion_span_days"` // soma de dias até conversão por mês
}

// Validate verifica o invariante das séries paralelas: todas com o mesmo
// comprimento dos rótulos de meses.
func (c *LocationCohort) Validate() error {
	n := len(c.Months)
	if len(c.NewMembers) != n ||
		len(c.Retained) != n ||
		len(c.Converted) != n ||
		len(c.LifetimeValue) != n ||
		len(c.ConversionSpanDays) != n {
		return fmt.Errorf(
			"séries da unidade %q com comprimentos divergentes: months=%d new=%d retained=%d converted=%d ltv=%d span=%d",
			c.Location, n, len(c.NewMembers), len(c.Retained), len(c.Converted),
			len(c.LifetimeValue), len(c.ConversionSpanDays),
		)
	}
	return nil
}

// CohortMetrics são as métricas derivadas do funil para um recorte
// (um mês ou o total de uma unidade). Divisões por zero resultam em 0.
type CohortMetrics struct {
	NewMembers            int     `json:"new_members"`
	Retained              int     `json:"retained"`
	Converted             int     `json:"converted"`
	RetentionRate         float64 `json:"retention_rate"`
	ConversionRate        float64 `json:"conversion_rate"`
	AvgLifetimeValue      float64 `json:"avg_lifetime_value"`
	AvgConversionSpanDays float64 `json:"avg_conversion_span_days"`
	EfficiencyScore       float64 `json:"efficiency_score"`
}

// CohortMonthMetrics associa as métricas do funil a um mês rotulado
type CohortMonthMetrics struct {
	Month   string        `json:"month"`
	Metrics CohortMetrics `json:"metrics"`
}

// CohortReport é o relatório de funil de uma unidade
type CohortReport struct {
	Location string               `json:"location"`
	Months   []CohortMonthMetrics `json:"months"`
	Totals   CohortMetrics        `json:"totals"`
}

// LocationRankingItem é uma posição no ranking de eficiência das unidades
type LocationRankingItem struct {
	Position int           `json:"position"`
	Location string        `json:"location"`
	Metrics  CohortMetrics `json:"metrics"`
}
