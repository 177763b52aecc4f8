package cohorting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestComputeMetrics(t *testing.T) {
	metrics := ComputeMetrics(100, 60, 25, 50000, 1250)

	assert.Equal(t, 100, metrics.NewMembers)
	assert.Equal(t, 60.0, metrics.RetentionRate)
	assert.Equal(t, 25.0, metrics.ConversionRate)
	assert.Equal(t, 500.0, metrics.AvgLifetimeValue)
	assert.Equal(t, 12.5, metrics.AvgConversionSpanDays)
	// (25 x 500) / 1000
	assert.Equal(t, 12.5, metrics.EfficiencyScore)
}

func TestComputeMetricsSemNovosMembros(t *testing.T) {
	metrics := ComputeMetrics(0, 10, 5, 5000, 300)

	assert.Equal(t, 0.0, metrics.RetentionRate)
	assert.Equal(t, 0.0, metrics.ConversionRate)
	assert.Equal(t, 0.0, metrics.AvgLifetimeValue)
	assert.Equal(t, 0.0, metrics.AvgConversionSpanDays)
	assert.Equal(t, 0.0, metrics.EfficiencyScore)
}

func TestReport(t *testing.T) {
	cohort := domain.LocationCohort{
		Location:           "Centro",
		Months:             []string{"Jan 2025", "Feb 2025"},
		NewMembers:         []int{100, 50},
		Retained:           []int{60, 20},
		Converted:          []int{25, 5},
		LifetimeValue:      []float64{50000, 10000},
		ConversionSpanDays: []float64{1250, 400},
	}

	report, err := Report(cohort)

	assert.NoError(t, err)
	assert.Equal(t, "Centro", report.Location)
	assert.Len(t, report.Months, 2)
	assert.Equal(t, "Jan 2025", report.Months[0].Month)
	assert.Equal(t, 60.0, report.Months[0].Metrics.RetentionRate)
	assert.Equal(t, 40.0, report.Months[1].Metrics.RetentionRate)

	// os totais derivam das somas acumuladas, não da média das taxas mensais
	assert.Equal(t, 150, report.Totals.NewMembers)
	assert.Equal(t, 20.0, report.Totals.ConversionRate)
	assert.Equal(t, 400.0, report.Totals.AvgLifetimeValue)
	assert.Equal(t, 11.0, report.Totals.AvgConversionSpanDays)
	assert.Equal(t, 8.0, report.Totals.EfficiencyScore)
}

func TestReportSeriesDivergentes(t *testing.T) {
	cohort := domain.LocationCohort{
		Location:   "Centro",
		Months:     []string{"Jan 2025", "Feb 2025"},
		NewMembers: []int{100},
	}

	report, err := Report(cohort)

	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestReportByLocation(t *testing.T) {
	cohorts := []domain.LocationCohort{
		{Location: "Centro"},
		{Location: "Norte"},
	}

	report, err := ReportByLocation(cohorts, "Norte")
	assert.NoError(t, err)
	assert.Equal(t, "Norte", report.Location)

	report, err = ReportByLocation(cohorts, "Sul")
	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "unidade não encontrada")
}

func TestRanking(t *testing.T) {
	cohorts := []domain.LocationCohort{
		{
			Location:           "Norte",
			Months:             []string{"Jan 2025"},
			NewMembers:         []int{100},
			Retained:           []int{50},
			Converted:          []int{10},
			LifetimeValue:      []float64{20000},
			ConversionSpanDays: []float64{500},
		},
		{
			Location:           "Centro",
			Months:             []string{"Jan 2025"},
			NewMembers:         []int{100},
			Retained:           []int{60},
			Converted:          []int{25},
			LifetimeValue:      []float64{50000},
			ConversionSpanDays: []float64{1250},
		},
	}

	items, err := Ranking(cohorts)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, "Centro", items[0].Location)
	assert.Equal(t, 12.5, items[0].Metrics.EfficiencyScore)
	assert.Equal(t, 2, items[1].Position)
	assert.Equal(t, "Norte", items[1].Location)
}

func TestRankingDesempatePorNome(t *testing.T) {
	// escores iguais: o desempate é alfabético pelo nome da unidade
	cohort := func(location string) domain.LocationCohort {
		return domain.LocationCohort{
			Location:           location,
			Months:             []string{"Jan 2025"},
			NewMembers:         []int{100},
			Retained:           []int{50},
			Converted:          []int{20},
			LifetimeValue:      []float64{30000},
			ConversionSpanDays: []float64{600},
		}
	}
	cohorts := []domain.LocationCohort{cohort("Zona Sul"), cohort("Aclimação")}

	items, err := Ranking(cohorts)

	assert.NoError(t, err)
	assert.Equal(t, "Aclimação", items[0].Location)
	assert.Equal(t, "Zona Sul", items[1].Location)
}
