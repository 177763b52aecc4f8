package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func loadedService() *Service {
	repo := repository.NewDatasetRepository()
	repo.Replace(&domain.DatasetSnapshot{
		Sales: []domain.Sale{
			{MemberID: "M1", Date: "10/06/2025", Value: 100, VAT: 10, Category: "planos"},
			{MemberID: "M2", Date: "10/02/2025", Value: 200, VAT: 20, Category: "avulsos"},
			{MemberID: "M1", Date: "10/10/2024", Value: 50, VAT: 5, Category: "planos"},
		},
		Cohorts: []domain.LocationCohort{
			{
				Location:           "Centro",
				Months:             []string{"Jan 2025"},
				NewMembers:         []int{100},
				Retained:           []int{60},
				Converted:          []int{25},
				LifetimeValue:      []float64{50000},
				ConversionSpanDays: []float64{1250},
			},
		},
		FetchedAt: fixedNow(),
	})

	return newService(repo, fixedNow)
}

func TestSummary(t *testing.T) {
	service := loadedService()

	summary := service.Summary(domain.TimeRange6Months)

	assert.False(t, summary.Empty)
	assert.Equal(t, domain.TimeRange6Months, summary.TimeRange)
	// a venda de outubro de 2024 fica fora da janela de 6 meses
	assert.Equal(t, 300.0, summary.Metrics.Revenue)
	assert.Equal(t, 270.0, summary.Metrics.NetRevenue)
	assert.Equal(t, 2, summary.Metrics.Transactions)
	assert.Equal(t, 2, summary.Metrics.UniqueMembers)
}

func TestSummarySemSnapshot(t *testing.T) {
	service := newService(repository.NewDatasetRepository(), fixedNow)

	summary := service.Summary(domain.TimeRangeAll)

	assert.True(t, summary.Empty)
	assert.Equal(t, 0.0, summary.Metrics.Revenue)
}

func TestSummaryJanelaSemVendas(t *testing.T) {
	repo := repository.NewDatasetRepository()
	repo.Replace(&domain.DatasetSnapshot{
		Sales: []domain.Sale{{MemberID: "M1", Date: "10/10/2020", Value: 100}},
	})
	service := newService(repo, fixedNow)

	summary := service.Summary(domain.TimeRange3Months)

	assert.True(t, summary.Empty)
}

func TestTable(t *testing.T) {
	service := loadedService()

	table := service.Table(domain.TimeRangeAll, domain.DimensionCategory, false)

	assert.False(t, table.Empty)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "planos", table.Rows[0].Label)
	assert.Equal(t, 150.0, table.Rows[0].Metrics.Revenue)
	assert.Equal(t, "avulsos", table.Rows[1].Label)

	assert.Equal(t, 350.0, table.Totals.Revenue)
	assert.Equal(t, 2, table.Totals.UniqueMembers)
	assert.Nil(t, table.Totals.AverageTransactionValue)

	// sem drill-down as vendas não são anexadas às linhas
	assert.Nil(t, table.Rows[0].Sales)
}

func TestTableComDrillDown(t *testing.T) {
	service := loadedService()

	table := service.Table(domain.TimeRangeAll, domain.DimensionCategory, true)

	assert.Len(t, table.Rows[0].Sales, 2)
	assert.Equal(t, "M1", table.Rows[0].Sales[0].MemberID)
}

func TestTableSemSnapshot(t *testing.T) {
	service := newService(repository.NewDatasetRepository(), fixedNow)

	table := service.Table(domain.TimeRangeAll, domain.DimensionMonth, false)

	assert.True(t, table.Empty)
	assert.Empty(t, table.Rows)
}

func TestSeries(t *testing.T) {
	service := loadedService()

	series := service.Series(domain.TimeRangeAll, domain.DimensionMonth, domain.MetricRevenue, false)

	assert.False(t, series.Empty)
	assert.Len(t, series.Points, 3)
	assert.Equal(t, "Oct 2024", series.Points[0].Label)
	assert.Equal(t, 50.0, series.Points[0].Value)
	assert.Equal(t, "Jun 2025", series.Points[2].Label)
	assert.Nil(t, series.Points[0].Sales)
}

func TestAvailablePeriods(t *testing.T) {
	service := loadedService()

	periods := service.AvailablePeriods()

	assert.Equal(t, []string{"Oct 2024", "Feb 2025", "Jun 2025"}, periods.Months)
	assert.Equal(t, []string{"Q4 2024", "Q1 2025", "Q2 2025"}, periods.Quarters)
}

func TestAvailablePeriodsSemSnapshot(t *testing.T) {
	service := newService(repository.NewDatasetRepository(), fixedNow)

	periods := service.AvailablePeriods()

	assert.Empty(t, periods.Months)
	assert.Empty(t, periods.Quarters)
}

func TestCohortReports(t *testing.T) {
	service := loadedService()

	reports, err := service.CohortReports()

	assert.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Equal(t, "Centro", reports[0].Location)
	assert.Equal(t, 12.5, reports[0].Totals.EfficiencyScore)
}

func TestCohortOperacoesSemSnapshot(t *testing.T) {
	service := newService(repository.NewDatasetRepository(), fixedNow)

	_, err := service.CohortReports()
	assert.ErrorIs(t, err, ErrNoDataset)

	_, err = service.CohortByLocation("Centro")
	assert.ErrorIs(t, err, ErrNoDataset)

	_, err = service.CohortRanking()
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestCohortByLocation(t *testing.T) {
	service := loadedService()

	report, err := service.CohortByLocation("Centro")
	assert.NoError(t, err)
	assert.Equal(t, "Centro", report.Location)

	_, err = service.CohortByLocation("Inexistente")
	assert.Error(t, err)
}
