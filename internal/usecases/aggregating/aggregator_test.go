package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestGroupByMes(t *testing.T) {
	sales := []domain.Sale{
		{MemberID: "M1", Date: "01/03/2025", Value: 100},
		{MemberID: "M2", Date: "15/03/2025", Value: 200},
	}

	groups := GroupBy(sales, domain.DimensionMonth)

	assert.Len(t, groups, 1)
	assert.Equal(t, "Mar 2025", groups[0].Label)
	assert.Len(t, groups[0].Sales, 2)

	rows := BuildRows(groups)
	assert.Equal(t, 300.0, rows[0].Metrics.Revenue)
	assert.Equal(t, 2, rows[0].Metrics.Transactions)
	assert.Equal(t, 150.0, rows[0].Metrics.AverageTransactionValue)
}

func TestGroupByMesOrdemCronologica(t *testing.T) {
	// A ordem de entrada é embaralhada de propósito: a saída por mês deve
	// sair cronológica, não por primeira aparição
	sales := []domain.Sale{
		{MemberID: "M1", Date: "10/05/2025", Value: 10},
		{MemberID: "M2", Date: "10/01/2025", Value: 20},
		{MemberID: "M3", Date: "10/03/2025", Value: 30},
		{MemberID: "M4", Date: "20/01/2025", Value: 40},
	}

	groups := GroupBy(sales, domain.DimensionMonth)

	labels := make([]string, 0, len(groups))
	for _, g := range groups {
		labels = append(labels, g.Label)
	}
	assert.Equal(t, []string{"Jan 2025", "Mar 2025", "May 2025"}, labels)
	assert.Len(t, groups[0].Sales, 2)
}

func TestGroupByMesDescartaDataInvalida(t *testing.T) {
	sales := []domain.Sale{
		{MemberID: "M1", Date: "01/03/2025", Value: 100, Category: "planos"},
		{MemberID: "M2", Date: "sem data", Value: 200, Category: "avulsos"},
	}

	byMonth := GroupBy(sales, domain.DimensionMonth)
	assert.Len(t, byMonth, 1)
	assert.Len(t, byMonth[0].Sales, 1)

	// na dimensão categórica a data não é consultada: nada é descartado
	byCategory := GroupBy(sales, domain.DimensionCategory)
	assert.Len(t, byCategory, 2)
	assert.Equal(t, "planos", byCategory[0].Label)
	assert.Equal(t, "avulsos", byCategory[1].Label)
}

func TestGroupByCategoriaOrdemDePrimeiraAparicao(t *testing.T) {
	sales := []domain.Sale{
		{MemberID: "M1", Category: "zeta"},
		{MemberID: "M2", Category: "alfa"},
		{MemberID: "M3", Category: "zeta"},
		{MemberID: "M4", Category: "beta"},
	}

	groups := GroupBy(sales, domain.DimensionCategory)

	assert.Len(t, groups, 3)
	assert.Equal(t, "zeta", groups[0].Label)
	assert.Equal(t, "alfa", groups[1].Label)
	assert.Equal(t, "beta", groups[2].Label)
	assert.Len(t, groups[0].Sales, 2)
}

func TestQuarterLabel(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "janeiro abre o Q1",
			date:     time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			expected: "Q1 2025",
		},
		{
			name:     "março fecha o Q1",
			date:     time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
			expected: "Q1 2025",
		},
		{
			name:     "abril abre o Q2",
			date:     time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			expected: "Q2 2025",
		},
		{
			name:     "dezembro fecha o Q4",
			date:     time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
			expected: "Q4 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuarterLabel(tt.date))
		})
	}
}

func TestBuildTotals(t *testing.T) {
	// M1 compra em dois meses: o total de membros únicos deve recontar sobre
	// o conjunto completo, não somar por grupo
	sales := []domain.Sale{
		{MemberID: "M1", Date: "01/03/2025", Value: 100.10, VAT: 10},
		{MemberID: "M2", Date: "15/03/2025", Value: 200.20, VAT: 20},
		{MemberID: "M1", Date: "01/04/2025", Value: 50, VAT: 5},
	}

	groups := GroupBy(sales, domain.DimensionMonth)
	rows := BuildRows(groups)
	totals := BuildTotals(rows, sales)

	assert.Equal(t, 350.3, totals.Revenue)
	assert.Equal(t, 315.3, totals.NetRevenue)
	assert.Equal(t, 3, totals.Transactions)
	assert.Equal(t, 3, totals.Units)
	assert.Equal(t, 2, totals.UniqueMembers)
	assert.Nil(t, totals.AverageTransactionValue)
	assert.Nil(t, totals.AverageUnitValue)
	assert.Nil(t, totals.AverageSaleValue)
	assert.Nil(t, totals.UnitsPerTransaction)
}

func TestBuildSeries(t *testing.T) {
	sales := []domain.Sale{
		{MemberID: "M1", Date: "01/03/2025", Value: 100},
		{MemberID: "M2", Date: "15/03/2025", Value: 200},
		{MemberID: "M1", Date: "01/04/2025", Value: 50},
	}

	groups := GroupBy(sales, domain.DimensionMonth)

	revenue := BuildSeries(groups, domain.MetricRevenue)
	assert.Len(t, revenue, 2)
	assert.Equal(t, "Mar 2025", revenue[0].Label)
	assert.Equal(t, 300.0, revenue[0].Value)
	assert.Equal(t, 50.0, revenue[1].Value)

	members := BuildSeries(groups, domain.MetricUniqueMembers)
	assert.Equal(t, 2.0, members[0].Value)
	assert.Equal(t, 1.0, members[1].Value)

	atv := BuildSeries(groups, domain.MetricATV)
	assert.Equal(t, 150.0, atv[0].Value)
}

func TestAvailablePeriods(t *testing.T) {
	sales := []domain.Sale{
		{MemberID: "M1", Date: "10/11/2024", Value: 10},
		{MemberID: "M2", Date: "10/02/2025", Value: 20},
		{MemberID: "M3", Date: "10/01/2025", Value: 30},
		{MemberID: "M4", Date: "sem data", Value: 40},
	}

	periods := AvailablePeriods(sales)

	assert.Equal(t, []string{"Nov 2024", "Jan 2025", "Feb 2025"}, periods.Months)
	assert.Equal(t, []string{"Q4 2024", "Q1 2025"}, periods.Quarters)
}
