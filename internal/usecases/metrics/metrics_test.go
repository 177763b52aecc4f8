package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestCompute(t *testing.T) {
	sales := []domain.Sale{
		{MemberID: "M1", Value: 100, VAT: 10},
		{MemberID: "M2", Value: 200, VAT: 20},
		{MemberID: "M1", Value: 50, VAT: 5},
	}

	result := Compute(sales)

	assert.Equal(t, 350.0, result.Revenue)
	assert.Equal(t, 315.0, result.NetRevenue)
	assert.Equal(t, 3, result.Transactions)
	assert.Equal(t, 2, result.UniqueMembers)
	assert.Equal(t, 3, result.Units)
	assert.Equal(t, 116.67, result.AverageTransactionValue)
	assert.Equal(t, 116.67, result.AverageUnitValue)
	assert.Equal(t, 175.0, result.AverageSaleValue)
	assert.Equal(t, "1.0", result.UnitsPerTransaction)
}

func TestComputeGrupoVazio(t *testing.T) {
	result := Compute(nil)

	assert.Equal(t, 0.0, result.Revenue)
	assert.Equal(t, 0.0, result.NetRevenue)
	assert.Equal(t, 0, result.Transactions)
	assert.Equal(t, 0, result.UniqueMembers)
	assert.Equal(t, 0.0, result.AverageTransactionValue, "divisão por zero resulta em 0, nunca NaN")
	assert.Equal(t, 0.0, result.AverageSaleValue)
	assert.Equal(t, "0.0", result.UnitsPerTransaction)
}

func TestNetRevenueIdentidade(t *testing.T) {
	// A identidade netRevenue = revenue - vatSum vale sobre os valores já
	// arredondados, mesmo com frações de centavo nas parcelas
	sales := []domain.Sale{
		{MemberID: "M1", Value: 10.005, VAT: 1.001},
		{MemberID: "M2", Value: 20.004, VAT: 2.002},
	}

	assert.Equal(t, 30.01, Revenue(sales))
	assert.Equal(t, 3.0, VATSum(sales))
	assert.Equal(t, 27.01, NetRevenue(sales))
}

func TestCohortRates(t *testing.T) {
	assert.Equal(t, 60.0, RetentionRate(60, 100))
	assert.Equal(t, 25.0, ConversionRate(25, 100))
	assert.Equal(t, 500.0, AverageLifetimeValue(50000, 100))
	assert.Equal(t, 12.5, AverageConversionSpan(1250, 100))
}

func TestCohortRatesSemNovosMembros(t *testing.T) {
	assert.Equal(t, 0.0, RetentionRate(10, 0))
	assert.Equal(t, 0.0, ConversionRate(10, 0))
	assert.Equal(t, 0.0, AverageLifetimeValue(5000, 0))
	assert.Equal(t, 0.0, AverageConversionSpan(300, 0))
}

func TestEfficiencyScore(t *testing.T) {
	// (25% de conversão x LTV médio 500) / 1000 = 12.5
	assert.Equal(t, 12.5, EfficiencyScore(25.0, 500.0))
	assert.Equal(t, 0.0, EfficiencyScore(0, 500.0))
}
