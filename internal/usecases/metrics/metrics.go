// Package metrics reúne as funções puras de métricas derivadas do dashboard.
// Todas as divisões com denominador zero resultam em 0: o frontend nunca pode
// receber NaN em célula de tabela ou ponto de gráfico.
package metrics

import (
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// Revenue é a soma dos valores de pagamento, arredondada em duas casas
func Revenue(sales []domain.Sale) float64 {
	var total float64
	for _, sale := range sales {
		total += sale.Value
	}
	return utils.RoundWithTwoDecimalPlace(total)
}

// VATSum é a soma do imposto das vendas
func VATSum(sales []domain.Sale) float64 {
	var total float64
	for _, sale := range sales {
		total += sale.VAT
	}
	return utils.RoundWithTwoDecimalPlace(total)
}

// NetRevenue é a receita menos a soma do imposto. Calculada sobre os valores
// já arredondados para manter a identidade netRevenue = revenue - vatSum.
func NetRevenue(sales []domain.Sale) float64 {
	return utils.RoundWithTwoDecimalPlace(Revenue(sales) - VATSum(sales))
}

// TransactionCount é a quantidade de registros de venda
func TransactionCount(sales []domain.Sale) int {
	return len(sales)
}

// UniqueMemberCount é a cardinalidade de identificadores de membro distintos
func UniqueMemberCount(sales []domain.Sale) int {
	seen := make(map[string]struct{}, len(sales))
	for _, sale := range sales {
		seen[sale.MemberID] = struct{}{}
	}
	return len(seen)
}

// UnitCount conta uma unidade por registro de venda, por convenção
func UnitCount(sales []domain.Sale) int {
	return len(sales)
}

// AverageTransactionValue é receita / quantidade de transações
func AverageTransactionValue(sales []domain.Sale) float64 {
	count := TransactionCount(sales)
	if count == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(Revenue(sales) / float64(count))
}

// AverageUnitValue é receita / quantidade de unidades
func AverageUnitValue(sales []domain.Sale) float64 {
	units := UnitCount(sales)
	if units == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(Revenue(sales) / float64(units))
}

// AverageSaleValue é receita / quantidade de membros distintos
func AverageSaleValue(sales []domain.Sale) float64 {
	members := UniqueMemberCount(sales)
	if members == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(Revenue(sales) / float64(members))
}

// UnitsPerTransaction é unidades / transações, com uma casa decimal
func UnitsPerTransaction(sales []domain.Sale) string {
	return utils.RatioWithOneDecimalPlace(
		float64(UnitCount(sales)),
		float64(TransactionCount(sales)),
	)
}

// Compute calcula todas as métricas derivadas de um grupo de vendas
func Compute(sales []domain.Sale) domain.GroupMetrics {
	return domain.GroupMetrics{
		Revenue:                 Revenue(sales),
		NetRevenue:              NetRevenue(sales),
		Transactions:            TransactionCount(sales),
		UniqueMembers:           UniqueMemberCount(sales),
		Units:                   UnitCount(sales),
		AverageTransactionValue: AverageTransactionValue(sales),
		AverageUnitValue:        AverageUnitValue(sales),
		AverageSaleValue:        AverageSaleValue(sales),
		UnitsPerTransaction:     UnitsPerTransaction(sales),
	}
}

// RetentionRate é retidos / novos membros em percentual
func RetentionRate(retained, newMembers int) float64 {
	if newMembers == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(float64(retained) / float64(newMembers) * 100)
}

// ConversionRate é convertidos / novos membros em percentual
func ConversionRate(converted, newMembers int) float64 {
	if newMembers == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(float64(converted) / float64(newMembers) * 100)
}

// AverageLifetimeValue é a soma de LTV / novos membros
func AverageLifetimeValue(ltvSum float64, newMembers int) float64 {
	if newMembers == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(ltvSum / float64(newMembers))
}

// AverageConversionSpan é a soma de dias até conversão / novos membros
func AverageConversionSpan(spanDaysSum float64, newMembers int) float64 {
	if newMembers == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(spanDaysSum / float64(newMembers))
}

// EfficiencyScore é o escore composto de ranqueamento das unidades:
// (taxa de conversão x LTV médio) / 1000
func EfficiencyScore(conversionRate, avgLifetimeValue float64) float64 {
	return utils.RoundWithTwoDecimalPlace(conversionRate * avgLifetimeValue / 1000)
}
