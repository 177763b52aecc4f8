// Package aggregating particiona as vendas filtradas por uma dimensão de
// agrupamento e aplica as métricas derivadas sobre cada grupo, produzindo os
// resultados tabulares e de série consumidos pela camada de apresentação.
package aggregating

import (
	"fmt"
	"sort"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// Group é um grupo de vendas com o rótulo derivado da dimensão. As vendas
// originais ficam anexadas para suportar drill-down em qualquer célula.
type Group struct {
	Label string
	Sales []domain.Sale

	// início do mês/trimestre, usado apenas para ordenação cronológica
	periodStart time.Time
}

// MonthLabel deriva o rótulo de mês de uma data, ex.: "Mar 2025"
func MonthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

// QuarterLabel deriva o rótulo de trimestre de uma data, ex.: "Q1 2025".
// O trimestre é ceil(mês/3).
func QuarterLabel(t time.Time) string {
	quarter := (int(t.Month()) + 2) / 3
	return fmt.Sprintf("Q%d %d", quarter, t.Year())
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func quarterStart(t time.Time) time.Time {
	quarter := (int(t.Month()) + 2) / 3
	firstMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(t.Year(), firstMonth, 1, 0, 0, 0, 0, time.UTC)
}

// GroupBy particiona as vendas pelos rótulos derivados da dimensão.
//
// Para mês/trimestre os grupos saem em ordem cronológica e vendas com data
// não interpretável são descartadas silenciosamente; para categoria, produto
// e unidade a ordem é a de primeira aparição e a data não é consultada.
func GroupBy(sales []domain.Sale, dimension domain.Dimension) []Group {
	groups := make([]Group, 0)
	indexByLabel := make(map[string]int)

	for _, sale := range sales {
		var label string
		var periodStart time.Time

		switch dimension {
		case domain.DimensionMonth, domain.DimensionQuarter:
			paidAt, ok := utils.ParseFlexibleDate(sale.Date)
			if !ok {
				continue
			}
			if dimension == domain.DimensionMonth {
				label = MonthLabel(paidAt)
				periodStart = monthStart(paidAt)
			} else {
				label = QuarterLabel(paidAt)
				periodStart = quarterStart(paidAt)
			}
		case domain.DimensionCategory:
			label = sale.Category
		case domain.DimensionProduct:
			label = sale.Product
		case domain.DimensionLocation:
			label = sale.Location
		default:
			continue
		}

		idx, exists := indexByLabel[label]
		if !exists {
			idx = len(groups)
			indexByLabel[label] = idx
			groups = append(groups, Group{Label: label, periodStart: periodStart})
		}
		groups[idx].Sales = append(groups[idx].Sales, sale)
	}

	if dimension.IsTimeBased() {
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].periodStart.Before(groups[j].periodStart)
		})
	}

	return groups
}

// BuildRows monta as linhas da tabela aplicando todas as métricas por grupo
func BuildRows(groups []Group) []domain.TableRow {
	rows := make([]domain.TableRow, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, domain.TableRow{
			Label:   group.Label,
			Metrics: metrics.Compute(group.Sales),
			Sales:   group.Sales,
		})
	}
	return rows
}

// BuildTotals monta a linha de total geral somando os valores por grupo das
// métricas somáveis. Razões não são agregáveis e ficam nulas; membros únicos
// são recontados sobre o conjunto completo para não duplicar membros que
// compram em mais de um grupo.
func BuildTotals(rows []domain.TableRow, allSales []domain.Sale) domain.TableTotals {
	totals := domain.TableTotals{}

	for _, row := range rows {
		totals.Revenue += row.Metrics.Revenue
		totals.NetRevenue += row.Metrics.NetRevenue
		totals.Transactions += row.Metrics.Transactions
		totals.Units += row.Metrics.Units
	}

	totals.Revenue = utils.RoundWithTwoDecimalPlace(totals.Revenue)
	totals.NetRevenue = utils.RoundWithTwoDecimalPlace(totals.NetRevenue)
	totals.UniqueMembers = metrics.UniqueMemberCount(allSales)

	return totals
}

// SeriesValue extrai o valor numérico de uma métrica para pontos de gráfico
func SeriesValue(sales []domain.Sale, metric domain.Metric) float64 {
	switch metric {
	case domain.MetricRevenue:
		return metrics.Revenue(sales)
	case domain.MetricNetRevenue:
		return metrics.NetRevenue(sales)
	case domain.MetricTransactions:
		return float64(metrics.TransactionCount(sales))
	case domain.MetricUniqueMembers:
		return float64(metrics.UniqueMemberCount(sales))
	case domain.MetricUnits:
		return float64(metrics.UnitCount(sales))
	case domain.MetricATV:
		return metrics.AverageTransactionValue(sales)
	case domain.MetricAUV:
		return metrics.AverageUnitValue(sales)
	case domain.MetricASV:
		return metrics.AverageSaleValue(sales)
	case domain.MetricUnitsPerTransaction:
		if metrics.TransactionCount(sales) == 0 {
			return 0
		}
		return utils.RoundWithTwoDecimalPlace(
			float64(metrics.UnitCount(sales)) / float64(metrics.TransactionCount(sales)),
		)
	}
	return 0
}

// BuildSeries monta os pontos de gráfico para a métrica selecionada
func BuildSeries(groups []Group, metric domain.Metric) []domain.SeriesPoint {
	points := make([]domain.SeriesPoint, 0, len(groups))
	for _, group := range groups {
		points = append(points, domain.SeriesPoint{
			Label: group.Label,
			Value: SeriesValue(group.Sales, metric),
			Sales: group.Sales,
		})
	}
	return points
}

// AvailablePeriods lista os rótulos de meses e trimestres presentes nas
// vendas, em ordem cronológica
func AvailablePeriods(sales []domain.Sale) domain.AvailablePeriods {
	months := GroupBy(sales, domain.DimensionMonth)
	quarters := GroupBy(sales, domain.DimensionQuarter)

	periods := domain.AvailablePeriods{
		Months:   make([]string, 0, len(months)),
		Quarters: make([]string, 0, len(quarters)),
	}
	for _, g := range months {
		periods.Months = append(periods.Months, g.Label)
	}
	for _, g := range quarters {
		periods.Quarters = append(periods.Quarters, g.Label)
	}

	return periods
}
