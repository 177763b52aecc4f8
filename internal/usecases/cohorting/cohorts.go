// Package cohorting deriva as métricas do funil de conversão por unidade
// (retenção, conversão, LTV médio, prazo médio de conversão e escore de
// eficiência) e monta o ranking de eficiência entre unidades.
package cohorting

import (
	"fmt"
	"sort"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/metrics"
)

// ComputeMetrics deriva as métricas do funil de um recorte da coorte.
// Zero novos membros resulta em todas as taxas zeradas, nunca em NaN.
func ComputeMetrics(newMembers, retained, converted int, ltvSum, spanDaysSum float64) domain.CohortMetrics {
	conversionRate := metrics.ConversionRate(converted, newMembers)
	avgLifetimeValue := metrics.AverageLifetimeValue(ltvSum, newMembers)

	return domain.CohortMetrics{
		NewMembers:            newMembers,
		Retained:              retained,
		Converted:             converted,
		RetentionRate:         metrics.RetentionRate(retained, newMembers),
		ConversionRate:        conversionRate,
		AvgLifetimeValue:      avgLifetimeValue,
		AvgConversionSpanDays: metrics.AverageConversionSpan(spanDaysSum, newMembers),
		EfficiencyScore:       metrics.EfficiencyScore(conversionRate, avgLifetimeValue),
	}
}

// Report monta o relatório de funil de uma unidade: métricas mês a mês mais
// os totais acumulados da unidade.
func Report(cohort domain.LocationCohort) (*domain.CohortReport, error) {
	if err := cohort.Validate(); err != nil {
		return nil, err
	}

	report := &domain.CohortReport{
		Location: cohort.Location,
		Months:   make([]domain.CohortMonthMetrics, 0, len(cohort.Months)),
	}

	var totalNew, totalRetained, totalConverted int
	var totalLTV, totalSpan float64

	for i, month := range cohort.Months {
		report.Months = append(report.Months, domain.CohortMonthMetrics{
			Month: month,
			Metrics: ComputeMetrics(
				cohort.NewMembers[i],
				cohort.Retained[i],
				cohort.Converted[i],
				cohort.LifetimeValue[i],
				cohort.ConversionSpanDays[i],
			),
		})

		totalNew += cohort.NewMembers[i]
		totalRetained += cohort.Retained[i]
		totalConverted += cohort.Converted[i]
		totalLTV += cohort.LifetimeValue[i]
		totalSpan += cohort.ConversionSpanDays[i]
	}

	report.Totals = ComputeMetrics(totalNew, totalRetained, totalConverted, totalLTV, totalSpan)

	return report, nil
}

// Reports monta os relatórios de todas as unidades na ordem do dataset
func Reports(cohorts []domain.LocationCohort) ([]*domain.CohortReport, error) {
	reports := make([]*domain.CohortReport, 0, len(cohorts))
	for _, cohort := range cohorts {
		report, err := Report(cohort)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// ReportByLocation monta o relatório de uma unidade específica
func ReportByLocation(cohorts []domain.LocationCohort, location string) (*domain.CohortReport, error) {
	for _, cohort := range cohorts {
		if cohort.Location == location {
			return Report(cohort)
		}
	}
	return nil, fmt.Errorf("unidade não encontrada: %s", location)
}

// Ranking ordena as unidades pelo escore de eficiência, do maior para o
// menor, com desempate pelo nome da unidade para manter o resultado estável.
func Ranking(cohorts []domain.LocationCohort) ([]*domain.LocationRankingItem, error) {
	reports, err := Reports(cohorts)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.LocationRankingItem, 0, len(reports))
	for _, report := range reports {
		items = append(items, &domain.LocationRankingItem{
			Location: report.Location,
			Metrics:  report.Totals,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Metrics.EfficiencyScore != items[j].Metrics.EfficiencyScore {
			return items[i].Metrics.EfficiencyScore > items[j].Metrics.EfficiencyScore
		}
		return items[i].Location < items[j].Location
	})

	for i := range items {
		items[i].Position = i + 1
	}

	return items, nil
}
