// Package reporting orquestra o pipeline de agregação do dashboard:
// snapshot corrente, filtro de janela de tempo, agrupamento e métricas.
// Nenhum resultado é persistido; tudo é recalculado a cada requisição.
package reporting

import (
	"errors"
	"time"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/cohorting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/filtering"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/metrics"
)

// ErrNoDataset indica que nenhum snapshot foi carregado ainda
var ErrNoDataset = errors.New("nenhum dataset carregado")

type Reporter interface {
	Summary(rng domain.TimeRange) *domain.SummaryResponse
	Table(rng domain.TimeRange, dimension domain.Dimension, includeSales bool) *domain.TableResponse
	Series(rng domain.TimeRange, dimension domain.Dimension, metric domain.Metric, includeSales bool) *domain.SeriesResponse
	AvailablePeriods() *domain.AvailablePeriods
	CohortReports() ([]*domain.CohortReport, error)
	CohortByLocation(location string) (*domain.CohortReport, error)
	CohortRanking() ([]*domain.LocationRankingItem, error)
}

type Service struct {
	datasetRepo repository.DatasetRepository
	now         func() time.Time
}

func NewService(datasetRepo repository.DatasetRepository) Reporter {
	return newService(datasetRepo, time.Now)
}

func newService(datasetRepo repository.DatasetRepository, now func() time.Time) *Service {
	return &Service{
		datasetRepo: datasetRepo,
		now:         now,
	}
}

// filteredSales aplica a janela de tempo sobre o snapshot corrente.
// Retorna ok=false quando nenhum snapshot foi carregado ainda.
func (s *Service) filteredSales(rng domain.TimeRange) ([]domain.Sale, bool) {
	snapshot := s.datasetRepo.Current()
	if snapshot == nil {
		return nil, false
	}

	return filtering.ByTimeRange(snapshot.Sales, rng, s.now()), true
}

// Summary calcula os indicadores de cabeçalho sobre a janela selecionada
func (s *Service) Summary(rng domain.TimeRange) *domain.SummaryResponse {
	sales, ok := s.filteredSales(rng)
	if !ok || len(sales) == 0 {
		return &domain.SummaryResponse{
			TimeRange: rng,
			Metrics:   metrics.Compute(nil),
			Empty:     true,
		}
	}

	return &domain.SummaryResponse{
		TimeRange: rng,
		Metrics:   metrics.Compute(sales),
	}
}

// Table monta a visão tabular: uma linha por grupo da dimensão mais a linha
// de total geral. As vendas de cada linha só são anexadas quando o chamador
// pede drill-down.
func (s *Service) Table(rng domain.TimeRange, dimension domain.Dimension, includeSales bool) *domain.TableResponse {
	sales, ok := s.filteredSales(rng)
	if !ok || len(sales) == 0 {
		return &domain.TableResponse{
			TimeRange: rng,
			Dimension: dimension,
			Rows:      []domain.TableRow{},
			Empty:     true,
		}
	}

	groups := aggregating.GroupBy(sales, dimension)
	rows := aggregating.BuildRows(groups)
	totals := aggregating.BuildTotals(rows, sales)

	if !includeSales {
		for i := range rows {
			rows[i].Sales = nil
		}
	}

	return &domain.TableResponse{
		TimeRange: rng,
		Dimension: dimension,
		Rows:      rows,
		Totals:    totals,
	}
}

// Series monta os pontos de gráfico da métrica selecionada por grupo
func (s *Service) Series(rng domain.TimeRange, dimension domain.Dimension, metric domain.Metric, includeSales bool) *domain.SeriesResponse {
	sales, ok := s.filteredSales(rng)
	if !ok || len(sales) == 0 {
		return &domain.SeriesResponse{
			TimeRange: rng,
			Dimension: dimension,
			Metric:    metric,
			Points:    []domain.SeriesPoint{},
			Empty:     true,
		}
	}

	groups := aggregating.GroupBy(sales, dimension)
	points := aggregating.BuildSeries(groups, metric)

	if !includeSales {
		for i := range points {
			points[i].Sales = nil
		}
	}

	return &domain.SeriesResponse{
		TimeRange: rng,
		Dimension: dimension,
		Metric:    metric,
		Points:    points,
	}
}

// AvailablePeriods lista os meses e trimestres presentes no dataset inteiro,
// para o frontend popular os seletores de período
func (s *Service) AvailablePeriods() *domain.AvailablePeriods {
	snapshot := s.datasetRepo.Current()
	if snapshot == nil {
		return &domain.AvailablePeriods{Months: []string{}, Quarters: []string{}}
	}

	periods := aggregating.AvailablePeriods(snapshot.Sales)
	return &periods
}

// CohortReports monta os relatórios de funil de todas as unidades
func (s *Service) CohortReports() ([]*domain.CohortReport, error) {
	snapshot := s.datasetRepo.Current()
	if snapshot == nil {
		return nil, ErrNoDataset
	}

	return cohorting.Reports(snapshot.Cohorts)
}

// CohortByLocation monta o relatório de funil de uma unidade
func (s *Service) CohortByLocation(location string) (*domain.CohortReport, error) {
	snapshot := s.datasetRepo.Current()
	if snapshot == nil {
		return nil, ErrNoDataset
	}

	return cohorting.ReportByLocation(snapshot.Cohorts, location)
}

// CohortRanking ordena as unidades pelo escore de eficiência
func (s *Service) CohortRanking() ([]*domain.LocationRankingItem, error) {
	snapshot := s.datasetRepo.Current()
	if snapshot == nil {
		return nil, ErrNoDataset
	}

	return cohorting.Ranking(snapshot.Cohorts)
}
