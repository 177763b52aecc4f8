package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// As respostas do dashboard carregam as vendas de drill-down e podem ficar
// grandes; jsoniter serializa com o mesmo comportamento da stdlib.
var jsonEnc = jsoniter.ConfigCompatibleWithStandardLibrary

// parseRangeParam interpreta o parâmetro "range" da query string
func parseRangeParam(r *http.Request) (domain.TimeRange, error) {
	return domain.ParseTimeRange(r.URL.Query().Get("range"))
}

func includeSalesParam(r *http.Request) bool {
	return r.URL.Query().Get("include_sales") == "true"
}

// GetDashboardSummary retorna os indicadores de cabeçalho da janela selecionada
func GetDashboardSummary(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		rng, err := parseRangeParam(r)
		if err != nil {
			logger.WithField("range", r.URL.Query().Get("range")).Warn("dashboard: parâmetro range inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		summary := service.Summary(rng)

		w.Header().Set("Content-Type", "application/json")
		if err := jsonEnc.NewEncoder(w).Encode(summary); err != nil {
			logger.WithError(err).Error("dashboard: falha ao serializar resposta do sumário")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetDashboardTable retorna a visão tabular agrupada pela dimensão selecionada
func GetDashboardTable(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		rng, err := parseRangeParam(r)
		if err != nil {
			logger.WithField("range", r.URL.Query().Get("range")).Warn("dashboard: parâmetro range inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		dimension, err := domain.ParseDimension(r.URL.Query().Get("dimension"))
		if err != nil {
			logger.WithField("dimension", r.URL.Query().Get("dimension")).Warn("dashboard: parâmetro dimension inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		table := service.Table(rng, dimension, includeSalesParam(r))

		logger.WithFields(log.Fields{
			"range":     rng,
			"dimension": dimension,
			"rows":      len(table.Rows),
		}).Info("dashboard: tabela montada")

		w.Header().Set("Content-Type", "application/json")
		if err := jsonEnc.NewEncoder(w).Encode(table); err != nil {
			logger.WithError(err).Error("dashboard: falha ao serializar resposta da tabela")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetDashboardSeries retorna os pontos de gráfico da métrica selecionada
func GetDashboardSeries(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		rng, err := parseRangeParam(r)
		if err != nil {
			logger.WithField("range", r.URL.Query().Get("range")).Warn("dashboard: parâmetro range inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		dimension, err := domain.ParseDimension(r.URL.Query().Get("dimension"))
		if err != nil {
			logger.WithField("dimension", r.URL.Query().Get("dimension")).Warn("dashboard: parâmetro dimension inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		metric, err := domain.ParseMetric(r.URL.Query().Get("metric"))
		if err != nil {
			logger.WithField("metric", r.URL.Query().Get("metric")).Warn("dashboard: parâmetro metric inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		series := service.Series(rng, dimension, metric, includeSalesParam(r))

		logger.WithFields(log.Fields{
			"range":     rng,
			"dimension": dimension,
			"metric":    metric,
			"points":    len(series.Points),
		}).Info("dashboard: série montada")

		w.Header().Set("Content-Type", "application/json")
		if err := jsonEnc.NewEncoder(w).Encode(series); err != nil {
			logger.WithError(err).Error("dashboard: falha ao serializar resposta da série")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetAvailablePeriods retorna os meses e trimestres presentes no dataset
func GetAvailablePeriods(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		periods := service.AvailablePeriods()

		w.Header().Set("Content-Type", "application/json")
		if err := jsonEnc.NewEncoder(w).Encode(periods); err != nil {
			logger.WithError(err).Error("dashboard: falha ao serializar períodos disponíveis")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
