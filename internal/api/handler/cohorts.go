package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// GetCohortReports retorna os relatórios de funil de todas as unidades
func GetCohortReports(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		reports, err := service.CohortReports()
		if err != nil {
			writeCohortError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := jsonEnc.NewEncoder(w).Encode(reports); err != nil {
			logger.WithError(err).Error("cohorts: falha ao serializar relatórios")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetCohortByLocation retorna o relatório de funil de uma unidade
func GetCohortByLocation(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		location := httprouter.ParamsFromContext(r.Context()).ByName("location")
		if location == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Unidade não fornecida", nil)
			return
		}

		report, err := service.CohortByLocation(location)
		if err != nil {
			if strings.Contains(err.Error(), "unidade não encontrada") {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}
			writeCohortError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := jsonEnc.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("cohorts: falha ao serializar relatório da unidade")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetCohortRanking retorna o ranking de eficiência das unidades
func GetCohortRanking(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ranking, err := service.CohortRanking()
		if err != nil {
			writeCohortError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := jsonEnc.NewEncoder(w).Encode(ranking); err != nil {
			logger.WithError(err).Error("cohorts: falha ao serializar ranking")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func writeCohortError(w http.ResponseWriter, logger log.Logger, err error) {
	if errors.Is(err, reporting.ErrNoDataset) {
		apiErrors.WriteError(w, apiErrors.ErrEmptyDataset, "Nenhum dataset carregado ainda", nil)
		return
	}

	logger.WithError(err).Error("cohorts: falha ao montar relatório")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar relatório de coortes", nil)
}
