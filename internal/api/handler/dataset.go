package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// GetDatasetStatus retorna o estado atual do dataset e da sincronização
func GetDatasetStatus(service *scheduler.DatasetSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := service.Status()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// RefreshDataset dispara uma sincronização manual do dataset
func RefreshDataset(service *scheduler.DatasetSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RefreshDataset")

		if err := service.RunManualSync(); err != nil {
			if errors.Is(err, scheduler.ErrSyncInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrRefreshInProgress, "Sincronização do dataset já em andamento", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar sincronização", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "sincronização iniciada",
		})
	}
}
