package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/sheets/mocks"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newSyncService(t *testing.T) (*DatasetSyncService, *mocks.MockSheetsIntegrator, repository.DatasetRepository) {
	ctrl := gomock.NewController(t)
	integrator := mocks.NewMockSheetsIntegrator(ctrl)
	datasetRepo := repository.NewDatasetRepository()

	cfg := &config.Config{
		DatasetSync: config.DatasetSync{
			CronSchedule:   "0 5 * * *",
			Enabled:        false,
			RefreshOnStart: false,
		},
	}

	return NewDatasetSyncService(integrator, datasetRepo, cfg), integrator, datasetRepo
}

func TestSyncDataset(t *testing.T) {
	service, integrator, datasetRepo := newSyncService(t)

	snapshot := &domain.DatasetSnapshot{
		Sales:     []domain.Sale{{MemberID: "M1", Value: 100}},
		Cohorts:   []domain.LocationCohort{{Location: "Centro"}},
		Source:    "sheet-123",
		FetchedAt: time.Now(),
	}
	integrator.EXPECT().FetchDataset(gomock.Any()).Return(snapshot, nil)

	service.syncDataset(context.Background())

	assert.Equal(t, snapshot, datasetRepo.Current())

	status := service.Status()
	assert.True(t, status.Loaded)
	assert.False(t, status.SyncRunning)
	assert.Equal(t, 1, status.SalesCount)
	assert.Equal(t, 1, status.CohortsCount)
	assert.Equal(t, "sheet-123", status.Source)
	assert.Empty(t, status.LastError)
	assert.Empty(t, status.LastErrorCode)
	assert.NotNil(t, status.LastStartedAt)
	assert.NotNil(t, status.LastFinishedAt)
}

func TestSyncDatasetPreservaSnapshotEmFalha(t *testing.T) {
	service, integrator, datasetRepo := newSyncService(t)

	previous := &domain.DatasetSnapshot{
		Sales:     []domain.Sale{{MemberID: "M1", Value: 100}},
		FetchedAt: time.Now(),
	}
	datasetRepo.Replace(previous)

	integrator.EXPECT().
		FetchDataset(gomock.Any()).
		Return(nil, errors.New("planilha indisponível"))

	service.syncDataset(context.Background())

	// a falha na busca nunca derruba o snapshot já carregado
	assert.Equal(t, previous, datasetRepo.Current())

	status := service.Status()
	assert.True(t, status.Loaded)
	assert.Equal(t, "planilha indisponível", status.LastError)
	assert.Equal(t, apiErrors.ErrUpstreamFetch, status.LastErrorCode)
}

func TestSyncDatasetCodigoDeErroDeSchema(t *testing.T) {
	service, integrator, _ := newSyncService(t)

	schemaErr := &sheets.SchemaError{Sheet: "transações", Missing: []string{"vat"}}
	integrator.EXPECT().FetchDataset(gomock.Any()).Return(nil, schemaErr)

	service.syncDataset(context.Background())

	status := service.Status()
	assert.Equal(t, apiErrors.ErrSchemaMismatch, status.LastErrorCode)
	assert.Contains(t, status.LastError, "colunas ausentes")
}

func TestRunManualSyncJaEmAndamento(t *testing.T) {
	service, _, _ := newSyncService(t)

	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	err := service.RunManualSync()

	assert.ErrorIs(t, err, ErrSyncInProgress)
}

func TestStatusSemSnapshot(t *testing.T) {
	service, _, _ := newSyncService(t)

	status := service.Status()

	assert.False(t, status.Loaded)
	assert.Nil(t, status.FetchedAt)
	assert.Zero(t, status.SalesCount)
	assert.Nil(t, status.LastStartedAt)
}
