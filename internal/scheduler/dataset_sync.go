package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// ErrSyncInProgress indica que uma sincronização do dataset já está em andamento
var ErrSyncInProgress = errors.New("sincronização do dataset já em andamento")

// DatasetSyncConfig representa a configuração do agendador de sincronização do dataset
type DatasetSyncConfig struct {
	CronSchedule   string
	SyncEnabled    bool
	RefreshOnStart bool
}

// DatasetSyncService gerencia o agendamento e execução da sincronização do
// dataset da planilha. O snapshot só é substituído quando a busca inteira
// funciona; qualquer falha preserva o snapshot anterior.
type DatasetSyncService struct {
	scheduler      *gocron.Scheduler
	config         DatasetSyncConfig
	integrator     sheets.SheetsIntegrator
	datasetRepo    repository.DatasetRepository
	appCtx         context.Context
	syncRunning    bool
	syncMutex      sync.Mutex
	lastStartedAt  time.Time
	lastFinishedAt time.Time
	lastError      string
	lastErrorCode  string
}

// NewDatasetSyncService cria uma nova instância do serviço de sincronização do dataset
func NewDatasetSyncService(
	integrator sheets.SheetsIntegrator,
	datasetRepo repository.DatasetRepository,
	appConfig *config.Config,
) *DatasetSyncService {
	syncConfig := DatasetSyncConfig{
		CronSchedule:   appConfig.DatasetSync.CronSchedule,
		SyncEnabled:    appConfig.DatasetSync.Enabled,
		RefreshOnStart: appConfig.DatasetSync.RefreshOnStart,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":    syncConfig.CronSchedule,
		"sync_enabled":     syncConfig.SyncEnabled,
		"refresh_on_start": syncConfig.RefreshOnStart,
	}).Info("Configuração do agendador de sincronização do dataset carregada")

	return &DatasetSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		integrator:  integrator,
		datasetRepo: datasetRepo,
		appCtx:      context.Background(),
		syncRunning: false,
	}
}

// Start inicia o agendador e, quando configurado, dispara a carga inicial
func (s *DatasetSyncService) Start(ctx context.Context) error {
	s.appCtx = ctx

	if s.config.RefreshOnStart {
		logrus.Info("Disparando carga inicial do dataset")
		go s.syncDataset(ctx)
	}

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada do dataset desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização do dataset")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncDataset(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do dataset: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização do dataset")
		s.scheduler.Stop()
	}()

	return nil
}

// syncDataset busca a planilha e substitui o snapshot corrente
func (s *DatasetSyncService) syncDataset(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do dataset já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastFinishedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	// identificador curto para correlacionar os logs de uma mesma execução
	syncID, err := utils.GenerateID()
	if err != nil {
		syncID = "unknown"
	}

	logrus.WithField("sync_id", syncID).Info("Iniciando sincronização do dataset da planilha")
	startTime := time.Now()

	snapshot, err := s.integrator.FetchDataset(ctx)
	if err != nil {
		s.syncMutex.Lock()
		s.lastError = err.Error()
		s.lastErrorCode = classifyFetchError(err)
		s.syncMutex.Unlock()

		logrus.WithError(err).WithField("sync_id", syncID).
			Error("Erro ao sincronizar dataset, snapshot anterior preservado")
		return
	}

	s.datasetRepo.Replace(snapshot)

	s.syncMutex.Lock()
	s.lastError = ""
	s.lastErrorCode = ""
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"sync_id":  syncID,
		"duration": time.Since(startTime).String(),
		"sales":    len(snapshot.Sales),
		"cohorts":  len(snapshot.Cohorts),
	}).Info("Sincronização do dataset concluída")
}

// RunManualSync dispara uma sincronização sob demanda. Retorna erro quando
// outra sincronização já está em andamento. A busca roda no contexto da
// aplicação, não no da requisição que a disparou.
func (s *DatasetSyncService) RunManualSync() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		return ErrSyncInProgress
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual do dataset")
	go s.syncDataset(s.appCtx)

	return nil
}

// Status retorna o estado atual do dataset e da sincronização
func (s *DatasetSyncService) Status() domain.DatasetStatus {
	s.syncMutex.Lock()
	status := domain.DatasetStatus{
		SyncRunning:   s.syncRunning,
		LastError:     s.lastError,
		LastErrorCode: s.lastErrorCode,
	}
	if !s.lastStartedAt.IsZero() {
		startedAt := s.lastStartedAt
		status.LastStartedAt = &startedAt
	}
	if !s.lastFinishedAt.IsZero() {
		finishedAt := s.lastFinishedAt
		status.LastFinishedAt = &finishedAt
	}
	s.syncMutex.Unlock()

	if snapshot := s.datasetRepo.Current(); snapshot != nil {
		fetchedAt := snapshot.FetchedAt
		status.Loaded = true
		status.Source = snapshot.Source
		status.FetchedAt = &fetchedAt
		status.SalesCount = len(snapshot.Sales)
		status.CohortsCount = len(snapshot.Cohorts)
	}

	return status
}

// classifyFetchError distingue cabeçalho de planilha inesperado de falha de
// comunicação com a origem, para o código aparecer no status do dataset
func classifyFetchError(err error) string {
	var schemaErr *sheets.SchemaError
	if errors.As(err, &schemaErr) {
		return apiErrors.ErrSchemaMismatch
	}
	return apiErrors.ErrUpstreamFetch
}
