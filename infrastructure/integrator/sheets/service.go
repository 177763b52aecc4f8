package sheets

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

type SheetsIntegrator interface {
	FetchDataset(ctx context.Context) (*domain.DatasetSnapshot, error)
}

type SheetsService struct {
	cfg    *config.Config
	Client sheetsclient.Client
}

func New(cfg *config.Config, client sheetsclient.Client) SheetsIntegrator {
	return &SheetsService{
		cfg:    cfg,
		Client: client,
	}
}

// FetchDataset baixa as abas de transações e de coortes e monta um snapshot
// completo. Não há retry aqui: em caso de falha o snapshot anterior continua
// sendo servido e a próxima sincronização tenta de novo.
func (s *SheetsService) FetchDataset(ctx context.Context) (*domain.DatasetSnapshot, error) {
	values, err := s.Client.GetValues(ctx, s.cfg.Sheets.TransactionsRange)
	if err != nil {
		return nil, errors.Wrap(err, "falha ao buscar a aba de transações")
	}

	sales, err := MapTransactionTable(values)
	if err != nil {
		return nil, err
	}

	cohorts := []domain.LocationCohort{}
	if s.cfg.Sheets.CohortsRange != "" {
		cohortValues, err := s.Client.GetValues(ctx, s.cfg.Sheets.CohortsRange)
		if err != nil {
			return nil, errors.Wrap(err, "falha ao buscar a aba de coortes")
		}

		cohorts, err = MapCohortTable(cohortValues)
		if err != nil {
			return nil, err
		}
	}

	return &domain.DatasetSnapshot{
		Sales:     sales,
		Cohorts:   cohorts,
		Source:    s.cfg.Sheets.SpreadsheetID,
		FetchedAt: time.Now(),
	}, nil
}
