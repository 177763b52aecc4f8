package repository

import (
	"sync"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// DatasetRepository guarda o snapshot corrente do dataset em memória.
// A troca é atômica: leitores enxergam sempre o snapshot antigo inteiro
// ou o novo inteiro, nunca um estado intermediário.
type DatasetRepository interface {
	Replace(snapshot *domain.DatasetSnapshot)
	Current() *domain.DatasetSnapshot
}

type datasetRepository struct {
	mu       sync.RWMutex
	snapshot *domain.DatasetSnapshot
}

func NewDatasetRepository() DatasetRepository {
	return &datasetRepository{}
}

func (r *datasetRepository) Replace(snapshot *domain.DatasetSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = snapshot
}

// Current devolve o snapshot corrente ou nil quando nada foi carregado ainda.
// O snapshot é imutável após a publicação, então pode ser lido sem cópia.
func (r *datasetRepository) Current() *domain.DatasetSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}
