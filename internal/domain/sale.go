package domain

import "time"

// Sale representa uma linha da planilha de transações: um evento de venda/pagamento.
// Imutável após a carga; o conjunto inteiro é substituído a cada atualização do dataset.
type Sale struct {
	MemberID       string  `json:"member_id"`
	MemberName     string  `json:"member_name,omitempty"`
	Email          string  `json:"email,omitempty"`
	PayingMemberID string  `json:"paying_member_id,omitempty"`
	SaleItemID     string  `json:"sale_item_id,omitempty"`
	RawCategory    string  `json:"raw_category,omitempty"`
	MembershipType string  `json:"membership_type,omitempty"`
	Date           string  `json:"date"` // data crua, formato heterogêneo
	Value          float64 `json:"value"`
	Credits        float64 `json:"credits,omitempty"`
	VAT            float64 `json:"vat"`
	Item           string  `json:"item,omitempty"`
	Status         string  `json:"status,omitempty"`
	Method         string  `json:"method,omitempty"`
	TransactionID  string  `json:"transaction_id,omitempty"`
	Token          string  `json:"token,omitempty"`
	SoldBy         string  `json:"sold_by,omitempty"`
	Reference      string  `json:"reference,omitempty"`
	Location       string  `json:"location"`
	Product        string  `json:"product"`  // rótulo de produto já higienizado
	Category       string  `json:"category"` // rótulo de categoria já higienizado
}

// DatasetSnapshot é o conjunto de dados em memória carregado da planilha.
// Substituído por inteiro a cada busca; nunca atualizado incrementalmente.
type DatasetSnapshot struct {
	Sales     []Sale           `json:"sales"`
	Cohorts   []LocationCohort `json:"cohorts"`
	Source    string           `json:"source,omitempty"` // identificador da planilha de origem
	FetchedAt time.Time        `json:"fetched_at"`
}

// DatasetStatus descreve o estado atual do dataset para a API
type DatasetStatus struct {
	Loaded         bool       `json:"loaded"`
	Source         string     `json:"source,omitempty"`
	FetchedAt      *time.Time `json:"fetched_at,omitempty"`
	SalesCount     int        `json:"sales_count"`
	CohortsCount   int        `json:"cohorts_count"`
	SyncRunning    bool       `json:"sync_running"`
	LastStartedAt  *time.Time `json:"last_started_at,omitempty"`
	LastFinishedAt *time.Time `json:"last_finished_at,omitempty"`
	LastError      string     `json:"last_error,omitempty"`
	LastErrorCode  string     `json:"last_error_code,omitempty"`
}
