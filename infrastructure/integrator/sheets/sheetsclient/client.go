package sheetsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

// TokenSource fornece um token de acesso válido para as requisições
type TokenSource interface {
	Token() (string, error)
}

type Client interface {
	GetValues(ctx context.Context, rangeRef string) ([][]string, error)
}

// ValuesResponse representa a resposta do endpoint de valores da planilha:
// uma matriz retangular de células como strings
type ValuesResponse struct {
	Range          string     `json:"range,omitempty"`
	MajorDimension string     `json:"majorDimension,omitempty"`
	Values         [][]string `json:"values,omitempty"`
}

type SheetsClient struct {
	httpClient  *http.Client
	config      *config.Config
	tokenSource TokenSource
}

func NewClient(cfg *config.Config, tokenSource TokenSource) Client {
	return &SheetsClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config:      cfg,
		tokenSource: tokenSource,
	}
}

// GetValues busca um intervalo da planilha e devolve a matriz de células.
// Uma única tentativa por chamada; falhas sobem para o chamador decidir.
func (c *SheetsClient) GetValues(ctx context.Context, rangeRef string) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.config.Sheets.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(
		endpoint.Path,
		"v4/spreadsheets",
		c.config.Sheets.SpreadsheetID,
		"values",
		rangeRef,
	)

	query := endpoint.Query()
	query.Set("valueRenderOption", "FORMATTED_VALUE")
	endpoint.RawQuery = query.Encode()

	// Criar a requisição HTTP.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	token, err := c.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("erro ao obter token de acesso: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	// Executar a requisição.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	// Decodificar a resposta JSON.
	var response ValuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return response.Values, nil
}
