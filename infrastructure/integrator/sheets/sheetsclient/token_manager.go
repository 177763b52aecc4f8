package sheetsclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

// margem de segurança antes da expiração para não usar token no limite
const tokenExpiryMargin = 2 * time.Minute

// TokenResponse representa a resposta do endpoint OAuth ao trocar o
// refresh token por um token de acesso
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenManager gerencia o token de acesso da API de planilhas. O refresh
// token vive na configuração (ambiente); o token de acesso derivado fica
// apenas em memória e é renovado sob demanda e periodicamente.
type TokenManager struct {
	cfg         *config.Config
	httpClient  *http.Client
	mutex       sync.Mutex
	accessToken string
	expiresAt   time.Time
	stopRefresh chan struct{}
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		stopRefresh: make(chan struct{}),
	}
}

// Token devolve um token de acesso válido, renovando-o se necessário
func (tm *TokenManager) Token() (string, error) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	if tm.accessToken != "" && time.Now().Before(tm.expiresAt.Add(-tokenExpiryMargin)) {
		return tm.accessToken, nil
	}

	if err := tm.refreshLocked(); err != nil {
		return "", err
	}

	return tm.accessToken, nil
}

// RefreshToken força a renovação do token de acesso
func (tm *TokenManager) RefreshToken() error {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()
	return tm.refreshLocked()
}

// refreshLocked troca o refresh token por um novo token de acesso.
// O chamador precisa deter o mutex.
func (tm *TokenManager) refreshLocked() error {
	if tm.cfg.Sheets.RefreshToken == "" {
		return fmt.Errorf("refresh token da planilha não configurado")
	}

	params := url.Values{}
	params.Set("grant_type", "refresh_token")
	params.Set("client_id", tm.cfg.Sheets.ClientID)
	params.Set("client_secret", tm.cfg.Sheets.ClientSecret)
	params.Set("refresh_token", tm.cfg.Sheets.RefreshToken)

	resp, err := tm.httpClient.Post(
		tm.cfg.Sheets.TokenURL,
		"application/x-www-form-urlencoded",
		strings.NewReader(params.Encode()),
	)
	if err != nil {
		return fmt.Errorf("erro ao renovar token de acesso: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta do endpoint de token: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logrus.Errorf("Erro renovando token de acesso. Status: %d, Resposta: %s", resp.StatusCode, string(body))
		return fmt.Errorf("erro ao renovar token de acesso. Status: %d", resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return fmt.Errorf("erro ao decodificar resposta do token: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return fmt.Errorf("token retornado pela API é vazio")
	}

	tm.accessToken = tokenResp.AccessToken
	tm.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	logrus.Infof("Token de acesso renovado com sucesso. Expira em %s.", tm.expiresAt.Format(time.RFC3339))

	return nil
}

// StartAutoRefresh inicia uma goroutine que renova o token periodicamente,
// encurtando o intervalo quando uma renovação falha
func (tm *TokenManager) StartAutoRefresh() {
	if err := tm.RefreshToken(); err != nil {
		logrus.Errorf("Erro ao obter o token inicial: %v", err)
	}

	refreshInterval := 45 * time.Minute
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Info("Iniciando renovação periódica do token da planilha")
			if err := tm.RefreshToken(); err != nil {
				logrus.Errorf("Erro na renovação periódica do token: %v", err)

				// Se falhar, tente novamente em um intervalo mais curto
				ticker.Reset(5 * time.Minute)
			} else {
				ticker.Reset(refreshInterval)
			}
		case <-tm.stopRefresh:
			logrus.Info("Encerrando goroutine de renovação periódica do token")
			return
		}
	}
}

// StopAutoRefresh para a goroutine de renovação automática
func (tm *TokenManager) StopAutoRefresh() {
	close(tm.stopRefresh)
}
