package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Sheets      Sheets      `mapstructure:",squash"`
	DatasetSync DatasetSync `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Sheets configura o acesso à planilha remota. Todas as credenciais vêm do
// ambiente; nenhum segredo é mantido no código.
type Sheets struct {
	BaseURL           string `mapstructure:"sheets_base_url"`
	TokenURL          string `mapstructure:"sheets_token_url"`
	SpreadsheetID     string `mapstructure:"sheets_spreadsheet_id"`
	TransactionsRange string `mapstructure:"sheets_transactions_range"`
	CohortsRange      string `mapstructure:"sheets_cohorts_range"`
	ClientID          string `mapstructure:"sheets_client_id"`
	ClientSecret      string `mapstructure:"sheets_client_secret"`
	RefreshToken      string `mapstructure:"sheets_refresh_token"`
}

type DatasetSync struct {
	CronSchedule   string `mapstructure:"dataset_sync_cron"`
	Enabled        bool   `mapstructure:"dataset_sync_enabled"`
	RefreshOnStart bool   `mapstructure:"dataset_refresh_on_start"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dashboard")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SHEETS_BASE_URL", "https://sheets.googleapis.com")
	viper.SetDefault("SHEETS_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("SHEETS_SPREADSHEET_ID", "")
	viper.SetDefault("SHEETS_TRANSACTIONS_RANGE", "Transactions!A:U")
	viper.SetDefault("SHEETS_COHORTS_RANGE", "Cohorts!A:G")
	viper.SetDefault("SHEETS_CLIENT_ID", "")
	viper.SetDefault("SHEETS_CLIENT_SECRET", "")
	viper.SetDefault("SHEETS_REFRESH_TOKEN", "")

	// Defaults para a atualização periódica do dataset
	viper.SetDefault("DATASET_SYNC_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("DATASET_SYNC_ENABLED", false)
	viper.SetDefault("DATASET_REFRESH_ON_START", true)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
