package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Dataset        Dataset        `mapstructure:",squash"`
	Analyzer       Analyzer       `mapstructure:",squash"`
	Forecast       Forecast       `mapstructure:",squash"`
	DatasetRefresh DatasetRefresh `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Dataset aponta para os arquivos CSV de entrada do dashboard
type Dataset struct {
	FinancialPath string `mapstructure:"financial_data_path"`
	BudgetPath    string `mapstructure:"budget_data_path"`
	CashFlowPath  string `mapstructure:"cash_flow_data_path"`
}

type Analyzer struct {
	VarianceAlertThresholdPct float64 `mapstructure:"variance_alert_threshold_pct"`
	RollingWindowMonths       int     `mapstructure:"rolling_window_months"`
	CacheEnabled              bool    `mapstructure:"kpi_cache_enabled"`
}

type Forecast struct {
	Horizon        int    `mapstructure:"forecast_horizon"`
	SeasonalPeriod int    `mapstructure:"forecast_seasonal_period"`
	Seasonality    string `mapstructure:"forecast_seasonality"`
	Holdout        int    `mapstructure:"forecast_holdout"`
}

type DatasetRefresh struct {
	CronSchedule string `mapstructure:"dataset_refresh_cron"`
	Enabled      bool   `mapstructure:"dataset_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("FINANCIAL_DATA_PATH", "data/financial_data.csv")
	viper.SetDefault("BUDGET_DATA_PATH", "data/budget_data.csv")
	viper.SetDefault("CASH_FLOW_DATA_PATH", "data/cash_flow_data.csv")

	viper.SetDefault("VARIANCE_ALERT_THRESHOLD_PCT", 10.0)
	viper.SetDefault("ROLLING_WINDOW_MONTHS", 3)
	viper.SetDefault("KPI_CACHE_ENABLED", true)

	viper.SetDefault("FORECAST_HORIZON", 6)
	viper.SetDefault("FORECAST_SEASONAL_PERIOD", 12)
	viper.SetDefault("FORECAST_SEASONALITY", "additive")
	viper.SetDefault("FORECAST_HOLDOUT", 6)

	// Defaults para recarga agendada dos arquivos de entrada
	viper.SetDefault("DATASET_REFRESH_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("DATASET_REFRESH_ENABLED", false)

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

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
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
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
