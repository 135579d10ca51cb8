package forecasting

import (
	"github.com/vfg2006/finance-dashboard-api/internal/domain"
)

// Forecaster define a interface de previsão de séries históricas
type Forecaster interface {
	// Forecast ajusta um modelo de Holt-Winters à série indicada e projeta o
	// horizonte solicitado, com métricas de acurácia calculadas em backtest
	Forecast(ds *domain.Dataset, series string, horizon, seasonalPeriod int, mode domain.SeasonalityMode) (*domain.ForecastResult, error)

	// GrowthProjections deriva projeções de crescimento do histórico anual de receita
	GrowthProjections(ds *domain.Dataset) (*domain.GrowthProjections, error)

	// ScenarioAnalysis projeta receita e lucro anualizados sob cenários configuráveis
	ScenarioAnalysis(ds *domain.Dataset, scenarios map[string]domain.ScenarioParams) ([]*domain.ScenarioResult, error)
}
