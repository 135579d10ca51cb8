package domain

import (
	"time"
)

// SeasonalityMode define o tipo de sazonalidade do modelo de suavização
type SeasonalityMode string

const (
	SeasonalityAdditive       SeasonalityMode = "additive"
	SeasonalityMultiplicative SeasonalityMode = "multiplicative"
)

// ParseSeasonalityMode valida o modo de sazonalidade informado
func ParseSeasonalityMode(raw string) (SeasonalityMode, bool) {
	switch SeasonalityMode(raw) {
	case SeasonalityAdditive, SeasonalityMultiplicative:
		return SeasonalityMode(raw), true
	}
	return "", false
}

// ForecastPoint representa um valor previsto com limites de confiança de 95%
type ForecastPoint struct {
	Period time.Time `json:"period"`
	Value  float64   `json:"value"`
	Lower  float64   `json:"lower_bound"`
	Upper  float64   `json:"upper_bound"`
}

// SmoothingParams são os parâmetros ajustados do modelo de Holt-Winters
type SmoothingParams struct {
	Alpha float64 `json:"alpha"` // suavização de nível
	Beta  float64 `json:"beta"`  // suavização de tendência
	Gamma float64 `json:"gamma"` // suavização sazonal
}

// AccuracyMetrics são as métricas de acurácia calculadas no backtest com
// holdout. MAPE é N/A quando todos os valores reais retidos são zero
type AccuracyMetrics struct {
	MAE     Metric `json:"mae"`
	MAPE    Metric `json:"mape"`
	RMSE    Metric `json:"rmse"`
	Holdout int    `json:"holdout"`
}

// ForecastResult representa a previsão de uma série histórica para um
// horizonte solicitado, com parâmetros do modelo e métricas de backtest
type ForecastResult struct {
	SnapshotID     string          `json:"snapshot_id"`
	Series         string          `json:"series"`
	Horizon        int             `json:"horizon"`
	SeasonalPeriod int             `json:"seasonal_period"`
	Seasonality    SeasonalityMode `json:"seasonality"`
	Points         []ForecastPoint `json:"points"`
	Params         SmoothingParams `json:"params"`
	Accuracy       AccuracyMetrics `json:"accuracy"`
}
