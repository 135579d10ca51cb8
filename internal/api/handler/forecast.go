package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/finance-dashboard-api/internal/config"
	"github.com/vfg2006/finance-dashboard-api/internal/domain"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/forecasting"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/finance-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/finance-dashboard-api/pkg/log"
)

// GetForecast gera a previsão de uma série histórica. Série, horizonte,
// período sazonal e modo de sazonalidade vêm da query, com defaults da
// configuração
func GetForecast(provider loading.SnapshotProvider, service forecasting.Forecaster, defaults config.Forecast) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ds, ok := latestSnapshot(w, provider)
		if !ok {
			return
		}

		series := r.URL.Query().Get("series")
		if series == "" {
			series = "revenue"
		}

		horizon := defaults.Horizon
		if horizonStr := r.URL.Query().Get("horizon"); horizonStr != "" {
			parsed, err := strconv.Atoi(horizonStr)
			if err != nil || parsed < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro horizon inválido, use um inteiro positivo", nil)
				return
			}
			horizon = parsed
		}

		seasonalPeriod := defaults.SeasonalPeriod
		if periodStr := r.URL.Query().Get("seasonal_period"); periodStr != "" {
			parsed, err := strconv.Atoi(periodStr)
			if err != nil || parsed < 2 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro seasonal_period inválido, use um inteiro maior que 1", nil)
				return
			}
			seasonalPeriod = parsed
		}

		modeStr := r.URL.Query().Get("seasonality")
		if modeStr == "" {
			modeStr = defaults.Seasonality
		}
		mode, valid := domain.ParseSeasonalityMode(modeStr)
		if !valid {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro seasonality inválido, use additive ou multiplicative", nil)
			return
		}

		result, err := service.Forecast(ds, series, horizon, seasonalPeriod, mode)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"series":  series,
				"horizon": horizon,
			}).Error("forecast: erro ao gerar previsão")
			writeUsecaseError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"snapshot_id": ds.ID,
			"series":      series,
			"horizon":     horizon,
		}).Info("forecast: previsão gerada com sucesso")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("forecast: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetGrowthProjections retorna as projeções de crescimento derivadas do histórico
func GetGrowthProjections(provider loading.SnapshotProvider, service forecasting.Forecaster) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ds, ok := latestSnapshot(w, provider)
		if !ok {
			return
		}

		projections, err := service.GrowthProjections(ds)
		if err != nil {
			logger.WithError(err).Error("forecast-projections: erro ao calcular projeções")
			writeUsecaseError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(projections); err != nil {
			logger.WithError(err).Error("forecast-projections: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetScenarioAnalysis retorna as projeções anualizadas sob cenários padrão
func GetScenarioAnalysis(provider loading.SnapshotProvider, service forecasting.Forecaster) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ds, ok := latestSnapshot(w, provider)
		if !ok {
			return
		}

		results, err := service.ScenarioAnalysis(ds, nil)
		if err != nil {
			logger.WithError(err).Error("forecast-scenarios: erro ao calcular cenários")
			writeUsecaseError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(results); err != nil {
			logger.WithError(err).Error("forecast-scenarios: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
