package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/finance-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/finance-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/finance-dashboard-api/pkg/log"
)

// GetAnnualSummary retorna o resumo agregado por ano
func GetAnnualSummary(provider loading.SnapshotProvider, service analyzing.KPIAnalyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ds, ok := latestSnapshot(w, provider)
		if !ok {
			return
		}

		rows, err := service.AnnualSummary(ds)
		if err != nil {
			logger.WithError(err).Error("summary-annual: erro ao gerar resumo anual")
			writeUsecaseError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rows); err != nil {
			logger.WithError(err).Error("summary-annual: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetQuarterlySummary retorna o resumo agregado por trimestre
func GetQuarterlySummary(provider loading.SnapshotProvider, service analyzing.KPIAnalyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ds, ok := latestSnapshot(w, provider)
		if !ok {
			return
		}

		rows, err := service.QuarterlySummary(ds)
		if err != nil {
			logger.WithError(err).Error("summary-quarterly: erro ao gerar resumo trimestral")
			writeUsecaseError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rows); err != nil {
			logger.WithError(err).Error("summary-quarterly: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetPeriodComparison compara os agregados de dois anos informados na query
func GetPeriodComparison(provider loading.SnapshotProvider, service analyzing.KPIAnalyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ds, ok := latestSnapshot(w, provider)
		if !ok {
			return
		}

		currentYear, err := strconv.Atoi(r.URL.Query().Get("current_year"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro current_year inválido, use um ano de quatro dígitos", nil)
			return
		}

		previousYear, err := strconv.Atoi(r.URL.Query().Get("previous_year"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro previous_year inválido, use um ano de quatro dígitos", nil)
			return
		}

		comparison, err := service.ComparePeriods(ds, currentYear, previousYear)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"current_year":  currentYear,
				"previous_year": previousYear,
			}).Error("summary-compare: erro ao comparar períodos")
			writeUsecaseError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(comparison); err != nil {
			logger.WithError(err).Error("summary-compare: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetHealthIndicators retorna os indicadores de saúde financeira do snapshot
func GetHealthIndicators(provider loading.SnapshotProvider, service analyzing.KPIAnalyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ds, ok := latestSnapshot(w, provider)
		if !ok {
			return
		}

		indicators, err := service.HealthIndicators(ds)
		if err != nil {
			logger.WithError(err).Error("health-indicators: erro ao avaliar indicadores")
			writeUsecaseError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"snapshot_id": ds.ID,
			"indicators":  len(indicators),
		}).Info("health-indicators: avaliação concluída")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(indicators); err != nil {
			logger.WithError(err).Error("health-indicators: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
