package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/finance-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/finance-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/finance-dashboard-api/pkg/log"
)

// GetKPIs retorna o conjunto completo de KPIs para um intervalo de períodos
func GetKPIs(provider loading.SnapshotProvider, service analyzing.KPIAnalyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ds, ok := latestSnapshot(w, provider)
		if !ok {
			return
		}

		periodRange, err := resolveRange(r, ds)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		kpis, err := service.ComputeKPIs(ds, periodRange)
		if err != nil {
			logger.WithError(err).Error("kpis: erro ao calcular KPIs")
			writeUsecaseError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"snapshot_id": ds.ID,
			"start":       periodRange.Start,
			"end":         periodRange.End,
		}).Info("kpis: cálculo concluído")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(kpis); err != nil {
			logger.WithError(err).Error("kpis: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetKPIBreakdown retorna a quebra de receita por uma dimensão opcional
func GetKPIBreakdown(provider loading.SnapshotProvider, service analyzing.KPIAnalyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ds, ok := latestSnapshot(w, provider)
		if !ok {
			return
		}

		dimension := r.URL.Query().Get("dimension")
		if dimension == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "É necessário informar a dimensão (product, region ou segment)", nil)
			return
		}

		periodRange, err := resolveRange(r, ds)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		breakdown, err := service.ComputeBreakdown(ds, periodRange, dimension)
		if err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"dimension": dimension,
			}).Error("kpis-breakdown: erro ao calcular quebra por dimensão")
			writeUsecaseError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"snapshot_id": ds.ID,
			"dimension":   dimension,
			"items":       len(breakdown.Items),
		}).Info("kpis-breakdown: cálculo concluído")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(breakdown); err != nil {
			logger.WithError(err).Error("kpis-breakdown: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetRatios retorna apenas os grupos de razões financeiras do intervalo
func GetRatios(provider loading.SnapshotProvider, service analyzing.KPIAnalyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ds, ok := latestSnapshot(w, provider)
		if !ok {
			return
		}

		periodRange, err := resolveRange(r, ds)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		kpis, err := service.ComputeKPIs(ds, periodRange)
		if err != nil {
			logger.WithError(err).Error("ratios: erro ao calcular razões")
			writeUsecaseError(w, err)
			return
		}

		response := map[string]any{
			"snapshot_id": kpis.SnapshotID,
			"range":       kpis.Range,
			"liquidity":   kpis.Liquidity,
			"efficiency":  kpis.Efficiency,
			"leverage":    kpis.Leverage,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("ratios: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetRollingAverages retorna médias móveis de receita e lucro líquido
func GetRollingAverages(provider loading.SnapshotProvider, service analyzing.KPIAnalyzer, defaultWindow int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ds, ok := latestSnapshot(w, provider)
		if !ok {
			return
		}

		window := defaultWindow
		if windowStr := r.URL.Query().Get("window"); windowStr != "" {
			parsed, err := strconv.Atoi(windowStr)
			if err != nil || parsed < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro window inválido, use um inteiro positivo", nil)
				return
			}
			window = parsed
		}

		rows, err := service.RollingAverages(ds, window)
		if err != nil {
			logger.WithError(err).Error("kpis-rolling: erro ao calcular médias móveis")
			writeUsecaseError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rows); err != nil {
			logger.WithError(err).Error("kpis-rolling: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
