package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/finance-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/finance-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/finance-dashboard-api/pkg/log"
)

// GetVariance retorna a variação orçado vs. realizado por período e categoria.
// O limiar de alerta vem da configuração e pode ser sobrescrito por requisição
func GetVariance(provider loading.SnapshotProvider, service analyzing.KPIAnalyzer, defaultThresholdPct float64) http.Handler {
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

		thresholdPct := defaultThresholdPct
		if thresholdStr := r.URL.Query().Get("threshold_pct"); thresholdStr != "" {
			parsed, err := strconv.ParseFloat(thresholdStr, 64)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro threshold_pct inválido, use um número não negativo", nil)
				return
			}
			thresholdPct = parsed
		}

		rows, err := service.ComputeVariance(ds, periodRange, thresholdPct)
		if err != nil {
			logger.WithError(err).Error("variance: erro ao calcular variação orçamentária")
			writeUsecaseError(w, err)
			return
		}

		exceeded := 0
		for _, row := range rows {
			if row.Exceeded {
				exceeded++
			}
		}

		logger.WithFields(log.Fields{
			"snapshot_id":   ds.ID,
			"threshold_pct": thresholdPct,
			"rows":          len(rows),
			"exceeded":      exceeded,
		}).Info("variance: cálculo concluído")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rows); err != nil {
			logger.WithError(err).Error("variance: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
