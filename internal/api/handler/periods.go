package handler

import (
	"net/http"

	"github.com/vfg2006/finance-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/finance-dashboard-api/pkg/log"
)

// GetAvailablePeriods retorna os períodos (meses e anos) disponíveis no snapshot
func GetAvailablePeriods(provider loading.SnapshotProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ds, ok := latestSnapshot(w, provider)
		if !ok {
			return
		}

		availablePeriods := ds.AvailablePeriods()

		logger.WithFields(log.Fields{
			"snapshot_id":   ds.ID,
			"total_periods": len(availablePeriods.Periods),
			"years":         availablePeriods.Years,
		}).Info("periods: períodos disponíveis recuperados com sucesso")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(availablePeriods); err != nil {
			logger.WithError(err).Error("periods: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
