package handler

import (
	"context"
	"net/http"

	"github.com/vfg2006/finance-dashboard-api/internal/scheduler"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/finance-dashboard-api/pkg/log"
)

// ReloadDataset recarrega os arquivos de entrada de forma síncrona e publica
// um snapshot novo. Em caso de falha o snapshot anterior é mantido e o erro
// de carga é devolvido com o status da taxonomia
func ReloadDataset(loader loading.DatasetLoader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("dataset-reload: recarga manual solicitada")

		snapshot, err := loader.Load(r.Context())
		if err != nil {
			logger.WithError(err).Error("dataset-reload: erro na recarga, snapshot anterior mantido")
			writeUsecaseError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"snapshot_id": snapshot.ID,
			"records":     len(snapshot.Financial),
			"gaps":        len(snapshot.Gaps),
		}).Info("dataset-reload: recarga concluída")

		response := map[string]any{
			"message":     "Recarga concluída com sucesso",
			"snapshot_id": snapshot.ID,
			"loaded_at":   snapshot.LoadedAt,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("dataset-reload: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// TriggerRefresh dispara uma recarga em segundo plano pelo agendador. A
// resposta não espera a recarga terminar; o resultado fica no status
func TriggerRefresh(refreshService *scheduler.DatasetRefreshService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("dataset-refresh: recarga em segundo plano solicitada")

		refreshService.TriggerManualRefresh(context.WithoutCancel(r.Context()))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(map[string]any{
			"message": "Recarga iniciada em segundo plano",
		}); err != nil {
			logger.WithError(err).Error("dataset-refresh: erro ao codificar resposta")
		}
	})
}

// GetRefreshStatus retorna o status do agendador de recarga dos dados
func GetRefreshStatus(refreshService *scheduler.DatasetRefreshService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		status := refreshService.GetStatus()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logger.WithError(err).Error("dataset-refresh-status: erro ao codificar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
