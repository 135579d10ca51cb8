package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-dashboard-api/internal/config"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/loading"
)

// DatasetRefreshConfig representa a configuração do agendador de recarga dos dados
type DatasetRefreshConfig struct {
	CronSchedule   string
	RefreshEnabled bool
}

// DatasetRefreshService gerencia o agendamento e execução da recarga dos
// arquivos de entrada. Uma recarga que falha mantém o snapshot anterior
type DatasetRefreshService struct {
	scheduler          *gocron.Scheduler
	config             DatasetRefreshConfig
	loader             loading.DatasetLoader
	refreshRunning     bool
	refreshMutex       sync.Mutex
	lastStartedAt      time.Time
	lastCompletedAt    time.Time
	lastRefreshFailure string
}

// NewDatasetRefreshService cria uma nova instância do serviço de recarga dos dados
func NewDatasetRefreshService(loader loading.DatasetLoader, appConfig *config.Config) *DatasetRefreshService {
	refreshConfig := DatasetRefreshConfig{
		CronSchedule:   appConfig.DatasetRefresh.CronSchedule,
		RefreshEnabled: appConfig.DatasetRefresh.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   refreshConfig.CronSchedule,
		"refresh_enabled": refreshConfig.RefreshEnabled,
	}).Info("Configuração do agendador de recarga dos dados carregada")

	return &DatasetRefreshService{
		scheduler:      scheduler,
		config:         refreshConfig,
		loader:         loader,
		refreshRunning: false,
	}
}

// Start inicia o agendador
func (s *DatasetRefreshService) Start(ctx context.Context) error {
	if !s.config.RefreshEnabled {
		logrus.Info("Recarga agendada dos dados desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recarga dos dados")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshDataset(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga dos dados: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recarga dos dados")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshDataset executa uma recarga completa dos arquivos de entrada
func (s *DatasetRefreshService) refreshDataset(ctx context.Context) {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Info("Recarga dos dados já em andamento, ignorando")
		return
	}
	s.refreshRunning = true
	s.lastStartedAt = time.Now()
	s.refreshMutex.Unlock()

	defer func() {
		s.refreshMutex.Lock()
		s.refreshRunning = false
		s.refreshMutex.Unlock()
	}()

	logrus.Info("Iniciando recarga dos arquivos de entrada")

	startTime := time.Now()
	snapshot, err := s.loader.Load(ctx)

	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()

	if err != nil {
		s.lastRefreshFailure = err.Error()
		logrus.WithError(err).Error("Erro na recarga dos dados, snapshot anterior mantido")
		return
	}

	s.lastCompletedAt = time.Now()
	s.lastRefreshFailure = ""

	logrus.WithFields(logrus.Fields{
		"snapshot_id": snapshot.ID,
		"duration":    time.Since(startTime).String(),
	}).Info("Recarga dos dados concluída")
}

// TriggerManualRefresh inicia manualmente uma recarga dos dados
func (s *DatasetRefreshService) TriggerManualRefresh(ctx context.Context) {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Info("Recarga dos dados já em andamento, ignorando solicitação manual")
		return
	}
	s.refreshMutex.Unlock()

	logrus.Info("Iniciando recarga manual dos dados")
	go s.refreshDataset(ctx)
}

// GetStatus retorna o status atual do agendador
func (s *DatasetRefreshService) GetStatus() map[string]any {
	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()

	return map[string]any{
		"refresh_enabled":           s.config.RefreshEnabled,
		"refresh_cron":              s.config.CronSchedule,
		"refresh_running":           s.refreshRunning,
		"last_refresh_started_at":   s.lastStartedAt,
		"last_refresh_completed_at": s.lastCompletedAt,
		"last_refresh_failure":      s.lastRefreshFailure,
	}
}
