package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/finance-dashboard-api/internal/api"
	"github.com/vfg2006/finance-dashboard-api/internal/config"
	"github.com/vfg2006/finance-dashboard-api/internal/scheduler"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/forecasting"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/loading"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	financialRepo := dataset.NewFinancialDataRepository(cfg.Dataset.FinancialPath)
	budgetRepo := dataset.NewBudgetDataRepository(cfg.Dataset.BudgetPath)
	cashFlowRepo := dataset.NewCashFlowDataRepository(cfg.Dataset.CashFlowPath)

	loaderService := loading.NewService(financialRepo, budgetRepo, cashFlowRepo)

	// Carga inicial: sem snapshot não há o que servir
	if _, err := loaderService.Load(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro na carga inicial dos arquivos de entrada")
	}

	// Inicializa o serviço de análise com suporte a cache
	analyzerService := analyzing.NewService()
	if cfg.Analyzer.CacheEnabled {
		analyzerService = analyzerService.(*analyzing.Service).WithCache()
	}

	forecastService := forecasting.NewService(cfg)

	// Inicializa o agendador de recarga dos dados
	refreshService := scheduler.NewDatasetRefreshService(loaderService, cfg)

	if err := refreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga dos dados")
	} else {
		logrus.Info("Agendador de recarga dos dados iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		loaderService,
		analyzerService,
		forecastService,
		refreshService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
