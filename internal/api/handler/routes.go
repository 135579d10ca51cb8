package handler

import (
	"net/http"

	"github.com/vfg2006/finance-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/finance-dashboard-api/internal/config"
	"github.com/vfg2006/finance-dashboard-api/internal/scheduler"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/analyzing"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/forecasting"
	"github.com/vfg2006/finance-dashboard-api/internal/usecases/loading"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func KPIs(provider loading.SnapshotProvider, service analyzing.KPIAnalyzer, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/kpis",
			Method:  http.MethodGet,
			Handler: GetKPIs(provider, service),
		},
		{
			Path:    "/v1/kpis/breakdown",
			Method:  http.MethodGet,
			Handler: GetKPIBreakdown(provider, service),
		},
		{
			Path:    "/v1/kpis/rolling",
			Method:  http.MethodGet,
			Handler: GetRollingAverages(provider, service, cfg.Analyzer.RollingWindowMonths),
		},
		{
			Path:    "/v1/ratios",
			Method:  http.MethodGet,
			Handler: GetRatios(provider, service),
		},
		{
			Path:    "/v1/variance",
			Method:  http.MethodGet,
			Handler: GetVariance(provider, service, cfg.Analyzer.VarianceAlertThresholdPct),
		},
	}
}

func Summaries(provider loading.SnapshotProvider, service analyzing.KPIAnalyzer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/summary/annual",
			Method:  http.MethodGet,
			Handler: GetAnnualSummary(provider, service),
		},
		{
			Path:    "/v1/summary/quarterly",
			Method:  http.MethodGet,
			Handler: GetQuarterlySummary(provider, service),
		},
		{
			Path:    "/v1/summary/compare",
			Method:  http.MethodGet,
			Handler: GetPeriodComparison(provider, service),
		},
		{
			Path:    "/v1/health-indicators",
			Method:  http.MethodGet,
			Handler: GetHealthIndicators(provider, service),
		},
	}
}

func Forecasts(provider loading.SnapshotProvider, service forecasting.Forecaster, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/forecast",
			Method:  http.MethodGet,
			Handler: GetForecast(provider, service, cfg.Forecast),
		},
		{
			Path:    "/v1/forecast/projections",
			Method:  http.MethodGet,
			Handler: GetGrowthProjections(provider, service),
		},
		{
			Path:    "/v1/forecast/scenarios",
			Method:  http.MethodGet,
			Handler: GetScenarioAnalysis(provider, service),
		},
	}
}

func Periods(provider loading.SnapshotProvider) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/periods",
			Method:  http.MethodGet,
			Handler: GetAvailablePeriods(provider),
		},
	}
}

func Datasets(loader loading.DatasetLoader, refreshService *scheduler.DatasetRefreshService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dataset/reload",
			Method:  http.MethodPost,
			Handler: ReloadDataset(loader),
		},
		{
			Path:    "/v1/dataset/refresh/trigger",
			Method:  http.MethodPost,
			Handler: TriggerRefresh(refreshService),
		},
		{
			Path:    "/v1/dataset/refresh/status",
			Method:  http.MethodGet,
			Handler: GetRefreshStatus(refreshService),
		},
	}
}
