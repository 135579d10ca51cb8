package forecasting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-dashboard-api/internal/config"
	"github.com/vfg2006/finance-dashboard-api/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Forecast: config.Forecast{
			Horizon:        6,
			SeasonalPeriod: 12,
			Seasonality:    "additive",
			Holdout:        6,
		},
	}
}

// revenueDataset monta um snapshot com a receita mensal informada
func revenueDataset(values []float64) *domain.Dataset {
	records := make([]*domain.FinancialRecord, len(values))
	for i, value := range values {
		records[i] = &domain.FinancialRecord{
			Period:    time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0),
			Revenue:   decimal.NewFromFloat(value),
			NetIncome: decimal.NewFromFloat(value / 10),
		}
	}
	return &domain.Dataset{ID: "snap-1", Financial: records}
}

func TestService_Forecast(t *testing.T) {
	service := NewService(testConfig())

	t.Run("Previsão com backtest sobre série de 36 meses", func(t *testing.T) {
		ds := revenueDataset(seasonalSeries(36))

		result, err := service.Forecast(ds, "revenue", 6, 12, domain.SeasonalityAdditive)

		require.NoError(t, err)
		assert.Equal(t, "snap-1", result.SnapshotID)
		assert.Equal(t, "revenue", result.Series)
		require.Len(t, result.Points, 6)

		// Períodos mensais consecutivos a partir do fim do histórico
		lastPeriod := ds.Financial[len(ds.Financial)-1].Period
		for k, point := range result.Points {
			assert.Equal(t, lastPeriod.AddDate(0, k+1, 0), point.Period)
			assert.LessOrEqual(t, point.Lower, point.Value)
			assert.GreaterOrEqual(t, point.Value, point.Lower)
			assert.LessOrEqual(t, point.Value, point.Upper)
		}

		// Backtest com os 6 últimos meses retidos
		assert.Equal(t, 6, result.Accuracy.Holdout)
		assert.True(t, result.Accuracy.MAE.Valid)
		assert.True(t, result.Accuracy.RMSE.Valid)
		assert.True(t, result.Accuracy.MAPE.Valid)
	})

	t.Run("Backtest é reprodutível: mesmo RMSE em duas execuções", func(t *testing.T) {
		ds := revenueDataset(seasonalSeries(36))

		first, err := service.Forecast(ds, "revenue", 6, 12, domain.SeasonalityAdditive)
		require.NoError(t, err)
		second, err := service.Forecast(ds, "revenue", 6, 12, domain.SeasonalityAdditive)
		require.NoError(t, err)

		assert.Equal(t, first.Accuracy.RMSE, second.Accuracy.RMSE)
		assert.Equal(t, first.Points, second.Points)
	})

	t.Run("Histórico curto produz InsufficientDataError", func(t *testing.T) {
		ds := revenueDataset(seasonalSeries(20))

		_, err := service.Forecast(ds, "revenue", 6, 12, domain.SeasonalityAdditive)

		var insufficientErr *InsufficientDataError
		require.ErrorAs(t, err, &insufficientErr)
	})

	t.Run("MAPE é N/A quando todos os valores retidos são zero", func(t *testing.T) {
		values := seasonalSeries(36)
		for i := 30; i < 36; i++ {
			values[i] = 0
		}
		ds := revenueDataset(values)

		result, err := service.Forecast(ds, "revenue", 6, 12, domain.SeasonalityAdditive)

		require.NoError(t, err)
		assert.Equal(t, 6, result.Accuracy.Holdout)
		assert.True(t, result.Accuracy.MAE.Valid)
		assert.True(t, result.Accuracy.RMSE.Valid)
		assert.False(t, result.Accuracy.MAPE.Valid)
	})

	t.Run("Série desconhecida produz erro", func(t *testing.T) {
		ds := revenueDataset(seasonalSeries(36))

		_, err := service.Forecast(ds, "headcount", 6, 12, domain.SeasonalityAdditive)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "headcount")
	})

	t.Run("Horizonte inválido produz erro", func(t *testing.T) {
		ds := revenueDataset(seasonalSeries(36))

		_, err := service.Forecast(ds, "revenue", 0, 12, domain.SeasonalityAdditive)
		require.Error(t, err)

		_, err = service.Forecast(ds, "revenue", 6, 1, domain.SeasonalityAdditive)
		require.Error(t, err)
	})
}

func TestService_GrowthProjections(t *testing.T) {
	service := NewService(testConfig())

	t.Run("Crescimento anual médio e CAGR sobre dois anos completos", func(t *testing.T) {
		values := make([]float64, 24)
		for i := 0; i < 12; i++ {
			values[i] = 100
		}
		for i := 12; i < 24; i++ {
			values[i] = 110
		}
		ds := revenueDataset(values)

		projections, err := service.GrowthProjections(ds)

		require.NoError(t, err)
		require.True(t, projections.AvgAnnualGrowth.Valid)
		assert.InDelta(t, 0.1, projections.AvgAnnualGrowth.Value, 1e-9)
		require.True(t, projections.CAGR.Valid)
		assert.InDelta(t, 0.1, projections.CAGR.Value, 1e-9)
		assert.InDelta(t, 1320.0, projections.LastYearRevenue, 1e-9)

		require.True(t, projections.Base.Valid)
		assert.InDelta(t, 1452.0, projections.Base.Value, 1e-6)
		require.True(t, projections.Conservative.Valid)
		assert.InDelta(t, 1386.0, projections.Conservative.Value, 1e-6)
		require.True(t, projections.Optimistic.Valid)
		assert.InDelta(t, 1518.0, projections.Optimistic.Value, 1e-6)
	})

	t.Run("Um ano único deixa as taxas anuais em N/A", func(t *testing.T) {
		values := make([]float64, 12)
		for i := range values {
			values[i] = 100
		}
		ds := revenueDataset(values)

		projections, err := service.GrowthProjections(ds)

		require.NoError(t, err)
		assert.False(t, projections.AvgAnnualGrowth.Valid)
		assert.False(t, projections.CAGR.Valid)
		assert.False(t, projections.Base.Valid)
	})

	t.Run("Snapshot vazio produz erro", func(t *testing.T) {
		_, err := service.GrowthProjections(&domain.Dataset{ID: "snap-1"})
		require.Error(t, err)
	})
}

func TestService_ScenarioAnalysis(t *testing.T) {
	service := NewService(testConfig())

	values := make([]float64, 24)
	for i := 0; i < 12; i++ {
		values[i] = 100
	}
	for i := 12; i < 24; i++ {
		values[i] = 110
	}
	ds := revenueDataset(values)

	t.Run("Cenários padrão em ordem determinística", func(t *testing.T) {
		results, err := service.ScenarioAnalysis(ds, nil)

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "base", results[0].Scenario)
		assert.Equal(t, "optimistic", results[1].Scenario)
		assert.Equal(t, "pessimistic", results[2].Scenario)

		// Base: último mês anualizado (110 * 12) com crescimento de 10%
		base := results[0]
		assert.InDelta(t, 1452.0, base.Revenue, 1e-6)
		require.True(t, base.NetMargin.Valid)
		assert.InDelta(t, 0.1, base.NetMargin.Value, 1e-9)
		require.True(t, base.NetIncome.Valid)
		assert.InDelta(t, 145.2, base.NetIncome.Value, 1e-6)

		pessimistic := results[2]
		assert.InDelta(t, 1254.0, pessimistic.Revenue, 1e-6)
		assert.InDelta(t, 0.08, pessimistic.NetMargin.Value, 1e-9)
	})

	t.Run("Cenários customizados substituem os padrão", func(t *testing.T) {
		results, err := service.ScenarioAnalysis(ds, map[string]domain.ScenarioParams{
			"aggressive": {Growth: 0.5, MarginChange: 0.05},
		})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "aggressive", results[0].Scenario)
		assert.InDelta(t, 1980.0, results[0].Revenue, 1e-6)
	})
}
