package analyzing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-dashboard-api/internal/domain"
)

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func rangeOf(start, end time.Time) domain.PeriodRange {
	return domain.PeriodRange{Start: start, End: end}
}

// finRecord monta um registro com resultado e balanço informados
func finRecord(period time.Time, revenue, cogs, opex, netIncome float64) *domain.FinancialRecord {
	return &domain.FinancialRecord{
		Period:            period,
		Revenue:           decimal.NewFromFloat(revenue),
		COGS:              decimal.NewFromFloat(cogs),
		OperatingExpenses: decimal.NewFromFloat(opex),
		NetIncome:         decimal.NewFromFloat(netIncome),
	}
}

// twoMonthDataset é o caso de dois períodos com saldos de balanço calculados à
// mão para validar os giros por saldo médio
func twoMonthDataset() *domain.Dataset {
	first := finRecord(month(2024, time.January), 600, 300, 100, 150)
	first.TotalAssets = decimal.NewFromInt(1000)
	first.Inventory = decimal.NewFromInt(100)
	first.Receivables = decimal.NewFromInt(200)
	first.CurrentAssets = decimal.NewFromInt(400)
	first.CurrentLiabilities = decimal.NewFromInt(200)
	first.TotalDebt = decimal.NewFromInt(400)
	first.Equity = decimal.NewFromInt(700)
	first.InterestExpense = decimal.NewFromInt(50)

	second := finRecord(month(2024, time.February), 600, 300, 100, 150)
	second.TotalAssets = decimal.NewFromInt(1400)
	second.Inventory = decimal.NewFromInt(300)
	second.Receivables = decimal.NewFromInt(200)
	second.CurrentAssets = decimal.NewFromInt(500)
	second.CurrentLiabilities = decimal.NewFromInt(250)
	second.TotalDebt = decimal.NewFromInt(400)
	second.Equity = decimal.NewFromInt(800)
	second.InterestExpense = decimal.NewFromInt(50)

	return &domain.Dataset{
		ID:        "snap-1",
		Financial: []*domain.FinancialRecord{first, second},
	}
}

func TestService_ComputeKPIs(t *testing.T) {
	service := NewService()

	t.Run("Margens e razões calculadas sobre dois períodos", func(t *testing.T) {
		ds := twoMonthDataset()

		kpis, err := service.ComputeKPIs(ds, rangeOf(month(2024, time.January), month(2024, time.February)))

		require.NoError(t, err)
		assert.True(t, kpis.TotalRevenue.Equal(decimal.NewFromInt(1200)))
		assert.True(t, kpis.GrossProfit.Equal(decimal.NewFromInt(600)))
		assert.True(t, kpis.OperatingIncome.Equal(decimal.NewFromInt(400)))

		require.True(t, kpis.GrossMargin.Valid)
		assert.InDelta(t, 0.5, kpis.GrossMargin.Value, 1e-9)
		require.True(t, kpis.OperatingMargin.Valid)
		assert.InDelta(t, 400.0/1200.0, kpis.OperatingMargin.Value, 1e-9)
		require.True(t, kpis.NetMargin.Valid)
		assert.InDelta(t, 0.25, kpis.NetMargin.Value, 1e-9)

		// Sem coluna de depreciação o EBITDA degrada para o resultado operacional
		assert.True(t, kpis.EBITDA.Equal(decimal.NewFromInt(400)))
		assert.True(t, kpis.EBITDAApproximate)

		// Liquidez sobre o balanço do último período
		require.True(t, kpis.Liquidity.CurrentRatio.Valid)
		assert.InDelta(t, 2.0, kpis.Liquidity.CurrentRatio.Value, 1e-9)
		require.True(t, kpis.Liquidity.QuickRatio.Valid)
		assert.InDelta(t, 0.8, kpis.Liquidity.QuickRatio.Value, 1e-9)
		assert.False(t, kpis.Liquidity.CashRatio.Valid)

		// Giros pelo saldo médio entre o início e o fim do intervalo:
		// ativos (1000+1400)/2, estoque (100+300)/2, recebíveis (200+200)/2
		require.True(t, kpis.Efficiency.AssetTurnover.Valid)
		assert.InDelta(t, 1.0, kpis.Efficiency.AssetTurnover.Value, 1e-9)
		require.True(t, kpis.Efficiency.InventoryTurnover.Valid)
		assert.InDelta(t, 3.0, kpis.Efficiency.InventoryTurnover.Value, 1e-9)
		require.True(t, kpis.Efficiency.ReceivablesTurnover.Valid)
		assert.InDelta(t, 6.0, kpis.Efficiency.ReceivablesTurnover.Value, 1e-9)
		require.True(t, kpis.Efficiency.DSO.Valid)
		assert.InDelta(t, 365.0/6.0, kpis.Efficiency.DSO.Value, 1e-9)

		require.True(t, kpis.Leverage.DebtToEquity.Valid)
		assert.InDelta(t, 0.5, kpis.Leverage.DebtToEquity.Value, 1e-9)
		require.True(t, kpis.Leverage.InterestCoverage.Valid)
		assert.InDelta(t, 4.0, kpis.Leverage.InterestCoverage.Value, 1e-9)
	})

	t.Run("Receita zero marca as margens como N/A, nunca NaN", func(t *testing.T) {
		ds := &domain.Dataset{
			ID:        "snap-zero",
			Financial: []*domain.FinancialRecord{finRecord(month(2024, time.January), 0, 0, 100, -100)},
		}

		kpis, err := service.ComputeKPIs(ds, rangeOf(month(2024, time.January), month(2024, time.January)))

		require.NoError(t, err)
		assert.False(t, kpis.GrossMargin.Valid)
		assert.False(t, kpis.OperatingMargin.Valid)
		assert.False(t, kpis.NetMargin.Valid)
		assert.False(t, kpis.EBITDAMargin.Valid)
	})

	t.Run("Crescimento YoY contra o mesmo intervalo do ano anterior", func(t *testing.T) {
		ds := twoMonthDataset()
		ds.Financial = append([]*domain.FinancialRecord{
			finRecord(month(2023, time.January), 400, 200, 80, 60),
			finRecord(month(2023, time.February), 600, 280, 90, 100),
		}, ds.Financial...)

		kpis, err := service.ComputeKPIs(ds, rangeOf(month(2024, time.January), month(2024, time.February)))

		require.NoError(t, err)
		require.True(t, kpis.RevenueYoYGrowth.Valid)
		assert.InDelta(t, 0.2, kpis.RevenueYoYGrowth.Value, 1e-9)
	})

	t.Run("Sem registros do ano anterior o crescimento YoY é N/A", func(t *testing.T) {
		ds := twoMonthDataset()

		kpis, err := service.ComputeKPIs(ds, rangeOf(month(2024, time.January), month(2024, time.February)))

		require.NoError(t, err)
		assert.False(t, kpis.RevenueYoYGrowth.Valid)
	})

	t.Run("Cálculo é puro: duas execuções produzem resultados idênticos", func(t *testing.T) {
		ds := twoMonthDataset()
		periodRange := rangeOf(month(2024, time.January), month(2024, time.February))

		first, err := service.ComputeKPIs(ds, periodRange)
		require.NoError(t, err)
		second, err := service.ComputeKPIs(ds, periodRange)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Intervalo sem registros produz erro", func(t *testing.T) {
		ds := twoMonthDataset()

		_, err := service.ComputeKPIs(ds, rangeOf(month(2030, time.January), month(2030, time.December)))

		require.Error(t, err)
	})
}

func TestService_ComputeKPIs_Cache(t *testing.T) {
	service := NewService().(*Service).WithCache()
	periodRange := rangeOf(month(2024, time.January), month(2024, time.February))

	ds := twoMonthDataset()

	first, err := service.ComputeKPIs(ds, periodRange)
	require.NoError(t, err)

	// Segunda chamada com o mesmo snapshot vem do cache
	second, err := service.ComputeKPIs(ds, periodRange)
	require.NoError(t, err)
	assert.Same(t, first, second)

	// Snapshot novo invalida o cache por inteiro
	fresh := twoMonthDataset()
	fresh.ID = "snap-2"

	third, err := service.ComputeKPIs(fresh, periodRange)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, "snap-2", third.SnapshotID)
}

func TestService_ComputeBreakdown(t *testing.T) {
	service := NewService()

	record := finRecord(month(2024, time.January), 1200, 300, 100, 150)
	record.Dimensions = map[string]map[string]decimal.Decimal{
		"product": {
			"software": decimal.NewFromInt(700),
			"services": decimal.NewFromInt(500),
		},
	}
	ds := &domain.Dataset{
		ID:             "snap-1",
		Financial:      []*domain.FinancialRecord{record},
		DimensionNames: []string{"product"},
	}

	t.Run("Quebra por dimensão com participação sobre a receita total", func(t *testing.T) {
		breakdown, err := service.ComputeBreakdown(ds, rangeOf(record.Period, record.Period), "product")

		require.NoError(t, err)
		require.Len(t, breakdown.Items, 2)

		// Ordenado por total decrescente
		assert.Equal(t, "software", breakdown.Items[0].Key)
		assert.True(t, breakdown.Items[0].Total.Equal(decimal.NewFromInt(700)))
		require.True(t, breakdown.Items[0].Share.Valid)
		assert.InDelta(t, 700.0/1200.0, breakdown.Items[0].Share.Value, 1e-9)

		assert.Equal(t, "services", breakdown.Items[1].Key)
		assert.InDelta(t, 500.0/1200.0, breakdown.Items[1].Share.Value, 1e-9)
	})

	t.Run("Dimensão inexistente no snapshot produz erro", func(t *testing.T) {
		_, err := service.ComputeBreakdown(ds, rangeOf(record.Period, record.Period), "region")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "region")
	})
}

func TestService_ComputeVariance(t *testing.T) {
	service := NewService()
	period := month(2024, time.January)

	ds := &domain.Dataset{
		ID: "snap-1",
		Budget: []*domain.BudgetRecord{
			{Period: period, Category: "marketing", Budgeted: decimal.NewFromInt(400), Actual: decimal.NewFromInt(520)},
			{Period: period, Category: "rent", Budgeted: decimal.Zero, Actual: decimal.NewFromInt(50)},
			{Period: period, Category: "salaries", Budgeted: decimal.NewFromInt(1000), Actual: decimal.NewFromInt(1100)},
			{Period: period, Category: "travel", Budgeted: decimal.RequireFromString("0.3"), Actual: decimal.RequireFromString("0.1")},
		},
	}

	rows, err := service.ComputeVariance(ds, rangeOf(period, period), 10)

	require.NoError(t, err)
	require.Len(t, rows, 4)
	byCategory := make(map[string]*domain.VarianceRow, len(rows))
	for _, row := range rows {
		byCategory[row.Category] = row
	}

	// 30% acima do orçado excede o limiar de 10%
	marketing := byCategory["marketing"]
	assert.True(t, marketing.Variance.Equal(decimal.NewFromInt(120)))
	require.True(t, marketing.VariancePct.Valid)
	assert.InDelta(t, 30.0, marketing.VariancePct.Value, 1e-9)
	assert.True(t, marketing.Exceeded)

	// Exatamente no limiar não excede
	salaries := byCategory["salaries"]
	assert.InDelta(t, 10.0, salaries.VariancePct.Value, 1e-9)
	assert.False(t, salaries.Exceeded)

	// Orçado zero: percentual N/A e nunca sinalizado
	rent := byCategory["rent"]
	assert.True(t, rent.Variance.Equal(decimal.NewFromInt(50)))
	assert.False(t, rent.VariancePct.Valid)
	assert.False(t, rent.Exceeded)

	// Subtração decimal exata, sem resíduo binário
	travel := byCategory["travel"]
	assert.True(t, travel.Variance.Equal(decimal.RequireFromString("-0.2")))
}

func TestService_AnnualSummary(t *testing.T) {
	service := NewService()

	ds := &domain.Dataset{
		ID: "snap-1",
		Financial: []*domain.FinancialRecord{
			finRecord(month(2023, time.January), 400, 200, 80, 60),
			finRecord(month(2023, time.February), 600, 280, 90, 100),
			finRecord(month(2024, time.January), 600, 300, 100, 150),
			finRecord(month(2024, time.February), 600, 300, 100, 150),
		},
	}

	rows, err := service.AnnualSummary(ds)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2023, rows[0].Year)
	assert.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(1000)))
	assert.False(t, rows[0].RevenueGrowth.Valid)

	assert.Equal(t, 2024, rows[1].Year)
	assert.True(t, rows[1].Revenue.Equal(decimal.NewFromInt(1200)))
	require.True(t, rows[1].RevenueGrowth.Valid)
	assert.InDelta(t, 0.2, rows[1].RevenueGrowth.Value, 1e-9)
}

func TestService_QuarterlySummary(t *testing.T) {
	service := NewService()

	ds := &domain.Dataset{
		ID: "snap-1",
		Financial: []*domain.FinancialRecord{
			finRecord(month(2024, time.January), 600, 300, 100, 150),
			finRecord(month(2024, time.February), 600, 300, 100, 150),
			finRecord(month(2024, time.April), 700, 350, 110, 160),
		},
	}

	rows, err := service.QuarterlySummary(ds)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024 Q1", rows[0].Period)
	assert.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "2024 Q2", rows[1].Period)
	assert.True(t, rows[1].Revenue.Equal(decimal.NewFromInt(700)))
}

func TestService_ComparePeriods(t *testing.T) {
	service := NewService()

	ds := &domain.Dataset{
		ID: "snap-1",
		Financial: []*domain.FinancialRecord{
			finRecord(month(2023, time.January), 1000, 500, 100, 200),
			finRecord(month(2024, time.January), 1200, 550, 110, 260),
		},
	}

	comparison, err := service.ComparePeriods(ds, 2024, 2023)

	require.NoError(t, err)
	require.True(t, comparison.RevenueGrowth.Valid)
	assert.InDelta(t, 0.2, comparison.RevenueGrowth.Value, 1e-9)
	require.True(t, comparison.NetIncomeGrowth.Valid)
	assert.InDelta(t, 0.3, comparison.NetIncomeGrowth.Value, 1e-9)

	_, err = service.ComparePeriods(ds, 2024, 2020)
	require.Error(t, err)
}

func TestService_RollingAverages(t *testing.T) {
	service := NewService()

	ds := &domain.Dataset{
		ID: "snap-1",
		Financial: []*domain.FinancialRecord{
			finRecord(month(2024, time.January), 100, 0, 0, 10),
			finRecord(month(2024, time.February), 200, 0, 0, 20),
			finRecord(month(2024, time.March), 300, 0, 0, 30),
			finRecord(month(2024, time.April), 400, 0, 0, 40),
		},
	}

	t.Run("Períodos anteriores à janela completa ficam N/A", func(t *testing.T) {
		rows, err := service.RollingAverages(ds, 3)

		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.False(t, rows[0].Revenue.Valid)
		assert.False(t, rows[1].Revenue.Valid)
		require.True(t, rows[2].Revenue.Valid)
		assert.InDelta(t, 200.0, rows[2].Revenue.Value, 1e-9)
		require.True(t, rows[3].Revenue.Valid)
		assert.InDelta(t, 300.0, rows[3].Revenue.Value, 1e-9)
		assert.InDelta(t, 30.0, rows[3].NetIncome.Value, 1e-9)
	})

	t.Run("Janela maior que o histórico produz erro", func(t *testing.T) {
		_, err := service.RollingAverages(ds, 12)
		require.Error(t, err)
	})

	t.Run("Janela menor que dois produz erro", func(t *testing.T) {
		_, err := service.RollingAverages(ds, 1)
		require.Error(t, err)
	})
}

func TestService_HealthIndicators(t *testing.T) {
	service := NewService()

	ds := twoMonthDataset()

	indicators, err := service.HealthIndicators(ds)

	require.NoError(t, err)
	byName := make(map[string]*domain.HealthIndicator, len(indicators))
	for _, indicator := range indicators {
		byName[indicator.Name] = indicator
	}

	assert.Equal(t, domain.HealthGood, byName["current_ratio"].Status)
	assert.Equal(t, domain.HealthWarning, byName["quick_ratio"].Status)
	assert.Equal(t, domain.HealthGood, byName["debt_to_equity"].Status)
	assert.Equal(t, domain.HealthGood, byName["interest_coverage"].Status)
	assert.Equal(t, domain.HealthGood, byName["net_margin"].Status)
}
