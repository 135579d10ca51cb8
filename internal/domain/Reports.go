package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnnualSummaryRow representa o resumo agregado de um ano
type AnnualSummaryRow struct {
	Year            int             `json:"year"`
	Revenue         decimal.Decimal `json:"revenue"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	OperatingIncome decimal.Decimal `json:"operating_income"`
	NetIncome       decimal.Decimal `json:"net_income"`
	GrossMargin     Metric          `json:"gross_margin"`
	OperatingMargin Metric          `json:"operating_margin"`
	NetMargin       Metric          `json:"net_margin"`
	RevenueGrowth   Metric          `json:"revenue_growth"`
}

// QuarterlySummaryRow representa o resumo agregado de um trimestre
type QuarterlySummaryRow struct {
	Year        int             `json:"year"`
	Quarter     int             `json:"quarter"`
	Period      string          `json:"period"` // formato "2025 Q1"
	Revenue     decimal.Decimal `json:"revenue"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	NetIncome   decimal.Decimal `json:"net_income"`
	GrossMargin Metric          `json:"gross_margin"`
	NetMargin   Metric          `json:"net_margin"`
}

// PeriodComparison compara os agregados de dois anos
type PeriodComparison struct {
	CurrentYear         int             `json:"current_year"`
	PreviousYear        int             `json:"previous_year"`
	CurrentRevenue      decimal.Decimal `json:"current_revenue"`
	PreviousRevenue     decimal.Decimal `json:"previous_revenue"`
	RevenueGrowth       Metric          `json:"revenue_growth"`
	CurrentNetIncome    decimal.Decimal `json:"current_net_income"`
	PreviousNetIncome   decimal.Decimal `json:"previous_net_income"`
	NetIncomeGrowth     Metric          `json:"net_income_growth"`
	CurrentGrossMargin  Metric          `json:"current_gross_margin"`
	PreviousGrossMargin Metric          `json:"previous_gross_margin"`
}

// RollingAverageRow representa as médias móveis de um período. Os primeiros
// períodos da janela ficam N/A até a janela estar completa
type RollingAverageRow struct {
	Period    time.Time `json:"period"`
	Revenue   Metric    `json:"revenue_ma"`
	NetIncome Metric    `json:"net_income_ma"`
}

// HealthStatus classifica um indicador de saúde financeira
type HealthStatus string

const (
	HealthGood     HealthStatus = "good"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
	HealthUnknown  HealthStatus = "unknown"
)

// HealthIndicator representa um indicador de saúde financeira avaliado
// contra um benchmark documentado
type HealthIndicator struct {
	Name        string       `json:"name"`
	Value       Metric       `json:"value"`
	Status      HealthStatus `json:"status"`
	Benchmark   string       `json:"benchmark"`
	Description string       `json:"description"`
}

// GrowthProjections representa projeções de crescimento derivadas do histórico
type GrowthProjections struct {
	AvgAnnualGrowth Metric  `json:"avg_annual_growth"`
	CAGR            Metric  `json:"cagr"`
	MonthlyGrowth   Metric  `json:"monthly_growth"`
	Conservative    Metric  `json:"conservative"`
	Base            Metric  `json:"base"`
	Optimistic      Metric  `json:"optimistic"`
	LastYearRevenue float64 `json:"last_year_revenue"`
}

// ScenarioParams define os deltas de um cenário de projeção
type ScenarioParams struct {
	Growth       float64 `json:"growth"`        // variação da receita, ex: 0.10 = +10%
	MarginChange float64 `json:"margin_change"` // variação absoluta da margem líquida
}

// ScenarioResult representa a projeção anualizada de um cenário
type ScenarioResult struct {
	Scenario   string  `json:"scenario"`
	Revenue    float64 `json:"revenue"`
	GrowthRate float64 `json:"growth_rate"`
	NetMargin  Metric  `json:"net_margin"`
	NetIncome  Metric  `json:"net_income"`
}
