package domain

import (
	"github.com/shopspring/decimal"
)

// LiquidityRatios agrupa os indicadores de liquidez de um período
type LiquidityRatios struct {
	CurrentRatio Metric `json:"current_ratio"`
	QuickRatio   Metric `json:"quick_ratio"`
	CashRatio    Metric `json:"cash_ratio"`
}

// EfficiencyRatios agrupa os indicadores de eficiência. Os giros usam a média
// entre o saldo inicial e o final do intervalo, não apenas o saldo final
type EfficiencyRatios struct {
	AssetTurnover       Metric `json:"asset_turnover"`
	InventoryTurnover   Metric `json:"inventory_turnover"`
	ReceivablesTurnover Metric `json:"receivables_turnover"`
	DSO                 Metric `json:"dso"`
}

// LeverageRatios agrupa os indicadores de alavancagem
type LeverageRatios struct {
	DebtToEquity     Metric `json:"debt_to_equity"`
	InterestCoverage Metric `json:"interest_coverage"`
}

// KPIResult representa o conjunto de KPIs calculados para um snapshot e um
// intervalo de períodos. É dado derivado puro: imutável depois de calculado e
// regenerado sempre que o snapshot muda
type KPIResult struct {
	SnapshotID string      `json:"snapshot_id"`
	Range      PeriodRange `json:"range"`

	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	NetIncome        decimal.Decimal `json:"net_income"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	OperatingIncome  decimal.Decimal `json:"operating_income"`
	RevenueYoYGrowth Metric          `json:"revenue_yoy_growth"`

	GrossMargin     Metric `json:"gross_margin"`
	OperatingMargin Metric `json:"operating_margin"`
	NetMargin       Metric `json:"net_margin"`

	EBITDA            decimal.Decimal `json:"ebitda"`
	EBITDAMargin      Metric          `json:"ebitda_margin"`
	EBITDAApproximate bool            `json:"ebitda_approximate"`

	Liquidity  LiquidityRatios  `json:"liquidity"`
	Efficiency EfficiencyRatios `json:"efficiency"`
	Leverage   LeverageRatios   `json:"leverage"`
}

// BreakdownItem representa a participação de uma chave dimensional na receita
type BreakdownItem struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
	Share Metric          `json:"share"`
}

// BreakdownResult representa a quebra da receita por uma dimensão opcional
// (product, region ou segment) em um intervalo de períodos
type BreakdownResult struct {
	SnapshotID string          `json:"snapshot_id"`
	Dimension  string          `json:"dimension"`
	Range      PeriodRange     `json:"range"`
	Items      []BreakdownItem `json:"items"`
}
