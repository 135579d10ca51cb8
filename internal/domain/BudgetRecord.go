package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetRecord representa uma linha da tabela de orçamento.
// Invariante: uma linha por par (período, categoria)
type BudgetRecord struct {
	Period   time.Time       `json:"period"`
	Category string          `json:"category"`
	Budgeted decimal.Decimal `json:"budgeted_amount"`
	Actual   decimal.Decimal `json:"actual_amount"`
}

// VarianceRow representa o resultado da análise de variação orçamentária de
// uma linha. A variação absoluta é decimal exata; o percentual é N/A quando o
// valor orçado é zero
type VarianceRow struct {
	Period      time.Time       `json:"period"`
	Category    string          `json:"category"`
	Budgeted    decimal.Decimal `json:"budgeted_amount"`
	Actual      decimal.Decimal `json:"actual_amount"`
	Variance    decimal.Decimal `json:"variance"`
	VariancePct Metric          `json:"variance_pct"`
	Exceeded    bool            `json:"exceeded"`
}
