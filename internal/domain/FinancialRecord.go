package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialRecord representa uma linha mensal da tabela financeira.
// Valores monetários são decimais exatos; colunas opcionais ficam em ponteiros
// para distinguir "ausente" de "zero".
type FinancialRecord struct {
	Period             time.Time        `json:"period"`
	Revenue            decimal.Decimal  `json:"revenue"`
	COGS               decimal.Decimal  `json:"cogs"`
	OperatingExpenses  decimal.Decimal  `json:"opex"`
	NetIncome          decimal.Decimal  `json:"net_income"`
	TotalAssets        decimal.Decimal  `json:"total_assets"`
	CurrentAssets      decimal.Decimal  `json:"current_assets"`
	CurrentLiabilities decimal.Decimal  `json:"current_liabilities"`
	Inventory          decimal.Decimal  `json:"inventory"`
	Receivables        decimal.Decimal  `json:"receivables"`
	TotalDebt          decimal.Decimal  `json:"total_debt"`
	Equity             decimal.Decimal  `json:"equity"`
	InterestExpense    decimal.Decimal  `json:"interest_expense"`
	Depreciation       *decimal.Decimal `json:"depreciation,omitempty"`
	CashEquivalents    *decimal.Decimal `json:"cash_equivalents,omitempty"`

	// Dimensions guarda as quebras dimensionais opcionais, indexadas por
	// dimensão (product, region, segment) e depois pela chave da coluna,
	// ex: Dimensions["product"]["software"]
	Dimensions map[string]map[string]decimal.Decimal `json:"dimensions,omitempty"`
}

// GrossProfit calcula o lucro bruto (receita - CMV)
func (r *FinancialRecord) GrossProfit() decimal.Decimal {
	return r.Revenue.Sub(r.COGS)
}

// OperatingIncome calcula o resultado operacional (receita - CMV - despesas operacionais)
func (r *FinancialRecord) OperatingIncome() decimal.Decimal {
	return r.Revenue.Sub(r.COGS).Sub(r.OperatingExpenses)
}

// EBITDA calcula o EBITDA quando a depreciação está disponível. O segundo
// retorno indica se o valor é aproximado (sem coluna de depreciação o EBITDA
// degrada para o resultado operacional)
func (r *FinancialRecord) EBITDA() (decimal.Decimal, bool) {
	operatingIncome := r.OperatingIncome()
	if r.Depreciation == nil {
		return operatingIncome, true
	}
	return operatingIncome.Add(*r.Depreciation), false
}
