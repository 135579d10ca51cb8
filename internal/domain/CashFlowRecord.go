package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlowRecord representa uma linha mensal da tabela de fluxo de caixa.
// O fluxo líquido é sempre derivado dos três componentes, nunca armazenado
// de forma independente
type CashFlowRecord struct {
	Period      time.Time       `json:"period"`
	OperatingCF decimal.Decimal `json:"operating_cf"`
	InvestingCF decimal.Decimal `json:"investing_cf"`
	FinancingCF decimal.Decimal `json:"financing_cf"`
}

// NetCF calcula o fluxo de caixa líquido do período
func (r *CashFlowRecord) NetCF() decimal.Decimal {
	return r.OperatingCF.Add(r.InvestingCF).Add(r.FinancingCF)
}
