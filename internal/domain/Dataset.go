package domain

import (
	"time"
)

// PeriodRange representa um intervalo fechado de períodos mensais
type PeriodRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains verifica se um período está dentro do intervalo
func (r PeriodRange) Contains(period time.Time) bool {
	return !period.Before(r.Start) && !period.After(r.End)
}

// ShiftYears devolve o mesmo intervalo deslocado em anos (usado no cálculo YoY)
func (r PeriodRange) ShiftYears(years int) PeriodRange {
	return PeriodRange{
		Start: r.Start.AddDate(years, 0, 0),
		End:   r.End.AddDate(years, 0, 0),
	}
}

// Dataset é o snapshot imutável carregado dos arquivos de entrada. Cada
// recarga produz um snapshot novo com identidade própria. Nenhum campo é
// alterado depois da criação
type Dataset struct {
	ID       string    `json:"id"`
	LoadedAt time.Time `json:"loaded_at"`

	Financial []*FinancialRecord `json:"-"`
	Budget    []*BudgetRecord    `json:"-"`
	CashFlow  []*CashFlowRecord  `json:"-"`

	// MonthIndex é o índice mensal contínuo entre o primeiro e o último
	// período da tabela financeira; Gaps lista os meses sem registro
	MonthIndex []time.Time `json:"-"`
	Gaps       []time.Time `json:"-"`

	HasDepreciation    bool     `json:"has_depreciation"`
	HasCashEquivalents bool     `json:"has_cash_equivalents"`
	DimensionNames     []string `json:"dimension_names,omitempty"`
}

// FullRange devolve o intervalo completo coberto pela tabela financeira
func (d *Dataset) FullRange() (PeriodRange, bool) {
	if len(d.Financial) == 0 {
		return PeriodRange{}, false
	}
	return PeriodRange{
		Start: d.Financial[0].Period,
		End:   d.Financial[len(d.Financial)-1].Period,
	}, true
}

// FinancialInRange devolve os registros financeiros dentro do intervalo,
// preservando a ordem cronológica
func (d *Dataset) FinancialInRange(r PeriodRange) []*FinancialRecord {
	records := make([]*FinancialRecord, 0, len(d.Financial))
	for _, record := range d.Financial {
		if r.Contains(record.Period) {
			records = append(records, record)
		}
	}
	return records
}

// BudgetInRange devolve as linhas de orçamento dentro do intervalo
func (d *Dataset) BudgetInRange(r PeriodRange) []*BudgetRecord {
	records := make([]*BudgetRecord, 0, len(d.Budget))
	for _, record := range d.Budget {
		if r.Contains(record.Period) {
			records = append(records, record)
		}
	}
	return records
}

// AvailablePeriods monta a lista de períodos mensais disponíveis no snapshot
func (d *Dataset) AvailablePeriods() *AvailablePeriods {
	periods := make([]string, 0, len(d.Financial))
	yearSet := make(map[string]struct{})
	monthSet := make(map[string]struct{})

	for _, record := range d.Financial {
		period := record.Period.Format("01-2006")
		periods = append(periods, period)
		yearSet[record.Period.Format("2006")] = struct{}{}
		monthSet[record.Period.Format("01")] = struct{}{}
	}

	return &AvailablePeriods{
		Periods: periods,
		Years:   sortedKeys(yearSet),
		Months:  sortedKeys(monthSet),
	}
}
