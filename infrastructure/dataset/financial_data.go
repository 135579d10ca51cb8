package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/finance-dashboard-api/internal/domain"
)

const financialTableName = "financial_data"

// requiredFinancialColumns são as colunas obrigatórias da tabela financeira
var requiredFinancialColumns = []string{
	"period", "revenue", "cogs", "opex", "net_income",
	"total_assets", "current_assets", "current_liabilities",
	"inventory", "receivables", "total_debt", "equity", "interest_expense",
}

// nonNegativeFinancialColumns são as colunas que não admitem valores
// negativos. net_income fica de fora: prejuízo é um valor válido
var nonNegativeFinancialColumns = []string{
	"revenue", "cogs", "opex",
	"total_assets", "current_assets", "current_liabilities",
	"inventory", "receivables", "total_debt", "equity", "interest_expense",
}

// dimensionPrefixes identificam as colunas dimensionais opcionais,
// ex: product_software, region_europe, segment_enterprise
var dimensionPrefixes = []string{"product", "region", "segment"}

// FinancialTable é o resultado tipado do carregamento da tabela financeira
type FinancialTable struct {
	Records            []*domain.FinancialRecord
	HasDepreciation    bool
	HasCashEquivalents bool
	DimensionNames     []string
}

// FinancialDataRepository carrega a tabela financeira de um arquivo de entrada
type FinancialDataRepository interface {
	Load() (*FinancialTable, error)
}

type csvFinancialDataRepository struct {
	path string
}

// NewFinancialDataRepository cria um repositório CSV para a tabela financeira
func NewFinancialDataRepository(path string) FinancialDataRepository {
	return &csvFinancialDataRepository{path: path}
}

func (r *csvFinancialDataRepository) Load() (*FinancialTable, error) {
	tbl, err := readTable(r.path, financialTableName)
	if err != nil {
		return nil, err
	}

	if err := tbl.require(requiredFinancialColumns...); err != nil {
		return nil, err
	}

	dimensionColumns := findDimensionColumns(tbl.header)

	result := &FinancialTable{
		Records:            make([]*domain.FinancialRecord, 0, len(tbl.rows)),
		HasDepreciation:    tbl.has("depreciation"),
		HasCashEquivalents: tbl.has("cash_equivalents"),
		DimensionNames:     dimensionNames(dimensionColumns),
	}

	seen := make(map[string]int, len(tbl.rows))

	for i, row := range tbl.rows {
		rowNum := i + 2 // linha 1 é o cabeçalho

		record, err := r.scanRecord(tbl, row, rowNum, dimensionColumns)
		if err != nil {
			return nil, err
		}

		key := record.Period.Format("2006-01")
		if previous, duplicated := seen[key]; duplicated {
			return nil, &ValidationError{
				Table: financialTableName,
				Row:   rowNum,
				Reason: fmt.Sprintf("período %s duplicado (já visto na linha %d)",
					key, previous),
			}
		}
		seen[key] = rowNum

		result.Records = append(result.Records, record)
	}

	sort.Slice(result.Records, func(a, b int) bool {
		return result.Records[a].Period.Before(result.Records[b].Period)
	})

	return result, nil
}

// scanRecord converte uma linha da tabela em um registro tipado, validando
// tipo e não-negatividade de cada coluna
func (r *csvFinancialDataRepository) scanRecord(
	tbl *table,
	row []string,
	rowNum int,
	dimensionColumns map[string][]string,
) (*domain.FinancialRecord, error) {
	period, err := tbl.parsePeriod(row, rowNum)
	if err != nil {
		return nil, err
	}

	values := make(map[string]decimal.Decimal, len(requiredFinancialColumns))
	for _, column := range requiredFinancialColumns[1:] {
		value, err := tbl.parseMoney(row, rowNum, column)
		if err != nil {
			return nil, err
		}
		values[column] = value
	}

	for _, column := range nonNegativeFinancialColumns {
		if values[column].IsNegative() {
			return nil, &ValidationError{
				Table:  financialTableName,
				Row:    rowNum,
				Reason: fmt.Sprintf("coluna %s não admite valor negativo (%s)", column, values[column]),
			}
		}
	}

	record := &domain.FinancialRecord{
		Period:             period,
		Revenue:            values["revenue"],
		COGS:               values["cogs"],
		OperatingExpenses:  values["opex"],
		NetIncome:          values["net_income"],
		TotalAssets:        values["total_assets"],
		CurrentAssets:      values["current_assets"],
		CurrentLiabilities: values["current_liabilities"],
		Inventory:          values["inventory"],
		Receivables:        values["receivables"],
		TotalDebt:          values["total_debt"],
		Equity:             values["equity"],
		InterestExpense:    values["interest_expense"],
	}

	if tbl.has("depreciation") {
		value, err := tbl.parseMoney(row, rowNum, "depreciation")
		if err != nil {
			return nil, err
		}
		record.Depreciation = &value
	}

	if tbl.has("cash_equivalents") {
		value, err := tbl.parseMoney(row, rowNum, "cash_equivalents")
		if err != nil {
			return nil, err
		}
		record.CashEquivalents = &value
	}

	if len(dimensionColumns) > 0 {
		record.Dimensions = make(map[string]map[string]decimal.Decimal, len(dimensionColumns))
		for dimension, columns := range dimensionColumns {
			record.Dimensions[dimension] = make(map[string]decimal.Decimal, len(columns))
			for _, column := range columns {
				value, err := tbl.parseMoney(row, rowNum, column)
				if err != nil {
					return nil, err
				}
				key := strings.TrimPrefix(column, dimension+"_")
				record.Dimensions[dimension][key] = value
			}
		}
	}

	return record, nil
}

// findDimensionColumns agrupa as colunas dimensionais presentes no cabeçalho
// pela dimensão do prefixo
func findDimensionColumns(header []string) map[string][]string {
	columns := make(map[string][]string)
	for _, column := range header {
		for _, prefix := range dimensionPrefixes {
			if strings.HasPrefix(column, prefix+"_") {
				columns[prefix] = append(columns[prefix], column)
			}
		}
	}
	for _, group := range columns {
		sort.Strings(group)
	}
	return columns
}

func dimensionNames(columns map[string][]string) []string {
	names := make([]string, 0, len(columns))
	for dimension := range columns {
		names = append(names, dimension)
	}
	sort.Strings(names)
	return names
}
