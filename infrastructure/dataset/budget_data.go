package dataset

import (
	"fmt"
	"sort"

	"github.com/vfg2006/finance-dashboard-api/internal/domain"
)

const budgetTableName = "budget_data"

var requiredBudgetColumns = []string{"period", "category", "budgeted_amount", "actual_amount"}

// BudgetDataRepository carrega a tabela de orçamento de um arquivo de entrada
type BudgetDataRepository interface {
	Load() ([]*domain.BudgetRecord, error)
}

type csvBudgetDataRepository struct {
	path string
}

// NewBudgetDataRepository cria um repositório CSV para a tabela de orçamento
func NewBudgetDataRepository(path string) BudgetDataRepository {
	return &csvBudgetDataRepository{path: path}
}

func (r *csvBudgetDataRepository) Load() ([]*domain.BudgetRecord, error) {
	tbl, err := readTable(r.path, budgetTableName)
	if err != nil {
		return nil, err
	}

	if err := tbl.require(requiredBudgetColumns...); err != nil {
		return nil, err
	}

	records := make([]*domain.BudgetRecord, 0, len(tbl.rows))
	seen := make(map[string]int, len(tbl.rows))

	for i, row := range tbl.rows {
		rowNum := i + 2

		period, err := tbl.parsePeriod(row, rowNum)
		if err != nil {
			return nil, err
		}

		category := tbl.value(row, "category")
		if category == "" {
			return nil, &ValidationError{
				Table:  budgetTableName,
				Row:    rowNum,
				Reason: "categoria vazia",
			}
		}

		budgeted, err := tbl.parseMoney(row, rowNum, "budgeted_amount")
		if err != nil {
			return nil, err
		}

		actual, err := tbl.parseMoney(row, rowNum, "actual_amount")
		if err != nil {
			return nil, err
		}

		// Invariante: uma linha por par (período, categoria)
		key := fmt.Sprintf("%s|%s", period.Format("2006-01"), category)
		if previous, duplicated := seen[key]; duplicated {
			return nil, &ValidationError{
				Table: budgetTableName,
				Row:   rowNum,
				Reason: fmt.Sprintf("par (período %s, categoria %s) duplicado (já visto na linha %d)",
					period.Format("2006-01"), category, previous),
			}
		}
		seen[key] = rowNum

		records = append(records, &domain.BudgetRecord{
			Period:   period,
			Category: category,
			Budgeted: budgeted,
			Actual:   actual,
		})
	}

	sort.Slice(records, func(a, b int) bool {
		if records[a].Period.Equal(records[b].Period) {
			return records[a].Category < records[b].Category
		}
		return records[a].Period.Before(records[b].Period)
	})

	return records, nil
}
