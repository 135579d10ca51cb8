package dataset

import (
	"fmt"
	"sort"

	"github.com/vfg2006/finance-dashboard-api/internal/domain"
)

const cashFlowTableName = "cash_flow_data"

var requiredCashFlowColumns = []string{"period", "operating_cf", "investing_cf", "financing_cf"}

// CashFlowDataRepository carrega a tabela de fluxo de caixa de um arquivo de entrada
type CashFlowDataRepository interface {
	Load() ([]*domain.CashFlowRecord, error)
}

type csvCashFlowDataRepository struct {
	path string
}

// NewCashFlowDataRepository cria um repositório CSV para a tabela de fluxo de caixa
func NewCashFlowDataRepository(path string) CashFlowDataRepository {
	return &csvCashFlowDataRepository{path: path}
}

func (r *csvCashFlowDataRepository) Load() ([]*domain.CashFlowRecord, error) {
	tbl, err := readTable(r.path, cashFlowTableName)
	if err != nil {
		return nil, err
	}

	if err := tbl.require(requiredCashFlowColumns...); err != nil {
		return nil, err
	}

	records := make([]*domain.CashFlowRecord, 0, len(tbl.rows))
	seen := make(map[string]int, len(tbl.rows))

	for i, row := range tbl.rows {
		rowNum := i + 2

		period, err := tbl.parsePeriod(row, rowNum)
		if err != nil {
			return nil, err
		}

		operating, err := tbl.parseMoney(row, rowNum, "operating_cf")
		if err != nil {
			return nil, err
		}

		investing, err := tbl.parseMoney(row, rowNum, "investing_cf")
		if err != nil {
			return nil, err
		}

		financing, err := tbl.parseMoney(row, rowNum, "financing_cf")
		if err != nil {
			return nil, err
		}

		record := &domain.CashFlowRecord{
			Period:      period,
			OperatingCF: operating,
			InvestingCF: investing,
			FinancingCF: financing,
		}

		// A coluna net_cf, quando presente, é apenas conferida contra a soma
		// dos componentes. O valor derivado nunca é armazenado sem recomputação
		if tbl.has("net_cf") {
			declared, err := tbl.parseMoney(row, rowNum, "net_cf")
			if err != nil {
				return nil, err
			}
			if !declared.Equal(record.NetCF()) {
				return nil, &ValidationError{
					Table: cashFlowTableName,
					Row:   rowNum,
					Reason: fmt.Sprintf("net_cf declarado (%s) difere da soma dos componentes (%s)",
						declared, record.NetCF()),
				}
			}
		}

		key := period.Format("2006-01")
		if previous, duplicated := seen[key]; duplicated {
			return nil, &ValidationError{
				Table: cashFlowTableName,
				Row:   rowNum,
				Reason: fmt.Sprintf("período %s duplicado (já visto na linha %d)",
					key, previous),
			}
		}
		seen[key] = rowNum

		records = append(records, record)
	}

	sort.Slice(records, func(a, b int) bool {
		return records[a].Period.Before(records[b].Period)
	})

	return records, nil
}
