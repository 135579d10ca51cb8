package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// table representa uma tabela delimitada já lida em memória, com índice de
// colunas pelo nome do cabeçalho
type table struct {
	name   string
	header []string
	index  map[string]int
	rows   [][]string
}

// readTable lê um arquivo CSV completo. A primeira linha é o cabeçalho;
// nomes de colunas são normalizados para minúsculas
func readTable(path, name string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao abrir o arquivo da tabela %s", name)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler o arquivo da tabela %s", name)
	}

	if len(records) == 0 {
		return nil, &SchemaError{Table: name, Reason: "arquivo vazio, sem cabeçalho"}
	}

	header := make([]string, len(records[0]))
	index := make(map[string]int, len(records[0]))
	for i, column := range records[0] {
		normalized := strings.ToLower(strings.TrimSpace(column))
		header[i] = normalized
		index[normalized] = i
	}

	return &table{
		name:   name,
		header: header,
		index:  index,
		rows:   records[1:],
	}, nil
}

// require verifica a presença das colunas obrigatórias
func (t *table) require(columns ...string) error {
	for _, column := range columns {
		if _, ok := t.index[column]; !ok {
			return &SchemaError{Table: t.name, Column: column, Reason: "coluna obrigatória ausente"}
		}
	}
	return nil
}

func (t *table) has(column string) bool {
	_, ok := t.index[column]
	return ok
}

func (t *table) value(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseMoney interpreta um valor monetário decimal
func (t *table) parseMoney(row []string, rowNum int, column string) (decimal.Decimal, error) {
	raw := t.value(row, column)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &SchemaError{
			Table:  t.name,
			Column: column,
			Reason: fmt.Sprintf("valor %q na linha %d não é um número decimal", raw, rowNum),
		}
	}
	return value, nil
}

// parsePeriod interpreta um período no formato ano-mês ou data completa.
// Datas completas são normalizadas para o primeiro dia do mês
func (t *table) parsePeriod(row []string, rowNum int) (time.Time, error) {
	raw := t.value(row, "period")

	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, &SchemaError{
		Table:  t.name,
		Column: "period",
		Reason: fmt.Sprintf("valor %q na linha %d não é uma data válida (use aaaa-mm ou aaaa-mm-dd)", raw, rowNum),
	}
}
