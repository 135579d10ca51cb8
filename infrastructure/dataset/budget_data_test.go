package dataset

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetDataRepository_Load(t *testing.T) {
	t.Run("Carga válida ordena por período e categoria", func(t *testing.T) {
		path := writeCSV(t, "period,category,budgeted_amount,actual_amount\n"+
			"2024-02,marketing,500,450.75\n"+
			"2024-01,salaries,2000,2000\n"+
			"2024-01,marketing,400,520\n")

		records, err := NewBudgetDataRepository(path).Load()

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "marketing", records[0].Category)
		assert.Equal(t, "salaries", records[1].Category)
		assert.Equal(t, "2024-02", records[2].Period.Format("2006-01"))
		assert.True(t, records[2].Actual.Equal(decimal.RequireFromString("450.75")))
	})

	t.Run("Par período e categoria duplicado produz ValidationError", func(t *testing.T) {
		path := writeCSV(t, "period,category,budgeted_amount,actual_amount\n"+
			"2024-01,marketing,400,520\n"+
			"2024-01,marketing,410,530\n")

		_, err := NewBudgetDataRepository(path).Load()

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "budget_data", validationErr.Table)
		assert.Equal(t, 3, validationErr.Row)
	})

	t.Run("Mesma categoria em períodos distintos é válida", func(t *testing.T) {
		path := writeCSV(t, "period,category,budgeted_amount,actual_amount\n"+
			"2024-01,marketing,400,520\n"+
			"2024-02,marketing,410,530\n")

		records, err := NewBudgetDataRepository(path).Load()

		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("Categoria vazia produz ValidationError", func(t *testing.T) {
		path := writeCSV(t, "period,category,budgeted_amount,actual_amount\n"+
			"2024-01,,400,520\n")

		_, err := NewBudgetDataRepository(path).Load()

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Reason, "categoria")
	})

	t.Run("Coluna budgeted_amount ausente produz SchemaError", func(t *testing.T) {
		path := writeCSV(t, "period,category,actual_amount\n2024-01,marketing,520\n")

		_, err := NewBudgetDataRepository(path).Load()

		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "budgeted_amount", schemaErr.Column)
	})
}
