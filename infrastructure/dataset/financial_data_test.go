package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const financialHeader = "period,revenue,cogs,opex,net_income,total_assets,current_assets," +
	"current_liabilities,inventory,receivables,total_debt,equity,interest_expense"

func TestFinancialDataRepository_Load(t *testing.T) {
	t.Run("Carga válida ordena por período e detecta colunas opcionais", func(t *testing.T) {
		path := writeCSV(t, financialHeader+",depreciation,product_software,product_services\n"+
			"2024-02,1200.50,400,300,150.25,10000,5000,2500,800,1200,3000,7000,50,100,700.50,500\n"+
			"2024-01,1000,350,280,120,9800,4800,2400,780,1100,3000,6800,50,90,600,400\n")

		table, err := NewFinancialDataRepository(path).Load()

		require.NoError(t, err)
		require.Len(t, table.Records, 2)
		assert.True(t, table.HasDepreciation)
		assert.False(t, table.HasCashEquivalents)
		assert.Equal(t, []string{"product"}, table.DimensionNames)

		// Registros ordenados cronologicamente, independente da ordem do arquivo
		first, second := table.Records[0], table.Records[1]
		assert.Equal(t, "2024-01", first.Period.Format("2006-01"))
		assert.Equal(t, "2024-02", second.Period.Format("2006-01"))

		assert.True(t, second.Revenue.Equal(decimal.RequireFromString("1200.50")))
		assert.True(t, second.NetIncome.Equal(decimal.RequireFromString("150.25")))
		require.NotNil(t, second.Depreciation)
		assert.True(t, second.Depreciation.Equal(decimal.NewFromInt(100)))

		require.Contains(t, second.Dimensions, "product")
		assert.True(t, second.Dimensions["product"]["software"].Equal(decimal.RequireFromString("700.50")))
		assert.True(t, second.Dimensions["product"]["services"].Equal(decimal.NewFromInt(500)))
	})

	t.Run("Período em data completa é normalizado para o primeiro dia do mês", func(t *testing.T) {
		path := writeCSV(t, financialHeader+"\n"+
			"2024-03-15,1000,350,280,120,9800,4800,2400,780,1100,3000,6800,50\n")

		table, err := NewFinancialDataRepository(path).Load()

		require.NoError(t, err)
		require.Len(t, table.Records, 1)
		assert.Equal(t, "2024-03-01", table.Records[0].Period.Format("2006-01-02"))
	})

	t.Run("Prejuízo é um valor válido para net_income", func(t *testing.T) {
		path := writeCSV(t, financialHeader+"\n"+
			"2024-01,1000,350,280,-120,9800,4800,2400,780,1100,3000,6800,50\n")

		table, err := NewFinancialDataRepository(path).Load()

		require.NoError(t, err)
		assert.True(t, table.Records[0].NetIncome.IsNegative())
	})

	t.Run("Coluna revenue ausente produz SchemaError", func(t *testing.T) {
		path := writeCSV(t, "period,cogs,opex,net_income,total_assets,current_assets,"+
			"current_liabilities,inventory,receivables,total_debt,equity,interest_expense\n"+
			"2024-01,350,280,120,9800,4800,2400,780,1100,3000,6800,50\n")

		_, err := NewFinancialDataRepository(path).Load()

		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "financial_data", schemaErr.Table)
		assert.Equal(t, "revenue", schemaErr.Column)
	})

	t.Run("Valor não numérico produz SchemaError", func(t *testing.T) {
		path := writeCSV(t, financialHeader+"\n"+
			"2024-01,abc,350,280,120,9800,4800,2400,780,1100,3000,6800,50\n")

		_, err := NewFinancialDataRepository(path).Load()

		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "revenue", schemaErr.Column)
	})

	t.Run("Período duplicado produz ValidationError", func(t *testing.T) {
		path := writeCSV(t, financialHeader+"\n"+
			"2024-01,1000,350,280,120,9800,4800,2400,780,1100,3000,6800,50\n"+
			"2024-01,1100,360,290,130,9900,4900,2450,790,1150,3000,6900,50\n")

		_, err := NewFinancialDataRepository(path).Load()

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, 3, validationErr.Row)
	})

	t.Run("Receita negativa produz ValidationError", func(t *testing.T) {
		path := writeCSV(t, financialHeader+"\n"+
			"2024-01,-1000,350,280,120,9800,4800,2400,780,1100,3000,6800,50\n")

		_, err := NewFinancialDataRepository(path).Load()

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Reason, "revenue")
	})

	t.Run("Arquivo inexistente propaga o erro de abertura", func(t *testing.T) {
		_, err := NewFinancialDataRepository(filepath.Join(t.TempDir(), "missing.csv")).Load()

		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}
