package dataset

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashFlowDataRepository_Load(t *testing.T) {
	t.Run("Carga válida com componentes negativos", func(t *testing.T) {
		path := writeCSV(t, "period,operating_cf,investing_cf,financing_cf\n"+
			"2024-01,1500,-600,-200\n"+
			"2024-02,1800.25,-300,100\n")

		records, err := NewCashFlowDataRepository(path).Load()

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.True(t, records[0].NetCF().Equal(decimal.NewFromInt(700)))
		assert.True(t, records[1].NetCF().Equal(decimal.RequireFromString("1600.25")))
	})

	t.Run("Coluna net_cf consistente com a soma dos componentes é aceita", func(t *testing.T) {
		path := writeCSV(t, "period,operating_cf,investing_cf,financing_cf,net_cf\n"+
			"2024-01,1500,-600,-200,700\n")

		records, err := NewCashFlowDataRepository(path).Load()

		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("Coluna net_cf divergente produz ValidationError", func(t *testing.T) {
		path := writeCSV(t, "period,operating_cf,investing_cf,financing_cf,net_cf\n"+
			"2024-01,1500,-600,-200,999\n")

		_, err := NewCashFlowDataRepository(path).Load()

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "cash_flow_data", validationErr.Table)
		assert.Contains(t, validationErr.Reason, "net_cf")
	})

	t.Run("Período duplicado produz ValidationError", func(t *testing.T) {
		path := writeCSV(t, "period,operating_cf,investing_cf,financing_cf\n"+
			"2024-01,1500,-600,-200\n"+
			"2024-01,1400,-500,-100\n")

		_, err := NewCashFlowDataRepository(path).Load()

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, 3, validationErr.Row)
	})

	t.Run("Coluna operating_cf ausente produz SchemaError", func(t *testing.T) {
		path := writeCSV(t, "period,investing_cf,financing_cf\n2024-01,-600,-200\n")

		_, err := NewCashFlowDataRepository(path).Load()

		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "operating_cf", schemaErr.Column)
	})
}
