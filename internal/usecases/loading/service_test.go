package loading

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/finance-dashboard-api/infrastructure/dataset/mocks"
	"github.com/vfg2006/finance-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func financialTable(periods ...time.Time) *dataset.FinancialTable {
	records := make([]*domain.FinancialRecord, 0, len(periods))
	for _, period := range periods {
		records = append(records, &domain.FinancialRecord{
			Period:  period,
			Revenue: decimal.NewFromInt(1000),
		})
	}
	return &dataset.FinancialTable{Records: records}
}

func TestService_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFinancialRepo := mocks.NewMockFinancialDataRepository(ctrl)
	mockBudgetRepo := mocks.NewMockBudgetDataRepository(ctrl)
	mockCashFlowRepo := mocks.NewMockCashFlowDataRepository(ctrl)

	service := NewService(mockFinancialRepo, mockBudgetRepo, mockCashFlowRepo)

	t.Run("Índice mensal contínuo aponta os meses sem registro", func(t *testing.T) {
		// Janeiro, fevereiro e maio: março e abril são lacunas
		mockFinancialRepo.EXPECT().Load().Return(
			financialTable(month(2024, time.January), month(2024, time.February), month(2024, time.May)), nil)
		mockBudgetRepo.EXPECT().Load().Return(nil, nil)
		mockCashFlowRepo.EXPECT().Load().Return(nil, nil)

		snapshot, err := service.Load(context.Background())

		require.NoError(t, err)
		assert.Len(t, snapshot.MonthIndex, 5)
		require.Len(t, snapshot.Gaps, 2)
		assert.Equal(t, month(2024, time.March), snapshot.Gaps[0])
		assert.Equal(t, month(2024, time.April), snapshot.Gaps[1])
		assert.NotEmpty(t, snapshot.ID)
		assert.Equal(t, snapshot, service.LatestSnapshot())
	})

	t.Run("Recarga com erro preserva o snapshot anterior", func(t *testing.T) {
		previous := service.LatestSnapshot()
		require.NotNil(t, previous)

		mockFinancialRepo.EXPECT().Load().Return(nil, &dataset.SchemaError{
			Table: "financial_data", Column: "revenue", Reason: "coluna obrigatória ausente",
		})

		_, err := service.Load(context.Background())

		require.Error(t, err)
		assert.Equal(t, previous, service.LatestSnapshot())
	})

	t.Run("Cada recarga bem sucedida produz uma identidade nova", func(t *testing.T) {
		previousID := service.LatestSnapshot().ID

		mockFinancialRepo.EXPECT().Load().Return(financialTable(month(2024, time.January)), nil)
		mockBudgetRepo.EXPECT().Load().Return(nil, nil)
		mockCashFlowRepo.EXPECT().Load().Return(nil, nil)

		snapshot, err := service.Load(context.Background())

		require.NoError(t, err)
		assert.NotEqual(t, previousID, snapshot.ID)
	})

	t.Run("Tabela financeira vazia é rejeitada", func(t *testing.T) {
		mockFinancialRepo.EXPECT().Load().Return(&dataset.FinancialTable{}, nil)
		mockBudgetRepo.EXPECT().Load().Return(nil, nil)
		mockCashFlowRepo.EXPECT().Load().Return(nil, nil)

		_, err := service.Load(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sem registros")
	})
}
