package loading

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-dashboard-api/infrastructure/dataset"
	"github.com/vfg2006/finance-dashboard-api/internal/domain"
	"github.com/vfg2006/finance-dashboard-api/pkg/utils"
)

// Service carrega os arquivos de entrada e publica snapshots imutáveis.
// A troca de snapshot é atômica: leitores seguram o ponteiro antigo até
// terminarem. Nenhum snapshot é alterado depois de publicado
type Service struct {
	financialRepo dataset.FinancialDataRepository
	budgetRepo    dataset.BudgetDataRepository
	cashFlowRepo  dataset.CashFlowDataRepository

	mu      sync.RWMutex
	current *domain.Dataset
}

// NewService cria uma nova instância do serviço de carregamento
func NewService(
	financialRepo dataset.FinancialDataRepository,
	budgetRepo dataset.BudgetDataRepository,
	cashFlowRepo dataset.CashFlowDataRepository,
) *Service {
	return &Service{
		financialRepo: financialRepo,
		budgetRepo:    budgetRepo,
		cashFlowRepo:  cashFlowRepo,
	}
}

// Load recarrega as três tabelas e publica um snapshot novo
func (s *Service) Load(ctx context.Context) (*domain.Dataset, error) {
	startTime := time.Now()

	financial, err := s.financialRepo.Load()
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar a tabela financeira")
		return nil, err
	}

	budget, err := s.budgetRepo.Load()
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar a tabela de orçamento")
		return nil, err
	}

	cashFlow, err := s.cashFlowRepo.Load()
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar a tabela de fluxo de caixa")
		return nil, err
	}

	if len(financial.Records) == 0 {
		return nil, fmt.Errorf("tabela financeira sem registros")
	}

	snapshotID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identidade do snapshot: %w", err)
	}

	monthIndex, gaps := buildMonthIndex(financial.Records)

	snapshot := &domain.Dataset{
		ID:                 snapshotID,
		LoadedAt:           time.Now(),
		Financial:          financial.Records,
		Budget:             budget,
		CashFlow:           cashFlow,
		MonthIndex:         monthIndex,
		Gaps:               gaps,
		HasDepreciation:    financial.HasDepreciation,
		HasCashEquivalents: financial.HasCashEquivalents,
		DimensionNames:     financial.DimensionNames,
	}

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"snapshot_id":       snapshot.ID,
		"financial_records": len(snapshot.Financial),
		"budget_records":    len(snapshot.Budget),
		"cash_flow_records": len(snapshot.CashFlow),
		"gaps":              len(snapshot.Gaps),
		"duration_ms":       time.Since(startTime).Milliseconds(),
	}).Info("Snapshot de dados carregado com sucesso")

	return snapshot, nil
}

// LatestSnapshot devolve o último snapshot carregado com sucesso
func (s *Service) LatestSnapshot() *domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// buildMonthIndex monta o índice mensal contínuo entre o primeiro e o último
// período e aponta os meses sem registro (usado para alinhamento e detecção
// de lacunas)
func buildMonthIndex(records []*domain.FinancialRecord) ([]time.Time, []time.Time) {
	first := records[0].Period
	last := records[len(records)-1].Period

	present := make(map[string]struct{}, len(records))
	for _, record := range records {
		present[record.Period.Format("2006-01")] = struct{}{}
	}

	var index, gaps []time.Time
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		index = append(index, month)
		if _, ok := present[month.Format("2006-01")]; !ok {
			gaps = append(gaps, month)
		}
	}

	return index, gaps
}
