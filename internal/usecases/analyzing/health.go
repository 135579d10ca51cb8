package analyzing

import (
	"fmt"

	"github.com/vfg2006/finance-dashboard-api/internal/domain"
)

// HealthIndicators avalia os principais indicadores de saúde financeira do
// snapshot completo contra benchmarks documentados. Indicadores N/A são
// classificados como desconhecidos, nunca como críticos
func (s *Service) HealthIndicators(ds *domain.Dataset) ([]*domain.HealthIndicator, error) {
	fullRange, ok := ds.FullRange()
	if !ok {
		return nil, fmt.Errorf("snapshot sem registros financeiros")
	}

	kpis, err := s.ComputeKPIs(ds, fullRange)
	if err != nil {
		return nil, err
	}

	indicators := []*domain.HealthIndicator{
		{
			Name:        "current_ratio",
			Value:       kpis.Liquidity.CurrentRatio,
			Status:      statusAtLeast(kpis.Liquidity.CurrentRatio, 1.5, 1.0),
			Benchmark:   ">= 1.5",
			Description: "Capacidade de pagar obrigações de curto prazo",
		},
		{
			Name:        "quick_ratio",
			Value:       kpis.Liquidity.QuickRatio,
			Status:      statusAtLeast(kpis.Liquidity.QuickRatio, 1.0, 0.7),
			Benchmark:   ">= 1.0",
			Description: "Cobertura das obrigações correntes por ativos líquidos",
		},
		{
			Name:        "debt_to_equity",
			Value:       kpis.Leverage.DebtToEquity,
			Status:      statusAtMost(kpis.Leverage.DebtToEquity, 1.0, 2.0),
			Benchmark:   "<= 1.0",
			Description: "Nível de alavancagem financeira",
		},
		{
			Name:        "interest_coverage",
			Value:       kpis.Leverage.InterestCoverage,
			Status:      statusAtLeast(kpis.Leverage.InterestCoverage, 3.0, 1.5),
			Benchmark:   ">= 3.0",
			Description: "Capacidade de servir a dívida",
		},
		{
			Name:        "net_margin",
			Value:       kpis.NetMargin,
			Status:      statusAtLeast(kpis.NetMargin, 0.15, 0.10),
			Benchmark:   ">= 15%",
			Description: "Rentabilidade da última linha",
		},
	}

	return indicators, nil
}

// statusAtLeast classifica um indicador em que valores maiores são melhores
func statusAtLeast(value domain.Metric, good, warning float64) domain.HealthStatus {
	if !value.Valid {
		return domain.HealthUnknown
	}
	switch {
	case value.Value >= good:
		return domain.HealthGood
	case value.Value >= warning:
		return domain.HealthWarning
	default:
		return domain.HealthCritical
	}
}

// statusAtMost classifica um indicador em que valores menores são melhores
func statusAtMost(value domain.Metric, good, warning float64) domain.HealthStatus {
	if !value.Valid {
		return domain.HealthUnknown
	}
	switch {
	case value.Value <= good:
		return domain.HealthGood
	case value.Value <= warning:
		return domain.HealthWarning
	default:
		return domain.HealthCritical
	}
}
