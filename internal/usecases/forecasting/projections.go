package forecasting

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/finance-dashboard-api/internal/domain"
)

// defaultScenarios são os cenários usados quando o chamador não informa nenhum
var defaultScenarios = map[string]domain.ScenarioParams{
	"pessimistic": {Growth: -0.05, MarginChange: -0.02},
	"base":        {Growth: 0.10, MarginChange: 0},
	"optimistic":  {Growth: 0.20, MarginChange: 0.02},
}

// GrowthProjections deriva taxas de crescimento do histórico anual de receita
// e projeta a receita do próximo ano em três faixas. Anos parciais entram no
// agregado do ano a que pertencem
func (s *Service) GrowthProjections(ds *domain.Dataset) (*domain.GrowthProjections, error) {
	if len(ds.Financial) == 0 {
		return nil, fmt.Errorf("snapshot sem registros financeiros")
	}

	annualRevenue := make(map[int]decimal.Decimal)
	for _, record := range ds.Financial {
		year := record.Period.Year()
		annualRevenue[year] = annualRevenue[year].Add(record.Revenue)
	}

	years := make([]int, 0, len(annualRevenue))
	for year := range annualRevenue {
		years = append(years, year)
	}
	sort.Ints(years)

	projections := &domain.GrowthProjections{
		AvgAnnualGrowth: domain.MetricNA(),
		CAGR:            domain.MetricNA(),
		MonthlyGrowth:   domain.MetricNA(),
		Conservative:    domain.MetricNA(),
		Base:            domain.MetricNA(),
		Optimistic:      domain.MetricNA(),
		LastYearRevenue: annualRevenue[years[len(years)-1]].InexactFloat64(),
	}

	if len(years) >= 2 {
		var growthSum float64
		growthCount := 0
		for i := 1; i < len(years); i++ {
			previous := annualRevenue[years[i-1]].InexactFloat64()
			current := annualRevenue[years[i]].InexactFloat64()
			if previous != 0 {
				growthSum += (current - previous) / previous
				growthCount++
			}
		}
		if growthCount > 0 {
			avg := growthSum / float64(growthCount)
			projections.AvgAnnualGrowth = domain.NewMetric(avg)
			projections.Conservative = domain.NewMetric(projections.LastYearRevenue * (1 + avg*0.5))
			projections.Base = domain.NewMetric(projections.LastYearRevenue * (1 + avg))
			projections.Optimistic = domain.NewMetric(projections.LastYearRevenue * (1 + avg*1.5))
		}

		first := annualRevenue[years[0]].InexactFloat64()
		last := projections.LastYearRevenue
		span := years[len(years)-1] - years[0]
		if first > 0 && last > 0 && span > 0 {
			projections.CAGR = domain.NewMetric(math.Pow(last/first, 1/float64(span)) - 1)
		}
	}

	// Crescimento mensal médio da série de receita, calculado mês a mês
	var monthlySum float64
	monthlyCount := 0
	for i := 1; i < len(ds.Financial); i++ {
		previous := ds.Financial[i-1].Revenue.InexactFloat64()
		current := ds.Financial[i].Revenue.InexactFloat64()
		if previous != 0 {
			monthlySum += (current - previous) / previous
			monthlyCount++
		}
	}
	if monthlyCount > 0 {
		projections.MonthlyGrowth = domain.NewMetric(monthlySum / float64(monthlyCount))
	}

	return projections, nil
}

// ScenarioAnalysis projeta receita e lucro líquido anualizados sob cenários
// configuráveis. A base é a receita do último mês anualizada e a margem
// líquida do último registro
func (s *Service) ScenarioAnalysis(ds *domain.Dataset, scenarios map[string]domain.ScenarioParams) ([]*domain.ScenarioResult, error) {
	if len(ds.Financial) == 0 {
		return nil, fmt.Errorf("snapshot sem registros financeiros")
	}
	if len(scenarios) == 0 {
		scenarios = defaultScenarios
	}

	last := ds.Financial[len(ds.Financial)-1]
	baseRevenue := last.Revenue.InexactFloat64() * 12
	baseMargin := domain.Ratio(last.NetIncome.InexactFloat64(), last.Revenue.InexactFloat64())

	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]*domain.ScenarioResult, 0, len(scenarios))
	for _, name := range names {
		params := scenarios[name]
		result := &domain.ScenarioResult{
			Scenario:   name,
			Revenue:    baseRevenue * (1 + params.Growth),
			GrowthRate: params.Growth,
			NetMargin:  domain.MetricNA(),
			NetIncome:  domain.MetricNA(),
		}
		if baseMargin.Valid {
			margin := baseMargin.Value + params.MarginChange
			result.NetMargin = domain.NewMetric(margin)
			result.NetIncome = domain.NewMetric(result.Revenue * margin)
		}
		results = append(results, result)
	}

	return results, nil
}
