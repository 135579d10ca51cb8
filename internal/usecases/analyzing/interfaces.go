package analyzing

import (
	"github.com/vfg2006/finance-dashboard-api/internal/domain"
)

// KPIAnalyzer define a interface de cálculo de KPIs, razões e variações.
// Todas as operações são funções puras sobre um snapshot: dois cálculos com o
// mesmo snapshot e os mesmos parâmetros produzem resultados idênticos
type KPIAnalyzer interface {
	// ComputeKPIs calcula o conjunto completo de KPIs para um intervalo de períodos
	ComputeKPIs(ds *domain.Dataset, periodRange domain.PeriodRange) (*domain.KPIResult, error)

	// ComputeBreakdown calcula a quebra de receita por uma dimensão opcional
	ComputeBreakdown(ds *domain.Dataset, periodRange domain.PeriodRange, dimension string) (*domain.BreakdownResult, error)

	// ComputeVariance calcula a variação orçado vs. realizado, sinalizando as
	// categorias que excedem o limiar percentual informado
	ComputeVariance(ds *domain.Dataset, periodRange domain.PeriodRange, thresholdPct float64) ([]*domain.VarianceRow, error)

	// AnnualSummary agrega os resultados por ano
	AnnualSummary(ds *domain.Dataset) ([]*domain.AnnualSummaryRow, error)

	// QuarterlySummary agrega os resultados por trimestre
	QuarterlySummary(ds *domain.Dataset) ([]*domain.QuarterlySummaryRow, error)

	// ComparePeriods compara os agregados de dois anos
	ComparePeriods(ds *domain.Dataset, currentYear, previousYear int) (*domain.PeriodComparison, error)

	// RollingAverages calcula médias móveis de receita e lucro líquido
	RollingAverages(ds *domain.Dataset, window int) ([]*domain.RollingAverageRow, error)

	// HealthIndicators avalia indicadores de saúde financeira contra benchmarks
	HealthIndicators(ds *domain.Dataset) ([]*domain.HealthIndicator, error)
}
