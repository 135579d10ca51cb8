package analyzing

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/markcheno/go-talib"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-dashboard-api/internal/domain"
)

// Service implementa a interface KPIAnalyzer
type Service struct {
	useCache bool

	cacheMu         sync.Mutex
	cacheSnapshotID string
	kpiCache        map[string]*domain.KPIResult
}

// NewService cria uma nova instância do serviço de análise
func NewService() KPIAnalyzer {
	return &Service{}
}

// WithCache habilita o cache de KPIs. O cache é explicitamente indexado por
// (identidade do snapshot, parâmetros) e descartado por inteiro quando o
// snapshot muda. Nunca um cache implícito de processo
func (s *Service) WithCache() *Service {
	s.useCache = true
	s.kpiCache = make(map[string]*domain.KPIResult)
	return s
}

// ComputeKPIs calcula o conjunto completo de KPIs para um intervalo de períodos
func (s *Service) ComputeKPIs(ds *domain.Dataset, periodRange domain.PeriodRange) (*domain.KPIResult, error) {
	if s.useCache {
		if cached := s.cachedKPIs(ds, periodRange); cached != nil {
			return cached, nil
		}
	}

	records := ds.FinancialInRange(periodRange)
	if len(records) == 0 {
		return nil, fmt.Errorf("nenhum registro financeiro no intervalo de %s a %s",
			periodRange.Start.Format("2006-01"), periodRange.End.Format("2006-01"))
	}

	totals := sumRecords(records)
	first, last := records[0], records[len(records)-1]

	revenue := totals.revenue.InexactFloat64()
	grossProfit := totals.revenue.Sub(totals.cogs)
	operatingIncome := grossProfit.Sub(totals.opex)

	ebitda := operatingIncome
	ebitdaApproximate := true
	if ds.HasDepreciation {
		ebitda = operatingIncome.Add(totals.depreciation)
		ebitdaApproximate = false
	}

	result := &domain.KPIResult{
		SnapshotID: ds.ID,
		Range:      periodRange,

		TotalRevenue:     totals.revenue,
		NetIncome:        totals.netIncome,
		GrossProfit:      grossProfit,
		OperatingIncome:  operatingIncome,
		RevenueYoYGrowth: s.revenueYoYGrowth(ds, periodRange, totals.revenue),

		GrossMargin:     domain.Ratio(grossProfit.InexactFloat64(), revenue),
		OperatingMargin: domain.Ratio(operatingIncome.InexactFloat64(), revenue),
		NetMargin:       domain.Ratio(totals.netIncome.InexactFloat64(), revenue),

		EBITDA:            ebitda,
		EBITDAMargin:      domain.Ratio(ebitda.InexactFloat64(), revenue),
		EBITDAApproximate: ebitdaApproximate,

		Liquidity:  liquidityRatios(ds, last),
		Efficiency: efficiencyRatios(totals, first, last),
		Leverage:   leverageRatios(operatingIncome, totals.interestExpense, last),
	}

	if s.useCache {
		s.storeKPIs(ds, periodRange, result)
	}

	return result, nil
}

// ComputeBreakdown calcula a quebra de receita por uma dimensão opcional
func (s *Service) ComputeBreakdown(ds *domain.Dataset, periodRange domain.PeriodRange, dimension string) (*domain.BreakdownResult, error) {
	if !hasDimension(ds, dimension) {
		return nil, fmt.Errorf("dimensão %q não disponível no snapshot (disponíveis: %v)",
			dimension, ds.DimensionNames)
	}

	records := ds.FinancialInRange(periodRange)
	if len(records) == 0 {
		return nil, fmt.Errorf("nenhum registro financeiro no intervalo de %s a %s",
			periodRange.Start.Format("2006-01"), periodRange.End.Format("2006-01"))
	}

	totalRevenue := decimal.Zero
	groups := make(map[string]decimal.Decimal)
	for _, record := range records {
		totalRevenue = totalRevenue.Add(record.Revenue)
		for key, value := range record.Dimensions[dimension] {
			groups[key] = groups[key].Add(value)
		}
	}

	items := make([]domain.BreakdownItem, 0, len(groups))
	for key, total := range groups {
		items = append(items, domain.BreakdownItem{
			Key:   key,
			Total: total,
			Share: domain.Ratio(total.InexactFloat64(), totalRevenue.InexactFloat64()),
		})
	}

	sort.Slice(items, func(a, b int) bool {
		if items[a].Total.Equal(items[b].Total) {
			return items[a].Key < items[b].Key
		}
		return items[a].Total.GreaterThan(items[b].Total)
	})

	return &domain.BreakdownResult{
		SnapshotID: ds.ID,
		Dimension:  dimension,
		Range:      periodRange,
		Items:      items,
	}, nil
}

// ComputeVariance calcula a variação orçado vs. realizado. A variação absoluta
// é subtração decimal exata; o percentual é N/A quando o orçado é zero
func (s *Service) ComputeVariance(ds *domain.Dataset, periodRange domain.PeriodRange, thresholdPct float64) ([]*domain.VarianceRow, error) {
	budget := ds.BudgetInRange(periodRange)

	rows := make([]*domain.VarianceRow, 0, len(budget))
	for _, record := range budget {
		variance := record.Actual.Sub(record.Budgeted)

		variancePct := domain.MetricNA()
		exceeded := false
		if !record.Budgeted.IsZero() {
			pct := variance.InexactFloat64() / record.Budgeted.InexactFloat64() * 100
			variancePct = domain.NewMetric(pct)
			exceeded = math.Abs(pct) > thresholdPct
		}

		rows = append(rows, &domain.VarianceRow{
			Period:      record.Period,
			Category:    record.Category,
			Budgeted:    record.Budgeted,
			Actual:      record.Actual,
			Variance:    variance,
			VariancePct: variancePct,
			Exceeded:    exceeded,
		})
	}

	return rows, nil
}

// AnnualSummary agrega os resultados por ano, com crescimento YoY da receita
func (s *Service) AnnualSummary(ds *domain.Dataset) ([]*domain.AnnualSummaryRow, error) {
	if len(ds.Financial) == 0 {
		return nil, fmt.Errorf("snapshot sem registros financeiros")
	}

	byYear := make(map[int]*recordTotals)
	var years []int
	for _, record := range ds.Financial {
		year := record.Period.Year()
		if byYear[year] == nil {
			byYear[year] = &recordTotals{}
			years = append(years, year)
		}
		byYear[year].add(record)
	}
	sort.Ints(years)

	rows := make([]*domain.AnnualSummaryRow, 0, len(years))
	var previousRevenue decimal.Decimal
	for i, year := range years {
		totals := byYear[year]
		revenue := totals.revenue.InexactFloat64()
		grossProfit := totals.revenue.Sub(totals.cogs)
		operatingIncome := grossProfit.Sub(totals.opex)

		growth := domain.MetricNA()
		if i > 0 && !previousRevenue.IsZero() {
			growth = domain.NewMetric(
				totals.revenue.Sub(previousRevenue).InexactFloat64() / previousRevenue.InexactFloat64())
		}

		rows = append(rows, &domain.AnnualSummaryRow{
			Year:            year,
			Revenue:         totals.revenue,
			GrossProfit:     grossProfit,
			OperatingIncome: operatingIncome,
			NetIncome:       totals.netIncome,
			GrossMargin:     domain.Ratio(grossProfit.InexactFloat64(), revenue),
			OperatingMargin: domain.Ratio(operatingIncome.InexactFloat64(), revenue),
			NetMargin:       domain.Ratio(totals.netIncome.InexactFloat64(), revenue),
			RevenueGrowth:   growth,
		})

		previousRevenue = totals.revenue
	}

	return rows, nil
}

// QuarterlySummary agrega os resultados por trimestre
func (s *Service) QuarterlySummary(ds *domain.Dataset) ([]*domain.QuarterlySummaryRow, error) {
	if len(ds.Financial) == 0 {
		return nil, fmt.Errorf("snapshot sem registros financeiros")
	}

	type quarterKey struct {
		year    int
		quarter int
	}

	byQuarter := make(map[quarterKey]*recordTotals)
	var keys []quarterKey
	for _, record := range ds.Financial {
		key := quarterKey{
			year:    record.Period.Year(),
			quarter: (int(record.Period.Month())-1)/3 + 1,
		}
		if byQuarter[key] == nil {
			byQuarter[key] = &recordTotals{}
			keys = append(keys, key)
		}
		byQuarter[key].add(record)
	}

	sort.Slice(keys, func(a, b int) bool {
		if keys[a].year == keys[b].year {
			return keys[a].quarter < keys[b].quarter
		}
		return keys[a].year < keys[b].year
	})

	rows := make([]*domain.QuarterlySummaryRow, 0, len(keys))
	for _, key := range keys {
		totals := byQuarter[key]
		revenue := totals.revenue.InexactFloat64()
		grossProfit := totals.revenue.Sub(totals.cogs)

		rows = append(rows, &domain.QuarterlySummaryRow{
			Year:        key.year,
			Quarter:     key.quarter,
			Period:      fmt.Sprintf("%d Q%d", key.year, key.quarter),
			Revenue:     totals.revenue,
			GrossProfit: grossProfit,
			NetIncome:   totals.netIncome,
			GrossMargin: domain.Ratio(grossProfit.InexactFloat64(), revenue),
			NetMargin:   domain.Ratio(totals.netIncome.InexactFloat64(), revenue),
		})
	}

	return rows, nil
}

// ComparePeriods compara os agregados de dois anos
func (s *Service) ComparePeriods(ds *domain.Dataset, currentYear, previousYear int) (*domain.PeriodComparison, error) {
	current := yearTotals(ds, currentYear)
	previous := yearTotals(ds, previousYear)

	if current == nil || previous == nil {
		return nil, fmt.Errorf("sem registros financeiros para comparar os anos %d e %d",
			currentYear, previousYear)
	}

	comparison := &domain.PeriodComparison{
		CurrentYear:       currentYear,
		PreviousYear:      previousYear,
		CurrentRevenue:    current.revenue,
		PreviousRevenue:   previous.revenue,
		CurrentNetIncome:  current.netIncome,
		PreviousNetIncome: previous.netIncome,
		CurrentGrossMargin: domain.Ratio(
			current.revenue.Sub(current.cogs).InexactFloat64(), current.revenue.InexactFloat64()),
		PreviousGrossMargin: domain.Ratio(
			previous.revenue.Sub(previous.cogs).InexactFloat64(), previous.revenue.InexactFloat64()),
	}

	if !previous.revenue.IsZero() {
		comparison.RevenueGrowth = domain.NewMetric(
			current.revenue.Sub(previous.revenue).InexactFloat64() / previous.revenue.InexactFloat64())
	}
	if !previous.netIncome.IsZero() {
		comparison.NetIncomeGrowth = domain.NewMetric(
			current.netIncome.Sub(previous.netIncome).InexactFloat64() / previous.netIncome.InexactFloat64())
	}

	return comparison, nil
}

// RollingAverages calcula médias móveis simples de receita e lucro líquido.
// Os períodos anteriores à janela completa ficam N/A
func (s *Service) RollingAverages(ds *domain.Dataset, window int) ([]*domain.RollingAverageRow, error) {
	if window < 2 {
		return nil, fmt.Errorf("janela de média móvel deve ser maior que 1, recebida %d", window)
	}
	if len(ds.Financial) < window {
		return nil, fmt.Errorf("snapshot com %d registros é menor que a janela de %d períodos",
			len(ds.Financial), window)
	}

	revenues := make([]float64, len(ds.Financial))
	netIncomes := make([]float64, len(ds.Financial))
	for i, record := range ds.Financial {
		revenues[i] = record.Revenue.InexactFloat64()
		netIncomes[i] = record.NetIncome.InexactFloat64()
	}

	revenueMA := talib.Sma(revenues, window)
	netIncomeMA := talib.Sma(netIncomes, window)

	rows := make([]*domain.RollingAverageRow, len(ds.Financial))
	for i, record := range ds.Financial {
		row := &domain.RollingAverageRow{Period: record.Period}
		if i >= window-1 {
			row.Revenue = domain.NewMetric(revenueMA[i])
			row.NetIncome = domain.NewMetric(netIncomeMA[i])
		}
		rows[i] = row
	}

	return rows, nil
}

// cachedKPIs busca um resultado no cache, descartando entradas de snapshots antigos
func (s *Service) cachedKPIs(ds *domain.Dataset, periodRange domain.PeriodRange) *domain.KPIResult {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.cacheSnapshotID != ds.ID {
		s.kpiCache = make(map[string]*domain.KPIResult)
		s.cacheSnapshotID = ds.ID
		return nil
	}

	cached := s.kpiCache[kpiCacheKey(ds, periodRange)]
	if cached != nil {
		logrus.WithFields(logrus.Fields{
			"snapshot_id": ds.ID,
			"start":       periodRange.Start.Format("2006-01"),
			"end":         periodRange.End.Format("2006-01"),
		}).Debug("KPIs recuperados do cache")
	}
	return cached
}

func (s *Service) storeKPIs(ds *domain.Dataset, periodRange domain.PeriodRange, result *domain.KPIResult) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.cacheSnapshotID != ds.ID {
		s.kpiCache = make(map[string]*domain.KPIResult)
		s.cacheSnapshotID = ds.ID
	}
	s.kpiCache[kpiCacheKey(ds, periodRange)] = result
}

func kpiCacheKey(ds *domain.Dataset, periodRange domain.PeriodRange) string {
	return fmt.Sprintf("%s|%s|%s",
		ds.ID, periodRange.Start.Format("2006-01"), periodRange.End.Format("2006-01"))
}

// revenueYoYGrowth calcula o crescimento da receita contra o mesmo intervalo
// do ano anterior. N/A quando o ano anterior não tem registros ou receita zero
func (s *Service) revenueYoYGrowth(ds *domain.Dataset, periodRange domain.PeriodRange, currentRevenue decimal.Decimal) domain.Metric {
	priorRecords := ds.FinancialInRange(periodRange.ShiftYears(-1))
	if len(priorRecords) == 0 {
		return domain.MetricNA()
	}

	priorRevenue := decimal.Zero
	for _, record := range priorRecords {
		priorRevenue = priorRevenue.Add(record.Revenue)
	}
	if priorRevenue.IsZero() {
		return domain.MetricNA()
	}

	return domain.NewMetric(
		currentRevenue.Sub(priorRevenue).InexactFloat64() / priorRevenue.InexactFloat64())
}

// recordTotals acumula as somas decimais de um grupo de registros
type recordTotals struct {
	revenue         decimal.Decimal
	cogs            decimal.Decimal
	opex            decimal.Decimal
	netIncome       decimal.Decimal
	depreciation    decimal.Decimal
	interestExpense decimal.Decimal
}

func (t *recordTotals) add(record *domain.FinancialRecord) {
	t.revenue = t.revenue.Add(record.Revenue)
	t.cogs = t.cogs.Add(record.COGS)
	t.opex = t.opex.Add(record.OperatingExpenses)
	t.netIncome = t.netIncome.Add(record.NetIncome)
	t.interestExpense = t.interestExpense.Add(record.InterestExpense)
	if record.Depreciation != nil {
		t.depreciation = t.depreciation.Add(*record.Depreciation)
	}
}

func sumRecords(records []*domain.FinancialRecord) *recordTotals {
	totals := &recordTotals{}
	for _, record := range records {
		totals.add(record)
	}
	return totals
}

func yearTotals(ds *domain.Dataset, year int) *recordTotals {
	var totals *recordTotals
	for _, record := range ds.Financial {
		if record.Period.Year() == year {
			if totals == nil {
				totals = &recordTotals{}
			}
			totals.add(record)
		}
	}
	return totals
}

// liquidityRatios calcula os indicadores de liquidez sobre o balanço do
// último período do intervalo
func liquidityRatios(ds *domain.Dataset, last *domain.FinancialRecord) domain.LiquidityRatios {
	liabilities := last.CurrentLiabilities.InexactFloat64()

	ratios := domain.LiquidityRatios{
		CurrentRatio: domain.Ratio(last.CurrentAssets.InexactFloat64(), liabilities),
		QuickRatio: domain.Ratio(
			last.CurrentAssets.Sub(last.Inventory).InexactFloat64(), liabilities),
		CashRatio: domain.MetricNA(),
	}

	if ds.HasCashEquivalents && last.CashEquivalents != nil {
		ratios.CashRatio = domain.Ratio(last.CashEquivalents.InexactFloat64(), liabilities)
	}

	return ratios
}

// efficiencyRatios calcula os giros usando a média entre o saldo do início e
// do fim do intervalo, nunca apenas o saldo final
func efficiencyRatios(totals *recordTotals, first, last *domain.FinancialRecord) domain.EfficiencyRatios {
	avgAssets := averageBalance(first.TotalAssets, last.TotalAssets)
	avgInventory := averageBalance(first.Inventory, last.Inventory)
	avgReceivables := averageBalance(first.Receivables, last.Receivables)

	receivablesTurnover := domain.Ratio(totals.revenue.InexactFloat64(), avgReceivables)

	dso := domain.MetricNA()
	if receivablesTurnover.Valid && receivablesTurnover.Value != 0 {
		dso = domain.NewMetric(365 / receivablesTurnover.Value)
	}

	return domain.EfficiencyRatios{
		AssetTurnover:       domain.Ratio(totals.revenue.InexactFloat64(), avgAssets),
		InventoryTurnover:   domain.Ratio(totals.cogs.InexactFloat64(), avgInventory),
		ReceivablesTurnover: receivablesTurnover,
		DSO:                 dso,
	}
}

func averageBalance(start, end decimal.Decimal) float64 {
	return start.Add(end).InexactFloat64() / 2
}

// leverageRatios calcula os indicadores de alavancagem. A cobertura de juros
// é N/A quando a despesa de juros do intervalo é zero
func leverageRatios(operatingIncome, interestExpense decimal.Decimal, last *domain.FinancialRecord) domain.LeverageRatios {
	return domain.LeverageRatios{
		DebtToEquity:     domain.Ratio(last.TotalDebt.InexactFloat64(), last.Equity.InexactFloat64()),
		InterestCoverage: domain.Ratio(operatingIncome.InexactFloat64(), interestExpense.InexactFloat64()),
	}
}

func hasDimension(ds *domain.Dataset, dimension string) bool {
	for _, name := range ds.DimensionNames {
		if name == dimension {
			return true
		}
	}
	return false
}
