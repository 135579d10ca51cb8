package forecasting

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-dashboard-api/internal/config"
	"github.com/vfg2006/finance-dashboard-api/internal/domain"
)

// Service implementa a interface Forecaster
type Service struct {
	holdout int
}

// NewService cria uma nova instância do serviço de previsão
func NewService(cfg *config.Config) Forecaster {
	return &Service{
		holdout: cfg.Forecast.Holdout,
	}
}

// Forecast ajusta o modelo de Holt-Winters e projeta o horizonte solicitado.
// Erros de previsão são escopados à requisição: KPIs já calculados não são
// invalidados por uma série curta ou um ajuste que não convergiu
func (s *Service) Forecast(
	ds *domain.Dataset,
	series string,
	horizon, seasonalPeriod int,
	mode domain.SeasonalityMode,
) (*domain.ForecastResult, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("horizonte deve ser maior que zero, recebido %d", horizon)
	}
	if seasonalPeriod < 2 {
		return nil, fmt.Errorf("período sazonal deve ser maior que 1, recebido %d", seasonalPeriod)
	}

	values, periods, err := extractSeries(ds, series)
	if err != nil {
		return nil, err
	}

	model, err := fitHoltWinters(values, seasonalPeriod, mode)
	if err != nil {
		return nil, err
	}

	forecastValues := model.forecast(horizon)
	margin := 1.96 * model.residualStd

	lastPeriod := periods[len(periods)-1]
	points := make([]domain.ForecastPoint, horizon)
	for i, value := range forecastValues {
		points[i] = domain.ForecastPoint{
			Period: lastPeriod.AddDate(0, i+1, 0),
			Value:  value,
			Lower:  value - margin,
			Upper:  value + margin,
		}
	}

	result := &domain.ForecastResult{
		SnapshotID:     ds.ID,
		Series:         series,
		Horizon:        horizon,
		SeasonalPeriod: seasonalPeriod,
		Seasonality:    mode,
		Points:         points,
		Params: domain.SmoothingParams{
			Alpha: model.alpha,
			Beta:  model.beta,
			Gamma: model.gamma,
		},
		Accuracy: s.backtest(values, seasonalPeriod, mode),
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id":     ds.ID,
		"series":          series,
		"horizon":         horizon,
		"seasonal_period": seasonalPeriod,
		"seasonality":     mode,
		"holdout":         result.Accuracy.Holdout,
	}).Info("Previsão gerada com sucesso")

	return result, nil
}

// backtest calcula MAE/MAPE/RMSE retendo as últimas observações, reajustando
// o modelo no restante e prevendo o trecho retido. Determinístico: mesma
// entrada e configuração produzem sempre as mesmas métricas
func (s *Service) backtest(values []float64, seasonalPeriod int, mode domain.SeasonalityMode) domain.AccuracyMetrics {
	holdout := s.holdout
	trainLen := len(values) - holdout

	if holdout < 1 || trainLen < 2*seasonalPeriod {
		return domain.AccuracyMetrics{}
	}

	model, err := fitHoltWinters(values[:trainLen], seasonalPeriod, mode)
	if err != nil {
		logrus.WithError(err).Warn("Backtest indisponível: reajuste no histórico de treino falhou")
		return domain.AccuracyMetrics{}
	}

	predicted := model.forecast(holdout)
	actual := values[trainLen:]

	var absSum, sqSum, pctSum float64
	pctCount := 0
	for i, value := range actual {
		err := value - predicted[i]
		absSum += math.Abs(err)
		sqSum += err * err
		// MAPE é indefinido para períodos com valor real zero
		if value != 0 {
			pctSum += math.Abs(err / value)
			pctCount++
		}
	}

	n := float64(holdout)
	metrics := domain.AccuracyMetrics{
		MAE:     domain.NewMetric(absSum / n),
		RMSE:    domain.NewMetric(math.Sqrt(sqSum / n)),
		MAPE:    domain.MetricNA(),
		Holdout: holdout,
	}
	if pctCount > 0 {
		metrics.MAPE = domain.NewMetric(pctSum / float64(pctCount) * 100)
	}

	return metrics
}

// extractSeries materializa uma série numérica nomeada a partir do snapshot
func extractSeries(ds *domain.Dataset, name string) ([]float64, []time.Time, error) {
	switch name {
	case "revenue", "net_income", "opex", "gross_profit":
		values := make([]float64, len(ds.Financial))
		periods := make([]time.Time, len(ds.Financial))
		for i, record := range ds.Financial {
			switch name {
			case "revenue":
				values[i] = record.Revenue.InexactFloat64()
			case "net_income":
				values[i] = record.NetIncome.InexactFloat64()
			case "opex":
				values[i] = record.OperatingExpenses.InexactFloat64()
			case "gross_profit":
				values[i] = record.GrossProfit().InexactFloat64()
			}
			periods[i] = record.Period
		}
		return values, periods, nil

	case "operating_cf", "investing_cf", "financing_cf", "net_cf":
		values := make([]float64, len(ds.CashFlow))
		periods := make([]time.Time, len(ds.CashFlow))
		for i, record := range ds.CashFlow {
			switch name {
			case "operating_cf":
				values[i] = record.OperatingCF.InexactFloat64()
			case "investing_cf":
				values[i] = record.InvestingCF.InexactFloat64()
			case "financing_cf":
				values[i] = record.FinancingCF.InexactFloat64()
			case "net_cf":
				values[i] = record.NetCF().InexactFloat64()
			}
			periods[i] = record.Period
		}
		return values, periods, nil
	}

	return nil, nil, fmt.Errorf("série %q desconhecida", name)
}
