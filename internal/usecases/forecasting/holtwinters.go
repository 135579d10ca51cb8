package forecasting

import (
	"fmt"
	"math"

	"github.com/vfg2006/finance-dashboard-api/internal/domain"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// holtWintersModel é o modelo de suavização exponencial com três componentes
// (nível, tendência aditiva e sazonalidade aditiva ou multiplicativa) já
// ajustado a uma série histórica
type holtWintersModel struct {
	seasonalPeriod int
	mode           domain.SeasonalityMode

	alpha float64
	beta  float64
	gamma float64

	level       float64
	trend       float64
	seasonal    []float64
	observed    int
	residualStd float64
	sse         float64
}

// fitHoltWinters ajusta o modelo à série. Os parâmetros de suavização são
// escolhidos por Nelder-Mead minimizando a soma dos quadrados dos resíduos.
// Todo o processo é determinístico: inicialização fixa e otimizador sem
// componente aleatório
func fitHoltWinters(series []float64, seasonalPeriod int, mode domain.SeasonalityMode) (*holtWintersModel, error) {
	if len(series) < 2*seasonalPeriod {
		return nil, &InsufficientDataError{
			SeasonalPeriod: seasonalPeriod,
			Required:       2 * seasonalPeriod,
			Got:            len(series),
		}
	}

	if mode == domain.SeasonalityMultiplicative {
		for _, value := range series {
			if value <= 0 {
				return nil, &ConvergenceError{
					Reason: "sazonalidade multiplicativa exige valores estritamente positivos; use o modo aditivo",
				}
			}
		}
	}

	initial, err := initialState(series, seasonalPeriod, mode)
	if err != nil {
		return nil, err
	}

	// Parametrização sigmoide mantém alpha/beta/gamma dentro de (0, 1)
	// sem impor restrições ao otimizador
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			sse := smooth(series, seasonalPeriod, mode, initial,
				sigmoid(x[0]), sigmoid(x[1]), sigmoid(x[2]), nil, nil)
			if math.IsNaN(sse) {
				return math.Inf(1)
			}
			return sse
		},
	}

	// Ponto inicial em 0 corresponde a alpha = beta = gamma = 0.5
	result, err := optimize.Minimize(problem, []float64{0, 0, 0}, &optimize.Settings{}, &optimize.NelderMead{})
	if err != nil {
		return nil, &ConvergenceError{Reason: err.Error()}
	}

	successStatuses := map[optimize.Status]bool{
		optimize.Success:             true,
		optimize.FunctionConvergence: true,
		optimize.GradientThreshold:   true,
	}
	if !successStatuses[result.Status] {
		return nil, &ConvergenceError{Reason: fmt.Sprintf("status do otimizador: %v", result.Status)}
	}

	alpha, beta, gamma := sigmoid(result.X[0]), sigmoid(result.X[1]), sigmoid(result.X[2])
	if !isFinite(alpha) || !isFinite(beta) || !isFinite(gamma) || !isFinite(result.F) {
		return nil, &ConvergenceError{Reason: "otimizador produziu parâmetros não finitos"}
	}

	model := &holtWintersModel{
		seasonalPeriod: seasonalPeriod,
		mode:           mode,
		alpha:          alpha,
		beta:           beta,
		gamma:          gamma,
		observed:       len(series),
	}

	// Passada final com os parâmetros ajustados para capturar o estado e os resíduos
	state := &smoothState{}
	residuals := make([]float64, 0, len(series))
	model.sse = smooth(series, seasonalPeriod, mode, initial, alpha, beta, gamma, state, &residuals)
	model.level = state.level
	model.trend = state.trend
	model.seasonal = state.seasonal
	model.residualStd = stat.StdDev(residuals, nil)

	if !isFinite(model.level) || !isFinite(model.trend) {
		return nil, &ConvergenceError{Reason: "estado final do modelo não é finito"}
	}

	return model, nil
}

// forecast projeta h passos à frente a partir do estado final do modelo
func (m *holtWintersModel) forecast(horizon int) []float64 {
	values := make([]float64, horizon)
	for k := 1; k <= horizon; k++ {
		seasonalFactor := m.seasonal[(m.observed+k-1)%m.seasonalPeriod]
		base := m.level + float64(k)*m.trend
		if m.mode == domain.SeasonalityMultiplicative {
			values[k-1] = base * seasonalFactor
		} else {
			values[k-1] = base + seasonalFactor
		}
	}
	return values
}

// initialState calcula o estado inicial determinístico: nível pela média do
// primeiro ciclo, tendência pela diferença entre as médias dos dois primeiros
// ciclos e fatores sazonais pelo primeiro ciclo contra o nível
func initialState(series []float64, seasonalPeriod int, mode domain.SeasonalityMode) (*smoothState, error) {
	firstCycle := stat.Mean(series[:seasonalPeriod], nil)
	secondCycle := stat.Mean(series[seasonalPeriod:2*seasonalPeriod], nil)

	seasonal := make([]float64, seasonalPeriod)
	for i := 0; i < seasonalPeriod; i++ {
		if mode == domain.SeasonalityMultiplicative {
			if firstCycle == 0 {
				return nil, &ConvergenceError{Reason: "nível inicial zero impede fatores sazonais multiplicativos"}
			}
			seasonal[i] = series[i] / firstCycle
		} else {
			seasonal[i] = series[i] - firstCycle
		}
	}

	return &smoothState{
		level:    firstCycle,
		trend:    (secondCycle - firstCycle) / float64(seasonalPeriod),
		seasonal: seasonal,
	}, nil
}

type smoothState struct {
	level    float64
	trend    float64
	seasonal []float64
}

// smooth executa a recursão de Holt-Winters sobre a série e devolve a soma
// dos quadrados dos resíduos. Quando state/residuals não são nil, o estado
// final e os resíduos da passada são copiados para fora
func smooth(
	series []float64,
	seasonalPeriod int,
	mode domain.SeasonalityMode,
	initial *smoothState,
	alpha, beta, gamma float64,
	state *smoothState,
	residuals *[]float64,
) float64 {
	level := initial.level
	trend := initial.trend
	seasonal := make([]float64, seasonalPeriod)
	copy(seasonal, initial.seasonal)

	var sse float64
	for t, value := range series {
		idx := t % seasonalPeriod
		seasonalFactor := seasonal[idx]

		var fitted float64
		if mode == domain.SeasonalityMultiplicative {
			fitted = (level + trend) * seasonalFactor
		} else {
			fitted = level + trend + seasonalFactor
		}

		residual := value - fitted
		sse += residual * residual
		if residuals != nil {
			*residuals = append(*residuals, residual)
		}

		previousLevel := level
		if mode == domain.SeasonalityMultiplicative {
			if seasonalFactor == 0 {
				return math.NaN()
			}
			level = alpha*(value/seasonalFactor) + (1-alpha)*(previousLevel+trend)
			trend = beta*(level-previousLevel) + (1-beta)*trend
			if level == 0 {
				return math.NaN()
			}
			seasonal[idx] = gamma*(value/level) + (1-gamma)*seasonalFactor
		} else {
			level = alpha*(value-seasonalFactor) + (1-alpha)*(previousLevel+trend)
			trend = beta*(level-previousLevel) + (1-beta)*trend
			seasonal[idx] = gamma*(value-level) + (1-gamma)*seasonalFactor
		}
	}

	if state != nil {
		state.level = level
		state.trend = trend
		state.seasonal = seasonal
	}

	return sse
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
