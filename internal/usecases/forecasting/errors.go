package forecasting

import "fmt"

// InsufficientDataError indica que a série histórica é curta demais para o
// período sazonal solicitado. Recuperável: o chamador pode reduzir o período
// sazonal ou pular a previsão
type InsufficientDataError struct {
	SeasonalPeriod int
	Required       int
	Got            int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf(
		"série com %d observações é insuficiente: o período sazonal %d exige pelo menos %d (dois ciclos completos)",
		e.Got, e.SeasonalPeriod, e.Required)
}

// ConvergenceError indica que o ajuste do modelo não convergiu. Recuperável:
// o chamador pode tentar um modelo mais simples (ex: sazonalidade aditiva)
type ConvergenceError struct {
	Reason string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("ajuste do modelo não convergiu: %s", e.Reason)
}
