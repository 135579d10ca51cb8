package domain

import (
	"encoding/json"
	"math"
)

// Metric representa um valor numérico derivado que pode ser "não aplicável" (N/A).
// Um Metric inválido serializa como null no JSON, nunca como zero, NaN ou Inf.
// O contrato é que "sem valor" seja sempre distinguível de "zero".
type Metric struct {
	Value float64
	Valid bool
}

// NewMetric cria um Metric válido com o valor informado
func NewMetric(value float64) Metric {
	return Metric{Value: value, Valid: true}
}

// MetricNA cria um Metric "não aplicável"
func MetricNA() Metric {
	return Metric{}
}

// Ratio calcula num/den retornando N/A quando o denominador é zero
// ou quando o resultado não é finito
func Ratio(num, den float64) Metric {
	if den == 0 {
		return MetricNA()
	}

	value := num / den
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return MetricNA()
	}

	return NewMetric(value)
}

// Mul devolve o Metric multiplicado por um fator, preservando N/A
func (m Metric) Mul(factor float64) Metric {
	if !m.Valid {
		return m
	}
	return NewMetric(m.Value * factor)
}

// MarshalJSON serializa N/A como null
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON interpreta null como N/A
func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metric{}
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	*m = NewMetric(value)
	return nil
}
