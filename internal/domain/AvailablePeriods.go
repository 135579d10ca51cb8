package domain

import "sort"

// AvailablePeriods representa os períodos mensais disponíveis no snapshot carregado
type AvailablePeriods struct {
	Periods []string `json:"periods"` // Lista de períodos no formato mm-yyyy
	Years   []string `json:"years"`   // Lista de anos únicos disponíveis
	Months  []string `json:"months"`  // Lista de meses únicos disponíveis
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
