package utils

import "time"

// ParsePeriod interpreta um período mensal no formato yyyy-mm, normalizado
// para o primeiro dia do mês em UTC
func ParsePeriod(periodStr string) (time.Time, error) {
	period, err := time.Parse("2006-01", periodStr)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(period.Year(), period.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}
