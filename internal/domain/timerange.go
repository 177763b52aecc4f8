package domain

import (
	"fmt"
	"time"
)

// TimeRange é uma janela de tempo nomeada usada pelos filtros do dashboard
type TimeRange string

const (
	TimeRangeAll        TimeRange = "all"
	TimeRange3Months    TimeRange = "3m"
	TimeRange6Months    TimeRange = "6m"
	TimeRange12Months   TimeRange = "12m"
	TimeRangeYearToDate TimeRange = "ytd"
)

// ParseTimeRange interpreta o parâmetro de janela de tempo da API.
// Vazio equivale a "all".
func ParseTimeRange(s string) (TimeRange, error) {
	switch s {
	case "", string(TimeRangeAll):
		return TimeRangeAll, nil
	case string(TimeRange3Months):
		return TimeRange3Months, nil
	case string(TimeRange6Months):
		return TimeRange6Months, nil
	case string(TimeRange12Months):
		return TimeRange12Months, nil
	case string(TimeRangeYearToDate):
		return TimeRangeYearToDate, nil
	}

	return "", fmt.Errorf("janela de tempo desconhecida: %q", s)
}

// WindowStart calcula o início da janela por subtração de calendário a partir
// de now. Retorna ok=false quando a janela é ilimitada ("all").
func (t TimeRange) WindowStart(now time.Time) (time.Time, bool) {
	switch t {
	case TimeRange3Months:
		return now.AddDate(0, -3, 0), true
	case TimeRange6Months:
		return now.AddDate(0, -6, 0), true
	case TimeRange12Months:
		return now.AddDate(0, -12, 0), true
	case TimeRangeYearToDate:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	}

	return time.Time{}, false
}
