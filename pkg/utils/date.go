package utils

import (
	"strings"
	"time"
)

// Layouts aceitos para as datas de pagamento vindas da planilha.
// A interpretação dia-primeiro sempre vence para os formatos com barra.
var flexibleDateLayouts = []string{
	"02/01/2006",
	"02/01/2006 15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseFlexibleDate tenta interpretar uma data em formatos heterogêneos.
// Retorna ok=false quando nenhum formato conhecido casa; nunca retorna erro.
func ParseFlexibleDate(dateStr string) (time.Time, bool) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, false
	}

	for _, layout := range flexibleDateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
