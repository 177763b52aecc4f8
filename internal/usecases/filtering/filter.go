package filtering

import (
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// ByTimeRange devolve o subconjunto das vendas cuja data de pagamento cai em
// [início da janela, now], inclusive nas bordas. O início da janela é obtido
// por subtração de calendário a partir de now ("6m" = now menos 6 meses) e
// "ytd" ancora em 1º de janeiro do ano corrente.
//
// Vendas com data não interpretável são excluídas das janelas nomeadas.
// A janela "all" não aplica predicado algum, preservando inclusive as vendas
// sem data válida para os agrupamentos que não dependem de data.
//
// O filtro não guarda estado: é reavaliado por inteiro a cada chamada.
func ByTimeRange(sales []domain.Sale, rng domain.TimeRange, now time.Time) []domain.Sale {
	windowStart, bounded := rng.WindowStart(now)
	if !bounded {
		return sales
	}

	filtered := make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		paidAt, ok := utils.ParseFlexibleDate(sale.Date)
		if !ok {
			continue
		}

		if paidAt.Before(windowStart) || paidAt.After(now) {
			continue
		}

		filtered = append(filtered, sale)
	}

	return filtered
}
