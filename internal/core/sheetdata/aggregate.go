package sheetdata

import (
	"fmt"
	"sort"
	"time"

	"github.com/fabricioasv/gestao-financeira/internal/domain"
)

// SumByColumn soma uma coluna numérica sobre um conjunto de linhas.
func SumByColumn(rows []domain.RawRow, column string) float64 {
	var sum float64
	for _, row := range rows {
		sum += NormalizeNumber(row[column])
	}
	return sum
}

// SumValues soma todos os valores de um mapa de totais.
func SumValues(totals map[string]float64) float64 {
	var sum float64
	for _, v := range totals {
		sum += v
	}
	return sum
}

// SortRowsByDateDesc ordena as linhas pela coluna de data dd/mm/aaaa, mais
// recente primeiro. Linhas sem data parseável vão para o fim, na ordem em
// que chegaram.
func SortRowsByDateDesc(rows []domain.RawRow, column string) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, oki := ResolveDate(rows[i][column])
		tj, okj := ResolveDate(rows[j][column])
		if oki != okj {
			return oki
		}
		return ti.After(tj)
	})
}

// CurrentMonth devolve o mês corrente no formato de coluna da planilha
// ("25-MM"). O prefixo de ano fixo é herdado da planilha de origem, cujas
// colunas do Consolidado são todas do ciclo "25-".
func CurrentMonth(now time.Time) string {
	return fmt.Sprintf("25-%02d", int(now.Month()))
}

// IsFutureMonth diz se o rótulo de mês é posterior ao mês corrente. Vale a
// comparação lexicográfica dos rótulos "25-MM".
func IsFutureMonth(label string, now time.Time) bool {
	return label > CurrentMonth(now)
}
