package sheetdata

import (
	"sort"
	"strings"

	"github.com/fabricioasv/gestao-financeira/internal/domain"
)

// Defaults aplicados quando a planilha não traz grupo ou cartão.
const (
	defaultGrupo  = "Outros"
	defaultCartao = "Cartão"
)

// cartaoColumns guarda os índices resolvidos das colunas da aba
// Cartão-Detalhe. -1 marca coluna ausente.
type cartaoColumns struct {
	fatura int
	data   int
	estab  int
	valor  int
	grupo  int
	cartao int
}

// resolveCartaoColumns localiza as colunas por contenção de substring após
// normalização, exceto "data" (igualdade) e "estabelecimento" (prefixo,
// ignorando a variante com sufixo "fmt" usada só para exibição).
func resolveCartaoColumns(headers []string) cartaoColumns {
	cols := cartaoColumns{
		fatura: FindColumnContains(headers, "fatura"),
		data:   -1,
		estab:  -1,
		valor:  FindColumnContains(headers, "valor"),
		grupo:  FindColumnContains(headers, "grupo"),
		cartao: FindColumnContains(headers, "cart"),
	}
	for i, h := range headers {
		norm := normalizeText(h)
		if cols.data == -1 && norm == "data" {
			cols.data = i
		}
		if cols.estab == -1 && strings.HasPrefix(norm, "estabelecimento") && !strings.Contains(norm, "fmt") {
			cols.estab = i
		}
	}
	return cols
}

// BuildLedger converte as linhas cruas de extrato de cartão em lançamentos
// normalizados. É um filter-map: a linha inteira é descartada quando a
// fatura está vazia, o valor não resolve ou a data da fatura não parseia.
// Nenhuma data parcial ou defaultada é aceita.
func BuildLedger(p domain.RowPayload) []domain.LedgerEntry {
	cols := resolveCartaoColumns(p.Headers)
	entries := []domain.LedgerEntry{}
	if cols.fatura == -1 || cols.valor == -1 {
		return entries
	}

	for _, row := range payloadCells(p) {
		faturaRaw := cellAt(row, cols.fatura)
		if cellFalsy(faturaRaw) {
			continue
		}
		// NormalizeNumber nunca devolve NaN; valor não parseável vira 0
		// e o lançamento entra zerado, como na origem.
		valor := NormalizeNumber(cellAt(row, cols.valor))
		faturaDate, ok := ResolveDate(faturaRaw)
		if !ok {
			continue
		}

		dataCompra := faturaDate
		if cols.data >= 0 {
			if t, ok := ResolveDate(cellAt(row, cols.data)); ok {
				dataCompra = t
			}
		}

		grupo := defaultGrupo
		if cols.grupo >= 0 && !cellEmpty(cellAt(row, cols.grupo)) {
			grupo = cellString(cellAt(row, cols.grupo))
		}
		cartao := defaultCartao
		if cols.cartao >= 0 && !cellEmpty(cellAt(row, cols.cartao)) {
			cartao = cellString(cellAt(row, cols.cartao))
		}
		estab := ""
		if cols.estab >= 0 {
			estab = cellString(cellAt(row, cols.estab))
		}

		entries = append(entries, domain.LedgerEntry{
			Fatura:          DisplayLabel(faturaDate),
			FaturaDate:      isoTimestamp(faturaDate),
			Data:            isoTimestamp(dataCompra),
			MonthKey:        MonthKey(faturaDate),
			Estabelecimento: estab,
			Grupo:           grupo,
			Valor:           valor,
			Cartao:          cartao,
		})
	}
	return entries
}

// payloadCells reduz os dois formatos a linhas posicionais alinhadas com
// p.Headers, para acesso por índice de coluna.
func payloadCells(p domain.RowPayload) [][]any {
	if p.Shape == domain.ShapeMatrix {
		return p.Matrix
	}
	rows := make([][]any, 0, len(p.Keyed))
	for _, keyed := range p.Keyed {
		row := make([]any, len(p.Headers))
		for i, h := range p.Headers {
			row[i] = keyed[h]
		}
		rows = append(rows, row)
	}
	return rows
}

// TotalsByGroup soma os lançamentos por grupo.
func TotalsByGroup(entries []domain.LedgerEntry) map[string]float64 {
	totals := map[string]float64{}
	for _, e := range entries {
		totals[e.Grupo] += e.Valor
	}
	return totals
}

// TotalsByMonth soma os lançamentos por chave de mês da fatura.
func TotalsByMonth(entries []domain.LedgerEntry) map[string]float64 {
	totals := map[string]float64{}
	for _, e := range entries {
		totals[e.MonthKey] += e.Valor
	}
	return totals
}

// LedgerMonths devolve as chaves de mês distintas em ordem cronológica
// (a ordem lexicográfica de AAAA-MM coincide com a do calendário).
func LedgerMonths(entries []domain.LedgerEntry) []string {
	seen := map[string]bool{}
	months := []string{}
	for _, e := range entries {
		if !seen[e.MonthKey] {
			seen[e.MonthKey] = true
			months = append(months, e.MonthKey)
		}
	}
	sort.Strings(months)
	return months
}

// LedgerGroups devolve os grupos distintos em ordem alfabética.
func LedgerGroups(entries []domain.LedgerEntry) []string {
	seen := map[string]bool{}
	groups := []string{}
	for _, e := range entries {
		if !seen[e.Grupo] {
			seen[e.Grupo] = true
			groups = append(groups, e.Grupo)
		}
	}
	sort.Strings(groups)
	return groups
}
