package sheetdata

import (
	"sort"

	"github.com/fabricioasv/gestao-financeira/internal/domain"
)

// Colunas de identidade da aba Consolidado; todas as demais são meses.
const (
	aliasColumn = "Alias"
	idColumn    = "Id"
)

// Aliases fixos das linhas que alimentam as séries financeiras, comparados
// sem acento e sem caixa.
const (
	creditsAlias      = "Créditos Realizado"
	debitsAlias       = "Débitos Realizado"
	consolidatedAlias = "[C] Consolidado"
)

// Faixa posicional das linhas de investimento (linhas 27 a 32 da planilha,
// índices 26-31). Contrato rígido com o layout da planilha: inserir uma
// linha acima da 27 desloca a fatia sem aviso. Mantido literalmente.
const (
	investmentStartRow = 26
	investmentEndRow   = 32
)

// BuildConsolidado transforma as linhas chaveadas da aba Consolidado em
// totais por mês, séries financeiras nomeadas e séries de investimento.
func BuildConsolidado(p domain.RowPayload) *domain.Consolidado {
	rows := ToKeyedRows(p)
	if len(rows) == 0 {
		return &domain.Consolidado{
			Rows:        []domain.ConsolidadoRow{},
			Months:      []string{},
			Totals:      map[string]float64{},
			Investments: domain.InvestmentSeries{Labels: []string{}, Series: []domain.Series{}},
			Financial:   domain.FinancialSeries{Labels: []string{}, Credits: []float64{}, Debits: []float64{}, Consolidated: []float64{}},
		}
	}

	months := monthColumns(rows[0])

	parsed := make([]domain.ConsolidadoRow, 0, len(rows))
	for _, row := range rows {
		rowMonths := make(map[string]float64, len(months))
		for _, month := range months {
			rowMonths[month] = NormalizeNumber(row[month])
		}
		parsed = append(parsed, domain.ConsolidadoRow{
			Alias:  cellString(row[aliasColumn]),
			ID:     cellString(row[idColumn]),
			Months: rowMonths,
		})
	}

	totals := make(map[string]float64, len(months))
	for _, month := range months {
		var sum float64
		for _, row := range parsed {
			sum += row.Months[month]
		}
		totals[month] = sum
	}

	financial := domain.FinancialSeries{
		Labels:       months,
		Credits:      findRowValues(rows, months, creditsAlias),
		Debits:       findRowValues(rows, months, debitsAlias),
		Consolidated: findRowValues(rows, months, consolidatedAlias),
	}

	return &domain.Consolidado{
		Rows:        parsed,
		Months:      months,
		Totals:      totals,
		Investments: investmentSeries(rows, months),
		Financial:   financial,
	}
}

// monthColumns extrai os meses das chaves da primeira linha, fora as duas
// colunas de identidade, em ordem lexicográfica ascendente. As chaves
// "AA-MM" da planilha ordenam cronologicamente sem reordenação de
// calendário.
func monthColumns(first domain.RawRow) []string {
	months := make([]string, 0, len(first))
	for key := range first {
		if key == aliasColumn || key == idColumn {
			continue
		}
		months = append(months, key)
	}
	sort.Strings(months)
	return months
}

// findRowValues localiza a única linha cujo alias bate com o alvo após
// normalização de acento/caixa e lê seus valores mensais. Sem linha
// correspondente, devolve uma série toda zerada do tamanho certo.
func findRowValues(rows []domain.RawRow, months []string, aliasTarget string) []float64 {
	target := normalizeText(aliasTarget)
	var match domain.RawRow
	for _, row := range rows {
		if normalizeText(cellString(row[aliasColumn])) == target {
			match = row
			break
		}
	}
	values := make([]float64, len(months))
	if match == nil {
		return values
	}
	for i, month := range months {
		values[i] = NormalizeNumber(match[month])
	}
	return values
}

// investmentSeries monta as séries de investimento a partir da fatia
// posicional fixa, filtrada às linhas com alias preenchido.
func investmentSeries(rows []domain.RawRow, months []string) domain.InvestmentSeries {
	start := investmentStartRow
	end := investmentEndRow
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	series := []domain.Series{}
	for _, row := range rows[start:end] {
		alias := cellString(row[aliasColumn])
		if alias == "" {
			continue
		}
		values := make([]float64, len(months))
		for i, month := range months {
			values[i] = NormalizeNumber(row[month])
		}
		series = append(series, domain.Series{Label: alias, Values: values})
	}
	return domain.InvestmentSeries{Labels: months, Series: series}
}
