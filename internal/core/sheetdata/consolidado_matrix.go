package sheetdata

import (
	"github.com/fabricioasv/gestao-financeira/internal/domain"
)

// BuildConsolidadoMatrix é a variante do caminho de upload: a aba
// Consolidado chega como matriz crua do arquivo, com alias na coluna 0, id
// na coluna 1 e os meses da coluna 2 em diante, na ordem do cabeçalho.
//
// Diferente do caminho da API, a fatia posicional de investimentos é
// contada sobre a matriz inteira, cabeçalho incluído. Assimetria herdada
// da planilha de origem, mantida de propósito.
func BuildConsolidadoMatrix(matrix [][]any) *domain.Consolidado {
	if len(matrix) == 0 {
		return BuildConsolidado(domain.RowPayload{Shape: domain.ShapeMatrix})
	}

	months := []string{}
	for _, cell := range matrix[0][min(2, len(matrix[0])):] {
		if label := NormalizeHeaderName(cellString(cell)); label != "" {
			months = append(months, label)
		}
	}

	parsed := []domain.ConsolidadoRow{}
	for _, row := range DataRows(matrix) {
		rowMonths := make(map[string]float64, len(months))
		for i, month := range months {
			rowMonths[month] = NormalizeNumber(cellAt(row, i+2))
		}
		parsed = append(parsed, domain.ConsolidadoRow{
			Alias:  cellString(cellAt(row, 0)),
			ID:     cellString(cellAt(row, 1)),
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

	series := []domain.Series{}
	start := min(investmentStartRow, len(matrix))
	end := min(investmentEndRow, len(matrix))
	for _, row := range matrix[start:end] {
		alias := cellString(cellAt(row, 0))
		if alias == "" {
			continue
		}
		values := make([]float64, len(months))
		for i := range months {
			values[i] = NormalizeNumber(cellAt(row, i+2))
		}
		series = append(series, domain.Series{Label: alias, Values: values})
	}

	return &domain.Consolidado{
		Rows:        parsed,
		Months:      months,
		Totals:      totals,
		Investments: domain.InvestmentSeries{Labels: months, Series: series},
		Financial: domain.FinancialSeries{
			Labels:       months,
			Credits:      findMatrixRowValues(parsed, months, creditsAlias),
			Debits:       findMatrixRowValues(parsed, months, debitsAlias),
			Consolidated: findMatrixRowValues(parsed, months, consolidatedAlias),
		},
	}
}

func findMatrixRowValues(rows []domain.ConsolidadoRow, months []string, aliasTarget string) []float64 {
	target := normalizeText(aliasTarget)
	values := make([]float64, len(months))
	for _, row := range rows {
		if normalizeText(row.Alias) != target {
			continue
		}
		for i, month := range months {
			values[i] = row.Months[month]
		}
		break
	}
	return values
}

func cellAt(row []any, i int) any {
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}
