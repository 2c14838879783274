package sheetdata

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fabricioasv/gestao-financeira/internal/domain"
)

// Colunas da aba Ações-Carteira com regra de formatação própria. Qualquer
// outra coluna passa intocada pelo extrator escalar genérico.
var (
	// DecimalColumns são arredondadas para duas casas.
	DecimalColumns = []string{"R$ Alvo Neto", "R$ Alvo 12%", "R$ Base p/ PT", "Desvio PL Proj.", "Div. Proj."}
	// DateColumns são reapresentadas como dd/mm/aa.
	DateColumns = []string{"Última Atual."}
)

var looseDateRegex = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)

// BuildPortfolio transforma a aba Ações-Carteira (ou Neto-Invest, tratada
// de forma idêntica) em tabela formatada para exibição.
func BuildPortfolio(p domain.RowPayload) *domain.PortfolioTable {
	rows := ToKeyedRows(p)
	formatted := make([]domain.RawRow, 0, len(rows))
	for _, row := range rows {
		formatted = append(formatted, FormatPortfolioRow(row, DecimalColumns, DateColumns))
	}
	headers := p.Headers
	if headers == nil {
		headers = []string{}
	}
	return &domain.PortfolioTable{Headers: headers, Rows: formatted}
}

// FormatPortfolioRow aplica as regras de formatação por nome de coluna
// (igualdade exata contra os conjuntos fixos). Toda falha de parse é
// engolida e o valor original devolvido: nenhuma célula ruim pode abortar
// a formatação da tabela inteira.
func FormatPortfolioRow(row domain.RawRow, decimalColumns, dateColumns []string) domain.RawRow {
	decimals := make(map[string]bool, len(decimalColumns))
	for _, c := range decimalColumns {
		decimals[c] = true
	}
	dates := make(map[string]bool, len(dateColumns))
	for _, c := range dateColumns {
		dates[c] = true
	}

	out := make(domain.RawRow, len(row))
	for column, value := range row {
		switch {
		case decimals[column]:
			out[column] = FormatDecimalValue(value)
		case dates[column]:
			out[column] = FormatDateValue(value)
		default:
			out[column] = scalarValue(value)
		}
	}
	return out
}

// FormatDecimalValue arredonda para duas casas, aceitando número nativo ou
// string com vírgula decimal. Idempotente: formatar duas vezes dá o mesmo
// resultado. Valor não parseável volta como chegou.
func FormatDecimalValue(value any) any {
	switch v := value.(type) {
	case float64:
		return Round(v, 2)
	case int:
		return Round(float64(v), 2)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return value
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Round(f, 2)
		}
		if f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64); err == nil {
			return Round(f, 2)
		}
		return value
	default:
		return value
	}
}

// FormatDateValue reapresenta a célula como dd/mm/aa tentando, nesta
// ordem: serial de planilha, parse genérico de data e extração por regex
// de D/M/A com reescrita do ano em dois dígitos. Sem sucesso, devolve o
// valor original.
func FormatDateValue(value any) any {
	switch v := value.(type) {
	case float64:
		return excelSerialToDate(v).Format("02/01/06")
	case int:
		return excelSerialToDate(float64(v)).Format("02/01/06")
	case time.Time:
		return v.Format("02/01/06")
	case string:
		if t, ok := resolveDateString(v); ok {
			return t.Format("02/01/06")
		}
		if m := looseDateRegex.FindStringSubmatch(v); m != nil {
			year := m[3]
			if len(year) == 4 {
				year = year[2:]
			}
			return padTwo(m[1]) + "/" + padTwo(m[2]) + "/" + year
		}
		return value
	default:
		return value
	}
}

func padTwo(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// scalarValue é o extrator genérico: escalares JSON passam direto e
// qualquer outra coisa vira string.
func scalarValue(value any) any {
	switch value.(type) {
	case nil, string, float64, bool:
		return value
	case int, int64, float32:
		return value
	default:
		return cellString(value)
	}
}

// BuildPortfolioSummary monta o quadro resumo da carteira: total
// investido, proventos projetados, recebidos no ano de referência e
// pendentes, com os rollups por ticker. As colunas são resolvidas por
// contenção, na mesma política do extrator de cartão.
func BuildPortfolioSummary(carteira, recebidos, aReceber []domain.RawRow, year int) *domain.PortfolioSummary {
	summary := &domain.PortfolioSummary{
		RecebidosPorTicker: map[string]float64{},
		PendentesPorTicker: map[string]float64{},
	}

	for _, row := range carteira {
		amount := NormalizeNumber(lookupContains(row, "amount"))
		price := NormalizeNumber(lookupContains(row, "price"))
		summary.TotalInvestido += amount * price
		summary.ProventosProjetados += NormalizeNumber(lookupContains(row, "div. proj"))
	}

	for _, row := range recebidos {
		if int(NormalizeNumber(lookupContains(row, "referencia"))) != year {
			continue
		}
		ticker := cellString(lookupContains(row, "ticker"))
		if ticker == "" {
			continue
		}
		summary.RecebidosPorTicker[ticker] += NormalizeNumber(lookupContains(row, "valor"))
	}
	for _, v := range summary.RecebidosPorTicker {
		summary.RecebidosAnoAtual += v
	}

	for _, row := range aReceber {
		valor := NormalizeNumber(lookupContains(row, "valor"))
		summary.Pendentes += valor
		if ticker := cellString(lookupContains(row, "ticker")); ticker != "" {
			summary.PendentesPorTicker[ticker] += valor
		}
	}

	return summary
}

// lookupContains acha o valor da primeira coluna (em ordem alfabética de
// nome, já que o mapa não preserva a ordem da planilha) cujo nome contenha
// needle após normalização, ou nil.
func lookupContains(row domain.RawRow, needle string) any {
	want := normalizeText(needle)
	columns := make([]string, 0, len(row))
	for column := range row {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	for _, column := range columns {
		if strings.Contains(normalizeText(column), want) {
			return row[column]
		}
	}
	return nil
}
