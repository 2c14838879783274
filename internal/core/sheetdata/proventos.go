package sheetdata

import (
	"sort"
	"strings"

	"github.com/fabricioasv/gestao-financeira/internal/domain"
)

// Colunas agregadas da aba Proventos que nunca entram na lista de meses.
// A coluna de nome vazio carrega o ano.
var proventosReservedColumns = map[string]bool{
	"":               true,
	"Total":          true,
	"Média":          true,
	"~ Mensal (Ano)": true,
	"Variação":       true,
}

// Abreviações inglesas embutidas nos cabeçalhos de data do Apps Script,
// na ordem canônica do ano, e seus rótulos curtos em português.
var monthAbbrevOrder = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var monthAbbrevPT = map[string]string{
	"Jan": "jan", "Feb": "fev", "Mar": "mar", "Apr": "abr",
	"May": "mai", "Jun": "jun", "Jul": "jul", "Aug": "ago",
	"Sep": "set", "Oct": "out", "Nov": "nov", "Dec": "dez",
}

// BuildProventos transforma a aba Proventos (linhas por ano, colunas por
// mês) no mapa ano -> 12 valores mensais, com rótulos curtos localizados.
//
// A ordem dos meses vem do índice da abreviação inglesa encontrada em cada
// cabeçalho; cabeçalho sem mês reconhecível recebe índice -1 e ordena
// primeiro, preservando entre si a ordem original. Comportamento literal da
// origem, possivelmente não intencional, mantido até segunda ordem.
func BuildProventos(p domain.RowPayload) *domain.Proventos {
	rows := ToKeyedRows(p)
	out := &domain.Proventos{
		Years:        []int{},
		Months:       []string{},
		ValuesByYear: map[int][]float64{},
		ByYear:       map[int]*domain.ProventosAno{},
	}
	if len(rows) == 0 {
		return out
	}

	monthKeys := make([]string, 0, len(p.Headers))
	for _, key := range p.Headers {
		if !proventosReservedColumns[key] {
			monthKeys = append(monthKeys, key)
		}
	}
	sort.SliceStable(monthKeys, func(i, j int) bool {
		return monthAbbrevIndex(monthKeys[i]) < monthAbbrevIndex(monthKeys[j])
	})

	for _, key := range monthKeys {
		out.Months = append(out.Months, shortMonthLabel(key))
	}

	for _, row := range rows {
		yearCell := row[""]
		if cellFalsy(yearCell) {
			continue
		}
		year := int(NormalizeNumber(yearCell))
		if year == 0 {
			continue
		}
		values := make([]float64, len(monthKeys))
		var total float64
		for i, key := range monthKeys {
			values[i] = NormalizeNumber(row[key])
			total += values[i]
		}
		out.Years = append(out.Years, year)
		out.ValuesByYear[year] = values
		out.ByYear[year] = &domain.ProventosAno{Year: year, Values: values, Total: total}
	}

	applyVariacao(out)
	return out
}

// monthAbbrevIndex devolve o índice canônico (0-11) da primeira abreviação
// inglesa contida no cabeçalho, ou -1 quando nenhuma aparece.
func monthAbbrevIndex(header string) int {
	for i, abbrev := range monthAbbrevOrder {
		if strings.Contains(header, abbrev) {
			return i
		}
	}
	return -1
}

// shortMonthLabel localiza o cabeçalho para o rótulo curto pt-BR; sem mês
// reconhecível, ficam os três primeiros caracteres do próprio cabeçalho.
func shortMonthLabel(header string) string {
	for _, abbrev := range monthAbbrevOrder {
		if strings.Contains(header, abbrev) {
			return monthAbbrevPT[abbrev]
		}
	}
	runes := []rune(header)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

// applyVariacao calcula a variação percentual do total entre anos
// consecutivos, em ordem de ano. O primeiro ano fica em zero.
func applyVariacao(p *domain.Proventos) {
	years := make([]int, len(p.Years))
	copy(years, p.Years)
	sort.Ints(years)
	for i, year := range years {
		if i == 0 {
			continue
		}
		prev := p.ByYear[years[i-1]]
		cur := p.ByYear[year]
		if prev == nil || cur == nil || prev.Total == 0 {
			continue
		}
		cur.Variacao = Round((cur.Total-prev.Total)/prev.Total*100, 2)
	}
}

// ExpectedRemainder monta a sobreposição "esperado vs recebido": para o
// ano corrente, o quanto falta para a renda anual alvo (nunca negativo);
// para os demais anos, zero. Alinhada 1:1 com Years.
func ExpectedRemainder(p *domain.Proventos, expected float64, currentYear int) []float64 {
	overlay := make([]float64, len(p.Years))
	for i, year := range p.Years {
		if year != currentYear {
			continue
		}
		var received float64
		for _, v := range p.ValuesByYear[year] {
			received += v
		}
		if remainder := expected - received; remainder > 0 {
			overlay[i] = remainder
		}
	}
	return overlay
}
