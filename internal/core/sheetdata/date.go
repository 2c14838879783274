package sheetdata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dayFirstRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)

// Layouts genéricos tentados em ordem quando o valor não é D/M/A explícito.
// Os cabeçalhos de Proventos chegam como datas serializadas pelo Apps
// Script ("Wed Jan 01 2023 ...").
var genericDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Mon Jan 02 2006 15:04:05",
	"Mon Jan 02 2006",
	"Mon Jan 2 2006",
	"Jan 02 2006",
}

// ResolveDate resolve o valor de uma célula para uma data de calendário.
// Números são tratados como serial de planilha (época 1900, com o bug
// histórico do ano bissexto preservado via base 1899-12-30). Strings
// D/M/AA(AA) são interpretadas como dia primeiro; anos de 2 dígitos viram
// 2000+AA. Demais strings passam pelos layouts genéricos. ok=false quando
// nada resolve; a linha dependente é descartada em silêncio.
func ResolveDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case float64:
		return excelSerialToDate(v), true
	case int:
		return excelSerialToDate(float64(v)), true
	case string:
		return resolveDateString(v)
	default:
		return time.Time{}, false
	}
}

func resolveDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if m := dayFirstRegex.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) <= 2 {
			year += 2000
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	}
	for _, layout := range genericDateLayouts {
		if len(s) >= len(layout) {
			if t, err := time.Parse(layout, s[:len(layout)]); err == nil {
				return t, true
			}
		}
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// excelSerialToDate converte um serial de planilha em data.
// Base 1899-12-30: compensa o 1900-02-29 inexistente que o Excel conta.
func excelSerialToDate(serial float64) time.Time {
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	frac := serial - float64(int64(serial))
	duration := time.Duration(int64(serial)*24) * time.Hour
	duration += time.Duration(frac * 24 * float64(time.Hour))
	return base.Add(duration)
}

// MonthKey deriva a chave canônica de agrupamento "AAAA-MM". A ordem
// lexicográfica dessas chaves coincide com a cronológica.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// DisplayLabel deriva o rótulo de exibição "dd/mm/aaaa".
func DisplayLabel(t time.Time) string {
	return t.Format("02/01/2006")
}

// isoTimestamp serializa a data no formato ISO usado nos lançamentos.
func isoTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000") + "Z"
}
