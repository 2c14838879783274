package sheetdata

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeNumber converte o valor de uma célula em float64. Nulo vira 0,
// números passam direto e strings trocam a primeira vírgula por ponto antes
// do parse. Falha de parse vira 0; esta função nunca erra.
//
// Não há suporte a separador de milhar: "1.234,56" vira "1.234.56" e o
// parse falha (0). Fragilidade conhecida da planilha de origem, mantida
// intencionalmente.
func NormalizeNumber(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		s := strings.Replace(v, ",", ".", 1)
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Round arredonda para o número de casas indicado.
func Round(val float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(val*pow) / pow
}

// ToPercent converte uma proporção (0-1) em percentual com duas casas.
func ToPercent(val float64) float64 {
	return Round(val*100, 2)
}

// cellString converte um escalar de célula para string no formato que a
// camada de apresentação espera (números inteiros sem casa decimal).
func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// cellEmpty diz se a célula conta como vazia para fins de descarte de linha.
func cellEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

// cellFalsy reproduz a noção de "falsy" usada nos descartes do extrator de
// cartão: vazio, zero numérico ou booleano falso.
func cellFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case float64:
		return v == 0
	case int:
		return v == 0
	case bool:
		return !v
	default:
		return false
	}
}
