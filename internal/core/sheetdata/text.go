package sheetdata

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// normalizeText remove acentos, baixa a caixa e apara espaços. É a base de
// toda comparação tolerante de cabeçalhos e aliases.
func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, str)
	return strings.ToLower(strings.TrimSpace(result))
}

// NormalizeHeaderName colapsa espaços internos e quebras de linha em um
// único espaço e apara as pontas. Não mexe em acentos nem caixa.
func NormalizeHeaderName(raw string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(raw, " "))
}

// FindColumn procura logicalName entre os cabeçalhos por igualdade exata
// após NormalizeHeaderName. Usado para colunas de identidade (Alias, Id).
func FindColumn(headers []string, logicalName string) (string, bool) {
	want := NormalizeHeaderName(logicalName)
	for _, h := range headers {
		if NormalizeHeaderName(h) == want {
			return h, true
		}
	}
	return "", false
}

// FindColumnContains procura o primeiro cabeçalho que contenha needle após
// normalização de acentos e caixa. Retorna -1 quando nenhum cabeçalho
// serve; o extrator dependente deve tratar a coluna como inutilizável.
func FindColumnContains(headers []string, needle string) int {
	want := normalizeText(needle)
	for i, h := range headers {
		if strings.Contains(normalizeText(h), want) {
			return i
		}
	}
	return -1
}
