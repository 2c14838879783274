// Package workbook lê a planilha enviada por upload (.xlsx ou .xls) e a
// reduz à mesma matriz que o Apps Script devolveria para a aba
// Consolidado, alimentando o mesmo pipeline de transformação.
package workbook

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/schollz/closestmatch"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ConsolidadoTab é a aba procurada no arquivo enviado.
const ConsolidadoTab = "Consolidado"

// LoadConsolidado abre o arquivo enviado e devolve a matriz crua da aba
// Consolidado. A aba é localizada por nome exato, depois por comparação
// normalizada (sem acento/caixa) e por fim pelo nome mais próximo, já que
// planilhas de usuário trazem variações como "consolidado " ou
// "Consolidados".
func LoadConsolidado(file io.Reader, filename string) ([][]any, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo enviado: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return loadXLSX(data)
	case ".xls":
		return loadXLS(data)
	default:
		return nil, fmt.Errorf("formato de arquivo não suportado: %s", ext)
	}
}

func loadXLSX(data []byte) ([][]any, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir .xlsx: %w", err)
	}
	defer f.Close()

	name, err := resolveTab(f.GetSheetList())
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler aba %s: %w", name, err)
	}
	return toMatrix(rows), nil
}

func loadXLS(data []byte) ([][]any, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		// alguns .xls renomeados são xlsx; tentar excelize antes de desistir
		if _, errX := excelize.OpenReader(bytes.NewReader(data)); errX == nil {
			return loadXLSX(data)
		}
		return nil, fmt.Errorf("erro ao abrir .xls: %w", err)
	}

	var names []string
	for _, sheet := range workbook.GetSheets() {
		names = append(names, sheet.GetName())
	}
	name, err := resolveTab(names)
	if err != nil {
		return nil, err
	}

	for i, sheet := range workbook.GetSheets() {
		if names[i] != name {
			continue
		}
		var rows [][]string
		for _, row := range sheet.GetRows() {
			var cells []string
			for _, cell := range row.GetCols() {
				cells = append(cells, cell.GetString())
			}
			rows = append(rows, cells)
		}
		return toMatrix(rows), nil
	}
	return nil, fmt.Errorf("aba %s não encontrada no arquivo .xls", name)
}

// resolveTab localiza a aba Consolidado entre os nomes disponíveis.
func resolveTab(names []string) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("o arquivo não contém planilhas")
	}
	for _, name := range names {
		if name == ConsolidadoTab {
			return name, nil
		}
	}
	want := normalizeTabName(ConsolidadoTab)
	for _, name := range names {
		if normalizeTabName(name) == want {
			return name, nil
		}
	}
	normalized := make([]string, len(names))
	byNormalized := make(map[string]string, len(names))
	for i, name := range names {
		normalized[i] = normalizeTabName(name)
		byNormalized[normalized[i]] = name
	}
	cm := closestmatch.New(normalized, []int{3, 4, 5})
	if match := cm.Closest(want); match != "" {
		return byNormalized[match], nil
	}
	return "", fmt.Errorf("aba %s não encontrada na planilha", ConsolidadoTab)
}

func normalizeTabName(name string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, name)
	return strings.ToLower(strings.TrimSpace(result))
}

func toMatrix(rows [][]string) [][]any {
	matrix := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		matrix[i] = cells
	}
	return matrix
}
