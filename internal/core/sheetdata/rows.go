package sheetdata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fabricioasv/gestao-financeira/internal/domain"
)

// DecodePayload resolve o formato bruto de uma aba uma única vez na borda:
// array de objetos (colunas como chaves) ou matriz com cabeçalho na
// primeira linha. Dentro de uma aba o formato nunca mistura. Para o formato
// de objetos os cabeçalhos são extraídos do primeiro objeto na ordem do
// documento, já que mapas em Go não preservam ordem de chave.
func DecodePayload(raw json.RawMessage) (domain.RowPayload, error) {
	var keyed []domain.RawRow
	if err := json.Unmarshal(raw, &keyed); err == nil {
		headers, err := firstObjectKeys(raw)
		if err != nil {
			return domain.RowPayload{}, err
		}
		return domain.RowPayload{Shape: domain.ShapeKeyed, Keyed: keyed, Headers: headers}, nil
	}

	var matrix [][]any
	if err := json.Unmarshal(raw, &matrix); err == nil {
		return domain.RowPayload{
			Shape:   domain.ShapeMatrix,
			Headers: ExtractHeaderRow(matrix),
			Matrix:  DataRows(matrix),
		}, nil
	}

	return domain.RowPayload{}, fmt.Errorf("payload da aba não é array de objetos nem matriz")
}

// firstObjectKeys varre o primeiro objeto do array com o decoder de tokens
// para recuperar os nomes de coluna na ordem original.
func firstObjectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // [
		return nil, err
	}
	if !dec.More() {
		return nil, nil
	}
	if _, err := dec.Token(); err != nil { // {
		return nil, err
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("chave de coluna inesperada: %v", tok)
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// ExtractHeaderRow devolve a primeira linha da matriz como cabeçalhos,
// células não textuais convertidas e aparadas. Cabeçalho em branco fica "".
func ExtractHeaderRow(matrix [][]any) []string {
	if len(matrix) == 0 {
		return nil
	}
	headers := make([]string, len(matrix[0]))
	for i, cell := range matrix[0] {
		headers[i] = NormalizeHeaderName(cellString(cell))
	}
	return headers
}

// DataRows devolve as linhas de dados da matriz (tudo após o cabeçalho),
// descartando linhas inteiramente vazias.
func DataRows(matrix [][]any) [][]any {
	if len(matrix) <= 1 {
		return nil
	}
	var rows [][]any
	for _, row := range matrix[1:] {
		empty := true
		for _, cell := range row {
			if !cellEmpty(cell) {
				empty = false
				break
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

// ToKeyedRows reduz os dois formatos à representação uniforme de linhas
// chaveadas. Para matrizes, cabeçalhos em branco ganham a chave posicional
// col_{índice}.
func ToKeyedRows(p domain.RowPayload) []domain.RawRow {
	if p.Shape == domain.ShapeKeyed {
		return p.Keyed
	}
	keys := make([]string, len(p.Headers))
	for i, h := range p.Headers {
		if h == "" {
			keys[i] = fmt.Sprintf("col_%d", i)
		} else {
			keys[i] = h
		}
	}
	rows := make([]domain.RawRow, 0, len(p.Matrix))
	for _, raw := range p.Matrix {
		row := make(domain.RawRow, len(keys))
		for i, key := range keys {
			if i < len(raw) {
				row[key] = raw[i]
			} else {
				row[key] = nil
			}
		}
		rows = append(rows, row)
	}
	return rows
}
