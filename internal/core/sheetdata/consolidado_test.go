package sheetdata

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/fabricioasv/gestao-financeira/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consolidadoPayload(t *testing.T) domain.RowPayload {
	t.Helper()
	rows := []map[string]any{
		{"Alias": "Créditos Realizado", "Id": "cred", "25-01": "1000,50", "25-02": 2000.0},
		{"Alias": "Débitos Realizado", "Id": "deb", "25-01": "-300,25", "25-02": -400.0},
		{"Alias": "[C] Consolidado", "Id": "cons", "25-01": 700.25, "25-02": 1600.0},
	}
	raw, err := json.Marshal(rows)
	require.NoError(t, err)
	p, err := DecodePayload(raw)
	require.NoError(t, err)
	return p
}

func TestBuildConsolidado(t *testing.T) {
	c := BuildConsolidado(consolidadoPayload(t))

	assert.Equal(t, []string{"25-01", "25-02"}, c.Months)
	require.Len(t, c.Rows, 3)
	assert.Equal(t, "Créditos Realizado", c.Rows[0].Alias)
	assert.Equal(t, 1000.50, c.Rows[0].Months["25-01"])

	assert.InDelta(t, 1400.50, c.Totals["25-01"], 1e-9)
	assert.InDelta(t, 3200.0, c.Totals["25-02"], 1e-9)

	assert.Equal(t, []string{"25-01", "25-02"}, c.Financial.Labels)
	assert.Equal(t, []float64{1000.50, 2000.0}, c.Financial.Credits)
	assert.Equal(t, []float64{-300.25, -400.0}, c.Financial.Debits)
	assert.Equal(t, []float64{700.25, 1600.0}, c.Financial.Consolidated)
}

func TestBuildConsolidadoAliasWithoutAccent(t *testing.T) {
	raw := json.RawMessage(`[
		{"Alias": "creditos realizado", "Id": "c", "25-01": 10},
		{"Alias": "DÉBITOS REALIZADO", "Id": "d", "25-01": -5}
	]`)
	p, err := DecodePayload(raw)
	require.NoError(t, err)

	c := BuildConsolidado(p)
	assert.Equal(t, []float64{10}, c.Financial.Credits)
	assert.Equal(t, []float64{-5}, c.Financial.Debits)
	// Sem linha "[C] Consolidado": série zerada do tamanho dos meses.
	assert.Equal(t, []float64{0}, c.Financial.Consolidated)
}

func TestBuildConsolidadoEmpty(t *testing.T) {
	c := BuildConsolidado(domain.RowPayload{Shape: domain.ShapeKeyed})
	assert.Empty(t, c.Rows)
	assert.Empty(t, c.Months)
	assert.Empty(t, c.Totals)
	assert.Empty(t, c.Investments.Series)
	assert.Empty(t, c.Financial.Credits)
}

func TestBuildConsolidadoInvestmentSlice(t *testing.T) {
	// 35 linhas; a faixa de investimentos é posicional (índices 26-31).
	rows := make([]map[string]any, 35)
	for i := range rows {
		rows[i] = map[string]any{"Alias": fmt.Sprintf("Linha %d", i), "Id": fmt.Sprintf("r%d", i), "25-01": float64(i)}
	}
	rows[28]["Alias"] = "" // alias vazio dentro da faixa é filtrado
	raw, err := json.Marshal(rows)
	require.NoError(t, err)
	p, err := DecodePayload(raw)
	require.NoError(t, err)

	c := BuildConsolidado(p)
	require.Len(t, c.Investments.Series, 5)
	assert.Equal(t, "Linha 26", c.Investments.Series[0].Label)
	assert.Equal(t, "Linha 31", c.Investments.Series[4].Label)
	assert.Equal(t, []float64{26}, c.Investments.Series[0].Values)
}

func TestBuildConsolidadoInvestmentSliceShortSheet(t *testing.T) {
	c := BuildConsolidado(consolidadoPayload(t))
	// Planilha com menos de 27 linhas: faixa vazia, sem pânico.
	assert.Empty(t, c.Investments.Series)
	assert.Equal(t, []string{"25-01", "25-02"}, c.Investments.Labels)
}
