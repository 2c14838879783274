package sheetdata

import (
	"encoding/json"
	"testing"

	"github.com/fabricioasv/gestao-financeira/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartaoPayload(t *testing.T) domain.RowPayload {
	t.Helper()
	raw := json.RawMessage(`[
		{"Fatura": "10/01/2025", "Data": "05/01/2025", "Estabelecimento": "Mercado X", "Estabelecimento Fmt": "MERCADO X LTDA", "Valor": "150,75", "Grupo": "Mercado", "Cartão": "Nubank"},
		{"Fatura": "10/01/2025", "Data": "", "Estabelecimento": "Padaria Y", "Estabelecimento Fmt": "", "Valor": 30.25, "Grupo": "", "Cartão": ""},
		{"Fatura": "", "Data": "06/01/2025", "Estabelecimento": "Sem Fatura", "Estabelecimento Fmt": "", "Valor": 99, "Grupo": "Lazer", "Cartão": "Inter"},
		{"Fatura": "não é data", "Data": "07/01/2025", "Estabelecimento": "Fatura Ruim", "Estabelecimento Fmt": "", "Valor": 10, "Grupo": "Lazer", "Cartão": "Inter"},
		{"Fatura": "10/02/2025", "Data": "28/01/2025", "Estabelecimento": "Farmácia Z", "Estabelecimento Fmt": "", "Valor": "45,00", "Grupo": "Saúde", "Cartão": "Nubank"}
	]`)
	p, err := DecodePayload(raw)
	require.NoError(t, err)
	return p
}

func TestBuildLedger(t *testing.T) {
	entries := BuildLedger(cartaoPayload(t))

	// Linhas sem fatura ou com fatura não parseável são descartadas inteiras.
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, "10/01/2025", first.Fatura)
	assert.Equal(t, "2025-01-10T00:00:00.000Z", first.FaturaDate)
	assert.Equal(t, "2025-01-05T00:00:00.000Z", first.Data)
	assert.Equal(t, "2025-01", first.MonthKey)
	// A coluna de exibição "Estabelecimento Fmt" não é a de dados.
	assert.Equal(t, "Mercado X", first.Estabelecimento)
	assert.Equal(t, "Mercado", first.Grupo)
	assert.Equal(t, 150.75, first.Valor)
	assert.Equal(t, "Nubank", first.Cartao)

	// Sem data de compra, vale a data da fatura; grupo e cartão em branco
	// recebem os defaults.
	second := entries[1]
	assert.Equal(t, second.FaturaDate, second.Data)
	assert.Equal(t, "Outros", second.Grupo)
	assert.Equal(t, "Cartão", second.Cartao)

	third := entries[2]
	assert.Equal(t, "2025-02", third.MonthKey)
	assert.Equal(t, 45.0, third.Valor)
}

func TestBuildLedgerMissingRequiredColumns(t *testing.T) {
	raw := json.RawMessage(`[{"Data": "10/01/2025", "Grupo": "Mercado"}]`)
	p, err := DecodePayload(raw)
	require.NoError(t, err)

	assert.Empty(t, BuildLedger(p))
}

func TestBuildLedgerUnparseableValue(t *testing.T) {
	raw := json.RawMessage(`[{"Fatura": "10/01/2025", "Valor": "abc"}]`)
	p, err := DecodePayload(raw)
	require.NoError(t, err)

	entries := BuildLedger(p)
	require.Len(t, entries, 1)
	assert.Equal(t, 0.0, entries[0].Valor)
}

func TestLedgerTotals(t *testing.T) {
	entries := BuildLedger(cartaoPayload(t))

	byGroup := TotalsByGroup(entries)
	assert.Equal(t, 150.75, byGroup["Mercado"])
	assert.Equal(t, 30.25, byGroup["Outros"])
	assert.Equal(t, 45.0, byGroup["Saúde"])

	byMonth := TotalsByMonth(entries)
	assert.InDelta(t, 181.0, byMonth["2025-01"], 1e-9)
	assert.Equal(t, 45.0, byMonth["2025-02"])

	assert.Equal(t, []string{"2025-01", "2025-02"}, LedgerMonths(entries))
	assert.Equal(t, []string{"Mercado", "Outros", "Saúde"}, LedgerGroups(entries))
}

func TestBuildLedgerMatrixShape(t *testing.T) {
	raw := json.RawMessage(`[
		["Fatura", "Data", "Estabelecimento", "Valor", "Grupo", "Cartão"],
		["10/01/2025", "05/01/2025", "Mercado X", "150,75", "Mercado", "Nubank"]
	]`)
	p, err := DecodePayload(raw)
	require.NoError(t, err)

	entries := BuildLedger(p)
	require.Len(t, entries, 1)
	assert.Equal(t, "Mercado X", entries[0].Estabelecimento)
	assert.Equal(t, 150.75, entries[0].Valor)
}
