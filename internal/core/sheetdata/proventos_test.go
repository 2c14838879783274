package sheetdata

import (
	"encoding/json"
	"testing"

	"github.com/fabricioasv/gestao-financeira/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proventosPayload(t *testing.T, raw string) domain.RowPayload {
	t.Helper()
	p, err := DecodePayload(json.RawMessage(raw))
	require.NoError(t, err)
	return p
}

func TestBuildProventos(t *testing.T) {
	p := proventosPayload(t, `[
		{"": 2023, "Wed Feb 01 2023": 10, "Sun Jan 01 2023": 20, "Total": 30, "Média": 15},
		{"": 2024, "Wed Feb 01 2023": 40, "Sun Jan 01 2023": 5, "Total": 45, "Média": 22.5}
	]`)

	out := BuildProventos(p)

	// Colunas reordenadas pelo mês embutido no cabeçalho, não pela ordem
	// do documento; agregadas ficam de fora.
	assert.Equal(t, []string{"jan", "fev"}, out.Months)
	assert.Equal(t, []int{2023, 2024}, out.Years)
	assert.Equal(t, []float64{20, 10}, out.ValuesByYear[2023])
	assert.Equal(t, []float64{5, 40}, out.ValuesByYear[2024])

	require.NotNil(t, out.ByYear[2023])
	assert.Equal(t, 30.0, out.ByYear[2023].Total)
	assert.Equal(t, 0.0, out.ByYear[2023].Variacao)
	require.NotNil(t, out.ByYear[2024])
	assert.Equal(t, 45.0, out.ByYear[2024].Total)
	assert.Equal(t, 50.0, out.ByYear[2024].Variacao)
}

func TestBuildProventosUnrecognizedHeaderSortsFirst(t *testing.T) {
	p := proventosPayload(t, `[
		{"": 2024, "Mon Jan 01 2024": 1, "Coluna Estranha": 7, "Thu Feb 01 2024": 2}
	]`)

	out := BuildProventos(p)
	// Cabeçalho sem mês reconhecível recebe índice -1 e ordena antes de
	// todos; o rótulo vira os três primeiros caracteres do próprio nome.
	assert.Equal(t, []string{"Col", "jan", "fev"}, out.Months)
	assert.Equal(t, []float64{7, 1, 2}, out.ValuesByYear[2024])
}

func TestBuildProventosSkipsRowsWithoutYear(t *testing.T) {
	p := proventosPayload(t, `[
		{"": 2024, "Mon Jan 01 2024": 1},
		{"": "", "Mon Jan 01 2024": 99},
		{"": 0, "Mon Jan 01 2024": 99},
		{"": "não é ano", "Mon Jan 01 2024": 99}
	]`)

	out := BuildProventos(p)
	assert.Equal(t, []int{2024}, out.Years)
}

func TestBuildProventosEmpty(t *testing.T) {
	out := BuildProventos(domain.RowPayload{Shape: domain.ShapeKeyed})
	assert.Empty(t, out.Years)
	assert.Empty(t, out.Months)
	assert.Empty(t, out.ValuesByYear)
}

func TestExpectedRemainder(t *testing.T) {
	out := BuildProventos(proventosPayload(t, `[
		{"": 2023, "Mon Jan 01 2024": 100},
		{"": 2024, "Mon Jan 01 2024": 300}
	]`))

	overlay := ExpectedRemainder(out, 1000, 2024)
	assert.Equal(t, []float64{0, 700}, overlay)

	// Recebido acima do esperado não fica negativo.
	overlay = ExpectedRemainder(out, 200, 2024)
	assert.Equal(t, []float64{0, 0}, overlay)

	// Ano corrente fora da planilha: tudo zero.
	overlay = ExpectedRemainder(out, 1000, 2030)
	assert.Equal(t, []float64{0, 0}, overlay)
}
