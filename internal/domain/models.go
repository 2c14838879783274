// package domain/models.go
package domain

import "encoding/json"

// RawRow é uma linha já normalizada: nome de coluna -> valor da célula.
type RawRow map[string]any

// PayloadShape identifica o formato bruto retornado pelo Apps Script.
type PayloadShape int

// Formatos aceitos de payload por aba.
const (
	ShapeUnknown PayloadShape = iota
	ShapeKeyed                // array de objetos, colunas como chaves
	ShapeMatrix               // array de arrays, primeira linha é cabeçalho
)

// RowPayload é a união explícita dos dois formatos de payload, resolvida
// uma única vez na borda. Dentro de uma mesma aba o formato nunca mistura.
type RowPayload struct {
	Shape   PayloadShape
	Keyed   []RawRow
	Headers []string
	Matrix  [][]any
}

// ConsolidadoRow é uma linha da aba Consolidado reduzida a alias/id/meses.
type ConsolidadoRow struct {
	Alias  string             `json:"alias"`
	ID     string             `json:"id"`
	Months map[string]float64 `json:"months"`
}

// Series é uma sequência nomeada de valores alinhada 1:1 com os meses.
type Series struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// FinancialSeries agrupa as séries de créditos, débitos e consolidado.
type FinancialSeries struct {
	Labels       []string  `json:"labels"`
	Credits      []float64 `json:"credits"`
	Debits       []float64 `json:"debits"`
	Consolidated []float64 `json:"consolidated"`
}

// InvestmentSeries agrupa as séries de investimento extraídas por posição.
type InvestmentSeries struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// Consolidado é o resultado completo da transformação da aba Consolidado.
type Consolidado struct {
	Rows        []ConsolidadoRow   `json:"rows"`
	Months      []string           `json:"months"`
	Totals      map[string]float64 `json:"totals"`
	Investments InvestmentSeries   `json:"investments"`
	Financial   FinancialSeries    `json:"financial"`
}

// ProventosAno é a linha de um ano na aba Proventos, com totais derivados.
type ProventosAno struct {
	Year     int       `json:"year"`
	Values   []float64 `json:"values"`
	Total    float64   `json:"total"`
	Variacao float64   `json:"variacao"`
}

// Proventos é o resultado da transformação da aba Proventos.
type Proventos struct {
	Years        []int                 `json:"years"`
	Months       []string              `json:"months"`
	ValuesByYear map[int][]float64     `json:"valuesByYear"`
	ByYear       map[int]*ProventosAno `json:"byYear"`
}

// LedgerEntry é um lançamento normalizado da aba Cartão-Detalhe.
// Valor positivo = despesa (débito).
type LedgerEntry struct {
	Fatura          string  `json:"fatura"`
	FaturaDate      string  `json:"faturaDate"`
	Data            string  `json:"data"`
	MonthKey        string  `json:"monthKey"`
	Estabelecimento string  `json:"estabelecimento"`
	Grupo           string  `json:"grupo"`
	Valor           float64 `json:"valor"`
	Cartao          string  `json:"cartao"`
}

// PortfolioTable é a aba Ações-Carteira (ou Neto-Invest) já formatada.
type PortfolioTable struct {
	Headers []string `json:"headers"`
	Rows    []RawRow `json:"rows"`
}

// PortfolioSummary é o quadro resumo da carteira.
type PortfolioSummary struct {
	TotalInvestido      float64            `json:"totalInvestido"`
	ProventosProjetados float64            `json:"proventosProjetados"`
	RecebidosAnoAtual   float64            `json:"recebidosAnoAtual"`
	Pendentes           float64            `json:"pendentes"`
	RecebidosPorTicker  map[string]float64 `json:"recebidosPorTicker"`
	PendentesPorTicker  map[string]float64 `json:"pendentesPorTicker"`
}

// Dashboard é a composição de todas as abas transformadas, consumida
// diretamente pela camada de apresentação.
type Dashboard struct {
	Consolidado        *Consolidado    `json:"consolidado"`
	Proventos          *Proventos      `json:"proventos"`
	CartaoDetalhe      []LedgerEntry   `json:"cartaoDetalhe"`
	Stocks             *PortfolioTable `json:"stocks"`
	NetoInvest         *PortfolioTable `json:"netoInvest"`
	RendaAnualEsperada *float64        `json:"rendaAnualEsperada"`
	// ProventosOverlay é a barra de resto "esperado vs recebido" do ano
	// corrente, alinhada com Proventos.Years. Vazia sem renda alvo.
	ProventosOverlay []float64 `json:"proventosOverlay,omitempty"`
}

// SheetError é o marcador inline de falha por aba no agregado tolerante.
type SheetError struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// SheetResult carrega o payload bruto de uma aba ou seu erro inline.
type SheetResult struct {
	Data json.RawMessage
	Err  error
}
