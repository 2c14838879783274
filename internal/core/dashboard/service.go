// package dashboard/service.go
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fabricioasv/gestao-financeira/internal/core/sheetdata"
	"github.com/fabricioasv/gestao-financeira/internal/domain"

	"golang.org/x/sync/errgroup"
)

// Abas que compõem a carga padrão do dashboard e o resumo da carteira.
const (
	sheetConsolidado        = "Consolidado"
	sheetProventos          = "Proventos"
	sheetCartaoDetalhe      = "Cartão-Detalhe"
	sheetAcoesCarteira      = "Ações-Carteira"
	sheetRendaProjetiva     = "Renda-Projetiva"
	sheetNetoInvest         = "Neto-Invest"
	sheetProventosRecebidos = "Proventos-Recebidos"
	sheetProventosAReceber  = "Proventos-A-Receber"
)

// Linha e coluna da Renda-Projetiva de onde sai a renda anual alvo.
const (
	rendaProjetivaKeyColumn   = "Dividendo por ação"
	rendaProjetivaValueColumn = "Renda anual esperada"
)

// Fetcher abstrai o cliente do Apps Script.
type Fetcher interface {
	FetchSheet(ctx context.Context, sheetName string) (json.RawMessage, error)
}

// Service compõe o dashboard transformado a partir das abas brutas.
type Service interface {
	BuildDashboard(ctx context.Context) (*domain.Dashboard, error)
	BuildPortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error)
}

type service struct {
	fetcher Fetcher
	now     func() time.Time
}

// NewService cria o serviço de composição do dashboard.
func NewService(fetcher Fetcher) Service {
	return &service{fetcher: fetcher, now: time.Now}
}

// BuildDashboard busca as abas da carga padrão em paralelo e aplica o
// pipeline de transformação de cada uma. Política tudo-ou-nada: qualquer
// falha de busca derruba a composição inteira, sem resultado parcial.
func (s *service) BuildDashboard(ctx context.Context) (*domain.Dashboard, error) {
	names := []string{
		sheetConsolidado,
		sheetProventos,
		sheetCartaoDetalhe,
		sheetAcoesCarteira,
		sheetRendaProjetiva,
		sheetNetoInvest,
	}

	payloads := make([]json.RawMessage, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			data, err := s.fetcher.FetchSheet(gctx, name)
			if err != nil {
				return fmt.Errorf("falha ao buscar aba %s: %w", name, err)
			}
			payloads[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	decoded := make([]domain.RowPayload, len(payloads))
	for i, raw := range payloads {
		p, err := sheetdata.DecodePayload(raw)
		if err != nil {
			return nil, fmt.Errorf("payload inválido da aba %s: %w", names[i], err)
		}
		decoded[i] = p
	}

	proventos := sheetdata.BuildProventos(decoded[1])
	rendaAnual := expectedAnnualIncome(decoded[4])

	dash := &domain.Dashboard{
		Consolidado:        sheetdata.BuildConsolidado(decoded[0]),
		Proventos:          proventos,
		CartaoDetalhe:      sheetdata.BuildLedger(decoded[2]),
		Stocks:             sheetdata.BuildPortfolio(decoded[3]),
		NetoInvest:         sheetdata.BuildPortfolio(decoded[5]),
		RendaAnualEsperada: rendaAnual,
	}
	if rendaAnual != nil {
		dash.ProventosOverlay = sheetdata.ExpectedRemainder(proventos, *rendaAnual, s.now().Year())
	}
	return dash, nil
}

// BuildPortfolioSummary busca a carteira e as abas de proventos recebidos
// e a receber e monta o quadro resumo do ano corrente. Mesma política
// tudo-ou-nada da composição do dashboard.
func (s *service) BuildPortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error) {
	names := []string{
		sheetAcoesCarteira,
		sheetProventosRecebidos,
		sheetProventosAReceber,
	}

	payloads := make([]json.RawMessage, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			data, err := s.fetcher.FetchSheet(gctx, name)
			if err != nil {
				return fmt.Errorf("falha ao buscar aba %s: %w", name, err)
			}
			payloads[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([][]domain.RawRow, len(payloads))
	for i, raw := range payloads {
		p, err := sheetdata.DecodePayload(raw)
		if err != nil {
			return nil, fmt.Errorf("payload inválido da aba %s: %w", names[i], err)
		}
		rows[i] = sheetdata.ToKeyedRows(p)
	}

	return sheetdata.BuildPortfolioSummary(rows[0], rows[1], rows[2], s.now().Year()), nil
}

// expectedAnnualIncome extrai a renda anual alvo da Renda-Projetiva: o
// valor da coluna "Renda anual esperada" na linha cuja coluna "Dividendo
// por ação" carrega esse mesmo rótulo. Sem linha correspondente, nil.
func expectedAnnualIncome(p domain.RowPayload) *float64 {
	for _, row := range sheetdata.ToKeyedRows(p) {
		if row[rendaProjetivaKeyColumn] != rendaProjetivaValueColumn {
			continue
		}
		value := sheetdata.NormalizeNumber(row[rendaProjetivaValueColumn])
		return &value
	}
	return nil
}
