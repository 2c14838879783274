// Package appsscript fala com o endpoint Google Apps Script que publica a
// planilha como JSON. Cada aba é um GET com o parâmetro "sheet".
package appsscript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fabricioasv/gestao-financeira/internal/domain"

	"go.uber.org/zap"
)

// ErrLoginPage marca a resposta HTML que o Google devolve quando o script
// não está publicado como "qualquer pessoa". É erro de configuração, não
// de parse.
var ErrLoginPage = errors.New("o Apps Script devolveu uma página HTML; verifique se o script está publicado para acesso anônimo")

// ErrNotJSON marca corpo que não é JSON válido.
var ErrNotJSON = errors.New("resposta do Apps Script não é JSON válido")

// AvailableSheets são as abas conhecidas da planilha, na ordem em que o
// dashboard as consome.
var AvailableSheets = []string{
	"Consolidado",
	"Proventos",
	"Cartão-Previsão",
	"Cartão-Detalhe",
	"Cartão-Forecast",
	"Ações-Carteira",
	"Renda-Projetiva",
	"Proventos-Recebidos",
	"Proventos-A-Receber",
	"Neto-Invest",
}

// Client é o cliente HTTP do Apps Script.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// New cria um cliente para a URL publicada do script.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}
}

// FetchRaw busca o payload completo (sem parâmetro de aba).
func (c *Client) FetchRaw(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "")
}

// FetchSheet busca o payload bruto de uma aba pelo nome da tab.
func (c *Client) FetchSheet(ctx context.Context, sheetName string) (json.RawMessage, error) {
	return c.get(ctx, sheetName)
}

// FetchAllSheets busca todas as abas conhecidas em paralelo com política
// tolerante: falha de uma aba vira um marcador {error:true,message} dentro
// do agregado, nunca derruba a resposta inteira.
func (c *Client) FetchAllSheets(ctx context.Context) map[string]any {
	var mu sync.Mutex
	var wg sync.WaitGroup
	out := make(map[string]any, len(AvailableSheets))

	for _, name := range AvailableSheets {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			data, err := c.FetchSheet(ctx, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.logger.Warn("falha ao buscar aba no agregado",
					zap.String("sheet", name), zap.Error(err))
				out[name] = domain.SheetError{Error: true, Message: err.Error()}
				return
			}
			out[name] = data
		}(name)
	}

	wg.Wait()
	return out
}

func (c *Client) get(ctx context.Context, sheetName string) (json.RawMessage, error) {
	target := c.baseURL
	if sheetName != "" {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + "sheet=" + url.QueryEscape(sheetName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao montar requisição ao Apps Script: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar dados do Apps Script: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do Apps Script: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Apps Script respondeu HTTP %d", resp.StatusCode)
	}

	trimmed := strings.TrimSpace(string(body))
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		return nil, ErrLoginPage
	}
	if !json.Valid(body) {
		return nil, ErrNotJSON
	}

	return json.RawMessage(body), nil
}
