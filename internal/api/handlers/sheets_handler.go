// internal/api/handlers/sheets_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/fabricioasv/gestao-financeira/internal/api/responses"
	"github.com/fabricioasv/gestao-financeira/internal/upstream/appsscript"

	"github.com/gin-gonic/gin"
)

// sheetAliases mapeia os nomes de rota fixos para o nome real da tab na
// planilha. Nomes fora do mapa passam direto (rota genérica).
var sheetAliases = map[string]string{
	"consolidado":         "Consolidado",
	"proventos":           "Proventos",
	"cartao-previsao":     "Cartão-Previsão",
	"cartao-detalhe":      "Cartão-Detalhe",
	"cartao-forecast":     "Cartão-Forecast",
	"acoes-carteira":      "Ações-Carteira",
	"renda-projetiva":     "Renda-Projetiva",
	"proventos-recebidos": "Proventos-Recebidos",
	"proventos-a-receber": "Proventos-A-Receber",
	"neto-invest":         "Neto-Invest",
}

// SheetsHandler lida com as rotas de acesso bruto às abas.
type SheetsHandler struct {
	client *appsscript.Client
}

// NewSheetsHandler cria um novo handler de abas.
func NewSheetsHandler(client *appsscript.Client) *SheetsHandler {
	return &SheetsHandler{client: client}
}

// HandleDados devolve o payload completo do Apps Script sem transformação.
func (h *SheetsHandler) HandleDados(c *gin.Context) {
	data, err := h.client.FetchRaw(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, appsscript.ErrLoginPage) {
			status = http.StatusBadGateway
		}
		responses.Error(c, status, "Erro ao buscar dados do Apps Script", err.Error())
		return
	}
	responses.Raw(c, data)
}

// HandleSheetByName devolve o payload bruto de uma aba, resolvendo o alias
// de rota quando houver.
func (h *SheetsHandler) HandleSheetByName(c *gin.Context) {
	name := c.Param("name")
	if tab, ok := sheetAliases[name]; ok {
		name = tab
	}

	data, err := h.client.FetchSheet(c.Request.Context(), name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, appsscript.ErrLoginPage) {
			status = http.StatusBadGateway
		}
		responses.Error(c, status, "Erro ao buscar dados da aba "+name, err.Error())
		return
	}
	responses.Raw(c, data)
}

// HandleAllSheets devolve o agregado de todas as abas conhecidas. Falha de
// aba individual vira marcador {error:true,message} dentro do corpo; a
// resposta em si é sempre 200.
func (h *SheetsHandler) HandleAllSheets(c *gin.Context) {
	c.JSON(http.StatusOK, h.client.FetchAllSheets(c.Request.Context()))
}

// HandleSheetsList devolve a lista de abas conhecidas.
func (h *SheetsHandler) HandleSheetsList(c *gin.Context) {
	c.JSON(http.StatusOK, appsscript.AvailableSheets)
}
