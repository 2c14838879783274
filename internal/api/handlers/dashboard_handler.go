// internal/api/handlers/dashboard_handler.go
package handlers

import (
	"net/http"

	"github.com/fabricioasv/gestao-financeira/internal/api/responses"
	"github.com/fabricioasv/gestao-financeira/internal/core/dashboard"

	"github.com/gin-gonic/gin"
)

// DashboardHandler lida com a rota do dashboard composto.
type DashboardHandler struct {
	service dashboard.Service
}

// NewDashboardHandler cria um novo handler de dashboard.
func NewDashboardHandler(service dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// HandleDashboard monta o dashboard transformado. Tudo-ou-nada: qualquer
// aba que falhe derruba a resposta, sem renderização parcial.
func (h *DashboardHandler) HandleDashboard(c *gin.Context) {
	dash, err := h.service.BuildDashboard(c.Request.Context())
	if err != nil {
		responses.Error(c, http.StatusBadGateway, "Erro ao compor o dashboard", err.Error())
		return
	}
	responses.Success(c, dash, "Dashboard composto com sucesso")
}

// HandlePortfolioSummary monta o quadro resumo da carteira do ano corrente.
func (h *DashboardHandler) HandlePortfolioSummary(c *gin.Context) {
	summary, err := h.service.BuildPortfolioSummary(c.Request.Context())
	if err != nil {
		responses.Error(c, http.StatusBadGateway, "Erro ao compor o resumo da carteira", err.Error())
		return
	}
	responses.Success(c, summary, "Resumo da carteira composto com sucesso")
}
