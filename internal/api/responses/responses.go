// internal/api/responses/responses.go
package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var logger *zap.Logger

// APIResponse define o envelope padrão das respostas da API.
type APIResponse struct {
	Status  string   `json:"status"` // "success" ou "error"
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// InitLogger inicializa o logger estruturado das respostas.
func InitLogger() {
	logger, _ = zap.NewProduction()
}

// Logger expõe o logger compartilhado para as demais camadas.
func Logger() *zap.Logger {
	if logger == nil {
		InitLogger()
	}
	return logger
}

// Success envia uma resposta de sucesso com dados e mensagem.
func Success(c *gin.Context, data any, message string) {
	resp := APIResponse{Status: "success", Data: data, Message: message}
	c.JSON(http.StatusOK, resp)
	logger.Info("API success", zap.String("path", c.Request.URL.Path), zap.Int("status", http.StatusOK))
}

// Raw envia um payload JSON bruto sem envelope, preservando o corpo que o
// Apps Script devolveu.
func Raw(c *gin.Context, data []byte) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	logger.Info("API raw passthrough", zap.String("path", c.Request.URL.Path), zap.Int("bytes", len(data)))
}

// Error envia uma resposta de erro com código, mensagem e detalhes.
func Error(c *gin.Context, code int, message string, errs ...string) {
	resp := APIResponse{Status: "error", Message: message, Errors: errs}
	c.JSON(code, resp)
	logger.Error("API error", zap.String("path", c.Request.URL.Path), zap.Int("status", code), zap.Strings("errors", errs))
}
