// internal/api/handlers/upload_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/fabricioasv/gestao-financeira/internal/api/responses"
	"github.com/fabricioasv/gestao-financeira/internal/core/sheetdata"
	"github.com/fabricioasv/gestao-financeira/internal/core/workbook"

	"github.com/gin-gonic/gin"
)

// UploadHandler lida com o caminho alternativo de upload de planilha.
type UploadHandler struct {
	maxBytes int64
}

// NewUploadHandler cria um novo handler de upload.
func NewUploadHandler(maxBytes int64) *UploadHandler {
	return &UploadHandler{maxBytes: maxBytes}
}

// HandleUpload recebe um .xlsx/.xls e devolve a aba Consolidado já
// transformada, pelo mesmo pipeline da carga via API.
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo de planilha (.xlsx, .xls) não encontrado ou inválido")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Formato inválido: %s. Envie um arquivo .xlsx ou .xls.", ext))
		return
	}
	if fileHeader.Size > h.maxBytes {
		responses.Error(c, http.StatusBadRequest, "Arquivo maior que 10MB. Escolha um arquivo menor.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo enviado")
		return
	}
	defer file.Close()

	matrix, err := workbook.LoadConsolidado(file, fileHeader.Filename)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Erro ao interpretar a planilha", err.Error())
		return
	}

	responses.Success(c, sheetdata.BuildConsolidadoMatrix(matrix), "Planilha processada com sucesso")
}
