// cmd/dashboard/main.go
package main

import (
	"log"
	"net/http"

	"github.com/fabricioasv/gestao-financeira/internal/api/handlers"
	"github.com/fabricioasv/gestao-financeira/internal/api/responses"
	"github.com/fabricioasv/gestao-financeira/internal/config"
	"github.com/fabricioasv/gestao-financeira/internal/core/dashboard"
	"github.com/fabricioasv/gestao-financeira/internal/upstream/appsscript"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Configuração inválida: ", err)
	}

	responses.InitLogger()

	client := appsscript.New(cfg.GoogleAppsScriptURL, cfg.UpstreamTimeout, responses.Logger())
	dashboardService := dashboard.NewService(client)

	sheetsHandler := handlers.NewSheetsHandler(client)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	uploadHandler := handlers.NewUploadHandler(cfg.MaxUploadBytes)

	router := gin.Default()
	router.Use(corsMiddleware())

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/dados", sheetsHandler.HandleDados)
		apiV1.GET("/sheets", sheetsHandler.HandleAllSheets)
		apiV1.GET("/sheets-list", sheetsHandler.HandleSheetsList)
		apiV1.GET("/sheets/:name", sheetsHandler.HandleSheetByName)
		apiV1.GET("/dashboard", dashboardHandler.HandleDashboard)
		apiV1.GET("/portfolio-summary", dashboardHandler.HandlePortfolioSummary)
		apiV1.POST("/upload", uploadHandler.HandleUpload)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "dashboard-service"})
	})

	log.Printf("🚀 Dashboard Service (Go) iniciado e escutando na porta %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Falha ao iniciar o servidor do dashboard: ", err)
	}
}

// corsMiddleware libera qualquer origem, como a API original fazia.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
