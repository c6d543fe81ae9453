package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	auth := APIKeyAuthMiddleware(h.cfg, h.logger)

	// Трекер SOS-инцидентов; изменения только с API-ключом
	sos := api.Group("/sos")
	{
		sos.GET("", h.listIncidents)
		sos.GET("/history", h.listHistory)
		sos.GET("/history.csv", h.exportHistory)
		sos.GET("/stats", h.getStats)

		sos.POST("", auth, h.createIncident)
		sos.PUT("/:id/status", auth, h.updateStatus)
		sos.DELETE("/:id", auth, h.deleteIncident)
		sos.POST("/:id/refresh", auth, h.refreshStation)
	}

	// Голосовой ассистент
	voice := api.Group("/voice")
	{
		voice.POST("/transcript", h.handleTranscript)
		voice.POST("/command", h.parseCommand)
		voice.POST("/position", h.setPosition)
		voice.POST("/language", h.toggleLanguage)
		voice.GET("/session", h.getSession)
	}

	// Внешние гео-сервисы
	api.GET("/weather", h.getWeather)
	api.GET("/amenities", h.listAmenities)
	api.POST("/navigation/route", h.buildRoute)

	// Поток событий для браузера
	api.GET("/ws", h.serveWS)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
