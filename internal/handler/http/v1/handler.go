package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/jack_navigator/internal/config"
	"github.com/shenikar/jack_navigator/internal/dispatch"
	"github.com/shenikar/jack_navigator/internal/intent"
	"github.com/shenikar/jack_navigator/internal/models"
	"github.com/shenikar/jack_navigator/internal/navigation"
	"github.com/shenikar/jack_navigator/internal/service"
	"github.com/sirupsen/logrus"
)

// VoiceAssistant исполняет распознанные фразы
type VoiceAssistant interface {
	HandleTranscript(ctx context.Context, transcript string) (intent.Command, string, bool)
	Session() *dispatch.Session
}

// WeatherProvider возвращает текущую погоду
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, location models.Coordinates) (*models.Weather, error)
}

// WebSocketServer обслуживает поток событий для браузера
type WebSocketServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

// GeoServices - внешние гео-сервисы, доступные через API
type GeoServices struct {
	Weather       WeatherProvider
	Amenities     dispatch.AmenityFinder
	Router        navigation.Router
	TrafficRouter navigation.Router
}

type Handler struct {
	incidentService service.IncidentService
	voice           VoiceAssistant
	geo             GeoServices
	ws              WebSocketServer
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(
	incidentService service.IncidentService,
	voice VoiceAssistant,
	geo GeoServices,
	ws WebSocketServer,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		incidentService: incidentService,
		voice:           voice,
		geo:             geo,
		ws:              ws,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Create an SOS incident
// @Description Raise a new SOS incident at the given coordinates. Requires API key.
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body CreateIncidentRequest true "Incident coordinates"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if !h.bindJSON(c, log, &input) {
		return
	}

	incident, err := h.incidentService.CreateIncident(c.Request.Context(), *input.Latitude, *input.Longitude)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCoordinates) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}
		log.WithError(err).Error("Failed to create incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary List active SOS incidents
// @Description List active incidents in creation order
// @Tags SOS
// @Produce json
// @Success 200 {array} IncidentResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	incidents, err := h.incidentService.ListActive(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Set incident status
// @Description Set status to Pending, In Progress or Resolved. Unknown ids are ignored. Requires API key.
// @Tags SOS
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Incident ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid incident ID or status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos/{id}/status [put]
func (h *Handler) updateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateStatus").WithField("id", id)

	var input UpdateStatusRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	if err := h.incidentService.SetStatus(c.Request.Context(), id, models.Status(input.Status)); err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		log.WithError(err).Error("Failed to update status in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete an SOS incident
// @Description Remove an incident from the active set and record it in history. Requires API key.
// @Tags SOS
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Incident ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos/{id} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteIncident").WithField("id", id)

	if err := h.incidentService.DeleteIncident(c.Request.Context(), id); err != nil {
		log.WithError(err).Error("Failed to delete incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete incident"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Refresh nearest police station
// @Description Look up the nearest police station for a pending incident. Requires API key.
// @Tags SOS
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Incident ID"
// @Success 200 {object} RefreshResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Station lookup failed"
// @Router /sos/{id}/refresh [post]
func (h *Handler) refreshStation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "refreshStation").WithField("id", id)

	changed, err := h.incidentService.RefreshStation(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Station refresh failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "station lookup failed"})
		return
	}
	c.JSON(http.StatusOK, RefreshResponse{Changed: changed})
}

// @Summary Get incident history
// @Description Append-only log of status changes and deletions
// @Tags SOS
// @Produce json
// @Success 200 {array} HistoryEntryResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos/history [get]
func (h *Handler) listHistory(c *gin.Context) {
	log := h.logger.WithField("method", "listHistory")

	history, err := h.incidentService.ListHistory(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list history from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, HistoryToResponses(history))
}

// @Summary Export incident history
// @Description Download the history log as CSV
// @Tags SOS
// @Produce text/csv
// @Success 200 {file} file
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos/history.csv [get]
func (h *Handler) exportHistory(c *gin.Context) {
	log := h.logger.WithField("method", "exportHistory")

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="sos_history.csv"`)
	if err := h.incidentService.ExportHistoryCSV(c.Request.Context(), c.Writer); err != nil {
		log.WithError(err).Error("Failed to export history")
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
	}
}

// @Summary Get incident statistics
// @Description Count of active incidents per status
// @Tags SOS
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	counts, err := h.incidentService.Stats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, StatsToResponse(counts))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSON разбирает и валидирует тело запроса; при ошибке уже отправлен ответ 400
func (h *Handler) bindJSON(c *gin.Context, log *logrus.Entry, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return 0, false
	}
	return id, true
}
