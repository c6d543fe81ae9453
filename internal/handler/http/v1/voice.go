package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/jack_navigator/internal/intent"
	"github.com/shenikar/jack_navigator/internal/models"
)

// @Summary Handle a speech transcript
// @Description Run a recognized utterance through the wake word gate and execute the command
// @Tags Voice
// @Accept json
// @Produce json
// @Param transcript body TranscriptRequest true "Recognized text"
// @Success 200 {object} TranscriptResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /voice/transcript [post]
func (h *Handler) handleTranscript(c *gin.Context) {
	var input TranscriptRequest
	log := h.logger.WithField("method", "handleTranscript")

	if !h.bindJSON(c, log, &input) {
		return
	}

	cmd, reply, ok := h.voice.HandleTranscript(c.Request.Context(), input.Text)
	if !ok {
		c.JSON(http.StatusOK, TranscriptResponse{Ignored: true})
		return
	}
	c.JSON(http.StatusOK, TranscriptResponse{Command: &cmd, Reply: reply})
}

// @Summary Parse a command
// @Description Parse text that follows the wake word without executing it
// @Tags Voice
// @Accept json
// @Produce json
// @Param transcript body TranscriptRequest true "Command text"
// @Success 200 {object} intent.Command
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /voice/command [post]
func (h *Handler) parseCommand(c *gin.Context) {
	var input TranscriptRequest
	log := h.logger.WithField("method", "parseCommand")

	if !h.bindJSON(c, log, &input) {
		return
	}
	c.JSON(http.StatusOK, intent.Parse(input.Text))
}

// @Summary Update user position
// @Description Store the current position used by emergency and amenity commands
// @Tags Voice
// @Accept json
// @Produce json
// @Param position body PositionRequest true "Current position"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /voice/position [post]
func (h *Handler) setPosition(c *gin.Context) {
	var input PositionRequest
	log := h.logger.WithField("method", "setPosition")

	if !h.bindJSON(c, log, &input) {
		return
	}
	h.voice.Session().SetPosition(models.Coordinates{Lat: *input.Latitude, Lng: *input.Longitude})
	c.Status(http.StatusNoContent)
}

// @Summary Toggle speech language
// @Description Switch speech synthesis between the primary and alternate locale
// @Tags Voice
// @Produce json
// @Success 200 {object} LocaleResponse
// @Router /voice/language [post]
func (h *Handler) toggleLanguage(c *gin.Context) {
	c.JSON(http.StatusOK, LocaleResponse{Locale: h.voice.Session().ToggleLocale()})
}

// @Summary Get navigation session
// @Description Current position, endpoints, route, AR flag and locale
// @Tags Voice
// @Produce json
// @Success 200 {object} dispatch.SessionState
// @Router /voice/session [get]
func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.voice.Session().State())
}

// serveWS переводит соединение в websocket: события трекера, озвучка и сирена
func (h *Handler) serveWS(c *gin.Context) {
	h.ws.ServeWS(c.Writer, c.Request)
}
