package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/jack_navigator/internal/navigation"
	"github.com/sirupsen/logrus"
)

// @Summary Current weather
// @Tags Geo
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} models.Weather
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Failure 502 {object} map[string]string "Weather service unavailable"
// @Router /weather [get]
func (h *Handler) getWeather(c *gin.Context) {
	var query LocationQuery
	log := h.logger.WithField("method", "getWeather")

	if !h.bindQuery(c, log, &query) {
		return
	}

	weather, err := h.geo.Weather.CurrentWeather(c.Request.Context(), queryToCoordinates(query))
	if err != nil {
		log.WithError(err).Warn("Weather lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "weather unavailable"})
		return
	}
	c.JSON(http.StatusOK, weather)
}

// @Summary Nearby amenities
// @Description Amenities of the given kind around a point, nearest first
// @Tags Geo
// @Produce json
// @Param kind query string true "Amenity kind, e.g. hospital, police, fuel"
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {array} models.Amenity
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 502 {object} map[string]string "Amenity search unavailable"
// @Router /amenities [get]
func (h *Handler) listAmenities(c *gin.Context) {
	var query AmenityQuery
	log := h.logger.WithField("method", "listAmenities")

	if !h.bindQuery(c, log, &query) {
		return
	}

	amenities, err := h.geo.Amenities.QueryAmenities(c.Request.Context(), query.Kind, queryToCoordinates(query.LocationQuery), h.cfg.AmenityRadiusMeters)
	if err != nil {
		log.WithError(err).Warn("Amenity lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "amenity search unavailable"})
		return
	}
	c.JSON(http.StatusOK, amenities)
}

// @Summary Build a route
// @Description Default route, or traffic-aware route when traffic is true
// @Tags Geo
// @Accept json
// @Produce json
// @Param route body RouteRequest true "Route endpoints"
// @Success 200 {object} models.Route
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 404 {object} map[string]string "No route found"
// @Failure 502 {object} map[string]string "Routing service unavailable"
// @Router /navigation/route [post]
func (h *Handler) buildRoute(c *gin.Context) {
	var input RouteRequest
	log := h.logger.WithField("method", "buildRoute")

	if !h.bindJSON(c, log, &input) {
		return
	}

	router := h.geo.Router
	if input.Traffic && h.geo.TrafficRouter != nil {
		router = h.geo.TrafficRouter
	}

	route, err := router.Route(c.Request.Context(), pointToCoordinates(input.Source), pointToCoordinates(input.Destination))
	if err != nil {
		if errors.Is(err, navigation.ErrNoRoute) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no route found"})
			return
		}
		log.WithError(err).Warn("Route lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "routing unavailable"})
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *Handler) bindQuery(c *gin.Context, log *logrus.Entry, query interface{}) bool {
	if err := c.ShouldBindQuery(query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return false
	}
	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
