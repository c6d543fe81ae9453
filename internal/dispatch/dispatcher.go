// Package dispatch исполняет голосовые команды: фильтр слова-триггера,
// разбор и синхронный переход по виду команды.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/jack_navigator/internal/config"
	"github.com/shenikar/jack_navigator/internal/intent"
	"github.com/shenikar/jack_navigator/internal/metrics"
	"github.com/shenikar/jack_navigator/internal/models"
	"github.com/shenikar/jack_navigator/internal/navigation"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	msgNotUnderstood    = "Sorry, I did not understand"
	msgNoRoute          = "No route found"
	msgRouteUnavailable = "Route service is unavailable, please try again"
	msgNeedEndpoints    = "Please set source and destination first"
	msgLocationUnknown  = "Your location is unavailable"
	msgSearchFailed     = "Search is unavailable right now"
	msgSOSFailed        = "Could not send emergency alert"
)

// Speaker озвучивает ответы ассистента
type Speaker interface {
	Speak(ctx context.Context, text, locale string)
}

// Geocoder ищет координаты по названию места
type Geocoder interface {
	Search(ctx context.Context, text string, limit int) ([]models.Place, error)
}

// AmenityFinder ищет объекты рядом с точкой
type AmenityFinder interface {
	QueryAmenities(ctx context.Context, kind string, center models.Coordinates, radiusMeters int) ([]models.Amenity, error)
}

// IncidentCreator создает SOS-инцидент
type IncidentCreator interface {
	CreateIncident(ctx context.Context, lat, lng float64) (*models.Incident, error)
}

// Collaborators - внешние зависимости диспетчера
type Collaborators struct {
	Geocoder      Geocoder
	Router        navigation.Router
	TrafficRouter navigation.Router
	Amenities     AmenityFinder
	Incidents     IncidentCreator
	Speaker       Speaker
}

type Dispatcher struct {
	Collaborators
	session *Session
	gate    *intent.Gate
	radius  int
	logger  *logrus.Logger
}

func NewDispatcher(session *Session, deps Collaborators, cfg *config.Config, logger *logrus.Logger) *Dispatcher {
	radius := cfg.AmenityRadiusMeters
	if radius <= 0 {
		radius = 5000
	}
	if deps.TrafficRouter == nil {
		deps.TrafficRouter = deps.Router
	}
	return &Dispatcher{
		Collaborators: deps,
		session:       session,
		gate:          intent.NewGate(cfg.WakeWord),
		radius:        radius,
		logger:        logger,
	}
}

func (d *Dispatcher) Session() *Session {
	return d.session
}

// Run читает поток транскриптов до закрытия канала или отмены контекста
func (d *Dispatcher) Run(ctx context.Context, transcripts <-chan string) {
	d.logger.Info("Voice dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Voice dispatcher stopped")
			return
		case text, ok := <-transcripts:
			if !ok {
				d.logger.Info("Transcript stream closed")
				return
			}
			d.HandleTranscript(ctx, text)
		}
	}
}

// HandleTranscript пропускает транскрипт через фильтр слова-триггера и исполняет команду.
// Транскрипты без слова-триггера игнорируются, ok=false.
func (d *Dispatcher) HandleTranscript(ctx context.Context, transcript string) (cmd intent.Command, reply string, ok bool) {
	rest, ok := d.gate.Strip(transcript)
	if !ok {
		return intent.Command{}, "", false
	}
	cmd = intent.Parse(rest)
	metrics.VoiceCommands.WithLabelValues(string(cmd.Intent)).Inc()
	d.logger.WithFields(logrus.Fields{
		"component": "dispatcher",
		"command":   cmd.String(),
	}).Debug("Voice command parsed")

	return cmd, d.Dispatch(ctx, cmd), true
}

// Dispatch исполняет команду, озвучивает и возвращает ответ
func (d *Dispatcher) Dispatch(ctx context.Context, cmd intent.Command) string {
	var reply string
	switch cmd.Intent {
	case intent.IntentStart:
		reply = d.navigate(ctx, d.Router)
	case intent.IntentReroute, intent.IntentTraffic:
		reply = d.navigate(ctx, d.TrafficRouter)
	case intent.IntentStop:
		if d.session.clearRoute() {
			reply = "Navigation stopped"
		} else {
			reply = "No active navigation"
		}
	case intent.IntentSetSource:
		reply = d.resolvePlace(ctx, cmd.Place, "Source", d.session.setSource)
	case intent.IntentSetDestination:
		reply = d.resolvePlace(ctx, cmd.Place, "Destination", d.session.setDestination)
	case intent.IntentEmergency:
		reply = d.emergency(ctx)
	case intent.IntentFind:
		reply = d.findNearest(ctx, string(cmd.Target))
	case intent.IntentPoiSearch:
		reply = d.poiSearch(ctx, cmd.Category)
	case intent.IntentToggleAR:
		if d.session.toggleAR() {
			reply = "AR mode enabled"
		} else {
			reply = "AR mode disabled"
		}
	default:
		reply = msgNotUnderstood
	}

	if d.Speaker != nil {
		d.Speaker.Speak(ctx, reply, d.session.Locale())
	}
	return reply
}

func (d *Dispatcher) navigate(ctx context.Context, router navigation.Router) string {
	src, dst, ok := d.session.endpoints()
	if !ok {
		return msgNeedEndpoints
	}
	route, err := router.Route(ctx, src, dst)
	if err != nil {
		d.logger.WithError(err).WithField("component", "dispatcher").Warn("Route lookup failed")
		if errors.Is(err, navigation.ErrNoRoute) {
			return msgNoRoute
		}
		return msgRouteUnavailable
	}
	d.session.setRoute(route)

	if route.TrafficAware {
		return fmt.Sprintf("Best route considering traffic is %.1f kilometers, %.0f minutes", route.Kilometers(), route.Minutes())
	}
	return fmt.Sprintf("You need to go %.1f kilometers, approximately %.0f minutes", route.Kilometers(), route.Minutes())
}

func (d *Dispatcher) resolvePlace(ctx context.Context, text, label string, apply func(models.Place)) string {
	places, err := d.Geocoder.Search(ctx, text, 1)
	if err != nil {
		if errors.Is(err, navigation.ErrPlaceNotFound) {
			return fmt.Sprintf("Could not find %s", text)
		}
		d.logger.WithError(err).WithField("component", "dispatcher").Warn("Geocoding failed")
		return msgSearchFailed
	}
	apply(places[0])
	return fmt.Sprintf("%s set to %s", label, text)
}

func (d *Dispatcher) emergency(ctx context.Context) string {
	position, ok := d.session.Position()
	if !ok {
		return msgLocationUnknown
	}

	incident, err := d.Incidents.CreateIncident(ctx, position.Lat, position.Lng)
	if err != nil {
		d.logger.WithError(err).WithField("component", "dispatcher").Error("Emergency incident was not created")
		return msgSOSFailed
	}

	var hospitals, stations []models.Amenity
	var g errgroup.Group
	g.Go(func() error {
		var err error
		hospitals, err = d.Amenities.QueryAmenities(ctx, string(intent.TargetHospital), position, d.radius)
		return err
	})
	g.Go(func() error {
		var err error
		stations, err = d.Amenities.QueryAmenities(ctx, string(intent.TargetPolice), position, d.radius)
		return err
	})
	if err := g.Wait(); err != nil {
		d.logger.WithError(err).WithField("component", "dispatcher").Warn("Emergency amenity lookup failed")
	}

	reply := fmt.Sprintf("Emergency alert %d sent.", incident.ID)
	reply += " " + describeNearest(string(intent.TargetHospital), hospitals)
	reply += " " + describeNearest(string(intent.TargetPolice), stations)
	return reply
}

func (d *Dispatcher) findNearest(ctx context.Context, kind string) string {
	amenities, errMsg := d.lookup(ctx, kind)
	if errMsg != "" {
		return errMsg
	}
	return describeNearest(kind, amenities)
}

func (d *Dispatcher) poiSearch(ctx context.Context, category string) string {
	amenities, errMsg := d.lookup(ctx, category)
	if errMsg != "" {
		return errMsg
	}
	if len(amenities) == 0 {
		return fmt.Sprintf("No %s found nearby", category)
	}
	return fmt.Sprintf("Found %d %s nearby. Closest is %s, %.1f kilometers away",
		len(amenities), category, amenityName(amenities[0]), amenities[0].DistanceMeters/1000)
}

func (d *Dispatcher) lookup(ctx context.Context, kind string) ([]models.Amenity, string) {
	position, ok := d.session.Position()
	if !ok {
		return nil, msgLocationUnknown
	}
	amenities, err := d.Amenities.QueryAmenities(ctx, kind, position, d.radius)
	if err != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{
			"component": "dispatcher",
			"kind":      kind,
		}).Warn("Amenity lookup failed")
		return nil, msgSearchFailed
	}
	return amenities, ""
}

func describeNearest(kind string, amenities []models.Amenity) string {
	if len(amenities) == 0 {
		return fmt.Sprintf("No %s found nearby.", kind)
	}
	return fmt.Sprintf("Nearest %s is %s, %.1f kilometers away.", kind, amenityName(amenities[0]), amenities[0].DistanceMeters/1000)
}

func amenityName(a models.Amenity) string {
	if a.Name == "" {
		return "an unnamed " + a.Kind
	}
	return a.Name
}
