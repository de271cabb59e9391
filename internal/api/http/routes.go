package httpapi

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/weatherdash/weather-gateway/internal/geo"
	"github.com/weatherdash/weather-gateway/internal/logger"
	"github.com/weatherdash/weather-gateway/internal/weather"
)

var validate = validator.New()

// Handler serves the weather endpoint: single-point queries, the multi-point
// panel, and the static gazetteer helpers, all behind one query-parameterized
// route.
type Handler struct {
	resolver *weather.Resolver
	gaz      *geo.Gazetteer
	panel    []weather.Point
	panelMax int
	log      logger.Logger
}

func NewHandler(resolver *weather.Resolver, gaz *geo.Gazetteer, panel []weather.Point, panelMax int, log logger.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		gaz:      gaz,
		panel:    panel,
		panelMax: panelMax,
		log:      log.WithField("component", "http"),
	}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, h *Handler) {
	v1 := app.Group("/api/v1")

	v1.Use(func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals("requestID", id)
		c.Set("X-Request-ID", id)
		return c.Next()
	})

	v1.Get("/weather", h.getWeather)
}

// weatherQuery holds the bound query parameters of the weather endpoint.
type weatherQuery struct {
	Type string   `validate:"omitempty,oneof=current onecall full hourly daily forecast alerts multi search states cities"`
	Lat  *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon  *float64 `validate:"omitempty,gte=-180,lte=180"`
	City string
}

func (q *weatherQuery) bind(c *fiber.Ctx) error {
	q.Type = c.Query("type", "current")
	q.City = c.Query("city")

	if v := c.Query("lat"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid lat: %q", v)
		}
		q.Lat = &f
	}
	if v := c.Query("lon"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid lon: %q", v)
		}
		q.Lon = &f
	}

	return validate.Struct(q)
}

// point picks the query target: explicit coordinates first, then a gazetteer
// name, then the fixed default point.
func (q *weatherQuery) point(gaz *geo.Gazetteer) weather.Point {
	if q.Lat != nil && q.Lon != nil {
		return weather.Point{Name: q.City, Lat: *q.Lat, Lon: *q.Lon}
	}
	if pt, ok := gaz.Resolve(q.City); ok {
		return pt
	}
	return geo.DefaultPoint
}

func (h *Handler) getWeather(c *fiber.Ctx) error {
	var q weatherQuery
	if err := q.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	switch q.Type {
	case "multi":
		return h.getPanel(c)
	case "search":
		return staticPayload(c, h.gaz.Search(q.City))
	case "states":
		return staticPayload(c, h.gaz.States())
	case "cities":
		return staticPayload(c, h.gaz.Cities(c.Query("state")))
	}

	query := toQuery(q.Type)
	pt := q.point(h.gaz)

	res, err := h.resolver.Resolve(c.Context(), pt, query)
	if err != nil {
		h.log.Errorf("resolution failed for (%f, %f): %v", pt.Lat, pt.Lon, err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to resolve weather data")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"source":    res.Source,
		"data":      sectionFor(query, res.Report),
		"requestId": c.Locals("requestID"),
	})
}

func (h *Handler) getPanel(c *fiber.Ctx) error {
	results, err := h.resolver.ResolvePanel(c.Context(), h.panel, weather.QueryCurrent, h.panelMax)
	if err != nil {
		h.log.Errorf("panel resolution failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to resolve panel")
	}

	type panelEntry struct {
		Source weather.Source             `json:"source"`
		Data   *weather.CurrentConditions `json:"data"`
	}

	entries := make([]panelEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, panelEntry{Source: r.Source, Data: r.Report.Current})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"data":      entries,
		"requestId": c.Locals("requestID"),
	})
}

func staticPayload(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"data":      data,
		"requestId": c.Locals("requestID"),
	})
}

// toQuery collapses the accepted type aliases onto the resolver's query set.
func toQuery(t string) weather.Query {
	switch t {
	case "onecall", "full":
		return weather.QueryOneCall
	case "hourly":
		return weather.QueryHourly
	case "daily", "forecast":
		return weather.QueryDaily
	case "alerts":
		return weather.QueryAlerts
	default:
		return weather.QueryCurrent
	}
}

// sectionFor shapes the response payload to the requested query type.
func sectionFor(query weather.Query, rep *weather.Report) any {
	switch query {
	case weather.QueryCurrent:
		return rep.Current
	case weather.QueryHourly:
		return rep.Hourly
	case weather.QueryDaily:
		return rep.Daily
	case weather.QueryAlerts:
		if rep.Alerts == nil {
			return []weather.WeatherAdvisory{}
		}
		return rep.Alerts
	default:
		return rep
	}
}
