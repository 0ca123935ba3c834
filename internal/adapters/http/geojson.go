package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	geo "github.com/samirrijal/spraylog/internal/adapters/geojson"
)

const geoJSONContentType = "application/geo+json"

func sendGeoJSON(c *fiber.Ctx, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return respondError(c, err, "paddock")
	}
	c.Set(fiber.HeaderContentType, geoJSONContentType)
	return c.Send(data)
}

// PaddocksGeoJSONHandler exports every paddock boundary as a FeatureCollection.
func PaddocksGeoJSONHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		paddocks, err := deps.Paddocks.List(c.UserContext())
		if err != nil {
			return respondError(c, err, "paddock")
		}
		return sendGeoJSON(c, geo.PaddockCollection(paddocks))
	}
}

// PaddockGeoJSONHandler exports one paddock boundary as a Feature.
func PaddockGeoJSONHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := deps.Paddocks.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err, "paddock")
		}
		return sendGeoJSON(c, geo.PaddockFeature(*p))
	}
}
