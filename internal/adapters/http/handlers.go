package http

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// decodeBody unmarshals a JSON request body into dst. An empty body leaves
// dst untouched.
func decodeBody(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.Invalid("", "invalid JSON body: %v", err)
	}
	return nil
}

// queryFloat parses an optional float query parameter.
func queryFloat(c *fiber.Ctx, name string) (float64, bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true, domain.Invalid(name, "must be a finite number, got %q", raw)
	}
	return v, true, nil
}

// ---- Paddocks ----

// ListPaddocksHandler lists paddocks. With lat and lng it ranks them by
// distance from that point, optionally cut at radius_km.
func ListPaddocksHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		lat, hasLat, err := queryFloat(c, "lat")
		if err != nil {
			return respondError(c, err, "paddock")
		}
		lng, hasLng, err := queryFloat(c, "lng")
		if err != nil {
			return respondError(c, err, "paddock")
		}
		radius, _, err := queryFloat(c, "radius_km")
		if err != nil {
			return respondError(c, err, "paddock")
		}

		if hasLat != hasLng {
			return errBadRequest(c, "lat and lng must be provided together")
		}

		var paddocks []domain.Paddock
		if hasLat {
			paddocks, err = deps.Paddocks.Proximity(ctx, lat, lng, radius)
		} else {
			paddocks, err = deps.Paddocks.List(ctx)
		}
		if err != nil {
			return respondError(c, err, "paddock")
		}
		return c.JSON(paddocks)
	}
}

// GetPaddockHandler returns one paddock.
func GetPaddockHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := deps.Paddocks.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err, "paddock")
		}
		return c.JSON(p)
	}
}

// CreatePaddockHandler validates and stores a new paddock.
func CreatePaddockHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in domain.PaddockInput
		if err := decodeBody(c, &in); err != nil {
			return respondError(c, err, "paddock")
		}

		p, err := deps.Paddocks.Create(c.UserContext(), in)
		if err != nil {
			return respondError(c, err, "paddock")
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// UpdatePaddockHandler applies a partial update. An empty body is rejected.
func UpdatePaddockHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch domain.PaddockPatch
		if err := decodeBody(c, &patch); err != nil {
			return respondError(c, err, "paddock")
		}

		p, err := deps.Paddocks.Update(c.UserContext(), c.Params("id"), patch)
		if err != nil {
			return respondError(c, err, "paddock")
		}
		return c.JSON(p)
	}
}

// DeletePaddockHandler hard-deletes a paddock.
func DeletePaddockHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		removed, err := deps.Paddocks.Delete(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err, "paddock")
		}
		if !removed {
			return errNotFound(c, "paddock not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ---- Applications ----

// ListApplicationsHandler returns applications in recording order. Paging is
// opt-in through offset/limit and reported in headers.
func ListApplicationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		offset, limit, paged, err := parsePaging(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		if !paged {
			apps, err := deps.Applications.List(ctx)
			if err != nil {
				return respondError(c, err, "application")
			}
			return c.JSON(apps)
		}

		apps, total, err := deps.Applications.Page(ctx, offset, limit)
		if err != nil {
			return respondError(c, err, "application")
		}
		SetPageHeaders(c, Pagination{Offset: offset, Limit: limit, Total: total})
		return c.JSON(apps)
	}
}

// GetApplicationHandler returns one application.
func GetApplicationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		app, err := deps.Applications.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err, "application")
		}
		return c.JSON(app)
	}
}

// CreateApplicationHandler records a spray application.
func CreateApplicationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in domain.ApplicationInput
		if err := decodeBody(c, &in); err != nil {
			return respondError(c, err, "application")
		}

		app, err := deps.Applications.Create(c.UserContext(), in)
		if err != nil {
			return respondError(c, err, "application")
		}
		return c.Status(fiber.StatusCreated).JSON(app)
	}
}

// ---- Recommendations ----

// ListRecommendationsHandler returns the notes attached to an application.
func ListRecommendationsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := deps.Recommendations.List(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err, "recommendation")
		}
		return c.JSON(recs)
	}
}

// CreateRecommendationHandler attaches a note to an application.
func CreateRecommendationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in domain.RecommendationInput
		if err := decodeBody(c, &in); err != nil {
			return respondError(c, err, "recommendation")
		}

		rec, err := deps.Recommendations.Create(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return respondError(c, err, "recommendation")
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// splitIDs parses a comma-separated id list, dropping blanks.
func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func attachment(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
