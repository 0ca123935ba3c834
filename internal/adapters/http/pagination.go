package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// Pagination describes an offset-based window over a list.
type Pagination struct {
	Offset int
	Limit  int
	Total  int
}

// parsePaging reads offset/limit. ok is false when neither is present.
func parsePaging(c *fiber.Ctx) (offset, limit int, ok bool, err error) {
	rawOffset, rawLimit := c.Query("offset"), c.Query("limit")
	if rawOffset == "" && rawLimit == "" {
		return 0, 0, false, nil
	}

	limit = defaultPageLimit
	if rawOffset != "" {
		if offset, err = strconv.Atoi(rawOffset); err != nil || offset < 0 {
			return 0, 0, true, fmt.Errorf("offset must be a non-negative integer")
		}
	}
	if rawLimit != "" {
		if limit, err = strconv.Atoi(rawLimit); err != nil || limit <= 0 {
			return 0, 0, true, fmt.Errorf("limit must be a positive integer")
		}
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
	}
	return offset, limit, true, nil
}

// SetPageHeaders adds X-Total-Count and RFC 8288 Link headers so paged list
// bodies can stay plain arrays.
func SetPageHeaders(c *fiber.Ctx, p Pagination) {
	c.Set("X-Total-Count", strconv.Itoa(p.Total))

	// Offsets past the end behave like the end; the window arithmetic
	// below relies on Offset <= Total.
	if p.Offset > p.Total {
		p.Offset = p.Total
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}

	base := c.Path()
	links := []string{fmt.Sprintf(`<%s?offset=0&limit=%d>; rel="first"`, base, p.Limit)}

	if p.Offset > 0 {
		prev := p.Offset - p.Limit
		if prev < 0 {
			prev = 0
		}
		links = append(links, fmt.Sprintf(`<%s?offset=%d&limit=%d>; rel="prev"`, base, prev, p.Limit))
	}

	if p.Limit < p.Total-p.Offset {
		links = append(links, fmt.Sprintf(`<%s?offset=%d&limit=%d>; rel="next"`, base, p.Offset+p.Limit, p.Limit))
	}

	lastOffset := 0
	if p.Total > 0 {
		lastOffset = ((p.Total - 1) / p.Limit) * p.Limit
	}
	links = append(links, fmt.Sprintf(`<%s?offset=%d&limit=%d>; rel="last"`, base, lastOffset, p.Limit))

	c.Set("Link", strings.Join(links, ", "))
}
