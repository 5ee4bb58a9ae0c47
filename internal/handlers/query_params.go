package handlers

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gofiber/fiber/v2"

	"crm/internal/repositories"
)

// Wire parameters are camelCase; repository sort columns are snake_case.
func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseOrderBy splits a comma-separated orderBy parameter, keeping the
// leading '-' descending marker while converting field names.
func parseOrderBy(c *fiber.Ctx) []string {
	raw := c.Query("orderBy")
	if raw == "" {
		return nil
	}
	var fields []string
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		desc := strings.HasPrefix(field, "-")
		name := camelToSnake(strings.TrimPrefix(field, "-"))
		if desc {
			name = "-" + name
		}
		fields = append(fields, name)
	}
	return fields
}

func parsePagination(c *fiber.Ctx) repositories.Pagination {
	return repositories.Pagination{
		Page:    c.QueryInt("page"),
		PerPage: c.QueryInt("perPage"),
	}
}

func queryFloat(c *fiber.Ctx, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func queryInt(c *fiber.Ctx, key string) *int {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func queryTime(c *fiber.Ctx, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}
