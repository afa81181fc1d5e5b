// Package handler holds the echo handlers of the public and internal API.
package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const dateLayout = time.DateOnly

// queryInt reads a non-negative integer query parameter, falling back to def.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errors.Errorf("%s must be a non-negative integer", name)
	}

	return value, nil
}

// queryBool reads an optional boolean query parameter.
func queryBool(c echo.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.Errorf("%s must be true or false", name)
	}

	return &value, nil
}

// queryDate reads an optional YYYY-MM-DD query parameter as midnight UTC.
func queryDate(c echo.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	value, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, errors.Errorf("%s must be a date formatted as YYYY-MM-DD", name)
	}

	return &value, nil
}
