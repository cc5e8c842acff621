package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"propertyhub/internal/errors"
)

// MessageResponse is the body of operations that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

var errInvalidBody = errors.NewHTTPError(http.StatusBadRequest, "Invalid request body")

// bindJSON decodes the request body into dst.
func bindJSON(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errInvalidBody
	}
	return nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name, message string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewHTTPError(http.StatusBadRequest, message)
	}
	return uint(id), nil
}

// scalar accepts a JSON string or number and keeps its text, so a numeric
// field can be validated and reported like any other input.
type scalar string

func (s *scalar) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*s = ""
	case strings.HasPrefix(raw, `"`):
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
		*s = scalar(text)
	default:
		*s = scalar(raw)
	}
	return nil
}
