package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the user_id stored in the context by the JWT
// middleware and converts it to int64.
func getUserID(c echo.Context) (int64, error) {
	switch t := c.Get("user_id").(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// tableResponse is the JSON shape for endpoints that surface a
// materialized query result as-is: ordered column names plus rows of
// text values.
type tableResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Count   int        `json:"count"`
}
