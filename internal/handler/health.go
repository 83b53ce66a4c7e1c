package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type healthBody struct {
	Status  string `json:"status"`
	Discord string `json:"discord"`
}

// HandleHealth reports liveness and gateway connectivity (GET /health).
func (r *Relay) HandleHealth(c echo.Context) error {
	state := "disconnected"
	if r.Gateway.Ready() {
		state = "connected"
	}
	return c.JSON(http.StatusOK, healthBody{Status: "ok", Discord: state})
}
