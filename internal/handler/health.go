package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health responds with a liveness payload.  Registered without auth so load
// balancers can probe it.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"message": "Servidor PESV funcionando correctamente",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
