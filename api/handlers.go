// Package api exposes the terminal core over HTTP. Handlers translate the
// core's result shapes (nil for not-found, false for conflicts, errors for
// persistence failures) into status codes and perform no formatting beyond
// JSON encoding.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vkozyr/busterminal/internal/domain"
	"github.com/vkozyr/busterminal/internal/repository"
)

type Handlers struct {
	Stops      *StopHandler
	Routes     *RouteHandler
	Flights    *FlightHandler
	Passengers *PassengerHandler
	Tickets    *TicketHandler
	Reports    *ReportHandler
}

func (h *Handlers) Register(router *gin.Engine) {
	h.Stops.Register(router.Group("/stops"))
	h.Routes.Register(router.Group("/routes"))
	h.Flights.Register(router.Group("/flights"))
	h.Passengers.Register(router.Group("/passengers"))
	h.Tickets.Register(router.Group("/tickets"))
	h.Reports.Register(router.Group("/reports"))
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var integrity *repository.DataIntegrityError
	if errors.As(err, &integrity) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": integrity.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
