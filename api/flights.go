package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vkozyr/busterminal/internal/domain"
	"github.com/vkozyr/busterminal/internal/service/schedule"
)

type FlightHandler struct {
	service schedule.FlightUseCase
}

func NewFlightHandler(service schedule.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PUT("/:id/status", h.updateStatus)
	router.POST("/:id/complete", h.complete)
	router.GET("/:id/occupied-seats", h.occupiedSeats)
}

type flightRequest struct {
	RouteID           int64     `json:"route_id"`
	DepartureDateTime time.Time `json:"departure_date_time"`
	ArrivalDateTime   time.Time `json:"arrival_date_time"`
	TotalSeats        int       `json:"total_seats"`
	BusModel          string    `json:"bus_model"`
	PricePerSeatCents int64     `json:"price_per_seat_cents"`
	Status            string    `json:"status"`
}

func (r flightRequest) toDomain() *domain.Flight {
	return &domain.Flight{
		RouteID:           r.RouteID,
		DepartureDateTime: r.DepartureDateTime,
		ArrivalDateTime:   r.ArrivalDateTime,
		TotalSeats:        r.TotalSeats,
		BusModel:          r.BusModel,
		PricePerSeatCents: r.PricePerSeatCents,
		Status:            domain.FlightStatus(r.Status),
	}
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := req.toDomain()
	if err := h.service.AddFlight(c.Request.Context(), flight); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := flightID(c)
	if !ok {
		return
	}

	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if flight == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := flightID(c)
	if !ok {
		return
	}

	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := req.toDomain()
	flight.ID = id
	matched, err := h.service.Update(c.Request.Context(), flight)
	if err != nil {
		respondError(c, err)
		return
	}
	if !matched {
		c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
		return
	}
	c.JSON(http.StatusOK, flight)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *FlightHandler) updateStatus(c *gin.Context) {
	id, ok := flightID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matched, err := h.service.UpdateStatus(c.Request.Context(), id, domain.FlightStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	if !matched {
		c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (h *FlightHandler) complete(c *gin.Context) {
	id, ok := flightID(c)
	if !ok {
		return
	}

	matched, err := h.service.CompleteFlight(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !matched {
		c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": string(domain.FlightStatusCompleted)})
}

func (h *FlightHandler) occupiedSeats(c *gin.Context) {
	id, ok := flightID(c)
	if !ok {
		return
	}

	seats, err := h.service.OccupiedSeats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	count, err := h.service.OccupiedSeatsCount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count, "seats": seats})
}

func flightID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return 0, false
	}
	return id, true
}
