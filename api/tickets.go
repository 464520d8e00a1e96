package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vkozyr/busterminal/internal/domain"
	"github.com/vkozyr/busterminal/internal/service/reservation"
)

type TicketHandler struct {
	service reservation.ReservationUseCase
}

type ticketResponse struct {
	ID             int64  `json:"id"`
	Reference      string `json:"reference"`
	FlightID       int64  `json:"flight_id"`
	PassengerID    int64  `json:"passenger_id"`
	SeatNumber     string `json:"seat_number"`
	Status         string `json:"status"`
	PricePaidCents int64  `json:"price_paid_cents"`
	BookedAt       string `json:"booked_at"`
	PurchasedAt    string `json:"purchased_at,omitempty"`
	ExpiresAt      string `json:"expires_at,omitempty"`
}

func toTicketResponse(t *domain.Ticket) ticketResponse {
	resp := ticketResponse{
		ID:             t.ID,
		Reference:      t.Reference,
		FlightID:       t.FlightID,
		PassengerID:    t.PassengerID,
		SeatNumber:     t.SeatNumber,
		Status:         string(t.Status),
		PricePaidCents: t.PricePaidCents,
		BookedAt:       t.BookedAt.Format(time.RFC3339),
	}
	if t.PurchasedAt != nil {
		resp.PurchasedAt = t.PurchasedAt.Format(time.RFC3339)
	}
	if t.BookingExpiry != nil {
		resp.ExpiresAt = t.BookingExpiry.Format(time.RFC3339)
	}
	return resp
}

func NewTicketHandler(service reservation.ReservationUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.book)
	router.GET("/:reference", h.get)
	router.PUT("/:reference/sell", h.sell)
	router.DELETE("/:reference", h.cancel)
}

func (h *TicketHandler) book(c *gin.Context) {
	var req reservation.BookSeatInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, seatFree, err := h.service.BookSeat(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if !seatFree {
		c.JSON(http.StatusConflict, gin.H{"error": "seat already taken"})
		return
	}
	if ticket == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "flight or passenger not found"})
		return
	}
	c.JSON(http.StatusCreated, toTicketResponse(ticket))
}

func (h *TicketHandler) get(c *gin.Context) {
	ticket, err := h.service.GetTicketByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	if ticket == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(ticket))
}

func (h *TicketHandler) sell(c *gin.Context) {
	ticket, err := h.service.SellTicket(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	if ticket == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(ticket))
}

func (h *TicketHandler) cancel(c *gin.Context) {
	ticket, err := h.service.CancelTicket(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	if ticket == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(ticket))
}
