package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vkozyr/busterminal/internal/service/reports"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/sales", h.sales)
	router.GET("/ticket-counts", h.ticketCounts)
}

// sales expects RFC3339 "from" and "to" query parameters bounding a closed
// purchase-date interval.
func (h *ReportHandler) sales(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}

	sales, err := h.service.SalesByRoute(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *ReportHandler) ticketCounts(c *gin.Context) {
	counts, err := h.service.TicketCountsByStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
