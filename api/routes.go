package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vkozyr/busterminal/internal/domain"
	"github.com/vkozyr/busterminal/internal/service/routes"
)

type RouteHandler struct {
	service routes.RouteUseCase
}

func NewRouteHandler(service routes.RouteUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

type createRouteRequest struct {
	DepartureStopID     int64   `json:"departure_stop_id"`
	DestinationStopID   int64   `json:"destination_stop_id"`
	IntermediateStopIDs []int64 `json:"intermediate_stop_ids"`
}

func (h *RouteHandler) create(c *gin.Context) {
	var req createRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route := &domain.Route{
		DepartureStopID:     req.DepartureStopID,
		DestinationStopID:   req.DestinationStopID,
		IntermediateStopIDs: req.IntermediateStopIDs,
	}
	if err := h.service.AddRoute(c.Request.Context(), route); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": route.ID})
}

func (h *RouteHandler) list(c *gin.Context) {
	details, err := h.service.ListRoutes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *RouteHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route id"})
		return
	}

	detail, err := h.service.GetRouteByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}
