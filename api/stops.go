package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vkozyr/busterminal/internal/domain"
	"github.com/vkozyr/busterminal/internal/repository"
)

type StopHandler struct {
	stops repository.StopRepository
}

func NewStopHandler(stops repository.StopRepository) *StopHandler {
	return &StopHandler{stops: stops}
}

func (h *StopHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

type createStopRequest struct {
	Name string `json:"name"`
	City string `json:"city"`
}

func (h *StopHandler) create(c *gin.Context) {
	var req createStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stop := &domain.Stop{Name: req.Name, City: req.City}
	if err := stop.Validate(); err != nil {
		respondError(c, err)
		return
	}
	if err := h.stops.Create(c.Request.Context(), stop); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stop)
}

func (h *StopHandler) list(c *gin.Context) {
	stops, err := h.stops.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stops)
}

func (h *StopHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stop id"})
		return
	}

	stop, err := h.stops.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if stop == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stop not found"})
		return
	}
	c.JSON(http.StatusOK, stop)
}
