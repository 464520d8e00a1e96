package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vkozyr/busterminal/internal/domain"
	"github.com/vkozyr/busterminal/internal/service/passengers"
)

type PassengerHandler struct {
	service passengers.PassengerUseCase
}

func NewPassengerHandler(service passengers.PassengerUseCase) *PassengerHandler {
	return &PassengerHandler{service: service}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.addOrGet)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

type passengerRequest struct {
	FullName       string `json:"full_name"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	PhoneNumber    string `json:"phone_number"`
	Email          string `json:"email"`
	BenefitType    string `json:"benefit_type"`
}

// addOrGet is idempotent: posting the same document twice returns the same
// passenger id with no second row.
func (h *PassengerHandler) addOrGet(c *gin.Context) {
	var req passengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.BenefitType == "" {
		req.BenefitType = string(domain.BenefitNone)
	}
	passenger := &domain.Passenger{
		FullName:       req.FullName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		Benefit:        domain.BenefitType(req.BenefitType),
	}

	id, err := h.service.AddOrGetPassenger(c.Request.Context(), passenger)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *PassengerHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PassengerHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger id"})
		return
	}

	passenger, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if passenger == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "passenger not found"})
		return
	}
	c.JSON(http.StatusOK, passenger)
}
