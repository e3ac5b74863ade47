package api

import (
	"net/http"

	"github.com/Klimentov1992/flightbooking/internal/service/checkin"
	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	service checkin.CheckInUseCase
}

func NewCheckInHandler(service checkin.CheckInUseCase) *CheckInHandler {
	return &CheckInHandler{service: service}
}

func (h *CheckInHandler) Register(router *gin.RouterGroup) {
	router.GET("/:id", h.status)
	router.PUT("/:id", h.perform)
}

func (h *CheckInHandler) perform(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	result, err := h.service.PerformCheckIn(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

func (h *CheckInHandler) status(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	result, err := h.service.Status(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}
