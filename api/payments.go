package api

import (
	"net/http"

	"github.com/Klimentov1992/flightbooking/internal/service/payment"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service payment.PaymentUseCase
}

func NewPaymentHandler(service payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.process)
	router.GET("/:id", h.get)
}

func (h *PaymentHandler) process(c *gin.Context) {
	var req payment.ProcessPaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Process(c.Request.Context(), callerFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, result)
}

func (h *PaymentHandler) list(c *gin.Context) {
	payments, err := h.service.ListForUser(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, payments, len(payments))
}

func (h *PaymentHandler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	result, err := h.service.Get(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}
