package api

import (
	"net/http"
	"strconv"

	"github.com/Klimentov1992/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

// Register mounts the catalog routes. Reads are public; mutations
// require an authenticated admin.
func (h *FlightHandler) Register(router *gin.RouterGroup, authed, admin gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", authed, admin, h.create)
	router.PUT("/:id", authed, admin, h.update)
	router.DELETE("/:id", authed, admin, h.delete)
}

func (h *FlightHandler) list(c *gin.Context) {
	result, err := h.service.Search(c.Request.Context(), flights.SearchInput{
		DepartureCity: c.Query("departureCity"),
		ArrivalCity:   c.Query("arrivalCity"),
		DepartureDate: c.Query("departureDate"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, result, len(result))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flights.CreateFlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	flight, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	var req flights.UpdateFlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	flight, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{})
}

// parseID reads the :id path param; on failure it writes the error
// response itself.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid id")
		return 0, err
	}
	return id, nil
}
