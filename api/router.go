package api

import (
	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all handlers under /api/v1 with the auth middleware
// applied per the route table.
func NewRouter(
	jwtSecret string,
	authH *AuthHandler,
	flightsH *FlightHandler,
	bookingsH *BookingHandler,
	paymentsH *PaymentHandler,
	checkInH *CheckInHandler,
) *gin.Engine {
	router := gin.Default()

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := AuthRequired(jwtSecret)
	admin := RequireRole(domain.RoleAdmin)

	v1 := router.Group("/api/v1")

	authH.Register(v1.Group("/auth"), authed)

	flightsH.Register(v1.Group("/flights"), authed, admin)

	bookingsGroup := v1.Group("/bookings", authed)
	bookingsH.Register(bookingsGroup)

	paymentsGroup := v1.Group("/payments", authed)
	paymentsH.Register(paymentsGroup)

	checkInGroup := v1.Group("/check-in", authed)
	checkInH.Register(checkInGroup)

	return router
}
