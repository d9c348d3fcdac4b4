// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/suntravels/callcenter/internal/handler"
)

// RegisterRoutes registers routes that carry no middleware.  Currently it
// exposes only a health check, which load balancers and monitoring systems
// use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterContracts registers the contract endpoints.  cacheMW is applied
// to the read endpoints (contract data changes rarely); rateMW guards the
// availability search, which is the expensive path.  Either middleware may
// be a pass-through when Redis is unavailable.
//
// Route order matters: /contracts/available must be registered before the
// :hotelName and :id parameter routes so Echo does not swallow it.
func RegisterContracts(e *echo.Echo, h *handler.ContractHandler, cacheMW, rateMW echo.MiddlewareFunc) {
	g := e.Group("/contracts")

	g.POST("", h.CreateContract)
	g.GET("", h.ListContracts, cacheMW)
	g.POST("/available", h.SearchAvailability, rateMW)
	g.GET("/:hotelName", h.SearchByHotelName, cacheMW)
	g.DELETE("/:id", h.DeleteContract)
}
