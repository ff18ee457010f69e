package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-room-booking/internal/config"
	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration and login under /v1/auth with rate
// limiting, plus the protected /v1/me endpoint. The rate limiter guards
// the credential endpoints against brute forcing; it disappears when
// Redis is unavailable.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rlCfg config.RateLimitConfig, rdb *redis.Client, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.Use(middleware.RateLimit(rlCfg, rdb))
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("MANAGER", "CUSTOMER"))
	auth.GET("/me", a.Me)
}

// RegisterCustomer registers the endpoints available to every
// authenticated user: hotel and room browsing, booking, and the caller's
// own booking history.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("MANAGER", "CUSTOMER"))
	g.GET("/hotels/nearby", h.NearbyHotels)
	g.GET("/hotels/:id/rooms/available", h.AvailableRooms)
	g.POST("/bookings", h.BookRoom)
	g.GET("/bookings/recent", h.RecentBookings)
}

// RegisterManager registers the manager-only endpoints under
// /v1/manager. The MANAGER role gates the group; each handler still
// verifies ownership of the addressed hotel.
func RegisterManager(e *echo.Echo, h *handler.ManagerHandler, jwtSecret string) {
	g := e.Group("/v1/manager")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("MANAGER"))
	g.PUT("/hotels/:id/rooms/:room", h.UpdateRoom)
	g.GET("/updates/recent", h.RecentUpdates)
	g.GET("/hotels/:id/bookings", h.BookingHistory)
	g.GET("/hotels/:id/regulars", h.RegularCustomers)
	g.POST("/repairs", h.PlaceRepairRequest)
	g.GET("/repairs", h.RepairHistory)
}
