package routes

import (
	"net/http"
	"time"

	"staywise/handlers"
	"staywise/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers wired in main.
type HandlerBundle struct {
	Rooms     *handlers.RoomHandler
	Bookings  *handlers.BookingHandler
	Stripe    *handlers.StripeHandler
	Auth      *handlers.AuthHandler
	Recommend *handlers.RecommendHandler
}

// RegisterRoutes sets up all endpoints. Admin surfaces live under /api/admin
// so path parameters never collide with static segments.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	registerAuthRoutes(r, hb)
	registerRoomRoutes(r, hb)
	registerBookingRoutes(r, hb)
	registerStripeRoutes(r, hb)
	registerRecommendationRoutes(r, hb)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/logout", middleware.RequireAuth(), hb.Auth.LogoutHandler)
	}
}

func registerRoomRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Availability search is public; guests browse before registering.
	r.GET("/api/availability", hb.Rooms.SearchAvailableHandler)

	api := r.Group("/api/rooms")
	{
		api.GET("", hb.Rooms.GetAllRoomsHandler)
		api.GET("/:roomNr", hb.Rooms.GetRoomHandler)
	}

	admin := r.Group("/api/admin/rooms")
	{
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		admin.POST("", hb.Rooms.CreateRoomHandler)
		admin.PUT("/:roomNr", hb.Rooms.UpdateRoomHandler)
		admin.DELETE("/:roomNr", hb.Rooms.DeleteRoomHandler)
	}
}

func registerBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.RequireAuth())
		api.POST("", hb.Bookings.CreateBookingHandler)
		api.GET("", hb.Bookings.GetClientBookingsHandler)
		api.DELETE("/:startDate/:roomNr", hb.Bookings.DeleteBookingHandler)
	}

	admin := r.Group("/api/admin/bookings")
	{
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		admin.GET("", hb.Bookings.GetAllBookingsHandler)
		admin.GET("/:startDate/:roomNr", hb.Bookings.GetBookingHandler)
		admin.POST("", hb.Bookings.CreateBookingAdminHandler)
		admin.PUT("", hb.Bookings.UpdateBookingAdminHandler)
		admin.DELETE("/:startDate/:roomNr", hb.Bookings.DeleteBookingAdminHandler)
	}

	clients := r.Group("/api/admin/clients")
	{
		clients.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		clients.GET("", hb.Auth.ListClientsHandler)
		clients.DELETE(":email", hb.Auth.DeleteClientHandler)
	}
}

func registerStripeRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/stripe")
	{
		// The webhook authenticates itself by signature; no bearer token.
		api.POST("/webhook", hb.Stripe.WebhookHandler)
		api.GET("/session", hb.Stripe.GetSessionHandler)
	}
}

func registerRecommendationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/recommendations")
	{
		api.Use(middleware.RequireAuth())
		api.POST("", hb.Recommend.RecommendRoomsHandler)
	}
}
