package routes

import (
	"net/http"
	"time"

	"vetassist/config"
	"vetassist/handlers"
	"vetassist/middleware"
	"vetassist/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterChatRoutes registers the chat widget endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("/session", hb.CreateSessionHandler)
		api.POST("/message", hb.SendMessageHandler)
		api.GET("/history/:sessionId", hb.GetHistoryHandler)
	}
}

// RegisterAppointmentRoutes registers appointment endpoints. Listing across
// sessions and status changes are admin operations.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle, adminSecret string, logger *zap.Logger) {
	api := r.Group("/api/appointments")
	{
		api.GET("/session/:sessionId", hb.ListSessionAppointmentsHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware(adminSecret, logger))
		admin.GET("", hb.ListAppointmentsHandler)
		admin.PATCH("/:id/status", hb.UpdateAppointmentStatusHandler)
	}
}

// RegisterHealthRoute registers liveness and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	if hb.MetricsHandler != nil {
		r.GET("/metrics", hb.MetricsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, cfg *config.Config, logger *zap.Logger) {
	r.Use(utils.ErrorHandler(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(cfg.ClientURL),
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))

	RegisterChatRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb, cfg.AdminJWTSecret, logger)
	RegisterHealthRoute(r, hb)

	r.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound, "Not found")
	})
}

func allowedOrigins(clientURL string) []string {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if clientURL != "" && clientURL != origins[0] && clientURL != origins[1] {
		origins = append([]string{clientURL}, origins...)
	}
	return origins
}
