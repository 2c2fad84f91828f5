package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/you/gatesvc/internal/http/handlers"
)

func BuildRouter(ah *handlers.AuthHandlers, gh *handlers.GateHandlers, ph *handlers.ProximityHandlers, authMW gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)

	v := r.Group("/").Use(authMW)
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)

	v.POST("/gates/:id/open", gh.Open)
	v.GET("/gates/:id/cooldown", gh.Cooldown)

	v.POST("/proximity/sample", ph.Sample)
	v.POST("/proximity/select", ph.Select)
	v.POST("/proximity/dismiss", ph.Dismiss)

	return r
}
