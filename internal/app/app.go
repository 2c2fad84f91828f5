package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/gatesvc/internal/config"
	httpx "github.com/you/gatesvc/internal/http"
	"github.com/you/gatesvc/internal/http/handlers"
	"github.com/you/gatesvc/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(container.AuthSvc)
	gateH := handlers.NewGateHandlers(container.Opener, container.UserRepo)
	proxH := handlers.NewProximityHandlers(container.Proximity, container.UserRepo)

	authMW := middleware.AuthMiddleware(container.TokenSvc, container.SessionRepo)

	r := httpx.BuildRouter(authH, gateH, proxH, authMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
