// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-rpatel/janus/controller"
	"github.com/dev-rpatel/janus/middleware"
)

// Options carries the toggles for cross-cutting middleware. Rate limiting
// needs Redis; auth needs the identity provider's signing secret. Either
// can be disabled for local development.
type Options struct {
	JWTSecret         []byte
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func SetupRouter(controllers *controller.Controllers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	if opts.RateLimitEnabled {
		router.Use(middleware.RateLimiter(opts.RateLimitRequests, opts.RateLimitWindow))
	}
	if len(opts.JWTSecret) > 0 {
		router.Use(middleware.Auth(opts.JWTSecret))
	}

	api := router.Group("/api/v1")

	controllers.Decision.RegisterRoutes(api)
	controllers.Policy.RegisterRoutes(api)
	controllers.File.RegisterRoutes(api)

	return router
}
