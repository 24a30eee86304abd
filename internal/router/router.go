package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	appointmenthandler "github.com/petcareapp/portal-api/internal/handler/appointment"
	authhandler "github.com/petcareapp/portal-api/internal/handler/auth"
	cataloghandler "github.com/petcareapp/portal-api/internal/handler/catalog"
	customerhandler "github.com/petcareapp/portal-api/internal/handler/customer"
	healthhandler "github.com/petcareapp/portal-api/internal/handler/health"
	pethandler "github.com/petcareapp/portal-api/internal/handler/pet"
	"github.com/petcareapp/portal-api/internal/middleware"
	"github.com/petcareapp/portal-api/internal/service/auth"
	"github.com/petcareapp/portal-api/pkg/logger"
)

type Config struct {
	RateLimit       rate.Limit
	RateBurst       int
	CORSConfig      middleware.CORSConfig
	CatalogCacheAge int
	RequestTimeout  time.Duration
	MaxBodyBytes    int64
}

type Router struct {
	engine *gin.Engine
}

func NewRouter(
	log *logger.Logger,
	authService auth.AuthService,
	authH *authhandler.Handler,
	petH *pethandler.Handler,
	catalogH *cataloghandler.Handler,
	appointmentH *appointmenthandler.Handler,
	customerH *customerhandler.Handler,
	healthH *healthhandler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.CORS(config.CORSConfig))
	engine.Use(middleware.SecurityHeaders(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.Metrics())
	engine.Use(middleware.Compress())
	engine.Use(middleware.SizeLimit(config.MaxBodyBytes))
	if config.RequestTimeout > 0 {
		engine.Use(middleware.Timeout(config.RequestTimeout))
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(limiter.RateLimit())

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")

	healthH.RegisterRoutes(api)
	authH.RegisterRoutes(api)

	// Public store browsing; responses are cacheable.
	public := api.Group("")
	public.Use(middleware.CacheControl(config.CatalogCacheAge))
	catalogH.RegisterRoutes(public)

	// Everything else requires a portal session.
	protected := api.Group("")
	protected.Use(middleware.RequireSession(authService))
	authH.RegisterProtectedRoutes(protected)
	petH.RegisterRoutes(protected)
	appointmentH.RegisterRoutes(protected)
	customerH.RegisterRoutes(protected)

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
