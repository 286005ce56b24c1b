package rest

import (
	"github.com/dmitrijs2005/carsapi/internal/logging"
	"github.com/dmitrijs2005/carsapi/internal/server/metrics"
	"github.com/gin-gonic/gin"
)

// Handlers groups what NewRouter wires.
type Handlers struct {
	Gate     *Gate
	Sessions *SessionHandler
	Vehicles *VehicleHandler
	Metrics  *metrics.Metrics
	Logger   logging.Logger
}

// NewRouter wires Gin routes and middleware.
func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(RequestLogger(h.Logger, h.Metrics))
	r.Use(Recovery(h.Logger))

	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	v1 := r.Group("/v1")
	{
		v1.POST("/register/", h.Gate.RequireAnonymous, h.Sessions.Register)
		v1.POST("/login/", h.Gate.RequireAnonymous, h.Sessions.Login)
		v1.POST("/logout/", h.Gate.Protect(h.Sessions.Logout))

		v1.GET("/cars/", h.Gate.Protect(h.Vehicles.List))
		v1.POST("/cars/", h.Gate.Protect(h.Vehicles.Create))

		car := v1.Group("/car/:id")
		{
			car.GET("/", h.Gate.Protect(h.Vehicles.Get))
			car.PUT("/", h.Gate.Protect(h.Vehicles.Replace))
			car.PATCH("/", h.Gate.Protect(h.Vehicles.Patch))
			car.DELETE("/", h.Gate.Protect(h.Vehicles.Delete))
		}
	}

	return r
}
