package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/subnets-service/internal/metrics"
	"github.com/maxviazov/subnets-service/internal/service"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Subnets service.SubnetService
	Tasks   service.TaskService
	Checks  []HealthCheck
	// BaseURL overrides the request origin in absolute links when set.
	BaseURL string
	Logger  zerolog.Logger
}

// NewEngine builds a gin engine with the standard middleware chain and all routes.
func NewEngine(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(d.Logger), Metrics(), Recovery(d.Logger))
	Register(r, d)
	return r
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, d Deps) {
	h := NewHealthHandler(d.Checks...)
	links := NewLinkBuilder(d.BaseURL)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewSubnetHandler(d.Subnets, links).Register(api)
		NewTaskHandler(d.Tasks, links).Register(api)
	}
}
