package handlers

import (
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Routes struct {
	Tickets *TicketHandler
	Events  *EventHandler
	Health  *HealthHandler

	// Limit guards the routes that write. Nil disables it.
	Limit func(e *core.RequestEvent) error

	EnableMetrics bool
}

func (rt Routes) Register(r *router.Router[*core.RequestEvent]) {
	limited := func(route *router.Route[*core.RequestEvent]) {
		if rt.Limit != nil {
			route.BindFunc(rt.Limit)
		}
	}

	v1 := r.Group("/api/v1")

	// Ticket endpoints
	v1.GET("/tickets", rt.Tickets.List)
	limited(v1.POST("/tickets", rt.Tickets.Create))
	limited(v1.PATCH("/tickets/{id}", rt.Tickets.Edit))
	limited(v1.DELETE("/tickets/{id}", rt.Tickets.Delete))
	limited(v1.POST("/tickets/{id}/sessions", rt.Tickets.ProposeSession))

	// Event endpoints
	v1.GET("/events", rt.Events.List)
	limited(v1.POST("/events", rt.Events.Create))
	limited(v1.PATCH("/events/{id}", rt.Events.Edit))
	limited(v1.DELETE("/events/{id}", rt.Events.Delete))
	limited(v1.POST("/events/{id}/participants", rt.Events.Join))

	v1.GET("/slots", rt.Events.Slots)

	r.GET("/healthz", rt.Health.Check)

	if rt.EnableMetrics {
		r.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
	}
}
