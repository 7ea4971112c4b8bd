package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hridaya423/newster/internal/domain"
	"github.com/hridaya423/newster/internal/infra/resilience"
)

// Health reports liveness plus the circuit state of each upstream. An open
// circuit marks the service degraded but still answers 200.
func (h *Handler) Health(c echo.Context) error {
	resp := healthResponse{Status: "ok", Service: h.serviceName}

	if len(h.breakers) > 0 {
		resp.Upstreams = make(map[string]upstreamHealth, len(h.breakers))
	}
	for _, cb := range h.breakers {
		state := cb.State()
		stats := cb.Stats()
		resp.Upstreams[cb.Name()] = upstreamHealth{
			State:               state.String(),
			TotalSuccesses:      stats.TotalSuccesses,
			TotalFailures:       stats.TotalFailures,
			ConsecutiveFailures: stats.ConsecFailures,
		}
		if state != resilience.StateClosed {
			resp.Status = "degraded"
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// Categories lists the dashboard tabs and sort options.
func (h *Handler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, categoriesResponse{
		Categories:      domain.Categories,
		DefaultCategory: domain.DefaultCategory,
		SortOptions:     domain.SortOptions,
	})
}
