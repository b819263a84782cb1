// Package health contiene el controller para health checks.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/tienda/internal/http/helpers"
)

// CheckFunc es un ping a una dependencia (Postgres, cache).
type CheckFunc func(ctx context.Context) error

// Controller maneja las rutas de health check.
type Controller struct {
	checks map[string]CheckFunc
}

// NewController crea el controller con los checks de dependencias.
// Un check nil se ignora (dependencia no configurada).
func NewController(checks map[string]CheckFunc) *Controller {
	filtered := make(map[string]CheckFunc, len(checks))
	for name, fn := range checks {
		if fn != nil {
			filtered[name] = fn
		}
	}
	return &Controller{checks: filtered}
}

type componentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type healthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components,omitempty"`
}

// Healthz maneja GET /healthz: liveness, siempre 200 si el proceso responde.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Readyz maneja GET /readyz: readiness, consulta las dependencias.
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:     "ready",
		Components: make(map[string]componentStatus, len(c.checks)),
	}
	status := http.StatusOK

	for name, fn := range c.checks {
		if err := fn(ctx); err != nil {
			resp.Components[name] = componentStatus{Status: "unavailable", Error: err.Error()}
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Components[name] = componentStatus{Status: "ok"}
	}

	helpers.WriteJSON(w, status, resp)
}
