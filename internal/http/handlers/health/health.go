// Package health implements the liveness endpoint.
package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// Handler answers GET /health.
func Handler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
