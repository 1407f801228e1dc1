package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/popeskul/gridpulse/internal/api"
	"github.com/popeskul/gridpulse/internal/middleware"
)

func setupRouter(handler api.ServerInterface) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)

	// Serve OpenAPI spec
	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, "api/openapi.yaml")
	})

	r.Handle(metricsPath, promhttp.Handler())

	return api.HandlerFromMux(handler, r)
}
