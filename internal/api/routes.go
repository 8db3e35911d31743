package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/world", handler.GetWorld)

		r.Route("/chunks", func(r chi.Router) {
			r.Get("/", handler.ListChunks)
			r.Route("/{x}/{y}", func(r chi.Router) {
				r.Get("/", handler.GetChunk)
				r.Get("/render", handler.RenderChunk)
				r.Post("/load", handler.LoadChunk)
				r.Post("/unload", handler.UnloadChunk)
			})
		})

		r.Get("/tiles/{x}/{y}", handler.GetTile)
	})

	return r
}
