package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/inflate-app/feedback-flow/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/questions/{orderId}/", GetQuestions(app))
	api.Post("/feedback", PostFeedback(app))

	sessions := NewSessionRegistry(app)
	api.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessions.Create)
		r.Get("/{id}", sessions.Get)
		r.Post("/{id}/events", sessions.Event)
	})

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}
