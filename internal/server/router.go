package server

import (
	"net/http"

	"github.com/atelierware/folio/internal/api"
	"github.com/atelierware/folio/internal/api/handlers"
	"github.com/atelierware/folio/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	// AdminToken guards the /admin routes; empty disables them.
	AdminToken string

	ChunkHandler        *handlers.ChunkHandler
	AssistantHandler    *handlers.AssistantHandler
	ProjectHandler      *handlers.ProjectHandler
	SkillHandler        *handlers.SkillHandler
	ContactHandler      *handlers.ContactHandler
	SettingsHandler     *handlers.SettingsHandler
	ConversationHandler *handlers.ConversationHandler
	UploadHandler       *handlers.UploadHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public site surface, no auth.
	r.Route("/projects", func(r chi.Router) {
		r.Get("/", cfg.ProjectHandler.List)
		r.Get("/{slug}", cfg.ProjectHandler.GetBySlug)
	})
	r.Get("/skills", cfg.SkillHandler.List)
	r.Post("/contact", cfg.ContactHandler.Submit)

	r.Route("/assistant", func(r chi.Router) {
		r.Post("/chat", cfg.AssistantHandler.Chat)
		r.Get("/retrieve", cfg.AssistantHandler.Retrieve)
	})

	if cfg.AdminToken != "" {
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminTokenAuth(cfg.AdminToken))

			r.Route("/chunks", func(r chi.Router) {
				r.Post("/", cfg.ChunkHandler.Create)
				r.Get("/", cfg.ChunkHandler.List)
				r.Put("/{id}", cfg.ChunkHandler.Update)
				r.Delete("/{id}", cfg.ChunkHandler.Delete)
			})
			r.Post("/ingest", cfg.ChunkHandler.Ingest)

			r.Route("/projects", func(r chi.Router) {
				r.Post("/", cfg.ProjectHandler.Create)
				r.Put("/{id}", cfg.ProjectHandler.Update)
				r.Delete("/{id}", cfg.ProjectHandler.Delete)
			})

			r.Route("/skills", func(r chi.Router) {
				r.Post("/", cfg.SkillHandler.Create)
				r.Put("/{id}", cfg.SkillHandler.Update)
				r.Delete("/{id}", cfg.SkillHandler.Delete)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Get("/", cfg.ContactHandler.List)
				r.Post("/{id}/read", cfg.ContactHandler.MarkRead)
				r.Delete("/{id}", cfg.ContactHandler.Delete)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", cfg.SettingsHandler.Get)
				r.Put("/", cfg.SettingsHandler.Update)
			})

			r.Get("/conversations", cfg.ConversationHandler.List)

			if cfg.UploadHandler != nil {
				r.Route("/uploads", func(r chi.Router) {
					r.Post("/", cfg.UploadHandler.PresignUpload)
					r.Get("/", cfg.UploadHandler.PresignDownload)
					r.Delete("/", cfg.UploadHandler.DeleteImage)
				})
			}
		})
	}

	return r
}
