package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public reads and the owner-only mutations.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public
		r.Post("/auth/sign-in", handlers.authHandler.signIn())
		r.Post("/auth/sign-out", handlers.authHandler.signOut())
		r.Get("/auth/session", handlers.authHandler.getSession())

		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Post("/project/{projectID}/like", handlers.projectHandler.likeProject())

		r.Get("/content", handlers.contentHandler.getContent())
		r.Get("/skills", handlers.skillHandler.getSkills())

		// Owner only
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/project", handlers.projectHandler.createProject())
			r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

			r.Route("/project/{projectID}/editor", func(r chi.Router) {
				r.Post("/", handlers.editorHandler.openEditor())
				r.Get("/", handlers.editorHandler.getState())
				r.Delete("/", handlers.editorHandler.closeEditor())
				r.Post("/blocks", handlers.editorHandler.addBlock())
				r.Delete("/blocks/{blockID}", handlers.editorHandler.deleteBlock())
				r.Put("/blocks/{blockID}/size", handlers.editorHandler.setSize())
				r.Put("/blocks/{blockID}/media", handlers.editorHandler.replaceMedia())
				r.Post("/blocks/{blockID}/upload", handlers.editorHandler.upload())
				r.Put("/order", handlers.editorHandler.reorder())
				r.Post("/import", handlers.editorHandler.importBatch())
				r.Patch("/fields", handlers.editorHandler.setFields())
				r.Post("/commit", handlers.editorHandler.commit())
				r.Post("/reload", handlers.editorHandler.reload())
			})

			r.Put("/content/{key}", handlers.contentHandler.updateContent())
			r.Post("/content/testimonials", handlers.contentHandler.addTestimonial())
			r.Put("/content/testimonials/{id}", handlers.contentHandler.updateTestimonial())
			r.Delete("/content/testimonials/{id}", handlers.contentHandler.deleteTestimonial())

			r.Post("/skill", handlers.skillHandler.createSkill())
			r.Put("/skill/{skillID}", handlers.skillHandler.updateSkill())
			r.Delete("/skill/{skillID}", handlers.skillHandler.deleteSkill())
			r.Post("/skill/{skillID}/images", handlers.skillHandler.addSkillImage())
			r.Delete("/skill/{skillID}/images", handlers.skillHandler.removeSkillImage())

			r.Post("/upload/{category}", handlers.uploadHandler.uploadMedia())
		})
	})
}
