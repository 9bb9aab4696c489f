package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"auth-service/internal/handler"
	"auth-service/pkg/middleware"
)

func SetupRoutes(
	r chi.Router,
	h *handler.AuthHandler,
	auth *middleware.AuthMiddleware,
	allowedOrigins []string,
) chi.Router {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // session cookie travels cross-site
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)

	r.Route("/api/auth", func(api chi.Router) {
		// ---------------- Public ----------------
		api.Group(func(pub chi.Router) {
			pub.Post("/register", h.Register)
			pub.Post("/login", h.Login)
			pub.Post("/logout", h.Logout)
			pub.Post("/send-reset-otp", h.SendResetOTP)
			pub.Post("/reset-password", h.ResetPassword)
		})

		// ---------------- Authenticated ----------------
		api.Group(func(g chi.Router) {
			g.Use(auth.RequireAuth())
			g.Post("/send-verify-otp", h.SendVerifyOTP)
			g.Post("/verify-account", h.VerifyAccount)
			g.Get("/is-auth", h.IsAuthenticated)
		})
	})

	return r
}
