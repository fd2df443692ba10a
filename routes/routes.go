package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Dosada05/championship-tracker/docs"
	"github.com/Dosada05/championship-tracker/handlers"
	"github.com/Dosada05/championship-tracker/middleware"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	bracketHandler *handlers.BracketHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(docs.OpenAPI)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// WebSocket живёт дольше таймаута, поэтому вне группы с лимитами
	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Route("/tournaments/{tournamentID}", func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
		r.Use(chiMiddleware.Timeout(15 * time.Second))

		// Публичные маршруты
		r.Get("/bracket", bracketHandler.GetBracketHandler)
		r.Get("/standings", bracketHandler.GetStandingsHandler)
		r.Get("/seeding", bracketHandler.GetSeedingHandler)
		r.Get("/schedule/preview", bracketHandler.PreviewScheduleHandler)

		// Только для администраторов
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(opts.JWTSecret))
			r.Use(middleware.Authorize(middleware.RoleAdmin))

			r.Put("/seeding", bracketHandler.SetSeedingHandler)
			r.Delete("/seeding", bracketHandler.ClearSeedingHandler)
			r.Put("/fixture", bracketHandler.UploadFixtureHandler)
		})
	})
}
