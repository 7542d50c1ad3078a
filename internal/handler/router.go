package handler

import (
	"net/http"
	"time"

	"moviematrix/internal/realtime"
	"moviematrix/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Services struct {
	Movies    *service.MovieService
	Reviews   *service.ReviewService
	Watchlist *service.WatchlistService
	Users     *service.UserService
	Stats     *service.StatsService
	Hub       *realtime.Hub
}

type RouterConfig struct {
	CORSOrigins []string
	// RateLimitRPM is requests per minute per client IP. 0 disables the limit.
	RateLimitRPM int
}

func NewRouter(svc Services, cfg RouterConfig) http.Handler {
	movieH := NewMovieHandler(svc.Movies)
	reviewH := NewReviewHandler(svc.Reviews)
	watchH := NewWatchlistHandler(svc.Watchlist)
	userH := NewUserHandler(svc.Users)
	statsH := NewStatsHandler(svc.Stats)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	if cfg.RateLimitRPM > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimitRPM, time.Minute))
	}

	r.Get("/", Root)
	r.Get("/health", Health)

	// movies
	r.Get("/movies", movieH.List)
	r.Post("/movies", movieH.Create)
	r.Get("/movies/{id}", movieH.Get)
	r.Put("/movies/{id}", movieH.Update)
	r.Delete("/movies/{id}", movieH.Delete)
	r.Get("/my-movies", movieH.ListMine)
	r.Get("/movies-top-rated", movieH.TopRated)
	r.Get("/movies-recent", movieH.Recent)
	r.Get("/movies/search/{query}", movieH.Search)
	r.Get("/movies/genre/{genre}", movieH.ByGenre)
	r.Post("/movies/filter/genres", movieH.FilterGenres)
	r.Get("/movies/filter/rating", movieH.FilterRating)
	r.Post("/movies/filter/advanced", movieH.FilterAdvanced)

	// reviews
	r.Get("/reviews/{movieId}", reviewH.ListForMovie)
	r.Post("/reviews", reviewH.Create)
	r.Put("/reviews/{id}", reviewH.Update)
	r.Delete("/reviews/{id}", reviewH.Delete)
	r.Get("/my-reviews", reviewH.ListMine)

	// watchlist
	r.Get("/watchlist/{email}", watchH.List)
	r.Post("/watchlist", watchH.Add)
	r.Delete("/watchlist/{email}/{movieId}", watchH.Remove)

	r.Post("/users", userH.Register)

	r.Route("/stats", func(r chi.Router) {
		r.Get("/movies-count", statsH.Movies)
		r.Get("/users-count", statsH.Users)
		r.Get("/reviews-count", statsH.Reviews)
		r.Get("/watchlist-count/{email}", watchH.Count)
	})

	if svc.Hub != nil {
		r.Get("/ws/ratings", svc.Hub.ServeWS)
	}

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
