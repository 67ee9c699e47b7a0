package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/reelgraph/reelgraph/internal/api/recovery"
	"github.com/reelgraph/reelgraph/internal/api/requestid"
	"github.com/reelgraph/reelgraph/internal/services"
	"github.com/reelgraph/reelgraph/internal/store"
)

// NewRouter creates the HTTP router with all catalog routes.
// isHealthy feeds GET /api/health; pass nil to always report healthy.
func NewRouter(s store.Store, log zerolog.Logger, isHealthy func() bool) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)
	router.Use(requestid.Middleware(log))

	filmHandler := NewFilmHandler(services.NewFilmService(s, log))
	userHandler := NewUserHandler(services.NewUserService(s, log))
	genreHandler := NewGenreHandler(services.NewGenreService(s))
	ratingHandler := NewRatingHandler(services.NewRatingService(s))
	healthHandler := NewHealthHandler(isHealthy)

	// Health endpoint
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Film endpoints
	router.HandleFunc("/api/films", filmHandler.ListFilms).Methods("GET")
	router.HandleFunc("/api/films", filmHandler.CreateFilm).Methods("POST")
	router.HandleFunc("/api/films", filmHandler.UpdateFilm).Methods("PUT")
	router.HandleFunc("/api/films/popular", filmHandler.PopularFilms).Methods("GET")
	router.HandleFunc("/api/films/{filmId:[0-9]+}", filmHandler.GetFilm).Methods("GET")
	router.HandleFunc("/api/films/{filmId:[0-9]+}/like/{userId:[0-9]+}", filmHandler.AddLike).Methods("PUT")
	router.HandleFunc("/api/films/{filmId:[0-9]+}/like/{userId:[0-9]+}", filmHandler.RemoveLike).Methods("DELETE")

	// User endpoints
	router.HandleFunc("/api/users", userHandler.ListUsers).Methods("GET")
	router.HandleFunc("/api/users", userHandler.CreateUser).Methods("POST")
	router.HandleFunc("/api/users", userHandler.UpdateUser).Methods("PUT")
	router.HandleFunc("/api/users/{userId:[0-9]+}", userHandler.GetUser).Methods("GET")
	router.HandleFunc("/api/users/{userId:[0-9]+}/friends", userHandler.GetFriends).Methods("GET")
	router.HandleFunc("/api/users/{userId:[0-9]+}/friends/common/{otherId:[0-9]+}", userHandler.CommonFriends).Methods("GET")
	router.HandleFunc("/api/users/{userId:[0-9]+}/friends/{friendId:[0-9]+}", userHandler.AddFriend).Methods("PUT")
	router.HandleFunc("/api/users/{userId:[0-9]+}/friends/{friendId:[0-9]+}", userHandler.RemoveFriend).Methods("DELETE")

	// Reference data endpoints
	router.HandleFunc("/api/genres", genreHandler.ListGenres).Methods("GET")
	router.HandleFunc("/api/genres/{genreId:[0-9]+}", genreHandler.GetGenre).Methods("GET")
	router.HandleFunc("/api/mpa", ratingHandler.ListRatings).Methods("GET")
	router.HandleFunc("/api/mpa/{ratingId:[0-9]+}", ratingHandler.GetRating).Methods("GET")

	return router
}
