package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/reelgraph/reelgraph/internal/api/respond"
	"github.com/reelgraph/reelgraph/internal/api/validate"
	"github.com/reelgraph/reelgraph/internal/services"
)

type GenreHandler struct {
	svc *services.GenreService
}

func NewGenreHandler(svc *services.GenreService) *GenreHandler { return &GenreHandler{svc: svc} }

func (h *GenreHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.svc.ListGenres(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, genres)
}

func (h *GenreHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID("genreId", mux.Vars(r)["genreId"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	g, err := h.svc.GetGenre(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, g)
}

type RatingHandler struct {
	svc *services.RatingService
}

func NewRatingHandler(svc *services.RatingService) *RatingHandler { return &RatingHandler{svc: svc} }

func (h *RatingHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.svc.ListRatings(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, ratings)
}

func (h *RatingHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID("ratingId", mux.Vars(r)["ratingId"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	rating, err := h.svc.GetRating(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, rating)
}
