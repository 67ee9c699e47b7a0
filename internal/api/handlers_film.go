// Package api wires HTTP handlers for the catalog endpoints.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/reelgraph/reelgraph/internal/api/respond"
	"github.com/reelgraph/reelgraph/internal/api/validate"
	"github.com/reelgraph/reelgraph/internal/model"
	"github.com/reelgraph/reelgraph/internal/services"
)

const defaultPopularCount = 10

type FilmHandler struct {
	svc *services.FilmService
}

func NewFilmHandler(svc *services.FilmService) *FilmHandler { return &FilmHandler{svc: svc} }

func (h *FilmHandler) ListFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.svc.ListFilms(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, films)
}

func (h *FilmHandler) GetFilm(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID("filmId", mux.Vars(r)["filmId"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	f, err := h.svc.GetFilm(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, f)
}

func (h *FilmHandler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var in model.Film
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	in.ID = 0
	out, err := h.svc.CreateFilm(r.Context(), &in)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *FilmHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	var in model.Film
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.ID <= 0 {
		respond.WriteBadRequest(w, "id must be a positive integer")
		return
	}
	out, err := h.svc.UpdateFilm(r.Context(), &in)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *FilmHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	filmID, userID, ok := likeIDs(w, r)
	if !ok {
		return
	}
	if err := h.svc.AddLike(r.Context(), filmID, userID); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FilmHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, userID, ok := likeIDs(w, r)
	if !ok {
		return
	}
	if err := h.svc.RemoveLike(r.Context(), filmID, userID); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FilmHandler) PopularFilms(w http.ResponseWriter, r *http.Request) {
	count, err := validate.Count("count", r.URL.Query().Get("count"), defaultPopularCount)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	films, err := h.svc.PopularFilms(r.Context(), count)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, films)
}

func likeIDs(w http.ResponseWriter, r *http.Request) (filmID, userID int64, ok bool) {
	vars := mux.Vars(r)
	filmID, err := validate.ID("filmId", vars["filmId"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return 0, 0, false
	}
	userID, err = validate.ID("userId", vars["userId"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return 0, 0, false
	}
	return filmID, userID, true
}
