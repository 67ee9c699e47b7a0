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

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID("userId", mux.Vars(r)["userId"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	u, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in model.User
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	in.ID = 0
	out, err := h.svc.CreateUser(r.Context(), &in)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var in model.User
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.ID <= 0 {
		respond.WriteBadRequest(w, "id must be a positive integer")
		return
	}
	out, err := h.svc.UpdateUser(r.Context(), &in)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, ok := friendIDs(w, r)
	if !ok {
		return
	}
	if err := h.svc.AddFriend(r.Context(), userID, friendID); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, ok := friendIDs(w, r)
	if !ok {
		return
	}
	if err := h.svc.RemoveFriend(r.Context(), userID, friendID); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ID("userId", mux.Vars(r)["userId"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	friends, err := h.svc.GetFriends(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, friends)
}

func (h *UserHandler) CommonFriends(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := validate.ID("userId", vars["userId"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	otherID, err := validate.ID("otherId", vars["otherId"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	common, err := h.svc.CommonFriends(r.Context(), userID, otherID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, common)
}

func friendIDs(w http.ResponseWriter, r *http.Request) (userID, friendID int64, ok bool) {
	vars := mux.Vars(r)
	userID, err := validate.ID("userId", vars["userId"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return 0, 0, false
	}
	friendID, err = validate.ID("friendId", vars["friendId"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return 0, 0, false
	}
	return userID, friendID, true
}
