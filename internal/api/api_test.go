package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reelgraph/reelgraph/internal/model"
	"github.com/reelgraph/reelgraph/internal/store/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(memory.New(), zerolog.Nop(), nil))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, out.Bytes()
}

func createUser(t *testing.T, base, login string) model.User {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, base+"/api/users", map[string]any{
		"email":    login + "@example.test",
		"login":    login,
		"birthday": "1990-04-01",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user %q: status=%d body=%s", login, resp.StatusCode, body)
	}
	var u model.User
	if err := json.Unmarshal(body, &u); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	return u
}

func createFilm(t *testing.T, base, name, released string) model.Film {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, base+"/api/films", map[string]any{
		"name":        name,
		"description": "about " + name,
		"releaseDate": released,
		"duration":    100,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create film %q: status=%d body=%s", name, resp.StatusCode, body)
	}
	var f model.Film
	if err := json.Unmarshal(body, &f); err != nil {
		t.Fatalf("decode film: %v", err)
	}
	return f
}

func TestAPI_FilmLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/films", map[string]any{
		"name":        "Arrival",
		"description": "first contact",
		"releaseDate": "2016-11-11",
		"duration":    116,
		"mpa":         map[string]any{"id": 3},
		"genres":      []map[string]any{{"id": 2}},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status=%d body=%s", resp.StatusCode, body)
	}
	var created model.Film
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.MPA == nil || created.MPA.Name != "PG-13" {
		t.Fatalf("mpa not resolved: %+v", created.MPA)
	}
	if len(created.Genres) != 1 || created.Genres[0].Name != "Drama" {
		t.Fatalf("genres not resolved: %+v", created.Genres)
	}

	resp, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/films/%d", srv.URL, created.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: status=%d body=%s", resp.StatusCode, body)
	}

	created.Description = "aliens and linguistics"
	resp, body = doJSON(t, http.MethodPut, srv.URL+"/api/films", created)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status=%d body=%s", resp.StatusCode, body)
	}

	// Duplicate (name, releaseDate) pair is a conflict.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/films", map[string]any{
		"name":        "Arrival",
		"releaseDate": "2016-11-11",
		"duration":    116,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate create: status=%d, want 409", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/films/9999", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get missing: status=%d, want 404", resp.StatusCode)
	}

	// Validation failures surface as 400.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/films", map[string]any{
		"name":        "too old",
		"releaseDate": "1890-01-01",
		"duration":    60,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("pre-cinema release: status=%d, want 400", resp.StatusCode)
	}
}

func TestAPI_LikesAndPopular(t *testing.T) {
	srv := newTestServer(t)

	u := createUser(t, srv.URL, "viewer")
	quiet := createFilm(t, srv.URL, "quiet", "2001-05-01")
	hit := createFilm(t, srv.URL, "hit", "2002-05-01")

	resp, _ := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/films/%d/like/%d", srv.URL, hit.ID, u.ID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("like: status=%d, want 204", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/films/%d/like/%d", srv.URL, hit.ID, u.ID), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate like: status=%d, want 409", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/films/popular?count=5", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("popular: status=%d body=%s", resp.StatusCode, body)
	}
	var top []model.Film
	if err := json.Unmarshal(body, &top); err != nil {
		t.Fatalf("decode popular: %v", err)
	}
	if len(top) != 2 || top[0].ID != hit.ID || top[1].ID != quiet.ID {
		t.Fatalf("popular order: got %+v", top)
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/films/popular?count=0", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("popular count=0: status=%d, want 400", resp.StatusCode)
	}

	// Unlike twice: both succeed, the second is a no-op.
	for i := 0; i < 2; i++ {
		resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/films/%d/like/%d", srv.URL, hit.ID, u.ID), nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("unlike #%d: status=%d, want 204", i+1, resp.StatusCode)
		}
	}
}

func TestAPI_UsersAndFriends(t *testing.T) {
	srv := newTestServer(t)

	alice := createUser(t, srv.URL, "alice")
	if alice.Name != "alice" {
		t.Fatalf("display name fallback: got %q", alice.Name)
	}
	bob := createUser(t, srv.URL, "bob")
	carol := createUser(t, srv.URL, "carol")

	// Duplicate email conflicts.
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]any{
		"email":    "alice@example.test",
		"login":    "alice2",
		"birthday": "1990-04-01",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate email: status=%d, want 409", resp.StatusCode)
	}

	friendURL := func(a, b int64) string {
		return fmt.Sprintf("%s/api/users/%d/friends/%d", srv.URL, a, b)
	}
	for _, pair := range [][2]int64{{alice.ID, carol.ID}, {bob.ID, carol.ID}, {alice.ID, bob.ID}} {
		resp, _ := doJSON(t, http.MethodPut, friendURL(pair[0], pair[1]), nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("add friend %v: status=%d", pair, resp.StatusCode)
		}
	}
	// Repeating an add is fine.
	resp, _ = doJSON(t, http.MethodPut, friendURL(alice.ID, bob.ID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("repeat add friend: status=%d", resp.StatusCode)
	}
	// Self-friendship is rejected.
	resp, _ = doJSON(t, http.MethodPut, friendURL(alice.ID, alice.ID), nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("self friend: status=%d, want 400", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/users/%d/friends", srv.URL, alice.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("friends: status=%d body=%s", resp.StatusCode, body)
	}
	var friends []model.User
	if err := json.Unmarshal(body, &friends); err != nil {
		t.Fatalf("decode friends: %v", err)
	}
	if len(friends) != 2 {
		t.Fatalf("friends of alice: got %d, want 2", len(friends))
	}

	// Friendship is one-directional; carol added nobody.
	resp, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/users/%d/friends", srv.URL, carol.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("friends of carol: status=%d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &friends); err != nil || len(friends) != 0 {
		t.Fatalf("friends of carol: got=%s err=%v, want []", body, err)
	}

	resp, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/users/%d/friends/common/%d", srv.URL, alice.ID, bob.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("common friends: status=%d body=%s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &friends); err != nil || len(friends) != 1 || friends[0].ID != carol.ID {
		t.Fatalf("common friends: got=%s err=%v", body, err)
	}

	resp, _ = doJSON(t, http.MethodDelete, friendURL(alice.ID, bob.ID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("remove friend: status=%d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodDelete, friendURL(alice.ID, bob.ID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("remove friend again: status=%d, want 204 no-op", resp.StatusCode)
	}
}

func TestAPI_ReferenceData(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/genres", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("genres: status=%d", resp.StatusCode)
	}
	var genres []model.Genre
	if err := json.Unmarshal(body, &genres); err != nil || len(genres) != 6 {
		t.Fatalf("genres: n=%d err=%v", len(genres), err)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/mpa/3", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mpa/3: status=%d", resp.StatusCode)
	}
	var rating model.Rating
	if err := json.Unmarshal(body, &rating); err != nil || rating.Name != "PG-13" {
		t.Fatalf("mpa/3: got=%s err=%v", body, err)
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/mpa/99", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("mpa/99: status=%d, want 404", resp.StatusCode)
	}
}

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: status=%d", resp.StatusCode)
	}
	var out map[string]string
	if err := json.Unmarshal(body, &out); err != nil || out["status"] != "healthy" {
		t.Fatalf("health: got=%s err=%v", body, err)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatal("health: missing X-Request-Id header")
	}
}
