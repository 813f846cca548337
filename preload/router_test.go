package preload

import (
	"net/http"
	"net/http/httptest"
	"playlists/config"
	"playlists/db"
	"playlists/models"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRouter(t *testing.T) {
	config.DEBUG_MODE = false
	db.InitSQLite(":memory:")
	models.Init()
	user, err := models.UserCreate("alice")
	if err != nil {
		t.Fatal(err)
	}
	playlist, err := models.PlaylistCreate(user.ID, "mix")
	if err != nil {
		t.Fatal(err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	r := &Router{Base: router}
	r.UserGET("/users/:user_id/", func(c *gin.Context, u *models.User) {
		c.String(http.StatusOK, u.Username)
	})
	r.PlaylistDELETE("/playlists/:playlist_id/", func(c *gin.Context, p *models.Playlist) {
		c.String(http.StatusOK, p.PlaylistName)
	})

	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{"user", http.MethodGet, "/users/" + strconv.FormatUint(user.ID, 10) + "/", http.StatusOK, "alice"},
		{"unknown user", http.MethodGet, "/users/77/", http.StatusNotFound, `{"error":"User not found"}`},
		{"malformed user", http.MethodGet, "/users/-1/", http.StatusNotFound, `{"error":"User not found"}`},
		{"zero user", http.MethodGet, "/users/0/", http.StatusNotFound, `{"error":"User not found"}`},
		{"playlist", http.MethodDelete, "/playlists/" + strconv.FormatUint(playlist.ID, 10) + "/", http.StatusOK, "mix"},
		{"unknown playlist", http.MethodDelete, "/playlists/77/", http.StatusNotFound, `{"error":"Playlist not found"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.status || w.Body.String() != tt.body {
				t.Errorf("%s %s = %d %q, want %d %q", tt.method, tt.path, w.Code, w.Body.String(), tt.status, tt.body)
			}
		})
	}
}
