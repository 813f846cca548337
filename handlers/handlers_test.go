package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"playlists/config"
	"playlists/db"
	"playlists/models"
	"playlists/storage"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

const testBaseURL = "https://covers.s3.us-east-1.amazonaws.com"

type brokenStorage struct {
	*storage.MemoryStorage
}

func (s brokenStorage) SetPublicRead(ctx context.Context, path string) error {
	return errors.New("access denied")
}

func setup(t *testing.T) (*gin.Engine, *storage.MemoryStorage) {
	t.Helper()
	config.DEBUG_MODE = false
	db.InitSQLite(":memory:")
	models.Init()
	store := storage.NewMemoryStorage(testBaseURL)
	storage.SetDefaultStorage(store)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router)
	return router, store
}

func request(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("cannot decode %q: %v", w.Body.String(), err)
	}
	return result
}

func expect(t *testing.T, w *httptest.ResponseRecorder, status int, errorMessage string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	if errorMessage != "" {
		if got := decode[Response](t, w).Error; got != errorMessage {
			t.Errorf("error = %q, want %q", got, errorMessage)
		}
	}
}

func createUser(t *testing.T, router *gin.Engine, name string) UserDetails {
	t.Helper()
	w := request(t, router, http.MethodPost, "/users/", fmt.Sprintf(`{"username":%q}`, name))
	expect(t, w, http.StatusOK, "")
	return decode[UserDetails](t, w)
}

func createPlaylist(t *testing.T, router *gin.Engine, userID uint64, name string) PlaylistInfo {
	t.Helper()
	w := request(t, router, http.MethodPost, fmt.Sprintf("/users/%d/playlists/", userID), fmt.Sprintf(`{"playlist_name":%q}`, name))
	expect(t, w, http.StatusOK, "")
	return decode[PlaylistInfo](t, w)
}

func createSong(t *testing.T, router *gin.Engine, title string, bpm int) SongInfo {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q,"artist":"B","bpm":%d,"link":"http://x/%s"}`, title, bpm, title)
	w := request(t, router, http.MethodPost, "/songs/add/", body)
	expect(t, w, http.StatusCreated, "")
	return decode[SongInfo](t, w)
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	buf := bytes.Buffer{}
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestUserCreate(t *testing.T) {
	router, _ := setup(t)

	w := request(t, router, http.MethodPost, "/users/", `{"username":"alice"}`)
	expect(t, w, http.StatusOK, "")
	if !strings.Contains(w.Body.String(), `"username":"alice"`) || !strings.Contains(w.Body.String(), `"playlists":[]`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
	user := decode[UserDetails](t, w)
	if user.ID == 0 {
		t.Error("no id generated")
	}

	w = request(t, router, http.MethodGet, fmt.Sprintf("/users/%d/", user.ID), "")
	expect(t, w, http.StatusOK, "")
	got := decode[UserDetails](t, w)
	if got.Username != "alice" || len(got.Playlists) != 0 {
		t.Errorf("GET user = %+v", got)
	}

	tests := []struct {
		name string
		body string
	}{
		{"missing username", `{}`},
		{"null username", `{"username":null}`},
		{"not json", `username=alice`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expect(t, request(t, router, http.MethodPost, "/users/", tt.body), http.StatusBadRequest, "Please input a username")
		})
	}
	expect(t, request(t, router, http.MethodGet, "/users/999/", ""), http.StatusNotFound, "User not found")
	expect(t, request(t, router, http.MethodGet, "/users/abc/", ""), http.StatusNotFound, "User not found")
}

func TestSongCreate(t *testing.T) {
	router, _ := setup(t)
	body := `{"title":"A","artist":"B","bpm":120,"link":"http://x"}`

	w := request(t, router, http.MethodPost, "/songs/add/", body)
	expect(t, w, http.StatusCreated, "")
	song := decode[SongInfo](t, w)
	if song.Title != "A" || song.Artist != "B" || song.Bpm != 120 || song.Link != "http://x" || song.ID == 0 {
		t.Errorf("created song = %+v", song)
	}
	expect(t, request(t, router, http.MethodPost, "/songs/add/", body), http.StatusUnauthorized, "Song already exists")

	w = request(t, router, http.MethodGet, fmt.Sprintf("/songs/%d/", song.ID), "")
	expect(t, w, http.StatusOK, "")
	if got := decode[SongInfo](t, w); got != song {
		t.Errorf("GET song = %+v, want %+v", got, song)
	}
	expect(t, request(t, router, http.MethodGet, "/songs/999/", ""), http.StatusNotFound, "Song not found")

	invalid := []struct {
		name string
		body string
	}{
		{"missing title", `{"artist":"B","bpm":120,"link":"http://x"}`},
		{"missing bpm", `{"title":"A","artist":"B","link":"http://x"}`},
		{"null link", `{"title":"A","artist":"B","bpm":120,"link":null}`},
		{"bpm not a number", `{"title":"A","artist":"B","bpm":"fast","link":"http://x"}`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			expect(t, request(t, router, http.MethodPost, "/songs/add/", tt.body), http.StatusBadRequest, "Please input all requested data")
		})
	}
}

func TestSongSearch(t *testing.T) {
	router, _ := setup(t)
	for i, bpm := range []int{90, 110, 128, 140} {
		createSong(t, router, fmt.Sprintf("song%d", i), bpm)
	}

	w := request(t, router, http.MethodGet, "/songs/search/", `{"lower_bpm":110,"upper_bpm":140}`)
	expect(t, w, http.StatusOK, "")
	songs := decode[[]SongInfo](t, w)
	if len(songs) != 3 || songs[0].Bpm != 110 || songs[2].Bpm != 140 {
		t.Errorf("search = %+v, want bpm 110, 128, 140", songs)
	}

	w = request(t, router, http.MethodGet, "/songs/search/?lower_bpm=80&upper_bpm=100", "")
	expect(t, w, http.StatusOK, "")
	if songs = decode[[]SongInfo](t, w); len(songs) != 1 || songs[0].Bpm != 90 {
		t.Errorf("query search = %+v", songs)
	}

	failures := []struct {
		name string
		body string
		msg  string
	}{
		{"empty range", `{"lower_bpm":150,"upper_bpm":200}`, "No songs in this range were found"},
		{"missing upper", `{"lower_bpm":100}`, "Please input a bpm range"},
		{"not integers", `{"lower_bpm":"a","upper_bpm":"b"}`, "Please input a bpm range"},
		{"inverted", `{"lower_bpm":140,"upper_bpm":110}`, "Please input a valid bpm range"},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			expect(t, request(t, router, http.MethodGet, "/songs/search/", tt.body), http.StatusBadRequest, tt.msg)
		})
	}
}

func TestPlaylists(t *testing.T) {
	router, _ := setup(t)
	user := createUser(t, router, "bob")

	expect(t, request(t, router, http.MethodPost, fmt.Sprintf("/users/%d/playlists/", user.ID), `{}`), http.StatusBadRequest, "Please input a playlist name")
	expect(t, request(t, router, http.MethodPost, "/users/999/playlists/", `{"playlist_name":"x"}`), http.StatusNotFound, "User not found")
	expect(t, request(t, router, http.MethodGet, "/users/999/playlists/", ""), http.StatusNotFound, "User not found")

	playlist := createPlaylist(t, router, user.ID, "gym")
	if playlist.PlaylistName != "gym" || playlist.Image != nil {
		t.Errorf("created playlist = %+v", playlist)
	}
	createPlaylist(t, router, user.ID, "sleep")

	w := request(t, router, http.MethodGet, fmt.Sprintf("/users/%d/playlists/", user.ID), "")
	expect(t, w, http.StatusOK, "")
	list := decode[map[string][]PlaylistInfo](t, w)["playlists"]
	if len(list) != 2 || list[0].PlaylistName != "gym" || list[1].PlaylistName != "sleep" {
		t.Errorf("playlists = %+v", list)
	}
	if strings.Contains(w.Body.String(), `"songs"`) || strings.Contains(w.Body.String(), `"user"`) {
		t.Errorf("playlist list embeds songs or user: %s", w.Body.String())
	}

	song := createSong(t, router, "pump", 150)
	songPath := fmt.Sprintf("/playlists/%d/songs/%d/", playlist.ID, song.ID)
	w = request(t, router, http.MethodPost, songPath, "")
	expect(t, w, http.StatusOK, "")
	if got := decode[SongInfo](t, w); got != song {
		t.Errorf("add song = %+v", got)
	}

	w = request(t, router, http.MethodGet, fmt.Sprintf("/playlists/%d/", playlist.ID), "")
	expect(t, w, http.StatusOK, "")
	details := decode[PlaylistDetails](t, w)
	if details.User.Username != "bob" || len(details.Songs) != 1 || details.Songs[0] != song || details.Image != nil {
		t.Errorf("playlist details = %+v", details)
	}
	if !strings.Contains(w.Body.String(), `"image":null`) {
		t.Errorf("missing image must be null: %s", w.Body.String())
	}

	expect(t, request(t, router, http.MethodDelete, songPath, ""), http.StatusOK, "")
	expect(t, request(t, router, http.MethodDelete, songPath, ""), http.StatusBadRequest, "Song not in playlist")
	expect(t, request(t, router, http.MethodPost, fmt.Sprintf("/playlists/%d/songs/999/", playlist.ID), ""), http.StatusNotFound, "Song not found")
	expect(t, request(t, router, http.MethodPost, fmt.Sprintf("/playlists/999/songs/%d/", song.ID), ""), http.StatusNotFound, "Playlist not found")
	expect(t, request(t, router, http.MethodDelete, fmt.Sprintf("/playlists/%d/songs/x/", playlist.ID), ""), http.StatusNotFound, "Song not found")

	w = request(t, router, http.MethodGet, fmt.Sprintf("/playlists/%d/", playlist.ID), "")
	if details = decode[PlaylistDetails](t, w); len(details.Songs) != 0 {
		t.Errorf("songs after removal = %+v", details.Songs)
	}

	w = request(t, router, http.MethodDelete, fmt.Sprintf("/playlists/%d/", playlist.ID), "")
	expect(t, w, http.StatusOK, "")
	if deleted := decode[PlaylistDetails](t, w); deleted.ID != playlist.ID || deleted.User.ID != user.ID {
		t.Errorf("deleted playlist = %+v", deleted)
	}
	expect(t, request(t, router, http.MethodGet, fmt.Sprintf("/playlists/%d/", playlist.ID), ""), http.StatusNotFound, "Playlist not found")
	expect(t, request(t, router, http.MethodDelete, fmt.Sprintf("/playlists/%d/", playlist.ID), ""), http.StatusNotFound, "Playlist not found")
}

func TestPlaylistImage(t *testing.T) {
	router, store := setup(t)
	user := createUser(t, router, "carol")
	playlist := createPlaylist(t, router, user.ID, "covers")
	imagesPath := fmt.Sprintf("/playlists/%d/images/", playlist.ID)

	expect(t, request(t, router, http.MethodPost, "/playlists/999/images/", `{"image_data":"x"}`), http.StatusNotFound, "Playlist not found")
	expect(t, request(t, router, http.MethodPost, imagesPath, `{}`), http.StatusBadRequest, "No base64 image found.")
	expect(t, request(t, router, http.MethodPost, imagesPath, `{"image_data":"data:image/webp;base64,AAAA"}`), http.StatusBadRequest, "")
	expect(t, request(t, router, http.MethodDelete, imagesPath, ""), http.StatusNotFound, "There is no image associated with this playlist")

	w := request(t, router, http.MethodPost, imagesPath, fmt.Sprintf(`{"image_data":%q}`, pngDataURL(t, 4, 3)))
	expect(t, w, http.StatusCreated, "")
	uploaded := decode[ImageDetails](t, w)
	if !strings.HasPrefix(uploaded.Link, testBaseURL+"/") || !strings.HasSuffix(uploaded.Link, ".png") {
		t.Errorf("image link = %q", uploaded.Link)
	}
	if uploaded.Playlist.ID != playlist.ID || uploaded.Playlist.PlaylistName != "covers" {
		t.Errorf("image playlist = %+v", uploaded.Playlist)
	}
	objectName := strings.TrimPrefix(uploaded.Link, testBaseURL+"/")
	if !store.Public[objectName] {
		t.Errorf("object %s not public", objectName)
	}
	asset, err := models.AssetGet(1)
	if err != nil || asset.Width != 4 || asset.Height != 3 || asset.URL() != uploaded.Link {
		t.Errorf("asset = %+v, %v", asset, err)
	}

	w = request(t, router, http.MethodGet, fmt.Sprintf("/playlists/%d/", playlist.ID), "")
	details := decode[PlaylistDetails](t, w)
	if details.Image == nil || details.Image.ID != uploaded.ID || details.Image.Link != uploaded.Link {
		t.Errorf("playlist image = %+v, want %+v", details.Image, uploaded.ImageInfo)
	}

	w = request(t, router, http.MethodDelete, imagesPath, "")
	expect(t, w, http.StatusOK, "")
	if removed := decode[ImageDetails](t, w); removed.ID != uploaded.ID {
		t.Errorf("removed image = %+v", removed)
	}
	dump, _ := models.DumpAll()
	if len(dump.Images) != 0 || len(dump.Assets) != 0 {
		t.Errorf("rows left after image removal: %+v", dump)
	}
	// the stored object is never deleted
	if _, ok := store.Objects[objectName]; !ok {
		t.Error("stored object was deleted")
	}
}

func TestPlaylistImageStorageFailure(t *testing.T) {
	router, store := setup(t)
	storage.SetDefaultStorage(brokenStorage{store})
	user := createUser(t, router, "dave")
	playlist := createPlaylist(t, router, user.ID, "broken")

	w := request(t, router, http.MethodPost, fmt.Sprintf("/playlists/%d/images/", playlist.ID), fmt.Sprintf(`{"image_data":%q}`, pngDataURL(t, 1, 1)))
	expect(t, w, http.StatusBadGateway, "Could not store the image")
	dump, _ := models.DumpAll()
	if len(dump.Images) != 0 || len(dump.Assets) != 0 {
		t.Errorf("partial rows after failed upload: %+v", dump)
	}
}

func TestDeletePlaylistWithImage(t *testing.T) {
	router, store := setup(t)
	user := createUser(t, router, "erin")
	playlist := createPlaylist(t, router, user.ID, "art")
	w := request(t, router, http.MethodPost, fmt.Sprintf("/playlists/%d/images/", playlist.ID), fmt.Sprintf(`{"image_data":%q}`, pngDataURL(t, 2, 2)))
	expect(t, w, http.StatusCreated, "")

	w = request(t, router, http.MethodDelete, fmt.Sprintf("/playlists/%d/", playlist.ID), "")
	expect(t, w, http.StatusOK, "")
	if deleted := decode[PlaylistDetails](t, w); deleted.Image == nil {
		t.Errorf("deleted playlist should show its image: %s", w.Body.String())
	}
	dump, _ := models.DumpAll()
	if len(dump.Playlists) != 0 || len(dump.Images) != 0 || len(dump.Assets) != 0 {
		t.Errorf("rows left: %+v", dump)
	}
	if len(store.Objects) != 1 {
		t.Errorf("stored objects = %d, want the object to stay", len(store.Objects))
	}
}

func TestUserDelete(t *testing.T) {
	router, _ := setup(t)
	user := createUser(t, router, "frank")
	createPlaylist(t, router, user.ID, "one")
	createPlaylist(t, router, user.ID, "two")

	w := request(t, router, http.MethodDelete, fmt.Sprintf("/users/%d/", user.ID), "")
	expect(t, w, http.StatusOK, "")
	if deleted := decode[UserDetails](t, w); deleted.Username != "frank" || len(deleted.Playlists) != 2 {
		t.Errorf("deleted user = %+v", deleted)
	}
	dump, _ := models.DumpAll()
	if len(dump.Users) != 0 || len(dump.Playlists) != 0 {
		t.Errorf("rows left: %+v", dump)
	}
	expect(t, request(t, router, http.MethodDelete, fmt.Sprintf("/users/%d/", user.ID), ""), http.StatusNotFound, "User not found")
}
