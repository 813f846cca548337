package preload

import (
	"errors"
	"net/http"
	"playlists/models"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

const (
	UserParam     = "user_id"
	PlaylistParam = "playlist_id"
)

// UserHandlerFunc is called with the User named by the :user_id path parameter
type UserHandlerFunc func(c *gin.Context, user *models.User)

// PlaylistHandlerFunc is called with the Playlist named by the :playlist_id path parameter
type PlaylistHandlerFunc func(c *gin.Context, playlist *models.Playlist)

// Router is a wrapper that resolves path parameters to entities before calling the handler.
// Unknown or malformed IDs never reach the handler, they get a 404 instead.
type Router struct {
	Base gin.IRouter
}

func ParseID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	return id, err == nil && id > 0
}

func load[T any](c *gin.Context, param string, notFound error, get func(uint64) (T, error)) (T, bool) {
	var zero T
	id, ok := ParseID(c, param)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return zero, false
	}
	entity, err := get(id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return zero, false
	}
	if err != nil {
		log.Error("DB error", "param", param, "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return zero, false
	}
	return entity, true
}

func (r *Router) userExec(c *gin.Context, handler UserHandlerFunc) {
	user, ok := load(c, UserParam, models.ErrUserNotFound, models.UserGet)
	if ok {
		handler(c, &user)
	}
}

func (r *Router) playlistExec(c *gin.Context, handler PlaylistHandlerFunc) {
	playlist, ok := load(c, PlaylistParam, models.ErrPlaylistNotFound, models.PlaylistGet)
	if ok {
		handler(c, &playlist)
	}
}

func (r *Router) UserGET(path string, handler UserHandlerFunc) {
	r.Base.GET(path, func(c *gin.Context) { r.userExec(c, handler) })
}

func (r *Router) UserPOST(path string, handler UserHandlerFunc) {
	r.Base.POST(path, func(c *gin.Context) { r.userExec(c, handler) })
}

func (r *Router) UserDELETE(path string, handler UserHandlerFunc) {
	r.Base.DELETE(path, func(c *gin.Context) { r.userExec(c, handler) })
}

func (r *Router) PlaylistGET(path string, handler PlaylistHandlerFunc) {
	r.Base.GET(path, func(c *gin.Context) { r.playlistExec(c, handler) })
}

func (r *Router) PlaylistPOST(path string, handler PlaylistHandlerFunc) {
	r.Base.POST(path, func(c *gin.Context) { r.playlistExec(c, handler) })
}

func (r *Router) PlaylistDELETE(path string, handler PlaylistHandlerFunc) {
	r.Base.DELETE(path, func(c *gin.Context) { r.playlistExec(c, handler) })
}
