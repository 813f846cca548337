package handlers

import (
	"playlists/preload"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router gin.IRouter) {
	loader := &preload.Router{Base: router}
	// Users
	router.POST("/users/", UserCreate)
	loader.UserGET("/users/:user_id/", UserGet)
	loader.UserDELETE("/users/:user_id/", UserDelete)
	loader.UserGET("/users/:user_id/playlists/", UserPlaylists)
	loader.UserPOST("/users/:user_id/playlists/", PlaylistCreate)
	// Songs
	router.POST("/songs/add/", SongCreate)
	router.GET("/songs/search/", SongSearch)
	router.GET("/songs/:song_id/", SongGet)
	// Playlists
	loader.PlaylistGET("/playlists/:playlist_id/", PlaylistGet)
	loader.PlaylistDELETE("/playlists/:playlist_id/", PlaylistDelete)
	loader.PlaylistPOST("/playlists/:playlist_id/songs/:song_id/", PlaylistAddSong)
	loader.PlaylistDELETE("/playlists/:playlist_id/songs/:song_id/", PlaylistRemoveSong)
	// Playlist images
	loader.PlaylistPOST("/playlists/:playlist_id/images/", PlaylistImageUpload)
	loader.PlaylistDELETE("/playlists/:playlist_id/images/", PlaylistImageRemove)
}
