package handlers

import (
	"net/http"
	"playlists/models"
	"playlists/preload"

	"github.com/gin-gonic/gin"
)

func PlaylistGet(c *gin.Context, playlist *models.Playlist) {
	result, err := playlistDetails(playlist)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PlaylistDelete answers with the full playlist as it was before the deletion
func PlaylistDelete(c *gin.Context, playlist *models.Playlist) {
	result, err := playlistDetails(playlist)
	if err != nil {
		fail(c, err)
		return
	}
	if err = models.PlaylistDelete(playlist.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func PlaylistAddSong(c *gin.Context, playlist *models.Playlist) {
	songID, ok := preload.ParseID(c, songParam)
	if !ok {
		fail(c, models.ErrSongNotFound)
		return
	}
	song, err := models.PlaylistAddSong(playlist.ID, songID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, songInfo(&song))
}

func PlaylistRemoveSong(c *gin.Context, playlist *models.Playlist) {
	songID, ok := preload.ParseID(c, songParam)
	if !ok {
		fail(c, models.ErrSongNotFound)
		return
	}
	song, err := models.PlaylistRemoveSong(playlist.ID, songID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, songInfo(&song))
}
