package handlers

import (
	"net/http"
	"playlists/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserCreateRequest struct {
	Username *string `json:"username" binding:"required"`
}

type PlaylistCreateRequest struct {
	PlaylistName *string `json:"playlist_name" binding:"required"`
}

func UserCreate(c *gin.Context) {
	r := UserCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{"Please input a username"})
		return
	}
	user, err := models.UserCreate(*r.Username)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, UserDetails{UserInfo: userInfo(&user), Playlists: []PlaylistInfo{}})
}

func UserGet(c *gin.Context, user *models.User) {
	result, err := userDetails(user)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UserDelete removes the user with all of its playlists and answers with what was deleted
func UserDelete(c *gin.Context, user *models.User) {
	result, err := userDetails(user)
	if err != nil {
		fail(c, err)
		return
	}
	if err = models.UserDelete(user.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func UserPlaylists(c *gin.Context, user *models.User) {
	playlists, err := models.PlaylistsByUser(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	infos, err := playlistInfos(playlists)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlists": infos})
}

func PlaylistCreate(c *gin.Context, user *models.User) {
	r := PlaylistCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{"Please input a playlist name"})
		return
	}
	playlist, err := models.PlaylistCreate(user.ID, *r.PlaylistName)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, PlaylistInfo{ID: playlist.ID, PlaylistName: playlist.PlaylistName})
}
