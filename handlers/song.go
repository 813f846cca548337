package handlers

import (
	"net/http"
	"playlists/models"
	"playlists/preload"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const songParam = "song_id"

type SongCreateRequest struct {
	Title  *string `json:"title" binding:"required"`
	Artist *string `json:"artist" binding:"required"`
	Bpm    *int    `json:"bpm" binding:"required"`
	Link   *string `json:"link" binding:"required"`
}

// SongSearchRequest comes as a JSON body; the query string is accepted when there is no body
type SongSearchRequest struct {
	LowerBpm *int `json:"lower_bpm" form:"lower_bpm" binding:"required"`
	UpperBpm *int `json:"upper_bpm" form:"upper_bpm" binding:"required"`
}

func SongCreate(c *gin.Context) {
	r := SongCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{"Please input all requested data"})
		return
	}
	song, err := models.SongCreate(*r.Title, *r.Artist, *r.Bpm, *r.Link)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, songInfo(&song))
}

func SongSearch(c *gin.Context) {
	r := SongSearchRequest{}
	var err error
	if c.Request.ContentLength != 0 {
		err = c.ShouldBindWith(&r, binding.JSON)
	} else {
		err = c.ShouldBindQuery(&r)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"Please input a bpm range"})
		return
	}
	if *r.LowerBpm > *r.UpperBpm {
		c.JSON(http.StatusBadRequest, Response{"Please input a valid bpm range"})
		return
	}
	songs, err := models.SongSearchByBpm(*r.LowerBpm, *r.UpperBpm)
	if err != nil {
		fail(c, err)
		return
	}
	if len(songs) == 0 {
		c.JSON(http.StatusBadRequest, Response{"No songs in this range were found"})
		return
	}
	c.JSON(http.StatusOK, songInfos(songs))
}

func SongGet(c *gin.Context) {
	id, ok := preload.ParseID(c, songParam)
	if !ok {
		fail(c, models.ErrSongNotFound)
		return
	}
	song, err := models.SongGet(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, songInfo(&song))
}
