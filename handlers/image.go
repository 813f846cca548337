package handlers

import (
	"net/http"
	"playlists/models"
	"playlists/processing"
	"playlists/storage"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ImageUploadRequest struct {
	ImageData *string `json:"image_data" binding:"required"`
}

// PlaylistImageUpload stores a base64 image and makes it the playlist's thumbnail.
// Asset and Image rows are written in one transaction, after the upload succeeded.
func PlaylistImageUpload(c *gin.Context, playlist *models.Playlist) {
	r := ImageUploadRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{"No base64 image found."})
		return
	}
	asset, err := processing.CreateAsset(c.Request.Context(), *r.ImageData, storage.GetDefaultStorage())
	if err != nil {
		log.Warn("Cannot create asset", "playlist", playlist.ID, "err", err)
		fail(c, err)
		return
	}
	image, err := models.ImageAttach(playlist.ID, &asset)
	if err != nil {
		fail(c, err)
		return
	}
	log.Info("Playlist image uploaded", "playlist", playlist.ID, "url", image.Link, "width", asset.Width, "height", asset.Height)
	c.JSON(http.StatusCreated, imageDetails(&image, playlist))
}

// PlaylistImageRemove deletes the Image and Asset rows; the stored object stays in the bucket
func PlaylistImageRemove(c *gin.Context, playlist *models.Playlist) {
	image, err := models.ImageDetach(playlist.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, imageDetails(&image, playlist))
}
