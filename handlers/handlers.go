package handlers

import (
	"errors"
	"net/http"
	"playlists/models"
	"playlists/processing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Response is the body of every failed request
type Response struct {
	Error string `json:"error"`
}

var (
	DBErrorResponse      = Response{"DB error"}
	StorageErrorResponse = Response{"Could not store the image"}
)

type UserInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type UserDetails struct {
	UserInfo
	Playlists []PlaylistInfo `json:"playlists"`
}

type SongInfo struct {
	ID     uint64 `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Bpm    int    `json:"bpm"`
	Link   string `json:"link"`
}

type ImageInfo struct {
	ID   uint64 `json:"id"`
	Link string `json:"link"`
}

// ImageDetails is an image with the playlist it belongs to
type ImageDetails struct {
	ImageInfo
	Playlist PlaylistRef `json:"playlist"`
}

type PlaylistRef struct {
	ID           uint64 `json:"id"`
	PlaylistName string `json:"playlist_name"`
}

// PlaylistInfo is what playlist lists show: no songs, no owner
type PlaylistInfo struct {
	ID           uint64     `json:"id"`
	PlaylistName string     `json:"playlist_name"`
	Image        *ImageInfo `json:"image"`
}

type PlaylistDetails struct {
	PlaylistInfo
	User  UserInfo   `json:"user"`
	Songs []SongInfo `json:"songs"`
}

// fail answers with the status matching the error
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{err.Error()})
	case errors.Is(err, models.ErrSongExists):
		c.JSON(http.StatusUnauthorized, Response{err.Error()})
	case errors.Is(err, models.ErrSongNotInPlaylist):
		c.JSON(http.StatusBadRequest, Response{err.Error()})
	case errors.Is(err, processing.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, Response{err.Error()})
	case errors.Is(err, processing.ErrStorage):
		log.Error("Storage error", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusBadGateway, StorageErrorResponse)
	default:
		log.Error("DB error", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
	}
}

func userInfo(u *models.User) UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username}
}

func songInfo(s *models.Song) SongInfo {
	return SongInfo{
		ID:     s.ID,
		Title:  s.Title,
		Artist: s.Artist,
		Bpm:    s.Bpm,
		Link:   s.Link,
	}
}

func songInfos(songs []models.Song) []SongInfo {
	result := []SongInfo{}
	for i := range songs {
		result = append(result, songInfo(&songs[i]))
	}
	return result
}

func imageDetails(image *models.Image, playlist *models.Playlist) ImageDetails {
	return ImageDetails{
		ImageInfo: ImageInfo{ID: image.ID, Link: image.Link},
		Playlist:  PlaylistRef{ID: playlist.ID, PlaylistName: playlist.PlaylistName},
	}
}

func playlistInfos(playlists []models.Playlist) ([]PlaylistInfo, error) {
	images, err := models.ImagesOf(playlists)
	if err != nil {
		return nil, err
	}
	result := []PlaylistInfo{}
	for _, p := range playlists {
		info := PlaylistInfo{ID: p.ID, PlaylistName: p.PlaylistName}
		if p.ImageID != nil {
			if image, ok := images[*p.ImageID]; ok {
				info.Image = &ImageInfo{ID: image.ID, Link: image.Link}
			}
		}
		result = append(result, info)
	}
	return result, nil
}

func playlistDetails(p *models.Playlist) (result PlaylistDetails, err error) {
	infos, err := playlistInfos([]models.Playlist{*p})
	if err != nil {
		return
	}
	owner, err := models.UserGet(p.UserID)
	if err != nil {
		return
	}
	songs, err := models.PlaylistSongs(p.ID)
	if err != nil {
		return
	}
	return PlaylistDetails{
		PlaylistInfo: infos[0],
		User:         userInfo(&owner),
		Songs:        songInfos(songs),
	}, nil
}

func userDetails(u *models.User) (UserDetails, error) {
	playlists, err := models.PlaylistsByUser(u.ID)
	if err != nil {
		return UserDetails{}, err
	}
	infos, err := playlistInfos(playlists)
	if err != nil {
		return UserDetails{}, err
	}
	return UserDetails{UserInfo: userInfo(u), Playlists: infos}, nil
}
