package models

import (
	"playlists/db"

	"gorm.io/gorm"
)

// PlaylistSong is the membership of a Song in a Playlist
type PlaylistSong struct {
	CreatedAt  int64  `gorm:"autoCreateTime:nano" json:"created_at"`
	PlaylistID uint64 `gorm:"primaryKey" json:"playlist_id"`
	SongID     uint64 `gorm:"primaryKey;index" json:"song_id"`
}

// PlaylistAddSong adds the song to the playlist. Adding a song twice keeps a single membership.
func PlaylistAddSong(playlistID, songID uint64) (song Song, err error) {
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &Playlist{}, playlistID, ErrPlaylistNotFound); err != nil {
			return err
		}
		if err := first(tx, &song, songID, ErrSongNotFound); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&PlaylistSong{}).Where("playlist_id = ? AND song_id = ?", playlistID, songID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&PlaylistSong{PlaylistID: playlistID, SongID: songID}).Error
	})
	return
}

func PlaylistRemoveSong(playlistID, songID uint64) (song Song, err error) {
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &Playlist{}, playlistID, ErrPlaylistNotFound); err != nil {
			return err
		}
		if err := first(tx, &song, songID, ErrSongNotFound); err != nil {
			return err
		}
		result := tx.Where("playlist_id = ? AND song_id = ?", playlistID, songID).Delete(&PlaylistSong{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSongNotInPlaylist
		}
		return nil
	})
	return
}

// PlaylistSongs returns the songs of a playlist in the order they were added
func PlaylistSongs(playlistID uint64) (songs []Song, err error) {
	err = db.Instance.
		Joins("join playlist_songs on playlist_songs.song_id = songs.id").
		Where("playlist_songs.playlist_id = ?", playlistID).
		Order("playlist_songs.created_at ASC, songs.id ASC").
		Find(&songs).Error
	return
}

func PlaylistSongList() (memberships []PlaylistSong, err error) {
	return memberships, db.Instance.Order("playlist_id, song_id").Find(&memberships).Error
}
