package models

import (
	"playlists/db"

	"gorm.io/gorm"
)

type Playlist struct {
	ID           uint64  `gorm:"primaryKey" json:"id"`
	CreatedAt    int64   `json:"created_at"`
	UserID       uint64  `gorm:"not null;index" json:"user_id"`
	PlaylistName string  `gorm:"type:varchar(300);not null" json:"playlist_name"`
	ImageID      *uint64 `json:"image_id"` // Image.PlaylistID points back here
}

func PlaylistCreate(userID uint64, name string) (p Playlist, err error) {
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &User{}, userID, ErrUserNotFound); err != nil {
			return err
		}
		p = Playlist{UserID: userID, PlaylistName: name}
		return tx.Create(&p).Error
	})
	return
}

func PlaylistGet(id uint64) (p Playlist, err error) {
	return p, first(db.Instance, &p, id, ErrPlaylistNotFound)
}

func PlaylistList() (playlists []Playlist, err error) {
	return playlists, db.Instance.Order("id").Find(&playlists).Error
}

func PlaylistsByUser(userID uint64) (playlists []Playlist, err error) {
	if err = exists(db.Instance, &User{}, userID, ErrUserNotFound); err != nil {
		return nil, err
	}
	err = db.Instance.Where("user_id = ?", userID).Order("id").Find(&playlists).Error
	return
}

// PlaylistDelete removes the playlist, its song memberships, its image and the image's asset.
// The stored object itself stays in the bucket.
func PlaylistDelete(id uint64) error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		return playlistDelete(tx, id)
	})
}

func playlistDelete(tx *gorm.DB, id uint64) error {
	if err := exists(tx, &Playlist{}, id, ErrPlaylistNotFound); err != nil {
		return err
	}
	if err := tx.Where("playlist_id = ?", id).Delete(&PlaylistSong{}).Error; err != nil {
		return err
	}
	if err := imagesDelete(tx, id); err != nil {
		return err
	}
	return tx.Delete(&Playlist{}, id).Error
}
