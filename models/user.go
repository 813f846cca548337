package models

import (
	"playlists/db"

	"gorm.io/gorm"
)

type User struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `json:"created_at"`
	Username  string `gorm:"type:varchar(100);not null" json:"username"`
}

func UserCreate(username string) (u User, err error) {
	u.Username = username
	return u, db.Instance.Create(&u).Error
}

func UserGet(id uint64) (u User, err error) {
	return u, first(db.Instance, &u, id, ErrUserNotFound)
}

func UserList() (users []User, err error) {
	return users, db.Instance.Order("id").Find(&users).Error
}

// UserDelete removes the user together with all of its playlists
func UserDelete(id uint64) error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &User{}, id, ErrUserNotFound); err != nil {
			return err
		}
		var playlistIDs []uint64
		if err := tx.Model(&Playlist{}).Where("user_id = ?", id).Pluck("id", &playlistIDs).Error; err != nil {
			return err
		}
		for _, playlistID := range playlistIDs {
			if err := playlistDelete(tx, playlistID); err != nil {
				return err
			}
		}
		return tx.Delete(&User{}, id).Error
	})
}
