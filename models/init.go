package models

import (
	"errors"
	"playlists/db"

	"gorm.io/gorm"
)

// Init creates the schema if it is not there yet
func Init() {
	err := db.Instance.AutoMigrate(
		&User{},
		&Playlist{},
		&Song{},
		&PlaylistSong{},
		&Image{},
		&Asset{},
	)
	if err != nil {
		panic(err)
	}
}

// first loads the row with the given primary key, translating a missing row to notFoundErr
func first(tx *gorm.DB, dest any, id uint64, notFoundErr error) error {
	err := tx.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundErr
	}
	return err
}

func exists(tx *gorm.DB, model any, id uint64, notFoundErr error) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFoundErr
	}
	return nil
}
