package models

import (
	"errors"
	"playlists/db"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Song is unique on (title, artist, bpm, link)
type Song struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"type:varchar(200);not null;index:uniq_song,unique,priority:1" json:"title"`
	Artist string `gorm:"type:varchar(200);not null;index:uniq_song,unique,priority:2" json:"artist"`
	Bpm    int    `gorm:"not null;index:uniq_song,unique,priority:3;index:song_bpm" json:"bpm"`
	Link   string `gorm:"type:varchar(300);not null;index:uniq_song,unique,priority:4" json:"link"`
}

func SongCreate(title, artist string, bpm int, link string) (s Song, err error) {
	s = Song{Title: title, Artist: artist, Bpm: bpm, Link: link}
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Song{}).
			Where("title = ? AND artist = ? AND bpm = ? AND link = ?", title, artist, bpm, link).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSongExists
		}
		return tx.Create(&s).Error
	})
	// Lost a race against an identical insert
	if isDuplicateKey(err) {
		err = ErrSongExists
	}
	return
}

// isDuplicateKey recognises unique violations from every backend. MySQL and Postgres
// are translated by gorm, the sqlite driver reports its own constraint error.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func SongGet(id uint64) (s Song, err error) {
	return s, first(db.Instance, &s, id, ErrSongNotFound)
}

func SongList() (songs []Song, err error) {
	return songs, db.Instance.Order("id").Find(&songs).Error
}

// SongSearchByBpm returns the songs with lower <= bpm <= upper
func SongSearchByBpm(lower, upper int) (songs []Song, err error) {
	err = db.Instance.Where("bpm >= ? AND bpm <= ?", lower, upper).Order("id").Find(&songs).Error
	return
}
