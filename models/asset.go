package models

import (
	"playlists/db"
	"time"
)

const (
	AssetExtensionPNG  = "png"
	AssetExtensionGIF  = "gif"
	AssetExtensionJPG  = "jpg"
	AssetExtensionJPEG = "jpeg"
)

var AssetExtensions = []string{AssetExtensionPNG, AssetExtensionGIF, AssetExtensionJPG, AssetExtensionJPEG}

// Asset is the record of an uploaded image object
type Asset struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	BaseURL   string    `gorm:"type:varchar(300);not null" json:"base_url"`
	Salt      string    `gorm:"type:varchar(16);not null" json:"salt"`
	Extension string    `gorm:"type:varchar(4);not null" json:"extension"`
	Width     int       `gorm:"not null" json:"width"`
	Height    int       `gorm:"not null" json:"height"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func IsAssetExtension(ext string) bool {
	for _, e := range AssetExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// GetFileName returns the remote object name, e.g. 8ZQ1L0B3XK2M4N5P.png
func (a *Asset) GetFileName() string {
	return a.Salt + "." + a.Extension
}

func (a *Asset) URL() string {
	return a.BaseURL + "/" + a.GetFileName()
}

func AssetGet(id uint64) (a Asset, err error) {
	return a, first(db.Instance, &a, id, ErrNotFound)
}

func AssetList() (assets []Asset, err error) {
	return assets, db.Instance.Order("id").Find(&assets).Error
}
