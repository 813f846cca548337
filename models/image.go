package models

import (
	"playlists/db"

	"gorm.io/gorm"
)

// Image is the thumbnail of exactly one Playlist
type Image struct {
	ID         uint64 `gorm:"primaryKey" json:"id"`
	Link       string `gorm:"type:varchar(500);not null" json:"link"`
	PlaylistID uint64 `gorm:"not null;index" json:"playlist_id"`
	AssetID    uint64 `gorm:"not null" json:"asset_id"`
}

// ImageAttach stores the asset and makes it the playlist's image. A previous image of the
// playlist (and its asset) is removed. Nothing is kept if any of the steps fails.
func ImageAttach(playlistID uint64, asset *Asset) (image Image, err error) {
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &Playlist{}, playlistID, ErrPlaylistNotFound); err != nil {
			return err
		}
		if err := imagesDelete(tx, playlistID); err != nil {
			return err
		}
		if err := tx.Create(asset).Error; err != nil {
			return err
		}
		image = Image{
			Link:       asset.URL(),
			PlaylistID: playlistID,
			AssetID:    asset.ID,
		}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
		return tx.Model(&Playlist{}).Where("id = ?", playlistID).Update("image_id", image.ID).Error
	})
	return
}

// ImageDetach removes the playlist's image and its asset rows
func ImageDetach(playlistID uint64) (image Image, err error) {
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		playlist := Playlist{}
		if err := first(tx, &playlist, playlistID, ErrPlaylistNotFound); err != nil {
			return err
		}
		if playlist.ImageID == nil {
			return ErrNoImage
		}
		if err := first(tx, &image, *playlist.ImageID, ErrNoImage); err != nil {
			return err
		}
		if err := tx.Model(&Playlist{}).Where("id = ?", playlistID).Update("image_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Asset{}, image.AssetID).Error; err != nil {
			return err
		}
		return tx.Delete(&Image{}, image.ID).Error
	})
	return
}

func ImageGet(id uint64) (image Image, err error) {
	return image, first(db.Instance, &image, id, ErrNotFound)
}

func ImageList() (images []Image, err error) {
	return images, db.Instance.Order("id").Find(&images).Error
}

// ImagesOf returns the images of the given playlists keyed by image ID
func ImagesOf(playlists []Playlist) (map[uint64]Image, error) {
	result := map[uint64]Image{}
	ids := []uint64{}
	for _, p := range playlists {
		if p.ImageID != nil {
			ids = append(ids, *p.ImageID)
		}
	}
	if len(ids) == 0 {
		return result, nil
	}
	var images []Image
	if err := db.Instance.Where("id IN ?", ids).Find(&images).Error; err != nil {
		return nil, err
	}
	for _, image := range images {
		result[image.ID] = image
	}
	return result, nil
}

// imagesDelete removes every image of a playlist together with the asset rows
func imagesDelete(tx *gorm.DB, playlistID uint64) error {
	var images []Image
	if err := tx.Where("playlist_id = ?", playlistID).Find(&images).Error; err != nil {
		return err
	}
	for _, image := range images {
		if err := tx.Delete(&Asset{}, image.AssetID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Image{}, image.ID).Error; err != nil {
			return err
		}
	}
	if len(images) > 0 {
		return tx.Model(&Playlist{}).Where("id = ?", playlistID).Update("image_id", nil).Error
	}
	return nil
}
