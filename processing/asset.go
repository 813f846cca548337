package processing

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"playlists/models"
	"playlists/storage"
	"playlists/utils"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const (
	saltSize      = 16
	MaxImageBytes = 10 << 20
)

var (
	ErrInvalidImage = errors.New("invalid image")
	ErrStorage      = errors.New("storage failure")
)

// UploadError tells which step of CreateAsset failed
type UploadError struct {
	Step string
	Err  error
}

func (e *UploadError) Error() string {
	return "asset " + e.Step + ": " + e.Err.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

var extensionsByMimeType = map[string]string{
	"image/png":   models.AssetExtensionPNG,
	"image/gif":   models.AssetExtensionGIF,
	"image/jpeg":  models.AssetExtensionJPG,
	"image/jpg":   models.AssetExtensionJPG,
	"image/pjpeg": models.AssetExtensionJPG,
}

// formats returned by image.DecodeConfig for every extension
var formatsByExtension = map[string]string{
	models.AssetExtensionPNG:  "png",
	models.AssetExtensionGIF:  "gif",
	models.AssetExtensionJPG:  "jpeg",
	models.AssetExtensionJPEG: "jpeg",
}

// CreateAsset turns a base64 image (optionally a data URL) into a stored object and returns
// the matching, not yet persisted, Asset. The Asset is only returned when every step succeeded.
func CreateAsset(ctx context.Context, imageData string, store storage.StorageAPI) (models.Asset, error) {
	mimeType, payload, err := parseImageData(imageData)
	if err != nil {
		return models.Asset{}, &UploadError{"decode", err}
	}
	ext, mimeType, err := detectExtension(mimeType, payload)
	if err != nil {
		return models.Asset{}, &UploadError{"extension", err}
	}
	width, height, err := measure(payload, ext)
	if err != nil {
		return models.Asset{}, &UploadError{"measure", err}
	}
	asset := models.Asset{
		BaseURL:   store.BaseURL(),
		Salt:      utils.RandAlphanumeric(saltSize),
		Extension: ext,
		Width:     width,
		Height:    height,
	}
	if err = upload(ctx, store, asset.GetFileName(), mimeType, payload); err != nil {
		return models.Asset{}, &UploadError{"upload", fmt.Errorf("%w: %v", ErrStorage, err)}
	}
	asset.CreatedAt = time.Now()
	return asset, nil
}

// parseImageData strips an optional "data:<mime>;base64," header and decodes the payload
func parseImageData(imageData string) (mimeType string, payload []byte, err error) {
	data := strings.TrimSpace(imageData)
	if strings.HasPrefix(data, "data:") {
		comma := strings.IndexByte(data, ',')
		if comma < 0 {
			return "", nil, fmt.Errorf("%w: malformed data URL", ErrInvalidImage)
		}
		params := strings.Split(data[len("data:"):comma], ";")
		if params[len(params)-1] != "base64" {
			return "", nil, fmt.Errorf("%w: data URL is not base64 encoded", ErrInvalidImage)
		}
		mimeType = strings.ToLower(params[0])
		data = data[comma+1:]
	}
	if base64.StdEncoding.DecodedLen(len(data)) > MaxImageBytes {
		return "", nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidImage, MaxImageBytes)
	}
	payload, err = base64.StdEncoding.DecodeString(data)
	if err != nil {
		// unpadded input
		payload, err = base64.RawStdEncoding.DecodeString(data)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(payload) == 0 {
		return "", nil, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}
	return mimeType, payload, nil
}

// detectExtension uses the data URL MIME type, or sniffs the payload when there was none
func detectExtension(mimeType string, payload []byte) (ext, detected string, err error) {
	if mimeType == "" {
		mimeType, _, _ = strings.Cut(mimetype.Detect(payload).String(), ";")
	}
	ext, ok := extensionsByMimeType[mimeType]
	if !ok || !models.IsAssetExtension(ext) {
		return "", "", fmt.Errorf("%w: type %q is not supported", ErrInvalidImage, mimeType)
	}
	return ext, mimeType, nil
}

func measure(payload []byte, ext string) (width, height int, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if formatsByExtension[ext] != format {
		return 0, 0, fmt.Errorf("%w: content is %s, not %s", ErrInvalidImage, format, ext)
	}
	return cfg.Width, cfg.Height, nil
}

func upload(ctx context.Context, store storage.StorageAPI, name, mimeType string, payload []byte) error {
	if _, err := store.Save(name, bytes.NewReader(payload)); err != nil {
		return err
	}
	defer store.ReleaseLocalFile(name)
	if err := store.UpdateRemoteFile(ctx, name, mimeType); err != nil {
		return err
	}
	return store.SetPublicRead(ctx, name)
}
