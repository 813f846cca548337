package storage

import (
	"playlists/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

// Bucket describes where uploaded images end up
type Bucket struct {
	Name        string
	StorageType StorageType
	Path        string // Directory on a drive, or the local temp dir in case of S3
	Region      string
	Endpoint    string // Optional S3 compatible endpoint
	BaseURL     string // Public URL prefix of the stored objects
}

func BucketFromConfig() Bucket {
	if config.S3_BUCKET_NAME != "" {
		return Bucket{
			Name:        config.S3_BUCKET_NAME,
			StorageType: StorageTypeS3,
			Path:        config.TMP_DIR,
			Region:      config.S3_REGION,
			Endpoint:    config.S3_ENDPOINT,
			BaseURL:     config.S3BaseURL(),
		}
	}
	return Bucket{
		Name:        "disk",
		StorageType: StorageTypeFile,
		Path:        config.STORAGE_DIR,
		BaseURL:     config.PUBLIC_URL + DiskRoute,
	}
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

// CreateSVC creates an S3 client. Credentials come from the default AWS chain (env, shared config, instance role).
func (b *Bucket) CreateSVC() *s3.S3 {
	cfg := aws.NewConfig().WithRegion(b.Region)
	if b.Endpoint != "" {
		cfg = cfg.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	sess := session.Must(session.NewSession(cfg))
	return s3.New(sess)
}
