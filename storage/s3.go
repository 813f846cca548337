package storage

import (
	"context"
	"io"
	"os"
	"playlists/config"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type S3Storage struct {
	Storage
	s3Client *s3.S3
	// prefix keeps local copies of different processes apart in a shared temp dir
	prefix string
}

func NewS3Storage(bucket *Bucket) StorageAPI {
	return &S3Storage{
		Storage: Storage{
			Bucket: *bucket,
		},
		s3Client: bucket.CreateSVC(),
		prefix:   uuid.NewString(),
	}
}

// GetFullPath returns the local temp path of an object
func (s *S3Storage) GetFullPath(path string) string {
	dir := s.Bucket.Path
	if dir == "" {
		dir = config.TMP_DIR
	}
	return dir + "/" + s.prefix + "_" + strings.ReplaceAll(path, "/", "_")
}

func (s *S3Storage) ensureDirExists(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func (s *S3Storage) Save(path string, reader io.Reader) (int64, error) {
	return saveLocal(s.GetFullPath(path), reader, s.ensureDirExists)
}

// UpdateRemoteFile uploads the local copy to the bucket
func (s *S3Storage) UpdateRemoteFile(ctx context.Context, path, mimeType string) error {
	data, err := os.Open(s.GetFullPath(path))
	if err != nil {
		return err
	}
	defer data.Close()

	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err = uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.Bucket.Name),
		Key:         aws.String(path),
		ContentType: aws.String(mimeType),
		Body:        data,
	})
	return err
}

func (s *S3Storage) SetPublicRead(ctx context.Context, path string) error {
	_, err := s.s3Client.PutObjectAclWithContext(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(s.Bucket.Name),
		Key:    aws.String(path),
		ACL:    aws.String(s3.ObjectCannedACLPublicRead),
	})
	return err
}

func (s *S3Storage) ReleaseLocalFile(path string) {
	if err := os.Remove(s.GetFullPath(path)); err != nil && !os.IsNotExist(err) {
		log.Warn("Cannot remove local copy", "path", path, "err", err)
	}
}
