package storage

import (
	"bytes"
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/skaura/transeval/internal/pkg/cmdapp"
	"github.com/skaura/transeval/internal/pkg/utils"
)

// Client saves text artifacts to the object store and resolves public URLs
type Client struct {
	minioClient *minio.Client
	bucket      string
	publicURL   string
}

// NewClient creates the object store client from config
func NewClient() (*Client, error) {
	endpoint := cmdapp.Config.GetString("objectStorage.endpoint")
	if endpoint == "" {
		return nil, errors.New("No objectStorage.endpoint provided")
	}
	bucket := cmdapp.Config.GetString("objectStorage.bucket")
	if bucket == "" {
		return nil, errors.New("No objectStorage.bucket provided")
	}
	publicURL, err := utils.GetURLFromConfig("objectStorage.publicURL")
	if err != nil {
		return nil, err
	}
	mc, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(cmdapp.Config.GetString("objectStorage.accessKey"),
			cmdapp.Config.GetString("objectStorage.secretKey"), ""),
		Secure: cmdapp.Config.GetBool("objectStorage.ssl"),
	})
	if err != nil {
		return nil, errors.Wrap(err, "Can't init object storage client")
	}
	return &Client{minioClient: mc, bucket: bucket, publicURL: publicURL}, nil
}

// Save writes object bytes under key
func (sp *Client) Save(key string, data []byte, contentType string) error {
	cmdapp.Log.Infof("Saving %s (%d b)", key, len(data))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err := sp.minioClient.PutObject(ctx, sp.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "Can't save object "+key)
	}
	return nil
}

// PublicURL resolves a public facing URL for key. Empty key gives empty URL
func (sp *Client) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return utils.URLJoin(sp.publicURL, sp.bucket, key)
}

// Healthy checks the object store connection
func (sp *Client) Healthy() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ok, err := sp.minioClient.BucketExists(ctx, sp.bucket)
	if err != nil {
		return errors.Wrap(err, "Can't access object storage")
	}
	if !ok {
		return errors.New("No bucket " + sp.bucket)
	}
	return nil
}
