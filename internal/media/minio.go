package media

import (
	"context"
	"strings"

	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL prefixes object URLs; defaults to the endpoint.
	PublicURL string
}

type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	probe     Prober
}

// NewMinioStore connects and creates the bucket when it does not exist yet.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "check bucket %s", cfg.Bucket)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrapf(err, "create bucket %s", cfg.Bucket)
		}
		logger.GetAppLogger().WithField("bucket", cfg.Bucket).Info("media bucket created")
	}

	public := cfg.PublicURL
	if public == "" {
		scheme := "http://"
		if cfg.UseSSL {
			scheme = "https://"
		}
		public = scheme + cfg.Endpoint
	}
	return &MinioStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(public, "/"),
		probe:     FFProbe,
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, localPath string) (*Asset, error) {
	defer removeLocal(localPath)

	kind := KindOf(localPath)
	asset := &Asset{Duration: probeDuration(s.probe, kind, localPath)}
	key := ObjectKey(kind, localPath)
	if _, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: ContentType(localPath),
	}); err != nil {
		return nil, errors.Wrapf(err, "put object %s", key)
	}

	asset.PublicID = key
	asset.URL = s.publicURL + "/" + s.bucket + "/" + key
	return asset, nil
}

func (s *MinioStore) Delete(ctx context.Context, publicID string, _ ResourceKind) error {
	if err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "remove object %s", publicID)
	}
	return nil
}

// probeDuration must run before the temp file is removed.
func probeDuration(probe Prober, kind ResourceKind, path string) float64 {
	if kind != KindVideo || probe == nil {
		return 0
	}
	d, err := probe(path)
	if err != nil {
		logger.GetAppLogger().WithField("path", path).WithError(err).Warn("duration probe failed")
		return 0
	}
	return d
}
