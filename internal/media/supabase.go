package media

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	storage "github.com/supabase-community/storage-go"
)

type SupabaseConfig struct {
	URL    string
	Key    string
	Bucket string
}

// SupabaseStore stores objects in a public Supabase Storage bucket.
type SupabaseStore struct {
	client  *storage.Client
	baseURL string
	bucket  string
	probe   Prober
}

func NewSupabaseStore(cfg SupabaseConfig) (*SupabaseStore, error) {
	if cfg.URL == "" || cfg.Key == "" || cfg.Bucket == "" {
		return nil, errors.New("supabase url, key and bucket are required")
	}
	base := strings.TrimRight(cfg.URL, "/")
	return &SupabaseStore{
		client:  storage.NewClient(base+"/storage/v1", cfg.Key, nil),
		baseURL: base,
		bucket:  cfg.Bucket,
		probe:   FFProbe,
	}, nil
}

// Upload ignores ctx: the storage client has no context support.
func (s *SupabaseStore) Upload(_ context.Context, localPath string) (*Asset, error) {
	defer removeLocal(localPath)

	kind := KindOf(localPath)
	asset := &Asset{Duration: probeDuration(s.probe, kind, localPath)}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, errors.Wrap(err, "open upload")
	}
	defer f.Close()

	key := ObjectKey(kind, localPath)
	contentType := ContentType(localPath)
	if _, err := s.client.UploadFile(s.bucket, key, f, storage.FileOptions{ContentType: &contentType}); err != nil {
		return nil, errors.Wrapf(err, "upload %s", key)
	}

	asset.PublicID = key
	asset.URL = s.baseURL + "/storage/v1/object/public/" + s.bucket + "/" + key
	return asset, nil
}

func (s *SupabaseStore) Delete(_ context.Context, publicID string, _ ResourceKind) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{publicID}); err != nil {
		return errors.Wrapf(err, "remove %s", publicID)
	}
	return nil
}
