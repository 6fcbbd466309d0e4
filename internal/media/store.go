// Package media uploads video files and images to object storage and removes them again.
package media

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kapilrajreddy/youtube-api/internal/logger"
)

// ResourceKind selects the key prefix and how an object is probed.
type ResourceKind string

const (
	KindImage ResourceKind = "image"
	KindVideo ResourceKind = "video"
)

// Asset is an uploaded object. Duration is seconds, zero for images or when probing failed.
type Asset struct {
	URL      string
	PublicID string
	Duration float64
}

// Store is the object-storage collaborator.
type Store interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
	Delete(ctx context.Context, publicID string, kind ResourceKind) error
}

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".mkv": true, ".webm": true, ".avi": true, ".m4v": true,
}

// KindOf infers the kind from the file extension.
func KindOf(path string) ResourceKind {
	if videoExts[strings.ToLower(filepath.Ext(path))] {
		return KindVideo
	}
	return KindImage
}

// ContentType falls back to application/octet-stream for unknown extensions.
func ContentType(path string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// DeleteBestEffort removes an object and only logs failures.
func DeleteBestEffort(ctx context.Context, store Store, publicID string, kind ResourceKind) {
	if store == nil || publicID == "" {
		return
	}
	if err := store.Delete(context.WithoutCancel(ctx), publicID, kind); err != nil {
		logger.GetErrorLogger().WithFields(map[string]interface{}{
			"public_id": publicID,
			"kind":      string(kind),
		}).WithError(err).Warn("media delete failed")
	}
}

// removeLocal deletes the uploaded temp file whatever the upload outcome was.
func removeLocal(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.GetAppLogger().WithField("path", path).WithError(err).Warn("temp file not removed")
	}
}

// Discard removes local upload files that never reached a store.
func Discard(paths ...string) {
	for _, p := range paths {
		if p != "" {
			removeLocal(p)
		}
	}
}
