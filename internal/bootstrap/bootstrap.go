// Package bootstrap wires the process-wide collaborators shared by the API
// server and the admin CLI: database, schema, collection registry and media store.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/Kapilrajreddy/youtube-api/config"
	commentsmodels "github.com/Kapilrajreddy/youtube-api/internal/api/comments/models"
	likesmodels "github.com/Kapilrajreddy/youtube-api/internal/api/likes/models"
	playlistsmodels "github.com/Kapilrajreddy/youtube-api/internal/api/playlists/models"
	subsmodels "github.com/Kapilrajreddy/youtube-api/internal/api/subscriptions/models"
	tweetsmodels "github.com/Kapilrajreddy/youtube-api/internal/api/tweets/models"
	usersmodels "github.com/Kapilrajreddy/youtube-api/internal/api/users/models"
	videosmodels "github.com/Kapilrajreddy/youtube-api/internal/api/videos/models"
	"github.com/Kapilrajreddy/youtube-api/internal/database"
	"github.com/Kapilrajreddy/youtube-api/internal/global"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"
	"github.com/Kapilrajreddy/youtube-api/internal/media"

	"go.mongodb.org/mongo-driver/mongo"
)

// IndexedModels maps each collection to the model whose index tags describe it.
func IndexedModels() map[string]interface{} {
	n := global.MongoDB_ColNames
	return map[string]interface{}{
		n.Users:         usersmodels.User{},
		n.Videos:        videosmodels.Video{},
		n.Comments:      commentsmodels.Comment{},
		n.Tweets:        tweetsmodels.Tweet{},
		n.Likes:         likesmodels.Like{},
		n.Subscriptions: subsmodels.Subscription{},
		n.Playlists:     playlistsmodels.Playlist{},
	}
}

// Connect sets global.MongoDB_Session and returns the application database.
func Connect(cfg *config.Configuration) (*mongo.Database, error) {
	client, err := database.GetInstance(cfg)
	if err != nil {
		return nil, err
	}
	global.MongoDB_Session = client
	return client.Database(cfg.MongoDB_DBName), nil
}

// EnsureSchema creates missing collections and applies every index.
func EnsureSchema(ctx context.Context, db *mongo.Database) error {
	if err := database.EnsureCollections(ctx, db, global.CollectionNames()); err != nil {
		return err
	}
	models := IndexedModels()
	for _, name := range global.CollectionNames() {
		if err := database.CreateIndexes(ctx, db.Collection(name), models[name]); err != nil {
			return fmt.Errorf("indexes for %s: %w", name, err)
		}
	}
	return nil
}

// RegisterCollections fills global.RegistryCollections.
func RegisterCollections(db *mongo.Database) error {
	log := logger.GetAppLogger()
	for _, name := range global.CollectionNames() {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			return fmt.Errorf("register collection %s: %w", name, err)
		}
		if !registered {
			log.Warnf("Collection %s already registered", name)
		}
	}
	return nil
}

// NewMediaStore builds the backend selected by MEDIA_BACKEND.
func NewMediaStore(ctx context.Context, cfg *config.Configuration) (media.Store, error) {
	if cfg.Media_Backend == "supabase" {
		store, err := media.NewSupabaseStore(media.SupabaseConfig{
			URL:    cfg.Supabase_URL,
			Key:    cfg.Supabase_Key,
			Bucket: cfg.Supabase_Bucket,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	store, err := media.NewMinioStore(ctx, media.MinioConfig{
		Endpoint:  cfg.Minio_Endpoint,
		AccessKey: cfg.Minio_AccessKey,
		SecretKey: cfg.Minio_SecretKey,
		Bucket:    cfg.Minio_Bucket,
		UseSSL:    cfg.Minio_UseSSL,
		PublicURL: cfg.Minio_PublicURL,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Init runs the common startup sequence: validator, config, database, schema, registry.
func Init(ctx context.Context, envFiles ...string) (*config.Configuration, *mongo.Database, error) {
	global.InitValidator()

	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, nil, err
	}
	global.MongoDB_ServerConfig = cfg

	db, err := Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, nil, err
	}
	if err := RegisterCollections(db); err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
