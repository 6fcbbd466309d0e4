package global

import (
	"github.com/Kapilrajreddy/youtube-api/config"
	"github.com/Kapilrajreddy/youtube-api/internal/media"
	"github.com/Kapilrajreddy/youtube-api/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName holds the collection names of the application database.
type MongoDB_CollectionName struct {
	Users         string
	Videos        string
	Comments      string
	Tweets        string
	Likes         string
	Subscriptions string
	Playlists     string
}

var (
	Validate             *validator.Validate
	MongoDB_Session      *mongo.Client
	MongoDB_ServerConfig *config.Configuration
	MediaStore           media.Store
	MongoDB_ColNames     = MongoDB_CollectionName{
		Users:         "users",
		Videos:        "videos",
		Comments:      "comments",
		Tweets:        "tweets",
		Likes:         "likes",
		Subscriptions: "subscriptions",
		Playlists:     "playlists",
	}

	// RegistryCollections is filled at startup and read by every service.
	RegistryCollections = registry.NewRegistry[*mongo.Collection]()
)

// CollectionNames lists every collection in a fixed order.
func CollectionNames() []string {
	n := MongoDB_ColNames
	return []string{n.Users, n.Videos, n.Comments, n.Tweets, n.Likes, n.Subscriptions, n.Playlists}
}
