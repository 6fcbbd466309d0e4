package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	authsvc "github.com/Kapilrajreddy/youtube-api/internal/api/auth/service"
	basehdl "github.com/Kapilrajreddy/youtube-api/internal/api/base/handler"
	commentsrouter "github.com/Kapilrajreddy/youtube-api/internal/api/comments/router"
	dashboardrouter "github.com/Kapilrajreddy/youtube-api/internal/api/dashboard/router"
	likesrouter "github.com/Kapilrajreddy/youtube-api/internal/api/likes/router"
	"github.com/Kapilrajreddy/youtube-api/internal/api/middleware"
	playlistsrouter "github.com/Kapilrajreddy/youtube-api/internal/api/playlists/router"
	"github.com/Kapilrajreddy/youtube-api/internal/api/router"
	subscriptionsrouter "github.com/Kapilrajreddy/youtube-api/internal/api/subscriptions/router"
	tweetsrouter "github.com/Kapilrajreddy/youtube-api/internal/api/tweets/router"
	usersrouter "github.com/Kapilrajreddy/youtube-api/internal/api/users/router"
	userssvc "github.com/Kapilrajreddy/youtube-api/internal/api/users/service"
	videosrouter "github.com/Kapilrajreddy/youtube-api/internal/api/videos/router"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"
	"github.com/Kapilrajreddy/youtube-api/internal/storage/redisstore"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
)

const healthPath = "/health"

// domainRoutes is every domain mounted under /api/v1.
var domainRoutes = []router.RegisterFunc{
	usersrouter.Register,
	videosrouter.Register,
	commentsrouter.Register,
	tweetsrouter.Register,
	likesrouter.Register,
	subscriptionsrouter.Register,
	playlistsrouter.Register,
	dashboardrouter.Register,
}

// fiberError maps framework errors (unknown route, body too large, ...) onto
// the error taxonomy so they render through the same envelope.
func fiberError(err error) error {
	var appErr *common.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return common.ConvertMongoError(err)
	}
	switch fe.Code {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnprocessableEntity:
		return common.NewError(common.ErrCodeValidationInput, fe.Message, common.StatusBadRequest, nil)
	case fiber.StatusUnauthorized:
		return common.NewError(common.ErrCodeAuthToken, fe.Message, common.StatusUnauthorized, nil)
	case fiber.StatusForbidden:
		return common.NewError(common.ErrCodeAuthOwnership, fe.Message, common.StatusForbidden, nil)
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return common.NewError(common.ErrCodeDatabaseQuery, fe.Message, fe.Code, nil)
	case fiber.StatusTooManyRequests:
		return common.ErrRateLimited
	case fiber.StatusRequestTimeout, fiber.StatusGatewayTimeout:
		return common.ErrTimeout
	}
	return common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
}

func errorHandler(c fiber.Ctx, err error) error {
	mapped := fiberError(err)
	status := common.StatusOf(mapped)
	entry := logger.WithRequest(c).WithFields(map[string]interface{}{
		"status": status,
		"error":  err.Error(),
	})
	if status >= common.StatusInternalServerError {
		entry.Error("Request error")
	} else {
		entry.Debug("Request error")
	}
	return middleware.HandleErrorResponse(c, mapped)
}

// corsConfig keeps credentials off for the wildcard origin, which browsers reject anyway.
func corsConfig() cors.Config {
	cfg := global.MongoDB_ServerConfig
	origins := cfg.Origins()
	wildcard := len(origins) == 0 || (len(origins) == 1 && origins[0] == "*")
	if wildcard {
		origins = []string{"*"}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Requested-With"},
		AllowCredentials: cfg.CORS_AllowCredentials && !wildcard,
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}
}

// limiterStorage returns shared Redis counters when REDIS_ADDR is set; nil
// keeps the limiter's in-memory store.
func limiterStorage() fiber.Storage {
	cfg := global.MongoDB_ServerConfig
	if cfg.Redis_Addr == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	store, err := redisstore.New(ctx, redisstore.Config{
		Addr:     cfg.Redis_Addr,
		Password: cfg.Redis_Password,
		DB:       cfg.Redis_DB,
		Prefix:   "videotube:limiter:",
	})
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("Redis unavailable, rate limit counters stay in memory")
		return nil
	}
	return store
}

func skipInfra(c fiber.Ctx) bool {
	return c.Path() == healthPath || c.Method() == fiber.MethodOptions
}

// InitFiberApp builds the app with its middleware stack and every route.
func InitFiberApp(auth router.Authenticator) (*fiber.App, error) {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	app := fiber.New(fiber.Config{
		AppName:       "VideoTube API",
		ServerHeader:  "VideoTube API",
		StrictRouting: false,
		CaseSensitive: true,
		UnescapePath:  true,

		BodyLimit:       cfg.BodyLimit,
		ReadBufferSize:  8192,
		WriteBufferSize: 4096,

		ReadTimeout:  cfg.RequestTimeout + 5*time.Minute, // multipart uploads stream slowly
		WriteTimeout: cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	app.Use(cors.New(corsConfig()))

	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return middleware.HandleErrorResponse(c, common.ErrRateLimited)
			},
			Storage: limiterStorage(),
			Next:    skipInfra,
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", fmt.Sprintf("%v", e)).Error("Panic recovered")
		},
	}))

	app.Use(middleware.Timeout(cfg.RequestTimeout))

	system := basehdl.NewSystemHandler()
	app.Get(healthPath, system.HandleHealth)

	if err := router.SetupRoutes(app, auth, domainRoutes...); err != nil {
		return nil, err
	}
	return app, nil
}

// newAuthManager resolves the acting user from bearer tokens.
func newAuthManager() (*middleware.AuthManager, error) {
	cfg := global.MongoDB_ServerConfig
	users, err := userssvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("create user service: %w", err)
	}
	return middleware.NewAuthManager(authsvc.NewTokenService(cfg.JwtSecret, cfg.JwtTTL), users), nil
}
