package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings needed to run the API and the admin CLI.
type Configuration struct {
	Address        string        `env:"ADDRESS" envDefault:":8080"`
	JwtSecret      string        `env:"JWT_SECRET,required" validate:"min=16"`
	JwtTTL         time.Duration `env:"JWT_TTL" envDefault:"24h"`
	BodyLimit      int           `env:"BODY_LIMIT" envDefault:"104857600"` // multipart uploads included
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	UploadDir      string        `env:"UPLOAD_DIR" envDefault:"./public/temp"`
	RepairInterval time.Duration `env:"REPAIR_INTERVAL" envDefault:"0"` // 0 disables the orphan repair worker

	MongoDB_ConnectionURI   string `env:"MONGODB_CONNECTION_URI,required" validate:"startswith=mongodb"`
	MongoDB_DBName          string `env:"MONGODB_DBNAME" envDefault:"videotube"`
	MongoDB_UseTransactions bool   `env:"MONGODB_USE_TRANSACTIONS" envDefault:"false"` // requires a replica set

	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"` // comma separated, * = all
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`

	RateLimit_Max     int  `env:"RATE_LIMIT_MAX" envDefault:"100"` // 0 disables
	RateLimit_Window  int  `env:"RATE_LIMIT_WINDOW" envDefault:"60"`
	RateLimit_Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	// Redis backs the rate limiter when set, otherwise counters stay in memory.
	Redis_Addr     string `env:"REDIS_ADDR"`
	Redis_Password string `env:"REDIS_PASSWORD"`
	Redis_DB       int    `env:"REDIS_DB" envDefault:"0"`

	// Data change events are published when AMQP_URL is set.
	AMQP_URL      string `env:"AMQP_URL"`
	AMQP_Exchange string `env:"AMQP_EXCHANGE" envDefault:"videotube.events"`

	Media_Backend string `env:"MEDIA_BACKEND" envDefault:"minio" validate:"oneof=minio supabase"`

	Minio_Endpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	Minio_AccessKey string `env:"MINIO_ACCESS_KEY"`
	Minio_SecretKey string `env:"MINIO_SECRET_KEY"`
	Minio_Bucket    string `env:"MINIO_BUCKET" envDefault:"videotube"`
	Minio_UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	Minio_PublicURL string `env:"MINIO_PUBLIC_URL"` // base for object urls, defaults to the endpoint

	Supabase_URL    string `env:"SUPABASE_URL"`
	Supabase_Key    string `env:"SUPABASE_KEY"`
	Supabase_Bucket string `env:"SUPABASE_BUCKET" envDefault:"videotube"`

	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`
}

// Origins splits CORS_ORIGINS.
func (c *Configuration) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORS_Origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// getEnvPath walks up from the working directory looking for config/env/<GO_ENV>.env.
func getEnvPath() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		fmt.Printf("Cannot resolve working directory: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// Load reads the env files (explicit files win over config/env lookup) and parses the environment.
// A missing env file is not an error: variables may come from the process environment.
func Load(files ...string) (*Configuration, error) {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			if _, err := os.Stat(envPath); err == nil {
				files = append(files, envPath)
			}
		}
	}
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, fmt.Errorf("load env files %v: %w", files, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// NewConfig is Load for callers that treat a bad configuration as fatal; it returns nil on error.
func NewConfig(files ...string) *Configuration {
	cfg, err := Load(files...)
	if err != nil {
		// logger may not be initialized yet
		fmt.Printf("Config error: %+v\n", err)
		return nil
	}
	return cfg
}
