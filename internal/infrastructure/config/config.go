package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BackendBaseURL is the opaque SyncSpace API every remote call goes to.
	BackendBaseURL string `env:"BACKEND_BASE_URL, default=http://localhost:4000/api"`

	Session SessionConfig
	Routes  RoutesConfig
	Redis   RedisConfig
	Mongo   MongoConfig
	Media   MediaConfig
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL, default=24h"`
	Cookie string        `env:"SESSION_COOKIE, default=syncspace_session"`
}

// RoutesConfig holds the views denied requests are redirected to.
type RoutesConfig struct {
	LoginPath        string `env:"LOGIN_PATH,        default=/login"`
	UnauthorizedPath string `env:"UNAUTHORIZED_PATH, default=/unauthorized"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=syncspace_edge"`
}

type MediaConfig struct {
	UploadURL string `env:"MEDIA_UPLOAD_URL"`
	Preset    string `env:"MEDIA_UPLOAD_PRESET"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
