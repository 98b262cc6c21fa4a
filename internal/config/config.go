package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int    `env:"PORT" env-default:"8080"`
	DatabasePath string `env:"DATABASE_PATH" env-default:"./tasky.db"`
	UploadDir    string `env:"UPLOAD_DIR" env-default:"./uploads"`

	JWTSecret     string        `env:"JWT_SECRET" env-default:"dev-secret-change-me"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" env-default:"1h"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" env-default:"1h"`

	// AppBaseURL is the public URL of the frontend, used to build
	// password-reset links.
	AppBaseURL     string `env:"APP_BASE_URL" env-default:"http://localhost:5173"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" env-default:"http://localhost:5173"`

	SMTPHost string `env:"SMTP_HOST" env-default:""`
	SMTPPort int    `env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `env:"SMTP_USER" env-default:""`
	SMTPPass string `env:"SMTP_PASS" env-default:""`
	SMTPFrom string `env:"SMTP_FROM" env-default:"no-reply@tasky.local"`

	MaxAvatarBytes int64 `env:"MAX_AVATAR_BYTES" env-default:"5242880"`
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
