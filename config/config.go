package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpServer    HttpServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	MessageStream MessageStreamConfig
	HttpClient    HttpClientConfig
	Apple         AppleConfig
	Stripe        StripeConfig
	Session       SessionConfig
	Upload        UploadConfig
	Booking       BookingConfig
}

type HttpServerConfig struct {
	Port string `envconfig:"HTTP_SERVER_PORT" default:"3000"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"seaboo"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"20"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type MessageStreamConfig struct {
	Host     string `envconfig:"AMQP_HOST" default:"localhost"`
	Port     string `envconfig:"AMQP_PORT" default:"5672"`
	User     string `envconfig:"AMQP_USER" default:"guest"`
	Password string `envconfig:"AMQP_PASSWORD" default:"guest"`
}

type HttpClientConfig struct {
	Type              string  `envconfig:"HTTP_CLIENT_CB_TYPE" default:"consecutive"`
	TimeoutSeconds    int     `envconfig:"HTTP_CLIENT_TIMEOUT_SECONDS" default:"10"`
	Threshold         int64   `envconfig:"HTTP_CLIENT_CB_THRESHOLD" default:"10"`
	ErrorRate         float64 `envconfig:"HTTP_CLIENT_CB_ERROR_RATE" default:"0.65"`
	MinSamples        int64   `envconfig:"HTTP_CLIENT_CB_MIN_SAMPLES" default:"100"`
	ConsecutiveFailed int64   `envconfig:"HTTP_CLIENT_CB_CONSECUTIVE" default:"5"`
}

type AppleConfig struct {
	VerifyURL        string `envconfig:"APPLE_VERIFY_URL" default:"https://buy.itunes.apple.com/verifyReceipt"`
	SandboxVerifyURL string `envconfig:"APPLE_SANDBOX_VERIFY_URL" default:"https://sandbox.itunes.apple.com/verifyReceipt"`
	SharedSecret     string `envconfig:"APP_STORE_SHARED_SECRET" default:""`
	BundleID         string `envconfig:"APPLE_CLIENT_ID" default:"it.seaboo.app"`
	JWKSURL          string `envconfig:"APPLE_JWKS_URL" default:"https://appleid.apple.com/auth/keys"`
}

type StripeConfig struct {
	SecretKey     string `envconfig:"STRIPE_SECRET_KEY" default:""`
	WebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" default:""`
}

type SessionConfig struct {
	CookieName string `envconfig:"SESSION_COOKIE_NAME" default:"seaboo_session"`
	TTLHours   int    `envconfig:"SESSION_TTL_HOURS" default:"24"`
}

type UploadConfig struct {
	Dir         string `envconfig:"UPLOAD_DIR" default:"uploads"`
	MaxFileSize int64  `envconfig:"UPLOAD_MAX_FILE_SIZE" default:"5242880"`
	MaxImages   int    `envconfig:"UPLOAD_MAX_IMAGES" default:"5"`
}

type BookingConfig struct {
	PaymentWindowMinutes int `envconfig:"BOOKING_PAYMENT_WINDOW_MINUTES" default:"30"`
}

func InitConfig() *Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return &cfg
}
