package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config is the full runtime configuration shared by the api and worker binaries.
type Config struct {
	HTTPAddr      string `koanf:"http_addr"`
	DatabaseURL   string `koanf:"database_url"`
	RedisURL      string `koanf:"redis_url"`
	PublicBaseURL string `koanf:"public_base_url"`

	JWTSecret string        `koanf:"jwt_secret"`
	JWTTTL    time.Duration `koanf:"jwt_ttl"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	Asynq     AsynqConfig     `koanf:"asynq"`
	Messaging MessagingConfig `koanf:"messaging"`
	Costs     CostConfig      `koanf:"costs"`
	WhatsApp  WhatsAppConfig  `koanf:"whatsapp"`
	Twilio    TwilioConfig    `koanf:"twilio"`
	S3        S3Config        `koanf:"s3"`
	Image     ImageConfig     `koanf:"image"`
}

type AsynqConfig struct {
	Concurrency int    `koanf:"concurrency"`
	Queues      string `koanf:"queues"` // CSV like "messaging=6,default=1"
	// MetricsAddr is where the worker exposes /metrics.
	MetricsAddr string `koanf:"metrics_addr"`
}

// MessagingConfig tunes the bulk job processor.
type MessagingConfig struct {
	ChunkSize   int           `koanf:"chunk_size"`
	MaxAttempts int           `koanf:"max_attempts"`
	GuestLimit  int           `koanf:"guest_limit"`
	GuestWindow time.Duration `koanf:"guest_window"`
	ProviderRPS float64       `koanf:"provider_rps"`
	RetryDelay  time.Duration `koanf:"retry_delay"`
	// StaleAfter is both the sweep threshold and the job lease length.
	StaleAfter time.Duration `koanf:"stale_after"`
}

// CostConfig holds unit prices in micro-units of the billing currency.
type CostConfig struct {
	WhatsAppMicros int64 `koanf:"whatsapp_micros"`
	SMSMicros      int64 `koanf:"sms_micros"`
	VoiceMicros    int64 `koanf:"voice_micros"`
	ImageMicros    int64 `koanf:"image_micros"`
}

type WhatsAppConfig struct {
	Token         string `koanf:"token"`
	PhoneNumberID string `koanf:"phone_number_id"`
	APIBase       string `koanf:"api_base"`
	VerifyToken   string `koanf:"verify_token"`
	AppSecret     string `koanf:"app_secret"`
}

type TwilioConfig struct {
	AccountSID        string `koanf:"account_sid"`
	AuthToken         string `koanf:"auth_token"`
	From              string `koanf:"from"`
	APIBase           string `koanf:"api_base"`
	StatusCallbackURL string `koanf:"status_callback_url"`
}

type S3Config struct {
	Bucket          string `koanf:"bucket"`
	Region          string `koanf:"region"`
	Endpoint        string `koanf:"endpoint"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
	PathStyle       bool   `koanf:"path_style"`
	PublicBaseURL   string `koanf:"public_base_url"`
}

type ImageConfig struct {
	APIKey  string `koanf:"api_key"`
	APIBase string `koanf:"api_base"`
	Model   string `koanf:"model"`
}

func defaultConfig() *Config {
	return &Config{
		HTTPAddr:      ":8080",
		PublicBaseURL: "http://localhost:8080",
		JWTTTL:        7 * 24 * time.Hour,
		LogLevel:      "info",
		LogFormat:     "json",
		Asynq: AsynqConfig{
			Concurrency: 10,
			Queues:      "messaging=6,default=1",
			MetricsAddr: ":9091",
		},
		Messaging: MessagingConfig{
			ChunkSize:   50,
			MaxAttempts: 3,
			GuestLimit:  3,
			GuestWindow: 24 * time.Hour,
			ProviderRPS: 10,
			RetryDelay:  2 * time.Minute,
			StaleAfter:  15 * time.Minute,
		},
		Costs: CostConfig{
			WhatsAppMicros: 35000,
			SMSMicros:      79000,
			VoiceMicros:    140000,
			ImageMicros:    40000,
		},
		WhatsApp: WhatsAppConfig{APIBase: "https://graph.facebook.com/v19.0"},
		Twilio:   TwilioConfig{APIBase: "https://api.twilio.com"},
		S3:       S3Config{Region: "us-east-1"},
		Image:    ImageConfig{APIBase: "https://api.openai.com/v1", Model: "gpt-image-1"},
	}
}

// envKeys maps environment variable names to koanf paths.
var envKeys = map[string]string{
	"HTTP_ADDR":       "http_addr",
	"DB_URL":          "database_url",
	"REDIS_URL":       "redis_url",
	"PUBLIC_BASE_URL": "public_base_url",
	"JWT_SECRET":      "jwt_secret",
	"JWT_TTL":         "jwt_ttl",
	"LOG_LEVEL":       "log_level",
	"LOG_FORMAT":      "log_format",

	"ASYNQ_CONCURRENCY":   "asynq.concurrency",
	"ASYNQ_QUEUES":        "asynq.queues",
	"WORKER_METRICS_ADDR": "asynq.metrics_addr",

	"MSG_CHUNK_SIZE":   "messaging.chunk_size",
	"MSG_MAX_ATTEMPTS": "messaging.max_attempts",
	"MSG_GUEST_LIMIT":  "messaging.guest_limit",
	"MSG_GUEST_WINDOW": "messaging.guest_window",
	"MSG_PROVIDER_RPS": "messaging.provider_rps",
	"MSG_RETRY_DELAY":  "messaging.retry_delay",
	"MSG_STALE_AFTER":  "messaging.stale_after",

	"COST_WHATSAPP_MICROS": "costs.whatsapp_micros",
	"COST_SMS_MICROS":      "costs.sms_micros",
	"COST_VOICE_MICROS":    "costs.voice_micros",
	"COST_IMAGE_MICROS":    "costs.image_micros",

	"WHATSAPP_TOKEN":           "whatsapp.token",
	"WHATSAPP_PHONE_NUMBER_ID": "whatsapp.phone_number_id",
	"WHATSAPP_API_BASE":        "whatsapp.api_base",
	"WHATSAPP_VERIFY_TOKEN":    "whatsapp.verify_token",
	"WHATSAPP_APP_SECRET":      "whatsapp.app_secret",

	"TWILIO_ACCOUNT_SID":         "twilio.account_sid",
	"TWILIO_AUTH_TOKEN":          "twilio.auth_token",
	"TWILIO_FROM":                "twilio.from",
	"TWILIO_API_BASE":            "twilio.api_base",
	"TWILIO_STATUS_CALLBACK_URL": "twilio.status_callback_url",

	"S3_BUCKET":            "s3.bucket",
	"S3_REGION":            "s3.region",
	"S3_ENDPOINT":          "s3.endpoint",
	"S3_ACCESS_KEY_ID":     "s3.access_key_id",
	"S3_SECRET_ACCESS_KEY": "s3.secret_access_key",
	"S3_PATH_STYLE":        "s3.path_style",
	"S3_PUBLIC_BASE_URL":   "s3.public_base_url",

	"IMAGE_API_KEY":  "image.api_key",
	"IMAGE_API_BASE": "image.api_base",
	"IMAGE_MODEL":    "image.model",
}

// envKey drops unknown and blank variables so they never shadow a default.
func envKey(name, value string) (string, interface{}) {
	path, ok := envKeys[name]
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", nil
	}
	return path, value
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()
	return load()
}

// load layers the environment over the built-in defaults.
func load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if err := k.Load(env.ProviderWithValue("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.PublicBaseURL = strings.TrimRight(c.PublicBaseURL, "/")
	c.WhatsApp.APIBase = strings.TrimRight(c.WhatsApp.APIBase, "/")
	c.Twilio.APIBase = strings.TrimRight(c.Twilio.APIBase, "/")
	c.S3.PublicBaseURL = strings.TrimRight(c.S3.PublicBaseURL, "/")
	c.Image.APIBase = strings.TrimRight(c.Image.APIBase, "/")
}

func (c *Config) validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("config: DB_URL is required"))
	}
	if c.RedisURL == "" {
		errs = append(errs, errors.New("config: REDIS_URL is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("config: JWT_SECRET is required"))
	}
	if c.Messaging.ChunkSize <= 0 {
		errs = append(errs, errors.New("config: MSG_CHUNK_SIZE must be positive"))
	}
	if c.Messaging.MaxAttempts <= 0 {
		errs = append(errs, errors.New("config: MSG_MAX_ATTEMPTS must be positive"))
	}
	if c.Messaging.ProviderRPS <= 0 {
		errs = append(errs, errors.New("config: MSG_PROVIDER_RPS must be positive"))
	}
	if c.Messaging.RetryDelay <= 0 {
		errs = append(errs, errors.New("config: MSG_RETRY_DELAY must be positive"))
	}
	// A job waiting for its retry run is not touched, so the sweeper would
	// re-enqueue it alongside the scheduled run.
	if c.Messaging.RetryDelay >= c.Messaging.StaleAfter {
		errs = append(errs, errors.New("config: MSG_RETRY_DELAY must be shorter than MSG_STALE_AFTER"))
	}
	return errors.Join(errs...)
}
