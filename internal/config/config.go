package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"kasubs/internal/domain/model"
)

// Config contains runtime configuration values.
type Config struct {
	KhanLocale             string
	KhanBaseURL            string
	KhanContentTypes       []model.ContentType
	KhanTolerateHTTPErrors bool
	KhanRateLimit          float64

	AmaraBaseURL           string
	AmaraUsername          string
	AmaraAPIKey            string
	AmaraRateLimit         float64
	ShortSubtitleThreshold int

	RequestTimeout time.Duration

	TreeCacheDir    string
	TreeCacheSQLite string
	RedisURL        string
	TreeCacheTTL    time.Duration

	RefreshCron       string
	NotifyWebhookURL  string
	TranslationLocale string

	LogLevel  string
	LogFormat string
}

// Overrides are command line values that take precedence over the environment.
// Zero values leave the environment setting untouched.
type Overrides struct {
	EnvFile            string
	Locale             string
	CacheDir           string
	LogLevel           string
	TolerateHTTPErrors bool
}

const (
	defaultEnvFile           = ".env"
	defaultLocale            = "en"
	defaultAmaraBaseURL      = "https://www.amara.org/"
	defaultContentTypes      = "video,exercise,article"
	defaultKhanRateLimit     = 2.0
	defaultAmaraRateLimit    = 1.0
	defaultShortSubtitles    = 20
	defaultTimeout           = 30 * time.Second
	defaultCacheDir          = "."
	defaultCron              = "0 3 * * *" // 03:00 every day
	defaultTranslationLocale = "cs"
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
)

var localePattern = regexp.MustCompile(`^[a-z]{2,3}(-[a-zA-Z]{2,4})?$`)

// Load builds a Config from an optional .env file, environment variables
// with sane defaults, and the given overrides.
func Load(o Overrides) (*Config, error) {
	if err := loadEnvFile(o.EnvFile); err != nil {
		return nil, err
	}

	cfg := &Config{
		KhanLocale:             getenvDefault("KHAN_LOCALE", defaultLocale),
		KhanBaseURL:            getenvDefault("KHAN_BASE_URL", ""),
		KhanTolerateHTTPErrors: parseBoolDefault("KHAN_TOLERATE_HTTP_ERRORS", false),
		KhanRateLimit:          parseFloatDefault("KHAN_RATE_LIMIT", defaultKhanRateLimit),
		AmaraBaseURL:           getenvDefault("AMARA_BASE_URL", defaultAmaraBaseURL),
		AmaraUsername:          getenvDefault("AMARA_USERNAME", ""),
		AmaraAPIKey:            getenvDefault("AMARA_API_KEY", ""),
		AmaraRateLimit:         parseFloatDefault("AMARA_RATE_LIMIT", defaultAmaraRateLimit),
		ShortSubtitleThreshold: parseIntDefault("SHORT_SUBTITLE_THRESHOLD", defaultShortSubtitles),
		RequestTimeout:         parseDurationDefault("REQUEST_TIMEOUT", defaultTimeout),
		TreeCacheDir:           getenvDefault("TREE_CACHE_DIR", defaultCacheDir),
		TreeCacheSQLite:        getenvDefault("TREE_CACHE_SQLITE", ""),
		RedisURL:               getenvDefault("REDIS_URL", ""),
		TreeCacheTTL:           parseDurationDefault("TREE_CACHE_TTL", 0),
		RefreshCron:            getenvDefault("REFRESH_CRON", defaultCron),
		NotifyWebhookURL:       getenvDefault("NOTIFY_WEBHOOK_URL", ""),
		TranslationLocale:      getenvDefault("TRANSLATION_LOCALE", defaultTranslationLocale),
		LogLevel:               getenvDefault("LOG_LEVEL", defaultLogLevel),
		LogFormat:              getenvDefault("LOG_FORMAT", defaultLogFormat),
	}

	types, err := parseContentTypes(getenvDefault("KHAN_CONTENT_TYPES", defaultContentTypes))
	if err != nil {
		return nil, err
	}
	cfg.KhanContentTypes = types

	o.apply(cfg)

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.ShortSubtitleThreshold <= 0 {
		cfg.ShortSubtitleThreshold = defaultShortSubtitles
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o Overrides) apply(cfg *Config) {
	if o.Locale != "" {
		cfg.KhanLocale = o.Locale
	}
	if o.CacheDir != "" {
		cfg.TreeCacheDir = o.CacheDir
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.TolerateHTTPErrors {
		cfg.KhanTolerateHTTPErrors = true
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	if !localePattern.MatchString(c.KhanLocale) {
		errs = append(errs, fmt.Errorf("KHAN_LOCALE %q is not a locale code", c.KhanLocale))
	}
	if c.TranslationLocale == "" {
		errs = append(errs, errors.New("TRANSLATION_LOCALE is required"))
	}
	if c.TreeCacheDir == "" {
		errs = append(errs, errors.New("TREE_CACHE_DIR is required"))
	}
	if c.KhanRateLimit < 0 || c.AmaraRateLimit < 0 {
		errs = append(errs, errors.New("rate limits must not be negative"))
	}
	if c.TreeCacheTTL < 0 {
		errs = append(errs, errors.New("TREE_CACHE_TTL must not be negative"))
	}
	if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
		errs = append(errs, fmt.Errorf("REFRESH_CRON %q: %w", c.RefreshCron, err))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be json or text", c.LogFormat))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not a level", c.LogLevel))
	}
	return errors.Join(errs...)
}

// HasAmaraCredentials reports whether both Amara credentials are set.
func (c *Config) HasAmaraCredentials() bool {
	return c.AmaraUsername != "" && c.AmaraAPIKey != ""
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func parseContentTypes(value string) ([]model.ContentType, error) {
	var types []model.ContentType
	seen := make(map[model.ContentType]bool)
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		ct, ok := model.ParseContentType(part)
		if !ok {
			return nil, fmt.Errorf("KHAN_CONTENT_TYPES: unknown content type %q", strings.TrimSpace(part))
		}
		if !seen[ct] {
			seen[ct] = true
			types = append(types, ct)
		}
	}
	if len(types) == 0 {
		return nil, errors.New("KHAN_CONTENT_TYPES is empty")
	}
	return types, nil
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseIntDefault(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func parseFloatDefault(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func parseBoolDefault(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
