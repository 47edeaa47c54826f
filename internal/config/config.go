package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Deployment environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

const redacted = "***REDACTED***"

// DefaultFile is read from the working directory when no file is given.
const DefaultFile = "bookmarks.yaml"

type Config struct {
	ListenAddr      string        // ex: ":8080"
	Env             string        // "development" | "production" | "test"
	APIToken        string        // static bearer token required on /bookmarks
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request handler timeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile string // optional YAML file of bookmarks created at startup

	CORSOrigins  []string // allowed CORS origins, "*" for any
	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict probe endpoints to these IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	RateLimit RateLimitConfig
	Redis     RedisConfig
}

// RateLimitConfig configures per-client request limiting. Burst 0 disables it.
type RateLimitConfig struct {
	Burst         int
	PerMinute     int
	SweepInterval time.Duration
	IdleTTL       time.Duration
}

// RedisConfig is only used when Addr is set.
type RedisConfig struct {
	Addr             string        // ex: "localhost:6379", empty disables Redis
	Username         string        // optional
	Password         string        // optional
	PasswordRequired bool          // true => refuse to start without a password
	DB               int           // Redis DB number
	DialTimeout      time.Duration // ex: 5s
	ReadTimeout      time.Duration // ex: 3s
	WriteTimeout     time.Duration // ex: 3s
	PoolSize         int
	ConnectTimeout   time.Duration // total time to retry connecting
	RetryInterval    time.Duration // initial wait between retries, doubles each attempt
	MaxWait          time.Duration // cap on the wait between retries
	PingTimeout      time.Duration // timeout for each ping attempt
	WarnThreshold    int           // warn (rather than error) for this many attempts
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("shutdown_timeout", "5s")
	v.SetDefault("request_timeout", "2s")
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("trust_proxy", false)

	v.SetDefault("rate_limit.burst", 0)
	v.SetDefault("rate_limit.per_minute", 60)
	v.SetDefault("rate_limit.sweep_interval", "1m")
	v.SetDefault("rate_limit.idle_ttl", "15m")

	v.SetDefault("redis.username", "default")
	v.SetDefault("redis.password_required", false)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.connect_timeout", "30s")
	v.SetDefault("redis.retry_interval", "2s")
	v.SetDefault("redis.max_wait", "10s")
	v.SetDefault("redis.ping_timeout", "5s")
	v.SetDefault("redis.warn_threshold", 3)
}

// Load reads config from environment (BOOKMARKS_ prefix) and an optional
// bookmarks.yaml in the working directory. When file is non-empty that file
// is read instead and must exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKMARKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Name search would also match an extensionless ./bookmarks, which is
	// the built binary, so the default file is looked up by exact name.
	if file == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			file = DefaultFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat config file %s: %w", DefaultFile, err)
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	p := &parser{v: v}
	cfg := &Config{
		// Server settings
		ListenAddr:      v.GetString("listen_addr"),
		Env:             strings.ToLower(strings.TrimSpace(v.GetString("env"))),
		APIToken:        v.GetString("api_token"),
		ShutdownTimeout: p.duration("shutdown_timeout"),
		RequestTimeout:  p.duration("request_timeout"),

		// Logging
		LogLevel: v.GetString("log_level"),

		SeedFile: v.GetString("seed_file"),

		// Access
		CORSOrigins:  stringList(v, "cors_origins"),
		AllowedHosts: stringList(v, "allowed_hosts"),
		AllowedCIDRS: stringList(v, "allowed_cidrs"),
		TrustProxy:   p.boolean("trust_proxy"),

		RateLimit: RateLimitConfig{
			Burst:         p.integer("rate_limit.burst"),
			PerMinute:     p.integer("rate_limit.per_minute"),
			SweepInterval: p.duration("rate_limit.sweep_interval"),
			IdleTTL:       p.duration("rate_limit.idle_ttl"),
		},

		Redis: RedisConfig{
			Addr:             v.GetString("redis.addr"),
			Username:         v.GetString("redis.username"),
			Password:         v.GetString("redis.password"),
			PasswordRequired: p.boolean("redis.password_required"),
			DB:               p.integer("redis.db"),
			DialTimeout:      p.duration("redis.dial_timeout"),
			ReadTimeout:      p.duration("redis.read_timeout"),
			WriteTimeout:     p.duration("redis.write_timeout"),
			PoolSize:         p.integer("redis.pool_size"),
			ConnectTimeout:   p.duration("redis.connect_timeout"),
			RetryInterval:    p.duration("redis.retry_interval"),
			MaxWait:          p.duration("redis.max_wait"),
			PingTimeout:      p.duration("redis.ping_timeout"),
			WarnThreshold:    p.integer("redis.warn_threshold"),
		},
	}

	// Pretty console logs unless running in production.
	if v.IsSet("pretty_log") {
		cfg.PrettyLog = p.boolean("pretty_log")
	} else {
		cfg.PrettyLog = cfg.Env != EnvProduction
	}

	if err := p.err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.APIToken == "" {
		errs = append(errs, errors.New("BOOKMARKS_API_TOKEN is required"))
	}
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("BOOKMARKS_ENV must be one of development, production, test, got %q", c.Env))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("BOOKMARKS_SHUTDOWN_TIMEOUT must be > 0, got %v", c.ShutdownTimeout))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("BOOKMARKS_REQUEST_TIMEOUT must be > 0, got %v", c.RequestTimeout))
	}

	if c.RateLimit.Burst < 0 {
		errs = append(errs, fmt.Errorf("BOOKMARKS_RATE_LIMIT_BURST must be >= 0, got %d", c.RateLimit.Burst))
	}
	if c.RateLimit.Burst > 0 && c.RateLimit.PerMinute < 1 {
		errs = append(errs, fmt.Errorf("BOOKMARKS_RATE_LIMIT_PER_MINUTE must be >= 1, got %d", c.RateLimit.PerMinute))
	}

	if c.Redis.Enabled() && c.Redis.PasswordRequired && c.Redis.Password == "" {
		errs = append(errs, errors.New("BOOKMARKS_REDIS_PASSWORD is required when BOOKMARKS_REDIS_PASSWORD_REQUIRED=true"))
	}

	return errors.Join(errs...)
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.APIToken != "" {
		c.APIToken = redacted
	}
	if c.Redis.Password != "" {
		c.Redis.Password = redacted
	}
	return c
}

// parser reads typed values and remembers the first bad one per key.
type parser struct {
	v    *viper.Viper
	errs []error
}

func (p *parser) duration(key string) time.Duration {
	raw := strings.TrimSpace(p.v.GetString(key))
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s: %w", envName(key), err))
		return 0
	}
	return d
}

func (p *parser) integer(key string) int {
	raw := strings.TrimSpace(p.v.GetString(key))
	if raw == "" {
		return 0
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid integer value for %s: %s", envName(key), raw))
		return 0
	}
	return i
}

func (p *parser) boolean(key string) bool {
	raw := strings.TrimSpace(p.v.GetString(key))
	if raw == "" {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid boolean value for %s: %s", envName(key), raw))
		return false
	}
	return b
}

func (p *parser) err() error { return errors.Join(p.errs...) }

// envName maps a config key to the environment variable that sets it.
func envName(key string) string {
	return "BOOKMARKS_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// stringList accepts either a comma-separated string (env) or a YAML list.
func stringList(v *viper.Viper, key string) []string {
	if s, ok := v.Get(key).(string); ok {
		return splitAndTrim(s)
	}
	return splitAndTrim(strings.Join(v.GetStringSlice(key), ","))
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
