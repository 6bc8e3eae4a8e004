package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort           string
	LogLevel             string
	FactCheckAPIKey      string
	GNewsAPIKey          string
	NewsAPIKey           string
	CacheTTLSeconds      string
	CacheMaxSize         string
	MaxRetries           string
	BackoffSeconds       string
	TimeoutSeconds       string
	FanoutTimeoutSeconds string
	PolitenessDelayMS    string
}

// VerifierConfig holds the runtime knobs of the verification pipeline
type VerifierConfig struct {
	CacheTTL        time.Duration `json:"cache_ttl"`
	CacheMaxSize    int           `json:"cache_max_size"`
	MaxRetries      int           `json:"max_retries"`
	Backoff         time.Duration `json:"backoff"`
	RequestTimeout  time.Duration `json:"request_timeout"`
	FanoutTimeout   time.Duration `json:"fanout_timeout"`
	PolitenessDelay time.Duration `json:"politeness_delay"`
}

// DefaultVerifierConfig returns the default pipeline configuration
func DefaultVerifierConfig() *VerifierConfig {
	return &VerifierConfig{
		CacheTTL:        time.Hour, // verdicts stay fresh for one hour
		CacheMaxSize:    1000,
		MaxRetries:      3,
		Backoff:         1 * time.Second,
		RequestTimeout:  10 * time.Second,
		FanoutTimeout:   30 * time.Second,
		PolitenessDelay: 0,
	}
}

// GetVerifierConfig builds the pipeline configuration from the environment,
// falling back to defaults for missing or invalid values
func (c *Config) GetVerifierConfig() *VerifierConfig {
	vc := DefaultVerifierConfig()

	vc.CacheTTL = parseSeconds("CACHE_TTL_SECONDS", c.CacheTTLSeconds, vc.CacheTTL)
	vc.RequestTimeout = parseSeconds("REQUEST_TIMEOUT_SECONDS", c.TimeoutSeconds, vc.RequestTimeout)

	// Zero is meaningful here: it disables the fan-out deadline entirely.
	if c.FanoutTimeoutSeconds != "" {
		if seconds, err := strconv.Atoi(c.FanoutTimeoutSeconds); err == nil && seconds >= 0 {
			vc.FanoutTimeout = time.Duration(seconds) * time.Second
		} else {
			logrus.Warnf("Invalid FANOUT_TIMEOUT_SECONDS value: %s, using default %v", c.FanoutTimeoutSeconds, vc.FanoutTimeout)
		}
	}

	if c.BackoffSeconds != "" {
		if backoff, err := strconv.ParseFloat(c.BackoffSeconds, 64); err == nil && backoff >= 0 {
			vc.Backoff = time.Duration(backoff * float64(time.Second))
		} else {
			logrus.Warnf("Invalid BACKOFF_SECONDS value: %s, using default %v", c.BackoffSeconds, vc.Backoff)
		}
	}

	if c.MaxRetries != "" {
		if retries, err := strconv.Atoi(c.MaxRetries); err == nil && retries > 0 {
			vc.MaxRetries = retries
		} else {
			logrus.Warnf("Invalid MAX_RETRIES value: %s, using default %d", c.MaxRetries, vc.MaxRetries)
		}
	}

	if c.CacheMaxSize != "" {
		if size, err := strconv.Atoi(c.CacheMaxSize); err == nil && size > 0 {
			vc.CacheMaxSize = size
		} else {
			logrus.Warnf("Invalid CACHE_MAX_SIZE value: %s, using default %d", c.CacheMaxSize, vc.CacheMaxSize)
		}
	}

	if c.PolitenessDelayMS != "" {
		if delay, err := strconv.Atoi(c.PolitenessDelayMS); err == nil && delay >= 0 {
			vc.PolitenessDelay = time.Duration(delay) * time.Millisecond
		} else {
			logrus.Warnf("Invalid POLITENESS_DELAY_MS value: %s, using default %v", c.PolitenessDelayMS, vc.PolitenessDelay)
		}
	}

	return vc
}

func parseSeconds(name, raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		logrus.Warnf("Invalid %s value: %s, using default %v", name, raw, fallback)
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		FactCheckAPIKey:      getEnv("FACTCHECK_API_KEY", ""),
		GNewsAPIKey:          getEnv("GNEWS_API_KEY", ""),
		NewsAPIKey:           getEnv("NEWSAPI_KEY", ""),
		CacheTTLSeconds:      getEnv("CACHE_TTL_SECONDS", "3600"),
		CacheMaxSize:         getEnv("CACHE_MAX_SIZE", "1000"),
		MaxRetries:           getEnv("MAX_RETRIES", "3"),
		BackoffSeconds:       getEnv("BACKOFF_SECONDS", "1"),
		TimeoutSeconds:       getEnv("REQUEST_TIMEOUT_SECONDS", "10"),
		FanoutTimeoutSeconds: getEnv("FANOUT_TIMEOUT_SECONDS", "30"),
		PolitenessDelayMS:    getEnv("POLITENESS_DELAY_MS", "0"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
