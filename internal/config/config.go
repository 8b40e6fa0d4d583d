// Package config reads catalog service settings from the environment, after
// loading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort             = "8082"
	defaultStoreName        = "TechMart Store"
	defaultLogLevel         = "info"
	defaultKafkaTopic       = "catalog-events"
	defaultWriteLimitPerMin = 30
	defaultShutdownTimeout  = 10 * time.Second
)

type Config struct {
	Port      string
	StoreName string

	LogLevel       string
	LogDevelopment bool

	MetricsEnabled bool
	MetricsToken   string

	SeedDatabaseURL string

	KafkaBrokers []string
	KafkaTopic   string

	WriteLimitPerMin int
	ShutdownTimeout  time.Duration
}

// Addr is the listen address for Port.
func (c Config) Addr() string { return ":" + c.Port }

// EventsEnabled reports whether change events should go to Kafka.
func (c Config) EventsEnabled() bool { return len(c.KafkaBrokers) > 0 }

// Load reads envFiles (missing files are ignored) and then the process
// environment. Variables already set in the environment win over file values.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Port:            getenv("PORT", defaultPort),
		StoreName:       getenv("STORE_NAME", defaultStoreName),
		LogLevel:        getenv("LOG_LEVEL", defaultLogLevel),
		MetricsToken:    os.Getenv("METRICS_TOKEN"),
		SeedDatabaseURL: os.Getenv("SEED_DATABASE_URL"),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:      getenv("KAFKA_TOPIC", defaultKafkaTopic),
	}

	var err error
	if cfg.LogDevelopment, err = getbool("LOG_DEVELOPMENT", false); err != nil {
		return Config{}, err
	}
	if cfg.MetricsEnabled, err = getbool("METRICS_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.WriteLimitPerMin, err = getint("WRITE_LIMIT_PER_MIN", defaultWriteLimitPerMin); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getduration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that can also be changed after Load, such as a
// port given on the command line.
func (c Config) Validate() error {
	if _, err := strconv.ParseUint(c.Port, 10, 16); err != nil {
		return fmt.Errorf("PORT %q: not a port number", c.Port)
	}
	return nil
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s %q: %w", k, v, err)
	}
	return b, nil
}

func getint(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", k, v, err)
	}
	return n, nil
}

func getduration(k string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", k, v, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
