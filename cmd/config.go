package cmd

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"routetracker/internal/jobs"
)

// Relay backends selectable with RELAY_BACKEND.
const (
	RelayLocal    = "local"
	RelayRedis    = "redis"
	RelayPostgres = "postgres"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RelayBackend string
	RedisAddr    string
	RelayChannel string

	WSSendBuffer   int
	WSWriteTimeout time.Duration
	WSPingInterval time.Duration

	RegistrySweepSchedule string
}

// LoadConfig reads the configuration through getenv and fills in defaults
// for optional keys.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:              withDefault(getenv("HTTP_PORT"), "8080"),
		DBHost:                getenv("DB_HOST"),
		DBPort:                withDefault(getenv("DB_PORT"), "5432"),
		DBUser:                getenv("DB_USER"),
		DBPassword:            getenv("DB_PASSWORD"),
		DBName:                getenv("DB_NAME"),
		DBSslMode:             withDefault(getenv("DB_SSLMODE"), "disable"),
		RelayBackend:          withDefault(getenv("RELAY_BACKEND"), RelayLocal),
		RedisAddr:             withDefault(getenv("REDIS_ADDR"), "localhost:6379"),
		RelayChannel:          withDefault(getenv("RELAY_CHANNEL"), "routetracker.events"),
		RegistrySweepSchedule: withDefault(getenv("REGISTRY_SWEEP_SCHEDULE"), jobs.DefaultSweepSchedule),
	}

	var err error
	if config.WSSendBuffer, err = intValue(getenv, "WS_SEND_BUFFER", 64); err != nil {
		return Config{}, err
	}
	if config.WSWriteTimeout, err = durationValue(getenv, "WS_WRITE_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if config.WSPingInterval, err = durationValue(getenv, "WS_PING_INTERVAL", 30*time.Second); err != nil {
		return Config{}, err
	}

	switch config.RelayBackend {
	case RelayLocal, RelayRedis, RelayPostgres:
	default:
		return Config{}, fmt.Errorf("RELAY_BACKEND: unknown backend %q", config.RelayBackend)
	}

	return config, nil
}

// DSN is the PostgreSQL connection string in URL form, usable by both gorm
// and lib/pq.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func intValue(getenv func(string) string, key string, fallback int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s: %q is not a positive integer", key, raw)
	}
	return v, nil
}

func durationValue(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s: %q is not a positive duration", key, raw)
	}
	return v, nil
}
