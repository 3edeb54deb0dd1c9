package cmd

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/adapters/out/redis"
	"fooddelivery/internal/pkg/errs"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaOrderChangedTopic string
	RedisAddr              string
	TrackingTTL            time.Duration
}

// LoadConfig reads the configuration through getenv, usually os.Getenv after
// the optional .env file was loaded. TRACKING_TTL defaults to the tracking
// store default.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:               getenv("HTTP_PORT"),
		DBHost:                 getenv("DB_HOST"),
		DBPort:                 getenv("DB_PORT"),
		DBUser:                 getenv("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 getenv("DB_NAME"),
		DBSslMode:              getenv("DB_SSLMODE"),
		KafkaHost:              getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		RedisAddr:              getenv("REDIS_ADDR"),
		TrackingTTL:            redis.DefaultTTL,
	}

	if value := getenv("TRACKING_TTL"); value != "" {
		ttl, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, errs.NewValueIsInvalidErrorWithCause("TRACKING_TTL", err)
		}
		config.TrackingTTL = ttl
	}

	if config.DBSslMode == "" {
		config.DBSslMode = "disable"
	}

	return config, nil
}

// Validate reports every missing setting at once.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"HTTP_PORT", c.HTTPPort},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
		{"KAFKA_HOST", c.KafkaHost},
		{"KAFKA_ORDER_CHANGED_TOPIC", c.KafkaOrderChangedTopic},
		{"REDIS_ADDR", c.RedisAddr},
	}

	var errList []error
	for _, r := range required {
		if r.value == "" {
			errList = append(errList, errs.NewValueIsRequiredError(r.name))
		}
	}

	if c.TrackingTTL <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("TRACKING_TTL", c.TrackingTTL, "1ns", "unbounded"))
	}

	return errors.Join(errList...)
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
