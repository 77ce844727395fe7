// Package config implements fail-open configuration loading for long-running
// components: an invalid environment value is replaced by its default, reported
// as a warning and counted in metrics, and never stops the process.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadResult represents the result of loading a configuration value.
type LoadResult[T any] struct {
	Value           T
	Warning         string
	FallbackApplied bool
}

// Load reads envKey, parses it and validates the parsed value.
// An unset or blank variable yields defaultValue without a warning; a value
// that fails parse or validate yields defaultValue with a warning.
// validate may be nil.
func Load[T any](envKey string, defaultValue T, parse func(string) (T, error), validate func(T) error) LoadResult[T] {
	raw := strings.TrimSpace(os.Getenv(envKey))
	if raw == "" {
		return LoadResult[T]{Value: defaultValue}
	}

	value, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(value)
	}
	if err != nil {
		return LoadResult[T]{
			Value:           defaultValue,
			Warning:         fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, raw, err, defaultValue),
			FallbackApplied: true,
		}
	}
	return LoadResult[T]{Value: value}
}

// LoadEnvString loads a string value with validation.
//
//	result := LoadEnvString("MOOD_CRON_SCHEDULE", "*/30 * * * *", ValidateCronSchedule)
func LoadEnvString(envKey, defaultValue string, validate func(string) error) LoadResult[string] {
	return Load(envKey, defaultValue, func(s string) (string, error) { return s, nil }, validate)
}

// LoadEnvDuration loads a time.ParseDuration value with validation.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validate func(time.Duration) error) LoadResult[time.Duration] {
	return Load(envKey, defaultValue, time.ParseDuration, validate)
}

// LoadEnvInt loads a base-10 integer with validation.
func LoadEnvInt(envKey string, defaultValue int, validate func(int) error) LoadResult[int] {
	return Load(envKey, defaultValue, strconv.Atoi, validate)
}
