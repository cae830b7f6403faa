package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var storeTypes = []string{"json", "file", "sqlite", "sqlite3", "postgres", "postgresql"}

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	// Zero samples is allowed and reports 0 s per case
	if samples := viper.GetInt("samples"); samples < 0 {
		errors = append(errors, fmt.Sprintf("samples must not be negative, got: %d", samples))
	}

	if batch := viper.GetInt("batch_size"); batch <= 0 {
		errors = append(errors, fmt.Sprintf("batch_size must be positive, got: %d", batch))
	}

	if dim := viper.GetInt("action_dim"); dim <= 0 {
		errors = append(errors, fmt.Sprintf("action_dim must be positive, got: %d", dim))
	}

	if threshold := viper.GetFloat64("threshold"); threshold < 0 {
		errors = append(errors, fmt.Sprintf("threshold must not be negative, got: %v", threshold))
	}

	storeType := strings.ToLower(viper.GetString("store.type"))
	if storeType != "" && !contains(storeTypes, storeType) {
		errors = append(errors, fmt.Sprintf("store.type must be one of %s, got: %s", strings.Join(storeTypes, ", "), storeType))
	}
	if (storeType == "postgres" || storeType == "postgresql") && viper.GetString("store.dsn") == "" {
		errors = append(errors, "store.dsn is required for the postgres store")
	}

	if viper.GetBool("notifications.slack.enabled") && viper.GetString("notifications.slack.webhook_url") == "" {
		errors = append(errors, "notifications.slack.webhook_url is required when slack notifications are enabled")
	}

	if timeout := viper.GetInt("notifications.timeout"); timeout <= 0 {
		errors = append(errors, fmt.Sprintf("notifications.timeout must be positive, got: %d", timeout))
	}

	// If there are any errors, return them
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
