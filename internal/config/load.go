package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"squashbench/internal/benchmark"
	"squashbench/internal/squash"
)

// EnvPrefix is prepended to every environment override, e.g. SQUASHBENCH_SAMPLES.
const EnvPrefix = "SQUASHBENCH"

// DefaultSamples is how many times each case is timed.
const DefaultSamples = 100000

// Load initializes the configuration from file and environment variables.
// A missing config.yaml is fine; an explicit cfgFile that cannot be read is
// an error.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaults()

	// Fall back to the conventional Slack variable when ours is unset
	if os.Getenv(EnvPrefix+"_NOTIFICATIONS_SLACK_WEBHOOK_URL") == "" && os.Getenv("SLACK_WEBHOOK_URL") != "" {
		viper.SetDefault("notifications.slack.webhook_url", os.Getenv("SLACK_WEBHOOK_URL"))
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

func setDefaults() {
	viper.SetDefault("samples", DefaultSamples)
	viper.SetDefault("batch_size", squash.DefaultBatchSize)
	viper.SetDefault("action_dim", squash.DefaultActionDim)
	viper.SetDefault("seed", 0)
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("no_color", false)

	// History
	viper.SetDefault("save", false)
	viper.SetDefault("compare", false)
	viper.SetDefault("threshold", 10.0)
	viper.SetDefault("store.type", "json")
	viper.SetDefault("store.path", "")
	viper.SetDefault("store.dsn", "")

	viper.SetDefault("metrics_file", "")

	// Notification Defaults
	viper.SetDefault("notifications.slack.enabled", false)
	viper.SetDefault("notifications.slack.webhook_url", "")
	viper.SetDefault("notifications.timeout", 10)
}

// Settings is the typed view of the loaded configuration.
type Settings struct {
	Samples   int
	Squash    squash.Config
	Verbose   bool
	LogFile   string
	NoColor   bool
	Save      bool
	Compare   bool
	Threshold float64
	Store     benchmark.StoreConfig

	MetricsFile string

	SlackEnabled    bool
	SlackWebhookURL string
	NotifyTimeout   int // seconds
}

// Current reads the settings out of viper.
func Current() Settings {
	return Settings{
		Samples: viper.GetInt("samples"),
		Squash: squash.Config{
			BatchSize: viper.GetInt("batch_size"),
			ActionDim: viper.GetInt("action_dim"),
			Seed:      viper.GetUint64("seed"),
		},
		Verbose:   viper.GetBool("verbose"),
		LogFile:   viper.GetString("log_file"),
		NoColor:   viper.GetBool("no_color"),
		Save:      viper.GetBool("save"),
		Compare:   viper.GetBool("compare"),
		Threshold: viper.GetFloat64("threshold"),
		Store: benchmark.StoreConfig{
			Type: viper.GetString("store.type"),
			Path: viper.GetString("store.path"),
			DSN:  viper.GetString("store.dsn"),
		},
		MetricsFile:     viper.GetString("metrics_file"),
		SlackEnabled:    viper.GetBool("notifications.slack.enabled"),
		SlackWebhookURL: viper.GetString("notifications.slack.webhook_url"),
		NotifyTimeout:   viper.GetInt("notifications.timeout"),
	}
}
