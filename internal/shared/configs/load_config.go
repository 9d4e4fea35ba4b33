package configs

import (
	"fmt"
	"strings"
	"time"

	"traffic-analytics/internal/shared/validators"

	"github.com/spf13/viper"
)

const envPrefix = "TRAFFIC"

// LoadConfig reads configuration from file, applies TRAFFIC_* environment overrides and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// e.g. TRAFFIC_DATABASE_DSN overrides database.dsn
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// setDefaults fills the tuning knobs a deployment rarely changes. Connection settings,
// topics and the storage root have no default.
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.insert_chunk_size", 500)
	v.SetDefault("kafka.consumers", 1)
	v.SetDefault("kafka.max_batch_size", 500)
	v.SetDefault("kafka.max_wait", time.Second)
	v.SetDefault("pubsub.compression", "none")
	v.SetDefault("pubsub.write_timeout", 5)
	v.SetDefault("ingestion.ack_mode", "lossy")
	v.SetDefault("ingestion.live_push_workers", 10)
	v.SetDefault("ingestion.live_push_queue", 100)
	v.SetDefault("aggregation.timezone", "Asia/Ho_Chi_Minh")
	v.SetDefault("aggregation.sliding_window", 5*time.Minute)
	v.SetDefault("aggregation.top_n", 5)
	v.SetDefault("dashboard.interval", time.Minute)
	v.SetDefault("dashboard.lag", 2*time.Minute)
	v.SetDefault("reports.poll_interval", time.Minute)
	v.SetDefault("reports.workers", 5)
	v.SetDefault("reports.queue_capacity", 100)
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "server.port")
	if e.StructNamespace() != "" {
		// Extract nested field path (e.g., "Config.Server.Port" -> "server.port")
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			// Skip "Config" prefix, convert to lowercase with dots
			fieldPath := strings.ToLower(strings.Join(parts[1:], "."))
			field = fieldPath
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
