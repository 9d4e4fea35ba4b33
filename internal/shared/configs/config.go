package configs

import "time"

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Kafka       KafkaConfig       `mapstructure:"kafka" validate:"required"`
	PubSub      PubSubConfig      `mapstructure:"pubsub" validate:"required"`
	Ingestion   IngestionConfig   `mapstructure:"ingestion" validate:"required"`
	Aggregation AggregationConfig `mapstructure:"aggregation" validate:"required"`
	Dashboard   DashboardConfig   `mapstructure:"dashboard" validate:"required"`
	Reports     ReportsConfig     `mapstructure:"reports" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// DatabaseConfig holds the relational store connection settings.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn" validate:"required"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	InsertChunkSize int           `mapstructure:"insert_chunk_size" validate:"required,min=1"` // rows per INSERT statement
}

// KafkaConfig holds the inbound telemetry subscription settings.
type KafkaConfig struct {
	Brokers        []string      `mapstructure:"brokers" validate:"required,min=1"`
	GroupID        string        `mapstructure:"group_id" validate:"required"`
	TelemetryTopic string        `mapstructure:"telemetry_topic" validate:"required"`
	Consumers      int           `mapstructure:"consumers" validate:"required,min=1"`
	MaxBatchSize   int           `mapstructure:"max_batch_size" validate:"required,min=1,max=10000"`
	MaxWait        time.Duration `mapstructure:"max_wait" validate:"required"`
}

// PubSubConfig holds the outbound notification topics.
type PubSubConfig struct {
	Brokers         []string `mapstructure:"brokers" validate:"required,min=1"`
	RawBatchTopic   string   `mapstructure:"raw_batch_topic" validate:"required"`
	DashboardTopic  string   `mapstructure:"dashboard_topic" validate:"required"`
	ReportTopic     string   `mapstructure:"report_topic" validate:"required"`
	Compression     string   `mapstructure:"compression" validate:"omitempty,oneof=none gzip snappy lz4 zstd"`
	WriteTimeoutSec int      `mapstructure:"write_timeout" validate:"required,min=1"` // seconds
}

// IngestionConfig holds batch consumer settings.
type IngestionConfig struct {
	AckMode         string `mapstructure:"ack_mode" validate:"required,oneof=lossy at_least_once"`
	LivePushWorkers int    `mapstructure:"live_push_workers" validate:"required,min=1"`
	LivePushQueue   int    `mapstructure:"live_push_queue" validate:"required,min=1"`
}

// AggregationConfig holds sliding-window aggregation settings.
type AggregationConfig struct {
	Timezone      string        `mapstructure:"timezone" validate:"required"`
	SlidingWindow time.Duration `mapstructure:"sliding_window" validate:"required"`
	TopN          int           `mapstructure:"top_n" validate:"required,min=1"`
}

// DashboardConfig holds the live dashboard publisher settings.
type DashboardConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"required"`
	Lag      time.Duration `mapstructure:"lag"`
}

// ReportsConfig holds the report scheduler and worker pool settings.
type ReportsConfig struct {
	PollInterval  time.Duration `mapstructure:"poll_interval" validate:"required"`
	Workers       int           `mapstructure:"workers" validate:"required,min=1"`
	QueueCapacity int           `mapstructure:"queue_capacity" validate:"required,min=1"`
	TempDir       string        `mapstructure:"temp_dir"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}
