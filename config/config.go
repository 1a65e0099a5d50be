// api/config/config.go
package config

import (
	"log"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Neo4j         DatabaseConfiguration
	Redis         RedisConfiguration
	Elasticsearch ElasticsearchConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// DatabaseConfiguration stores data for database connection
type DatabaseConfiguration struct {
	URI      string
	Username string
	Password string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr     string
	Password string
	DB       int
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL string
}

var config *Configuration

func InitConfig() error {
	if path := os.Getenv("AEGIS_CONFIG_PATH"); path != "" {
		viper.AddConfigPath(path)
	}
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.AutomaticEnv() // read in environment variables that match

	// Set default configurations
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("neo4j.uri", "bolt://localhost:7687")
	viper.SetDefault("neo4j.username", "neo4j")
	viper.SetDefault("neo4j.password", "")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("log.dir", "logging")

	// Backing store selection. Memory backends keep the engine runnable as a
	// single binary; the defaults assume the full deployment.
	viper.SetDefault("directory.backend", "neo4j")
	viper.SetDefault("directory.cache_ttl", "60s")
	viper.SetDefault("directory.cache_max_entries", 10000)
	viper.SetDefault("grants.backend", "redis")
	viper.SetDefault("grants.retries", 3)
	viper.SetDefault("grants.retry_backoff", "50ms")
	viper.SetDefault("grants.encryption_key", "")
	viper.SetDefault("audit.backend", "elasticsearch")
	viper.SetDefault("audit.index", "access-decisions")
	viper.SetDefault("audit.queue_size", 1024)
	viper.SetDefault("audit.retries", 3)
	viper.SetDefault("audit.retry_backoff", "100ms")

	// Decision cache
	viper.SetDefault("cache.ttl", "300s")
	viper.SetDefault("cache.wait_timeout", "2s")

	// Risk scoring
	viper.SetDefault("risk.threshold", 0.7)
	viper.SetDefault("risk.alert_threshold", 0.9)
	viper.SetDefault("risk.predictive.url", "")
	viper.SetDefault("risk.predictive.timeout", "500ms")
	viper.SetDefault("risk.history_limit", 50)
	viper.SetDefault("risk.history_window", "720h")
	viper.SetDefault("risk.business_hours.start", 6)
	viper.SetDefault("risk.business_hours.end", 22)
	viper.SetDefault("risk.sensitive_resources", []string{"finance", "hr", "payroll", "admin", "system"})

	// Partition routing
	viper.SetDefault("routing.default_partition", "public_data")
	viper.SetDefault("routing.deny_threshold", 0.8)
	viper.SetDefault("routing.history_capacity", 100)
	viper.SetDefault("routing.volume_threshold", 10)
	viper.SetDefault("routing.failure_threshold", 3)
	viper.SetDefault("routing.weights.tier.public", 0.1)
	viper.SetDefault("routing.weights.tier.internal", 0.2)
	viper.SetDefault("routing.weights.tier.restricted", 0.4)
	viper.SetDefault("routing.weights.tier.critical", 0.5)
	viper.SetDefault("routing.weights.read", 0.1)
	viper.SetDefault("routing.weights.write", 0.3)
	viper.SetDefault("routing.weights.off_hours", 0.2)
	viper.SetDefault("routing.weights.volume", 0.1)
	viper.SetDefault("routing.weights.failures", 0.3)

	// HTTP surface
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.admin_group", "aegis-admins")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// OnChange registers a handler for config file changes and starts the
// watcher. Used to hot-reload the role and partition tables.
func OnChange(handler func(e fsnotify.Event)) {
	viper.OnConfigChange(handler)
	viper.WatchConfig()
}

// UnmarshalKey decodes a configuration subtree into a struct or slice.
func UnmarshalKey(key string, v interface{}) error {
	return viper.UnmarshalKey(key, v)
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 retrieves a float64 value from the configuration
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetDuration retrieves a duration value from the configuration
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// GetStringSlice retrieves a string slice value from the configuration
func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}
