package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Events   EventsConfig   `mapstructure:"events"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type JWTConfig struct {
	Secret             string `mapstructure:"secret"`
	AccessTokenExpiry  int    `mapstructure:"access_token_expiry"`
	RefreshTokenExpiry int    `mapstructure:"refresh_token_expiry"`
	Issuer             string `mapstructure:"issuer"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// EventsConfig holds configuration for the WebSocket event hub
type EventsConfig struct {
	WriteTimeout   int `mapstructure:"write_timeout"`    // Per-message write timeout in seconds (default: 10)
	PingInterval   int `mapstructure:"ping_interval"`    // WebSocket ping interval in seconds (default: 30)
	SendBufferSize int `mapstructure:"send_buffer_size"` // Outbound message buffer per client (default: 16)
}

var (
	cfg  *Config
	once sync.Once
	mu   sync.RWMutex
)

// Load initializes the configuration from config file
func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		viper.SetConfigFile(configPath)
		viper.SetConfigType("yaml")

		// Enable environment variable override
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

		if err := viper.ReadInConfig(); err != nil {
			loadErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}

		cfg = &Config{}
		if err := viper.Unmarshal(cfg); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal config: %w", err)
			return
		}

		// Enable hot reload
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			log.Info().Str("file", e.Name).Msg("Config file changed, reloading...")
			mu.Lock()
			defer mu.Unlock()
			if err := viper.Unmarshal(cfg); err != nil {
				log.Error().Err(err).Msg("Failed to reload config")
			} else {
				log.Info().Msg("Config reloaded successfully")
			}
		})
	})

	return cfg, loadErr
}

// Get returns the current configuration (thread-safe)
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetDSN returns the PostgreSQL connection string
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// GetConnMaxLifetime returns the connection max lifetime as time.Duration
func (d *DatabaseConfig) GetConnMaxLifetime() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// GetAccessTokenExpiry returns access token expiry as time.Duration
func (j *JWTConfig) GetAccessTokenExpiry() time.Duration {
	return time.Duration(j.AccessTokenExpiry) * time.Second
}

// GetRefreshTokenExpiry returns refresh token expiry as time.Duration
func (j *JWTConfig) GetRefreshTokenExpiry() time.Duration {
	return time.Duration(j.RefreshTokenExpiry) * time.Second
}

// GetAddress returns the server address
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GetWriteTimeout returns the event write timeout as time.Duration
func (e *EventsConfig) GetWriteTimeout() time.Duration {
	if e.WriteTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(e.WriteTimeout) * time.Second
}

// GetPingInterval returns the ping interval as time.Duration
func (e *EventsConfig) GetPingInterval() time.Duration {
	if e.PingInterval <= 0 {
		return 30 * time.Second
	}
	return time.Duration(e.PingInterval) * time.Second
}

// GetSendBufferSize returns the per-client send buffer size
func (e *EventsConfig) GetSendBufferSize() int {
	if e.SendBufferSize <= 0 {
		return 16
	}
	return e.SendBufferSize
}
