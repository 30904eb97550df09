package config

import (
	"errors"
	"time"
)

// Config is the application configuration root.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	AI      AIConfig      `mapstructure:"ai"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AIConfig holds upstream provider settings.
type AIConfig struct {
	Provider string          `mapstructure:"provider"`
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig holds model sampling parameters.
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// ChatConfig holds the brand persona and frontend-facing values.
type ChatConfig struct {
	BrandName        string `mapstructure:"brand_name"`
	WelcomeMessage   string `mapstructure:"welcome_message"`
	MaxMessageLength int    `mapstructure:"max_message_length"`
	TypingDelay      int    `mapstructure:"typing_delay"`
	SystemPromptPath string `mapstructure:"system_prompt_path"`
	SystemPrompt     string `mapstructure:"system_prompt"` // inline override, takes precedence over the file
}

// StorageConfig selects the conversation store backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // memory, mongo, redis
}

// LogConfig holds zerolog settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig holds MongoDB settings.
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig holds Redis settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Validate checks the configuration for obvious misconfiguration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	validBackends := map[string]bool{"memory": true, "mongo": true, "redis": true}
	if !validBackends[c.Storage.Backend] {
		return errors.New("invalid storage backend, must be memory/mongo/redis")
	}
	if c.Storage.Backend == "mongo" && c.Mongo.URI == "" {
		return errors.New("mongo storage backend requires mongo.uri")
	}
	if c.Storage.Backend == "redis" && c.Redis.Addr == "" {
		return errors.New("redis storage backend requires redis.addr")
	}

	if c.AI.APIKey == "" {
		return errors.New("ai.api_key is required (set OPENAI_API_KEY)")
	}

	if c.Chat.MaxMessageLength <= 0 {
		return errors.New("chat.max_message_length must be positive")
	}

	return nil
}
