package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Search   SearchConfig
	YouTube  YouTubeConfig
	Chatbot  ChatbotConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
}

type SearchConfig struct {
	TavilyKey   string
	ResultLimit int
	Timeout     time.Duration
}

type YouTubeConfig struct {
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type ChatbotConfig struct {
	CerebrasKey      string
	AnthropicKey     string
	DefaultProvider  string
	FallbackProvider string
	Model            string
	MaxRetries       int
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	resultLimit, err := getEnvInt("SEARCH_RESULT_LIMIT", 6)
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_RESULT_LIMIT: %w", err)
	}

	searchTimeout, err := getEnvSeconds("SEARCH_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_TIMEOUT_SECONDS: %w", err)
	}

	youtubeTimeout, err := getEnvSeconds("YOUTUBE_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid YOUTUBE_TIMEOUT_SECONDS: %w", err)
	}

	cacheTTL, err := getEnvSeconds("VIDEO_CACHE_TTL_SECONDS", 600)
	if err != nil {
		return nil, fmt.Errorf("invalid VIDEO_CACHE_TTL_SECONDS: %w", err)
	}

	maxRetries, err := getEnvInt("CHATBOT_MAX_RETRIES", 2)
	if err != nil {
		return nil, fmt.Errorf("invalid CHATBOT_MAX_RETRIES: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("SESSION_SECRET", ""),
		},
		Search: SearchConfig{
			TavilyKey:   getEnv("TAVILY_API_KEY", ""),
			ResultLimit: resultLimit,
			Timeout:     searchTimeout,
		},
		YouTube: YouTubeConfig{
			APIKey:   getEnv("YOUTUBE_API_KEY", ""),
			Timeout:  youtubeTimeout,
			CacheTTL: cacheTTL,
		},
		Chatbot: ChatbotConfig{
			CerebrasKey:      getEnv("CEREBRAS_API_KEY", ""),
			AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
			DefaultProvider:  getEnv("CHATBOT_DEFAULT_PROVIDER", "cerebras"),
			FallbackProvider: getEnv("CHATBOT_FALLBACK_PROVIDER", ""),
			Model:            getEnv("CHATBOT_MODEL", "llama3.1-8b"),
			MaxRetries:       maxRetries,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvSeconds(key string, fallback int) (time.Duration, error) {
	n, err := getEnvInt(key, fallback)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}
