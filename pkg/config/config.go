package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Workflow WorkflowConfig
	Voice    VoiceConfig
	Features FeatureConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// StorageConfig holds CV-archive object storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicURL       string
}

// WorkflowConfig holds the external workflow engine configuration.
// BaseURL is the single base every read/submit endpoint is resolved against.
type WorkflowConfig struct {
	BaseURL string
	FormID  string
	Timeout time.Duration
}

// VoiceConfig holds the conversational voice service configuration
type VoiceConfig struct {
	AgentID        string
	ConnectionType string // "webrtc" or "websocket"
	WebSocketURL   string
	LiveKitURL     string
	APIKey         string
	APISecret      string
}

// FeatureConfig holds build/boot-time feature flags
type FeatureConfig struct {
	TestModeEnabled bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "interview_platform"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", "your-access-secret-change-in-production"),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-change-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", "15m"),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", "168h"),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", ""),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", ""),
			BucketName:      getEnv("STORAGE_BUCKET", "cv-archive"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
		},
		Workflow: WorkflowConfig{
			BaseURL: getEnv("WORKFLOW_BASE_URL", ""),
			FormID:  getEnv("WORKFLOW_FORM_ID", ""),
			Timeout: getEnvAsDuration("WORKFLOW_TIMEOUT", "30s"),
		},
		Voice: VoiceConfig{
			AgentID:        getEnv("VOICE_AGENT_ID", ""),
			ConnectionType: getEnv("VOICE_CONNECTION_TYPE", "webrtc"),
			WebSocketURL:   getEnv("VOICE_WS_URL", "wss://api.elevenlabs.io/v1/convai/conversation"),
			LiveKitURL:     getEnv("LIVEKIT_URL", ""),
			APIKey:         getEnv("LIVEKIT_API_KEY", ""),
			APISecret:      getEnv("LIVEKIT_API_SECRET", ""),
		},
		Features: FeatureConfig{
			TestModeEnabled: getEnvAsBool("TEST_MODE_ENABLED", false),
		},
	}

	// Missing integrations disable the affected feature instead of failing boot.
	config.warnMissing()

	return config, nil
}

// warnMissing logs a warning for each optional integration that is not
// configured. The owning feature is disabled downstream.
func (c *Config) warnMissing() {
	if c.Workflow.BaseURL == "" {
		log.Printf("Warning: WORKFLOW_BASE_URL not set; workflow-backed views are disabled")
	}
	if c.Voice.AgentID == "" {
		log.Printf("Warning: VOICE_AGENT_ID not set; live interviews are disabled")
	}
	if c.Storage.Endpoint == "" {
		log.Printf("Warning: STORAGE_ENDPOINT not set; CV archiving is disabled")
	}
}

// WorkflowConfigured reports whether the workflow engine is reachable by config.
func (c *Config) WorkflowConfigured() bool {
	return c.Workflow.BaseURL != ""
}

// VoiceConfigured reports whether the voice agent can be dialed.
func (c *Config) VoiceConfigured() bool {
	return c.Voice.AgentID != ""
}

// StorageConfigured reports whether the CV archive is available.
func (c *Config) StorageConfigured() bool {
	return c.Storage.Endpoint != ""
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
