package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// VisionConfig holds Google Vision credentials. Either the file path or the
// raw JSON blob may be set; the blob takes precedence. Both empty falls back
// to application default credentials.
type VisionConfig struct {
	CredentialsFile string
	CredentialsJSON string
}

// MatchingConfig holds the verification pipeline settings: the configured
// virtual-account digit string, the storage key prefix for uploaded advices
// and the lifetime of presigned file URLs.
type MatchingConfig struct {
	AccountNumber string
	UploadPrefix  string
	PresignExpiry time.Duration
}

// AppConfig is the centralized configuration struct for the application.
// It is populated once at process start from environment variables;
// nothing reads the environment at call time.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Vision   VisionConfig
	Matching MatchingConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Vision: VisionConfig{
			CredentialsFile: getEnv("VISION_CREDENTIALS_FILE", ""),
			CredentialsJSON: getEnv("VISION_CREDENTIALS_JSON", ""),
		},
		Matching: MatchingConfig{
			AccountNumber: getEnv("VA_ACCOUNT_NUMBER", ""),
			UploadPrefix:  getEnv("UPLOAD_KEY_PREFIX", "advices"),
			PresignExpiry: time.Duration(getEnvInt("PRESIGN_EXPIRY_HOURS", 168)) * time.Hour,
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
