package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-ini/ini"
	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Config struct {
	ServerPort     int
	DB             DB
	MinIO          MinIO
	JWTSecretKey   string
	TokenDuration  time.Duration
	MaxUploadSize  int64
	CORSOrigin     string
	MigrationsPath string
}

// defaults holds values from the optional INI file; environment variables take precedence.
type defaults struct {
	file *ini.File
}

func (d defaults) get(section, key, fallback string) string {
	if d.file == nil {
		return fallback
	}
	return d.file.Section(section).Key(key).MustString(fallback)
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

func loadDefaults(path string) defaults {
	if _, err := os.Stat(path); err != nil {
		return defaults{}
	}

	file, err := ini.Load(path)
	if err != nil {
		log.Printf("Warning: config file %s ignored: %v", path, err)
		return defaults{}
	}

	return defaults{file: file}
}

func loadDB(d defaults) DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", d.get("database", "host", "localhost")),
		DbPORT:     getEnv("DB_PORT", d.get("database", "port", "5432")),
		DbUSER:     getEnv("DB_USER", d.get("database", "user", "postgres")),
		DbPASSWORD: getEnv("DB_PASSWORD", d.get("database", "password", "password")),
		DbNAME:     getEnv("DB_NAME", d.get("database", "name", "blog")),
		DbSSLMODE:  getEnv("DB_SSLMODE", d.get("database", "sslmode", "disable")),
	}
}

func loadMinIO(d defaults) MinIO {
	useSSL, err := strconv.ParseBool(d.get("minio", "use_ssl", "false"))
	if err != nil {
		useSSL = false
	}

	endpoint := getEnv("MINIO_ENDPOINT", d.get("minio", "endpoint", "localhost:9000"))

	return MinIO{
		Endpoint:   endpoint,
		AccessKey:  getEnv("MINIO_ACCESS_KEY", d.get("minio", "access_key", "minioadmin")),
		SecretKey:  getEnv("MINIO_SECRET_KEY", d.get("minio", "secret_key", "minioadmin")),
		BucketName: getEnv("MINIO_BUCKET_NAME", d.get("minio", "bucket", "images")),
		UseSSL:     getEnvBool("MINIO_USE_SSL", useSSL),
		Region:     getEnv("MINIO_REGION", d.get("minio", "region", "us-east-1")),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", d.get("minio", "public_url", "http://"+endpoint)),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	d := loadDefaults(getEnv("CONFIG_FILE", "config.ini"))

	port, err := strconv.Atoi(d.get("server", "port", "8080"))
	if err != nil {
		port = 8080
	}

	return &Config{
		ServerPort:     getEnvAsInt("SERVER_PORT", port),
		DB:             loadDB(d),
		MinIO:          loadMinIO(d),
		JWTSecretKey:   getEnv("JWT_SECRET_KEY", d.get("auth", "jwt_secret", "")),
		TokenDuration:  parseDuration(getEnv("TOKEN_DURATION", d.get("auth", "token_duration", "720h")), 720*time.Hour),
		MaxUploadSize:  parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", d.get("server", "max_upload_size", "10485760"))),
		CORSOrigin:     getEnv("CORS_ORIGIN", d.get("server", "cors_origin", "*")),
		MigrationsPath: getEnv("MIGRATIONS_PATH", d.get("database", "migrations", "migrations/001_create_tables.sql")),
	}
}
