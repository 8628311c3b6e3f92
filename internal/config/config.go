package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	JwtSecret          string
	DbDriver           string
	DbHost             string
	DbPort             string
	DbUser             string
	DbPassword         string
	DbName             string
	SqlitePath         string
	ServerPort         string
	Issuer             string
	SessionTTL         = time.Hour
	CorporateDomain    = "@omnitak.com"
	AllowedOrigins     []string
	PolicyFile         string
	AuditRetentionDays = 90
	IsProduction       bool
	MinioEndpoint      string
	MinioAccessKey     string
	MinioSecretKey     string
	MinioUseSSL        bool
	MinioBucket        string
)

// LoadConfig reads the given dotenv files (or .env when none are given) and
// then populates the package variables from the environment.
func LoadConfig(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	DbDriver = getEnv("DB_DRIVER", "postgres")
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "stackflow")
	SqlitePath = getEnv("SQLITE_PATH", "stackflow.db")
	ServerPort = getEnv("SERVER_PORT", "8080")
	Issuer = getEnv("ISSUER", "stackflow")
	SessionTTL = getDuration("SESSION_TTL", time.Hour)
	CorporateDomain = strings.ToLower(getEnv("CORPORATE_DOMAIN", "@omnitak.com"))
	AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"))
	PolicyFile = getEnv("POLICY_FILE", "")
	AuditRetentionDays = getInt("AUDIT_RETENTION_DAYS", 90)
	IsProduction = getEnv("ENVIRONMENT", "development") == "production"

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "stackflow-reports")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
